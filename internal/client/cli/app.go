package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/repslog/internal/client/auth"
	"github.com/dmitrijs2005/repslog/internal/client/blob"
	"github.com/dmitrijs2005/repslog/internal/client/config"
	"github.com/dmitrijs2005/repslog/internal/client/gateway"
	"github.com/dmitrijs2005/repslog/internal/client/localdb"
	"github.com/dmitrijs2005/repslog/internal/client/repositories/sagas"
	"github.com/dmitrijs2005/repslog/internal/client/services"
	"github.com/dmitrijs2005/repslog/internal/client/store"
	"github.com/dmitrijs2005/repslog/internal/common"
	"github.com/dmitrijs2005/repslog/internal/logging"

	_ "modernc.org/sqlite"
)

// session is the part of auth.TokenSession the CLI drives.
type session interface {
	auth.SessionProvider
	SignIn(ctx context.Context, token string) (auth.Identity, error)
	Restore(ctx context.Context) (auth.Identity, error)
	SignOut(ctx context.Context) error
}

type App struct {
	session    session
	properties services.PropertyService
	categories services.CategoryService
	entries    services.EntryService
	store      *store.Store
	loc        *time.Location
	log        logging.Logger

	reader *bufio.Reader
	out    io.Writer
	db     *sql.DB

	initialToken string
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", c.TimeZone, err)
	}

	db, err := localdb.Open(ctx, c.LocalDBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.LocalDBPath, "error", err)
		return nil, err
	}

	sess := auth.NewTokenSession(db)
	gw := gateway.NewGraphQLGateway(c.GraphQLEndpoint, sess, c.RequestTimeout, log)

	blobs, err := blob.NewS3Store(ctx, blob.S3Config{
		Region:        c.S3Region,
		Bucket:        c.S3Bucket,
		BaseEndpoint:  c.S3BaseEndpoint,
		AccessKey:     c.S3AccessKey,
		SecretKey:     c.S3SecretKey,
		PresignExpiry: c.PresignExpiry,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	st := store.New()

	return &App{
		session:      sess,
		properties:   services.NewPropertyService(gw, st, log),
		categories:   services.NewCategoryService(gw, st, log),
		entries:      services.NewEntryService(gw, st, blobs, sess, sagas.NewSQLiteRepository(db), loc, log),
		store:        st,
		loc:          loc,
		log:          log,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		db:           db,
		initialToken: c.SessionToken,
	}, nil
}

// Close releases the local database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run signs in from the cache or the configured token, loads all
// collections and runs the REPL until exit.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to repslog CLI (type 'help' for commands)")

	if a.startSession(ctx) {
		_ = a.Sync(ctx)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) startSession(ctx context.Context) bool {
	if a.initialToken != "" {
		id, err := a.session.SignIn(ctx, a.initialToken)
		if err == nil {
			a.log.Info(ctx, "signed in with configured token", "user_id", id.UserID)
			return true
		}
		a.log.Warn(ctx, "configured token rejected", "error", err)
	}

	id, err := a.session.Restore(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrUnauthorized) {
			a.log.Warn(ctx, "session restore failed", "error", err)
		}
		return false
	}
	a.log.Info(ctx, "session restored", "user_id", id.UserID)
	return true
}

func (a *App) isLoggedIn() bool {
	_, err := a.session.CurrentIdentity(context.Background())
	return err == nil
}

func (a *App) getStatus() string {
	id, err := a.session.CurrentIdentity(context.Background())
	if err != nil {
		return ""
	}
	s := id.UserID
	if a.store.IsLoading() {
		s += " loading"
	}
	return fmt.Sprintf("(%s)", s)
}

// report prints err for the user and returns it.
func (a *App) report(err error) error {
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
	return err
}
