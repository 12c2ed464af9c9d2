package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/repslog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/repslog/internal/common"
	"github.com/dmitrijs2005/repslog/internal/dbx"
)

var nowFn = time.Now

// Metadata keys of the cached session.
const (
	keyToken     = "session_token"
	keyUserID    = "user_id"
	keyPartition = "storage_partition_id"
)

// SessionProvider exposes the current identity and its API token.
type SessionProvider interface {
	CurrentIdentity(ctx context.Context) (Identity, error)
	Token(ctx context.Context) (string, error)
}

// TokenSession holds an externally issued ID token. With a nil db the
// session lives in memory only.
type TokenSession struct {
	mu       sync.RWMutex
	db       *sql.DB
	token    string
	identity Identity
}

func NewTokenSession(db *sql.DB) *TokenSession {
	return &TokenSession{db: db}
}

// SignIn validates token claims and makes it the current session.
func (s *TokenSession) SignIn(ctx context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(token)
	id, expires, err := ParseIdentity(token)
	if err != nil {
		return Identity{}, err
	}
	if expired(expires) {
		return Identity{}, fmt.Errorf("%w: token expired at %s", common.ErrUnauthorized, expires.Format(time.RFC3339))
	}

	if err := s.persist(ctx, token, id); err != nil {
		return Identity{}, fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.token, s.identity = token, id
	s.mu.Unlock()

	return id, nil
}

// Restore loads a previously cached session. An expired cached token is
// discarded and reported as common.ErrUnauthorized.
func (s *TokenSession) Restore(ctx context.Context) (Identity, error) {
	if s.db == nil {
		return Identity{}, common.ErrUnauthorized
	}

	token, err := metadata.NewSQLiteRepository(s.db).Get(ctx, keyToken)
	if errors.Is(err, common.ErrNotFound) {
		return Identity{}, common.ErrUnauthorized
	}
	if err != nil {
		return Identity{}, err
	}

	id, expires, err := ParseIdentity(token)
	if err == nil && expired(expires) {
		err = fmt.Errorf("%w: cached token expired", common.ErrUnauthorized)
	}
	if err != nil {
		_ = s.SignOut(ctx)
		return Identity{}, err
	}

	s.mu.Lock()
	s.token, s.identity = token, id
	s.mu.Unlock()

	return id, nil
}

// SignOut forgets the session in memory and in the local cache.
func (s *TokenSession) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.token, s.identity = "", Identity{}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, k := range []string{keyToken, keyUserID, keyPartition} {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *TokenSession) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", common.ErrUnauthorized
	}
	return s.token, nil
}

func (s *TokenSession) CurrentIdentity(ctx context.Context) (Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return Identity{}, common.ErrUnauthorized
	}
	return s.identity, nil
}

// persist writes the session in a single transaction.
func (s *TokenSession) persist(ctx context.Context, token string, id Identity) error {
	if s.db == nil {
		return nil
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, token); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyUserID, id.UserID); err != nil {
			return err
		}
		return repo.Set(ctx, keyPartition, id.StoragePartitionID)
	})
}

func expired(expires time.Time) bool {
	return !expires.IsZero() && !nowFn().Before(expires)
}
