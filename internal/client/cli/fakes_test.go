package cli

import (
	"bufio"
	"bytes"
	"context"
	"image"
	"strings"
	"time"

	"github.com/dmitrijs2005/repslog/internal/client/auth"
	"github.com/dmitrijs2005/repslog/internal/client/models"
	"github.com/dmitrijs2005/repslog/internal/client/services"
	"github.com/dmitrijs2005/repslog/internal/client/store"
	"github.com/dmitrijs2005/repslog/internal/common"
	"github.com/dmitrijs2005/repslog/internal/logging"
)

// ------------ session ------------

type fakeSession struct {
	identity  *auth.Identity
	signInErr error
	restore   *auth.Identity
	tokens    []string
	signOuts  int
}

func (s *fakeSession) CurrentIdentity(context.Context) (auth.Identity, error) {
	if s.identity == nil {
		return auth.Identity{}, common.ErrUnauthorized
	}
	return *s.identity, nil
}

func (s *fakeSession) Token(ctx context.Context) (string, error) {
	if s.identity == nil {
		return "", common.ErrUnauthorized
	}
	return "token", nil
}

func (s *fakeSession) SignIn(ctx context.Context, token string) (auth.Identity, error) {
	s.tokens = append(s.tokens, token)
	if s.signInErr != nil {
		return auth.Identity{}, s.signInErr
	}
	id := auth.Identity{UserID: "u-" + token, StoragePartitionID: "eu:" + token}
	s.identity = &id
	return id, nil
}

func (s *fakeSession) Restore(context.Context) (auth.Identity, error) {
	if s.restore == nil {
		return auth.Identity{}, common.ErrUnauthorized
	}
	s.identity = s.restore
	return *s.restore, nil
}

func (s *fakeSession) SignOut(context.Context) error {
	s.signOuts++
	s.identity = nil
	return nil
}

// ------------ services ------------

type fakeProperties struct {
	st        *store.Store
	fetched   int
	fetchErr  error
	added     []services.PropertyInput
	updated   []models.Property
	deleted   []string
	deleteErr error
}

func (f *fakeProperties) FetchProperties(context.Context) error {
	f.fetched++
	return f.fetchErr
}

func (f *fakeProperties) AddProperty(ctx context.Context, in services.PropertyInput) (models.Property, error) {
	f.added = append(f.added, in)
	p := models.Property{ID: "p-new", Name: in.Name, Type: in.Type}
	f.st.AppendProperty(p)
	return p, nil
}

func (f *fakeProperties) UpdateProperty(ctx context.Context, p models.Property) (models.Property, error) {
	f.updated = append(f.updated, p)
	return p, nil
}

func (f *fakeProperties) DeleteProperty(ctx context.Context, p models.Property) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, p.ID)
	f.st.RemoveProperty(p.ID)
	return nil
}

func (f *fakeProperties) LongTermProperties() []models.Property {
	return models.FilterPropertiesByType(f.st.Properties(), models.PropertyTypeLongTerm)
}

func (f *fakeProperties) ShortTermProperties() []models.Property {
	return models.FilterPropertiesByType(f.st.Properties(), models.PropertyTypeShortTerm)
}

type fakeCategories struct {
	st      *store.Store
	fetched int
	added   []string
	renamed map[string]string
	deleted []string
}

func (f *fakeCategories) FetchCategories(context.Context) error {
	f.fetched++
	return nil
}

func (f *fakeCategories) AddCategory(ctx context.Context, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, common.Validation("category name is required")
	}
	f.added = append(f.added, name)
	return models.Category{ID: "c-new", Name: name}, nil
}

func (f *fakeCategories) RenameCategory(ctx context.Context, c models.Category, name string) (models.Category, error) {
	if f.renamed == nil {
		f.renamed = map[string]string{}
	}
	f.renamed[c.ID] = name
	c.Name = name
	return c, nil
}

func (f *fakeCategories) DeleteCategory(ctx context.Context, c models.Category) error {
	f.deleted = append(f.deleted, c.ID)
	return nil
}

type fakeEntries struct {
	st        *store.Store
	fetched   int
	fetchErr  error
	added     []services.AddEntryInput
	updated   []services.UpdateEntryInput
	deleted   []string
	resolved  []string
	urlErr    error
	sagas     []models.Saga
	resumed   int
	resumeErr error
}

func (f *fakeEntries) FetchEntries(context.Context) error {
	f.fetched++
	return f.fetchErr
}

func (f *fakeEntries) AddEntry(ctx context.Context, in services.AddEntryInput) (string, error) {
	f.added = append(f.added, in)
	return "e-new", nil
}

func (f *fakeEntries) UpdateEntry(ctx context.Context, in services.UpdateEntryInput) error {
	f.updated = append(f.updated, in)
	return nil
}

func (f *fakeEntries) DeleteEntry(ctx context.Context, entry models.Entry) error {
	f.deleted = append(f.deleted, entry.ID)
	return nil
}

func (f *fakeEntries) UploadImages(ctx context.Context, images []image.Image, entryID string) ([]string, error) {
	return nil, nil
}

func (f *fakeEntries) ImageURL(ctx context.Context, key string) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return "https://photos.test/" + key, nil
}

func (f *fakeEntries) DeleteImage(ctx context.Context, key string) error { return nil }

func (f *fakeEntries) ResolveProperty(ctx context.Context, ref models.Ref[models.Property]) (models.Ref[models.Property], error) {
	f.resolved = append(f.resolved, ref.ID())
	if p, ok := f.st.Property(ref.ID()); ok {
		return models.Resolved(ref.ID(), p), nil
	}
	return ref, common.ErrNotFound
}

func (f *fakeEntries) ResolveCategory(ctx context.Context, ref models.Ref[models.Category]) (models.Ref[models.Category], error) {
	f.resolved = append(f.resolved, ref.ID())
	if c, ok := f.st.Category(ref.ID()); ok {
		return models.Resolved(ref.ID(), c), nil
	}
	return ref, common.ErrNotFound
}

func (f *fakeEntries) IncompleteSagas(context.Context) ([]models.Saga, error) { return f.sagas, nil }

func (f *fakeEntries) ResumeSagas(context.Context) (int, error) { return f.resumed, f.resumeErr }

// ------------ app ------------

type testApp struct {
	*App
	sess  *fakeSession
	props *fakeProperties
	cats  *fakeCategories
	ents  *fakeEntries
	buf   *bytes.Buffer
}

func newTestApp(lines ...string) *testApp {
	st := store.New()
	sess := &fakeSession{identity: &auth.Identity{UserID: "u1", StoragePartitionID: "eu:1"}}
	props := &fakeProperties{st: st}
	cats := &fakeCategories{st: st}
	entries := &fakeEntries{st: st}
	var out bytes.Buffer

	input := strings.Join(lines, "\n")
	if len(lines) > 0 {
		input += "\n"
	}

	return &testApp{
		App: &App{
			session:    sess,
			properties: props,
			categories: cats,
			entries:    entries,
			store:      st,
			loc:        time.UTC,
			log:        logging.Discard(),
			reader:     bufio.NewReader(strings.NewReader(input)),
			out:        &out,
		},
		sess:  sess,
		props: props,
		cats:  cats,
		ents:  entries,
		buf:   &out,
	}
}
