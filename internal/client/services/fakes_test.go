package services

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/repslog/internal/client/auth"
	"github.com/dmitrijs2005/repslog/internal/client/gateway"
	"github.com/dmitrijs2005/repslog/internal/client/localdb"
	"github.com/dmitrijs2005/repslog/internal/client/models"
	"github.com/dmitrijs2005/repslog/internal/client/repositories/sagas"
	"github.com/dmitrijs2005/repslog/internal/common"
	"github.com/stretchr/testify/require"
)

/*************
 * Fake gateway: an in-memory server
 *************/

type mutation struct {
	path  string
	input map[string]any
}

type fakeGateway struct {
	mu sync.Mutex

	properties []models.Property
	categories []models.Category
	entries    []models.Entry

	calls     []string
	mutations []mutation

	// errs fails the operation with the given name (decode path or helper).
	errs map[string]error
	// failCategory fails createCategory for specific names.
	failCategory map[string]bool

	nextID int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{errs: map[string]error{}, failCategory: map[string]bool{}}
}

func (f *fakeGateway) record(op string) error {
	f.calls = append(f.calls, op)
	return f.errs[op]
}

func (f *fakeGateway) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeGateway) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGateway) mutationsFor(path string) []mutation {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []mutation
	for _, m := range f.mutations {
		if m.path == path {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeGateway) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func (f *fakeGateway) Query(ctx context.Context, document string, vars map[string]any, decodePath string) (json.RawMessage, error) {
	return nil, fmt.Errorf("unexpected raw query %s", decodePath)
}

func (f *fakeGateway) Mutate(ctx context.Context, document string, vars map[string]any, decodePath string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	input, _ := vars["input"].(map[string]any)
	f.mutations = append(f.mutations, mutation{path: decodePath, input: input})
	if err := f.record(decodePath); err != nil {
		return nil, err
	}

	switch decodePath {
	case "createEntry":
		e := models.Entry{ID: f.id("e")}
		applyEntryInput(&e, input)
		f.entries = append(f.entries, e)
		return json.Marshal(e)
	case "updateEntry":
		for i := range f.entries {
			if f.entries[i].ID == input["id"] {
				applyEntryInput(&f.entries[i], input)
				return json.Marshal(f.entries[i])
			}
		}
		return json.RawMessage(`null`), nil
	case "deleteEntry":
		f.entries = removeByID(f.entries, input["id"], func(e models.Entry) string { return e.ID })
		return json.Marshal(map[string]any{"id": input["id"]})
	case "createCategory":
		name, _ := input["name"].(string)
		if f.failCategory[name] {
			return nil, fmt.Errorf("create %s refused", name)
		}
		c := models.Category{ID: f.id("c"), Name: name}
		if d, ok := input["isDefault"].(bool); ok {
			c.IsDefault = &d
		}
		f.categories = append(f.categories, c)
		return json.Marshal(c)
	case "updateCategory":
		for i := range f.categories {
			if f.categories[i].ID == input["id"] {
				f.categories[i].Name, _ = input["name"].(string)
				return json.Marshal(f.categories[i])
			}
		}
		return json.RawMessage(`null`), nil
	case "deleteCategory":
		f.categories = removeByID(f.categories, input["id"], func(c models.Category) string { return c.ID })
		return json.Marshal(map[string]any{"id": input["id"]})
	}
	return nil, fmt.Errorf("unexpected mutation %s", decodePath)
}

func applyEntryInput(e *models.Entry, in map[string]any) {
	if v, ok := in["date"].(string); ok {
		e.Date = models.Date(v)
	}
	if v, ok := in["totalMinutes"].(int); ok {
		e.TotalMinutes = v
	}
	if v, ok := in["performer"].(string); ok {
		e.Performer = v
	}
	if v, ok := in["activityType"].(string); ok {
		e.ActivityType = v
	}
	if v, ok := in["propertyID"].(string); ok {
		e.PropertyID = v
	}
	if v, ok := in["notes"]; ok {
		if s, isStr := v.(string); isStr {
			e.Notes = &s
		} else {
			e.Notes = nil
		}
	}
	if v, ok := in["categoryID"]; ok {
		if s, isStr := v.(string); isStr {
			e.CategoryID = &s
		} else {
			e.CategoryID = nil
		}
	}
	if v, ok := in["images"].([]string); ok {
		e.Images = append([]string(nil), v...)
	}
}

func removeByID[T any](items []T, id any, key func(T) string) []T {
	out := items[:0:0]
	for _, it := range items {
		if key(it) != id {
			out = append(out, it)
		}
	}
	return out
}

func (f *fakeGateway) ListProperties(ctx context.Context) ([]models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("listProperties"); err != nil {
		return nil, err
	}
	return append([]models.Property(nil), f.properties...), nil
}

func (f *fakeGateway) GetProperty(ctx context.Context, id string) (models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("getProperty"); err != nil {
		return models.Property{}, err
	}
	for _, p := range f.properties {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Property{}, fmt.Errorf("%w: getProperty", common.ErrNotFound)
}

func (f *fakeGateway) CreateProperty(ctx context.Context, in gateway.PropertyInput) (models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("createProperty"); err != nil {
		return models.Property{}, err
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := propertyFromInput(in)
	p.CreatedAt, p.UpdatedAt = &now, &now
	f.properties = append(f.properties, p)
	return p, nil
}

func (f *fakeGateway) UpdateProperty(ctx context.Context, in gateway.PropertyInput) (models.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("updateProperty"); err != nil {
		return models.Property{}, err
	}
	for i := range f.properties {
		if f.properties[i].ID == in.ID {
			f.properties[i] = propertyFromInput(in)
			return f.properties[i], nil
		}
	}
	return models.Property{}, fmt.Errorf("%w: updateProperty", common.ErrNotFound)
}

func (f *fakeGateway) DeleteProperty(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("deleteProperty"); err != nil {
		return err
	}
	f.properties = removeByID(f.properties, id, func(p models.Property) string { return p.ID })
	return nil
}

func propertyFromInput(in gateway.PropertyInput) models.Property {
	return models.Property{
		ID: in.ID, Name: in.Name, Nickname: in.Nickname, Type: in.Type,
		Address1: in.Address1, Address2: in.Address2, City: in.City, State: in.State, Zip: in.Zip,
		AcquiredDate: in.AcquiredDate, IsActive: in.IsActive, Notes: in.Notes,
	}
}

func (f *fakeGateway) ListCategories(ctx context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("listCategories"); err != nil {
		return nil, err
	}
	return append([]models.Category(nil), f.categories...), nil
}

func (f *fakeGateway) GetCategory(ctx context.Context, id string) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("getCategory"); err != nil {
		return models.Category{}, err
	}
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, fmt.Errorf("%w: getCategory", common.ErrNotFound)
}

func (f *fakeGateway) ListEntries(ctx context.Context) ([]models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("listEntries"); err != nil {
		return nil, err
	}
	return append([]models.Entry(nil), f.entries...), nil
}

/*************
 * Fake blob store
 *************/

type fakeBlobs struct {
	mu        sync.Mutex
	objects   map[string][]byte
	puts      []string
	removes   []string
	putErr    error
	failPutAt int // 1-based put number to fail; 0 disables
	removeErr error
}

func newFakeBlobs() *fakeBlobs { return &fakeBlobs{objects: map[string][]byte{}} }

func (b *fakeBlobs) Put(ctx context.Context, key string, data []byte) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.puts = append(b.puts, key)
	if b.putErr != nil && (b.failPutAt == 0 || b.failPutAt == len(b.puts)) {
		return "", b.putErr
	}
	b.objects[key] = data
	return key, nil
}

func (b *fakeBlobs) Remove(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removes = append(b.removes, key)
	if b.removeErr != nil {
		return b.removeErr
	}
	delete(b.objects, key)
	return nil
}

func (b *fakeBlobs) URLFor(ctx context.Context, key string) (string, error) {
	return "https://blobs.local/" + key, nil
}

/*************
 * Fake session
 *************/

type fakeSession struct {
	identity auth.Identity
	err      error
}

func (s fakeSession) CurrentIdentity(ctx context.Context) (auth.Identity, error) {
	return s.identity, s.err
}

func (s fakeSession) Token(ctx context.Context) (string, error) { return "token", s.err }

var signedIn = fakeSession{identity: auth.Identity{UserID: "u1", StoragePartitionID: "us-east-1:abc"}}

/*************
 * Helpers
 *************/

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < 8; i++ {
		img.Set(i, i, color.NRGBA{R: 255, A: 255})
	}
	return img
}

func openJournal(t *testing.T) *sagas.SQLiteRepository {
	t.Helper()
	db, err := localdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sagas.NewSQLiteRepository(db)
}

func fixClock(t *testing.T, ts time.Time) {
	t.Helper()
	orig := nowFn
	t.Cleanup(func() { nowFn = orig })
	nowFn = func() time.Time { return ts }
}

func strPtr(s string) *string { return &s }
