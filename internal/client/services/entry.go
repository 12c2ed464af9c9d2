package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/dmitrijs2005/repslog/internal/client/auth"
	"github.com/dmitrijs2005/repslog/internal/client/blob"
	"github.com/dmitrijs2005/repslog/internal/client/gateway"
	"github.com/dmitrijs2005/repslog/internal/client/imagex"
	"github.com/dmitrijs2005/repslog/internal/client/models"
	"github.com/dmitrijs2005/repslog/internal/client/repositories/sagas"
	"github.com/dmitrijs2005/repslog/internal/client/store"
	"github.com/dmitrijs2005/repslog/internal/common"
	"github.com/dmitrijs2005/repslog/internal/logging"
)

// EntryService keeps the store's entries in sync with the data API and
// manages entry photos in the blob store.
//
// Create and update with photos span several remote calls that are not
// atomic together. Their progress is journaled as sagas; IncompleteSagas
// reports what stopped half way and ResumeSagas attaches photos that were
// uploaded but never linked to their entry.
type EntryService interface {
	FetchEntries(ctx context.Context) error
	AddEntry(ctx context.Context, in AddEntryInput) (string, error)
	UpdateEntry(ctx context.Context, in UpdateEntryInput) error
	DeleteEntry(ctx context.Context, entry models.Entry) error

	UploadImages(ctx context.Context, images []image.Image, entryID string) ([]string, error)
	ImageURL(ctx context.Context, key string) (string, error)
	DeleteImage(ctx context.Context, key string) error

	ResolveProperty(ctx context.Context, ref models.Ref[models.Property]) (models.Ref[models.Property], error)
	ResolveCategory(ctx context.Context, ref models.Ref[models.Category]) (models.Ref[models.Category], error)

	IncompleteSagas(ctx context.Context) ([]models.Saga, error)
	ResumeSagas(ctx context.Context) (int, error)
}

// EntryFields are the user-editable fields of an entry. Date is normalized
// to a calendar day in the service's time zone.
type EntryFields struct {
	PropertyID   string
	CategoryID   *string
	Date         time.Time
	Hours        int
	Minutes      int
	Performer    string
	ActivityType string
	Notes        *string
	StartTime    *models.TimeOfDay
	EndTime      *models.TimeOfDay
}

type AddEntryInput struct {
	EntryFields
	Images []image.Image
}

// UpdateEntryInput replaces the scalar fields of an entry. The entry's
// images become ExistingImageKeys followed by the keys of NewImages.
type UpdateEntryInput struct {
	EntryID string
	EntryFields
	NewImages         []image.Image
	ExistingImageKeys []string
}

type entryService struct {
	gw       gateway.Gateway
	store    *store.Store
	blobs    blob.Store
	uploader imageUploader
	journal  journal
	repo     sagas.Repository
	loc      *time.Location
	log      logging.Logger
}

// NewEntryService wires an EntryService. journal may be nil, which turns
// saga recording off. A nil loc means time.Local.
func NewEntryService(gw gateway.Gateway, st *store.Store, blobs blob.Store, session auth.SessionProvider,
	journalRepo sagas.Repository, loc *time.Location, log logging.Logger) EntryService {
	if log == nil {
		log = logging.Discard()
	}
	if loc == nil {
		loc = time.Local
	}
	log = log.With("service", "entries")
	return &entryService{
		gw:       gw,
		store:    st,
		blobs:    blobs,
		uploader: imageUploader{blobs: blobs, session: session, log: log},
		journal:  journal{repo: journalRepo, log: log},
		repo:     journalRepo,
		loc:      loc,
		log:      log,
	}
}

func (s *entryService) FetchEntries(ctx context.Context) error {
	end := s.store.BeginLoading()
	defer end()
	s.store.ClearError()

	entries, err := s.gw.ListEntries(ctx)
	if err != nil {
		s.store.SetError(fmt.Sprintf("Failed to fetch entries: %v", err))
		s.log.Error(ctx, "fetch entries failed", "error", err)
		return common.Remote("fetch entries", err)
	}

	s.store.SetEntries(entries)
	s.log.Debug(ctx, "entries fetched", "count", len(entries))
	return nil
}

// entryInput validates f and builds the mutation input shared by create
// and update.
func (s *entryService) entryInput(f EntryFields) (map[string]any, error) {
	if strings.TrimSpace(f.PropertyID) == "" {
		return nil, common.Validation("property is required")
	}
	date, err := models.DateOf(f.Date, s.loc)
	if err != nil {
		return nil, err
	}
	total, err := models.TotalMinutes(f.Hours, f.Minutes)
	if err != nil {
		return nil, err
	}
	performer := strings.TrimSpace(f.Performer)
	if performer == "" {
		return nil, common.Validation("performer is required")
	}
	activity := strings.TrimSpace(f.ActivityType)
	if activity == "" {
		return nil, common.Validation("activity type is required")
	}

	input := map[string]any{
		"date":         string(date),
		"totalMinutes": total,
		"performer":    performer,
		"activityType": activity,
		"propertyID":   f.PropertyID,
	}
	if f.Notes != nil && strings.TrimSpace(*f.Notes) != "" {
		input["notes"] = *f.Notes
	}
	if f.CategoryID != nil && strings.TrimSpace(*f.CategoryID) != "" {
		input["categoryID"] = *f.CategoryID
	}
	if f.StartTime != nil {
		input["startTime"] = string(*f.StartTime)
	}
	if f.EndTime != nil {
		input["endTime"] = string(*f.EndTime)
	}
	return input, nil
}

func (s *entryService) AddEntry(ctx context.Context, in AddEntryInput) (string, error) {
	if _, ok := s.store.Property(in.PropertyID); !ok {
		return "", common.Validation("property %q not found", in.PropertyID)
	}
	input, err := s.entryInput(in.EntryFields)
	if err != nil {
		return "", err
	}

	sagaID := s.journal.begin(ctx, models.SagaCreateEntry, "")

	raw, err := s.gw.Mutate(ctx, gateway.CreateEntryMutation, map[string]any{"input": input}, "createEntry")
	if err != nil {
		s.journal.fail(ctx, sagaID, nil, err)
		return "", common.Remote("create entry", err)
	}
	entryID, err := decodeID(raw)
	if err != nil {
		s.journal.fail(ctx, sagaID, nil, err)
		return "", common.Remote("create entry", err)
	}
	s.journal.advance(ctx, sagaID, models.SagaCreated, entryID, nil)
	s.log.Info(ctx, "entry created", "entry_id", entryID, "total_minutes", input["totalMinutes"])

	if len(in.Images) > 0 {
		if err := s.storeImages(ctx, sagaID, entryID, nil, in.Images); err != nil {
			return "", err
		}
	}

	s.journal.advance(ctx, sagaID, models.SagaDone, "", nil)
	s.refresh(ctx)
	return entryID, nil
}

func (s *entryService) UpdateEntry(ctx context.Context, in UpdateEntryInput) error {
	if strings.TrimSpace(in.EntryID) == "" {
		return common.Validation("entry id is required")
	}
	input, err := s.entryInput(in.EntryFields)
	if err != nil {
		return err
	}
	input["id"] = in.EntryID
	// Unset optionals go out as null so a cleared field reaches the server.
	for _, k := range []string{"notes", "categoryID", "startTime", "endTime"} {
		if _, ok := input[k]; !ok {
			input[k] = nil
		}
	}

	sagaID := s.journal.begin(ctx, models.SagaUpdateEntry, in.EntryID)

	if _, err := s.gw.Mutate(ctx, gateway.UpdateEntryMutation, map[string]any{"input": input}, "updateEntry"); err != nil {
		s.journal.fail(ctx, sagaID, nil, err)
		return common.Remote("update entry", err)
	}
	s.journal.advance(ctx, sagaID, models.SagaCreated, "", nil)

	if len(in.NewImages) > 0 || len(in.ExistingImageKeys) > 0 {
		if err := s.storeImages(ctx, sagaID, in.EntryID, in.ExistingImageKeys, in.NewImages); err != nil {
			return err
		}
	}

	s.journal.advance(ctx, sagaID, models.SagaDone, "", nil)
	s.refresh(ctx)
	return nil
}

// storeImages uploads images, appends their keys to existing and sets the
// combined list on the entry. An empty combined list sends nothing.
func (s *entryService) storeImages(ctx context.Context, sagaID, entryID string, existing []string, images []image.Image) error {
	keys := append([]string(nil), existing...)

	uploaded, err := s.uploader.upload(ctx, images, entryID)
	keys = append(keys, uploaded...)
	if err != nil {
		s.journal.fail(ctx, sagaID, keys, err)
		return err
	}
	s.journal.advance(ctx, sagaID, models.SagaUploaded, "", keys)

	if len(keys) == 0 {
		return nil
	}

	if err := s.attachImages(ctx, entryID, keys); err != nil {
		s.journal.fail(ctx, sagaID, nil, err)
		return err
	}
	s.journal.advance(ctx, sagaID, models.SagaAttached, "", nil)
	return nil
}

func (s *entryService) attachImages(ctx context.Context, entryID string, keys []string) error {
	vars := map[string]any{"input": map[string]any{"id": entryID, "images": keys}}
	if _, err := s.gw.Mutate(ctx, gateway.UpdateEntryImagesMutation, vars, "updateEntry"); err != nil {
		return common.Remote("attach images", err)
	}
	s.log.Debug(ctx, "images attached", "entry_id", entryID, "count", len(keys))
	return nil
}

// refresh reloads entries after a mutation. A failure is already recorded
// in the store by FetchEntries, so it does not fail the mutation.
func (s *entryService) refresh(ctx context.Context) {
	if err := s.FetchEntries(ctx); err != nil {
		s.log.Warn(ctx, "refresh after mutation failed", "error", err)
	}
}

func (s *entryService) DeleteEntry(ctx context.Context, entry models.Entry) error {
	vars := map[string]any{"input": map[string]any{"id": entry.ID}}
	if _, err := s.gw.Mutate(ctx, gateway.DeleteEntryMutation, vars, "deleteEntry"); err != nil {
		return common.Remote("delete entry", err)
	}
	s.store.RemoveEntry(entry.ID)
	s.log.Info(ctx, "entry deleted", "entry_id", entry.ID)

	for _, key := range entry.ImageKeys() {
		if !imagex.IsEntryImageKey(key) {
			s.log.Warn(ctx, "image key not removed, not an entry photo", "entry_id", entry.ID, "key", key)
			continue
		}
		if err := s.blobs.Remove(ctx, key); err != nil {
			s.log.Warn(ctx, "orphaned image left in storage", "entry_id", entry.ID, "key", key, "error", err)
		}
	}
	return nil
}

func (s *entryService) UploadImages(ctx context.Context, images []image.Image, entryID string) ([]string, error) {
	if strings.TrimSpace(entryID) == "" {
		return nil, common.Validation("entry id is required")
	}
	return s.uploader.upload(ctx, images, entryID)
}

func (s *entryService) ImageURL(ctx context.Context, key string) (string, error) {
	return s.blobs.URLFor(ctx, key)
}

func (s *entryService) DeleteImage(ctx context.Context, key string) error {
	return s.blobs.Remove(ctx, key)
}

func (s *entryService) ResolveProperty(ctx context.Context, ref models.Ref[models.Property]) (models.Ref[models.Property], error) {
	if ref.IsResolved() {
		return ref, nil
	}
	if ref.ID() == "" {
		return ref, common.Validation("empty property reference")
	}
	if p, ok := s.store.Property(ref.ID()); ok {
		return models.Resolved(ref.ID(), p), nil
	}
	p, err := s.gw.GetProperty(ctx, ref.ID())
	if err != nil {
		return ref, common.Remote("get property", err)
	}
	return models.Resolved(ref.ID(), p), nil
}

func (s *entryService) ResolveCategory(ctx context.Context, ref models.Ref[models.Category]) (models.Ref[models.Category], error) {
	if ref.IsResolved() {
		return ref, nil
	}
	if ref.ID() == "" {
		return ref, common.Validation("empty category reference")
	}
	if c, ok := s.store.Category(ref.ID()); ok {
		return models.Resolved(ref.ID(), c), nil
	}
	c, err := s.gw.GetCategory(ctx, ref.ID())
	if err != nil {
		return ref, common.Remote("get category", err)
	}
	return models.Resolved(ref.ID(), c), nil
}

func (s *entryService) IncompleteSagas(ctx context.Context) ([]models.Saga, error) {
	if s.repo == nil {
		return nil, nil
	}
	list, err := s.repo.ListIncomplete(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sagas: %w", err)
	}
	return list, nil
}

// ResumeSagas finishes sagas whose photos are uploaded: it attaches the
// recorded keys and marks them done. Other incomplete sagas are left for the
// user to inspect. It returns how many sagas were finished.
func (s *entryService) ResumeSagas(ctx context.Context) (int, error) {
	list, err := s.IncompleteSagas(ctx)
	if err != nil {
		return 0, err
	}

	var (
		resumed int
		errs    []error
	)
	for _, sg := range list {
		if !sg.Resumable() {
			continue
		}
		if sg.Step == models.SagaUploaded && len(sg.ImageKeys) > 0 {
			if err := s.attachImages(ctx, sg.EntryID, sg.ImageKeys); err != nil {
				s.journal.fail(ctx, sg.ID, nil, err)
				errs = append(errs, fmt.Errorf("saga %s: %w", sg.ID, err))
				continue
			}
		}
		s.journal.advance(ctx, sg.ID, models.SagaDone, "", nil)
		resumed++
		s.log.Info(ctx, "saga resumed", "saga_id", sg.ID, "entry_id", sg.EntryID, "images", len(sg.ImageKeys))
	}

	if resumed > 0 {
		s.refresh(ctx)
	}
	return resumed, errors.Join(errs...)
}

func decodeID(raw json.RawMessage) (string, error) {
	var v struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("decode id: %w", err)
	}
	if v.ID == "" {
		return "", errors.New("response has no id")
	}
	return v.ID, nil
}
