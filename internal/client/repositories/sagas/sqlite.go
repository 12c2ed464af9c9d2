package sagas

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/repslog/internal/client/models"
	"github.com/dmitrijs2005/repslog/internal/common"
	"github.com/dmitrijs2005/repslog/internal/dbx"
	"github.com/google/uuid"
)

var nowFn = time.Now

// timeLayout is fixed-width so updated_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository implements Repository over a DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Begin(ctx context.Context, kind models.SagaKind, entryID string) (models.Saga, error) {
	s := models.Saga{
		ID:        uuid.NewString(),
		Kind:      kind,
		EntryID:   entryID,
		Step:      models.SagaStarted,
		UpdatedAt: nowFn().UTC(),
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sagas (id, kind, entry_id, step, image_keys, last_error, updated_at)
		VALUES (?, ?, ?, ?, '[]', '', ?)
	`, s.ID, string(s.Kind), s.EntryID, string(s.Step), formatTime(s.UpdatedAt))
	if err != nil {
		return models.Saga{}, fmt.Errorf("failed to begin saga: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) Advance(ctx context.Context, id string, step models.SagaStep, entryID string, imageKeys []string) error {
	keys, err := encodeKeys(imageKeys)
	if err != nil {
		return err
	}

	err = dbx.ExecOne(ctx, r.db, `
		UPDATE sagas SET
			step = ?,
			entry_id = COALESCE(NULLIF(?, ''), entry_id),
			image_keys = COALESCE(?, image_keys),
			last_error = '',
			updated_at = ?
		WHERE id = ?
	`, string(step), entryID, keys, formatTime(nowFn()), id)
	if err != nil {
		return fmt.Errorf("failed to advance saga %s to %s: %w", id, step, err)
	}
	return nil
}

func (r *SQLiteRepository) Fail(ctx context.Context, id string, imageKeys []string, cause error) error {
	keys, err := encodeKeys(imageKeys)
	if err != nil {
		return err
	}
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}

	err = dbx.ExecOne(ctx, r.db, `
		UPDATE sagas SET
			image_keys = COALESCE(?, image_keys),
			last_error = ?,
			updated_at = ?
		WHERE id = ?
	`, keys, msg, formatTime(nowFn()), id)
	if err != nil {
		return fmt.Errorf("failed to record saga %s failure: %w", id, err)
	}
	return nil
}

const selectColumns = `SELECT id, kind, entry_id, step, image_keys, last_error, updated_at FROM sagas`

func (r *SQLiteRepository) Get(ctx context.Context, id string) (models.Saga, error) {
	s, err := scanSaga(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Saga{}, fmt.Errorf("saga %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return models.Saga{}, fmt.Errorf("failed to get saga %s: %w", id, err)
	}
	return s, nil
}

func (r *SQLiteRepository) ListIncomplete(ctx context.Context) ([]models.Saga, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE step <> ? ORDER BY updated_at, id`, string(models.SagaDone))
	if err != nil {
		return nil, fmt.Errorf("failed to list sagas: %w", err)
	}
	defer rows.Close()

	var result []models.Saga
	for rows.Next() {
		s, err := scanSaga(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saga row: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saga rows: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSaga(row scanner) (models.Saga, error) {
	var (
		s                    models.Saga
		kind, step, keys, ts string
	)
	if err := row.Scan(&s.ID, &kind, &s.EntryID, &step, &keys, &s.LastError, &ts); err != nil {
		return models.Saga{}, err
	}
	s.Kind = models.SagaKind(kind)
	s.Step = models.SagaStep(step)

	if err := json.Unmarshal([]byte(keys), &s.ImageKeys); err != nil {
		return models.Saga{}, fmt.Errorf("decode image keys: %w", err)
	}
	t, err := time.Parse(timeLayout, ts)
	if err != nil {
		return models.Saga{}, fmt.Errorf("decode updated_at: %w", err)
	}
	s.UpdatedAt = t
	return s, nil
}

// encodeKeys returns nil for nil keys so COALESCE keeps the stored list.
func encodeKeys(keys []string) (any, error) {
	if keys == nil {
		return nil, nil
	}
	b, err := json.Marshal(keys)
	if err != nil {
		return nil, fmt.Errorf("encode image keys: %w", err)
	}
	return string(b), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
