package sagas

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/repslog/internal/client/localdb"
	"github.com/dmitrijs2005/repslog/internal/client/models"
	"github.com/dmitrijs2005/repslog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := localdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db)
}

func freezeClock(t *testing.T, start time.Time) {
	t.Helper()
	orig := nowFn
	t.Cleanup(func() { nowFn = orig })
	cur := start
	nowFn = func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
}

func TestBeginAndGet(t *testing.T) {
	freezeClock(t, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC))
	r := setupRepo(t)
	ctx := context.Background()

	s, err := r.Begin(ctx, models.SagaCreateEntry, "")
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)

	got, err := r.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SagaCreateEntry, got.Kind)
	assert.Equal(t, models.SagaStarted, got.Step)
	assert.Empty(t, got.ImageKeys)
	assert.Empty(t, got.EntryID)
	assert.True(t, got.UpdatedAt.Equal(s.UpdatedAt))
}

func TestGet_Missing(t *testing.T) {
	r := setupRepo(t)
	_, err := r.Get(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestAdvance_KeepsUnsetFields(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	s, err := r.Begin(ctx, models.SagaCreateEntry, "")
	require.NoError(t, err)

	require.NoError(t, r.Advance(ctx, s.ID, models.SagaCreated, "e1", nil))
	require.NoError(t, r.Advance(ctx, s.ID, models.SagaUploaded, "", []string{"k0", "k1"}))

	got, err := r.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "e1", got.EntryID)
	assert.Equal(t, models.SagaUploaded, got.Step)
	assert.Equal(t, []string{"k0", "k1"}, got.ImageKeys)
	assert.True(t, got.Resumable())
}

func TestAdvance_UnknownSaga(t *testing.T) {
	r := setupRepo(t)
	err := r.Advance(context.Background(), "nope", models.SagaDone, "", nil)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestFail_RecordsErrorAndClearsOnAdvance(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	s, err := r.Begin(ctx, models.SagaUpdateEntry, "e1")
	require.NoError(t, err)

	require.NoError(t, r.Fail(ctx, s.ID, []string{"k0"}, errors.New("upload failed")))

	got, err := r.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SagaStarted, got.Step)
	assert.Equal(t, "upload failed", got.LastError)
	assert.Equal(t, []string{"k0"}, got.ImageKeys)
	assert.True(t, got.Failed())

	require.NoError(t, r.Fail(ctx, s.ID, nil, nil))
	got, err = r.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"k0"}, got.ImageKeys, "nil keys keep the stored list")
	assert.Equal(t, "unknown error", got.LastError)

	require.NoError(t, r.Advance(ctx, s.ID, models.SagaDone, "", nil))
	got, err = r.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, got.Failed())
	assert.True(t, got.Completed())
}

func TestListIncomplete_OldestFirstWithoutDone(t *testing.T) {
	freezeClock(t, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC))
	r := setupRepo(t)
	ctx := context.Background()

	a, err := r.Begin(ctx, models.SagaCreateEntry, "")
	require.NoError(t, err)
	b, err := r.Begin(ctx, models.SagaUpdateEntry, "e2")
	require.NoError(t, err)
	c, err := r.Begin(ctx, models.SagaUpdateEntry, "e3")
	require.NoError(t, err)
	require.NoError(t, r.Advance(ctx, c.ID, models.SagaDone, "", nil))

	list, err := r.ListIncomplete(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
}
