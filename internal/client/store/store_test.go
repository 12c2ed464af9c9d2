package store

import (
	"sync"
	"testing"

	"github.com/dmitrijs2005/repslog/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ZeroValueIsEmpty(t *testing.T) {
	var s Store
	snap := s.Snapshot()
	assert.Empty(t, snap.Properties)
	assert.Empty(t, snap.Categories)
	assert.Empty(t, snap.Entries)
	assert.False(t, snap.IsLoading)
	assert.Empty(t, snap.ErrorMessage)
}

func TestStore_SetAndSnapshotAreCopies(t *testing.T) {
	s := New()
	in := []models.Property{{ID: "p1", Name: "A"}, {ID: "p2", Name: "B"}}
	s.SetProperties(in)

	in[0].Name = "mutated"
	got := s.Properties()
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name, "SetProperties must copy its input")

	got[1].Name = "mutated"
	assert.Equal(t, "B", s.Properties()[1].Name, "Properties must return a copy")
}

func TestStore_ReadsShareNoMemory(t *testing.T) {
	s := New()
	notes, cat := "leak", "c1"
	s.SetEntries([]models.Entry{{ID: "e1", Images: []string{"entries/u1/a.jpg"}, Notes: &notes, CategoryID: &cat}})
	nick := "Lake"
	s.SetProperties([]models.Property{{ID: "p1", Nickname: &nick}})

	notes = "changed by caller"

	got := s.Entries()
	got[0].Images[0] = "mutated"
	*got[0].Notes = "mutated"
	*got[0].CategoryID = "mutated"

	snap := s.Snapshot()
	_ = append(snap.Entries[0].Images[:0], "overwritten")

	e, ok := s.Entry("e1")
	require.True(t, ok)
	e.Images[0] = "mutated"

	p, ok := s.Property("p1")
	require.True(t, ok)
	*p.Nickname = "mutated"

	e, _ = s.Entry("e1")
	assert.Equal(t, []string{"entries/u1/a.jpg"}, e.Images)
	assert.Equal(t, "leak", *e.Notes)
	assert.Equal(t, "c1", *e.CategoryID)
	p, _ = s.Property("p1")
	assert.Equal(t, "Lake", *p.Nickname)
}

func TestStore_AppendReplaceRemove(t *testing.T) {
	s := New()
	s.SetEntries([]models.Entry{{ID: "e1"}, {ID: "e2"}, {ID: "e3", Performer: "Myself"}})

	assert.True(t, s.ReplaceEntry(models.Entry{ID: "e2", Performer: "Contractor"}))
	assert.False(t, s.ReplaceEntry(models.Entry{ID: "nope"}))

	s.RemoveEntry("e1")
	s.RemoveEntry("missing")

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "e2", entries[0].ID)
	assert.Equal(t, "Contractor", entries[0].Performer)
	assert.Equal(t, "e3", entries[1].ID)

	e, ok := s.Entry("e3")
	require.True(t, ok)
	assert.Equal(t, "Myself", e.Performer)
}

func TestStore_RemoveDoesNotAliasPreviousSnapshot(t *testing.T) {
	s := New()
	s.SetCategories([]models.Category{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}})
	before := s.Snapshot()

	s.RemoveCategory("c1")

	assert.Equal(t, "c1", before.Categories[0].ID)
	assert.Len(t, s.Categories(), 2)
}

func TestStore_Lookups(t *testing.T) {
	s := New()
	s.AppendProperty(models.Property{ID: "p1"})
	s.AppendCategory(models.Category{ID: "c1", Name: "Administrative"})

	_, ok := s.Property("p1")
	assert.True(t, ok)
	_, ok = s.Property("p2")
	assert.False(t, ok)

	c, ok := s.Category("c1")
	require.True(t, ok)
	assert.Equal(t, "Administrative", c.Name)

	assert.True(t, s.ReplaceProperty(models.Property{ID: "p1", Name: "renamed"}))
	assert.True(t, s.ReplaceCategory(models.Category{ID: "c1", Name: "Admin"}))
	s.RemoveProperty("p1")
	assert.Empty(t, s.Properties())
}

func TestStore_LoadingCountsOverlappingFetches(t *testing.T) {
	s := New()

	end1 := s.BeginLoading()
	end2 := s.BeginLoading()
	assert.True(t, s.IsLoading())

	end1()
	end1()
	assert.True(t, s.IsLoading(), "second fetch still running; double end is a no-op")

	end2()
	assert.False(t, s.IsLoading())
}

func TestStore_ErrorMessage(t *testing.T) {
	s := New()
	s.SetError("Failed to fetch entries: boom")
	assert.Equal(t, "Failed to fetch entries: boom", s.Snapshot().ErrorMessage)
	s.ClearError()
	assert.Empty(t, s.ErrorMessage())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.AppendCategory(models.Category{ID: "x"})
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
	assert.Len(t, s.Categories(), 8)
}
