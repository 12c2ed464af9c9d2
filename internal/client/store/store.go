// Package store holds the locally known properties, categories and entries
// plus loading/error status. It is the single source of truth the
// presentation layer renders; only the synchronization services mutate it.
//
// Reads return defensive copies, so callers can never change stored state
// behind the services' back. Each mutation touches one collection; there is
// no cross-collection atomicity. Lookups are linear scans, which is fine at
// personal-portfolio scale.
package store

import (
	"sync"

	"github.com/dmitrijs2005/repslog/internal/client/models"
)

// Snapshot is a read-only copy of the whole store.
type Snapshot struct {
	Properties   []models.Property
	Categories   []models.Category
	Entries      []models.Entry
	IsLoading    bool
	ErrorMessage string
}

type Store struct {
	mu           sync.RWMutex
	properties   []models.Property
	categories   []models.Category
	entries      []models.Entry
	loading      int
	errorMessage string
}

func New() *Store {
	return &Store{}
}

// Snapshot returns a copy of everything.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Properties:   clone(s.properties),
		Categories:   clone(s.categories),
		Entries:      clone(s.entries),
		IsLoading:    s.loading > 0,
		ErrorMessage: s.errorMessage,
	}
}

func (s *Store) Properties() []models.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.properties)
}

func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.categories)
}

func (s *Store) Entries() []models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.entries)
}

// Property finds a property by id.
func (s *Store) Property(id string) (models.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := find(s.properties, id, func(p models.Property) string { return p.ID })
	return p.Clone(), ok
}

// Category finds a category by id.
func (s *Store) Category(id string) (models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := find(s.categories, id, func(c models.Category) string { return c.ID })
	return c.Clone(), ok
}

// Entry finds an entry by id.
func (s *Store) Entry(id string) (models.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := find(s.entries, id, func(e models.Entry) string { return e.ID })
	return e.Clone(), ok
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

func (s *Store) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errorMessage
}

func (s *Store) SetProperties(v []models.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties = clone(v)
}

func (s *Store) SetCategories(v []models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = clone(v)
}

func (s *Store) SetEntries(v []models.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = clone(v)
}

func (s *Store) AppendProperty(p models.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties = append(s.properties, p.Clone())
}

func (s *Store) AppendCategory(c models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c.Clone())
}

// ReplaceProperty swaps the record with the same id. It reports false when
// no such record is known.
func (s *Store) ReplaceProperty(p models.Property) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return replace(s.properties, p.Clone(), func(x models.Property) string { return x.ID })
}

func (s *Store) ReplaceCategory(c models.Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return replace(s.categories, c.Clone(), func(x models.Category) string { return x.ID })
}

func (s *Store) ReplaceEntry(e models.Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return replace(s.entries, e.Clone(), func(x models.Entry) string { return x.ID })
}

// RemoveProperty drops every property with the given id.
func (s *Store) RemoveProperty(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties = remove(s.properties, id, func(x models.Property) string { return x.ID })
}

func (s *Store) RemoveCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = remove(s.categories, id, func(x models.Category) string { return x.ID })
}

func (s *Store) RemoveEntry(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = remove(s.entries, id, func(x models.Entry) string { return x.ID })
}

// BeginLoading marks a fetch as in flight and returns the func that ends it.
// The store reports loading while at least one fetch is running.
func (s *Store) BeginLoading() (end func()) {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.loading--
			s.mu.Unlock()
		})
	}
}

func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorMessage = msg
}

func (s *Store) ClearError() {
	s.SetError("")
}

type cloner[T any] interface {
	Clone() T
}

// clone deep-copies items so no slice or pointer field is shared.
func clone[T cloner[T]](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	for i, it := range items {
		dup[i] = it.Clone()
	}
	return dup
}

func find[T any](items []T, id string, key func(T) string) (T, bool) {
	for _, it := range items {
		if key(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func replace[T any](items []T, v T, key func(T) string) bool {
	id := key(v)
	for i := range items {
		if key(items[i]) == id {
			items[i] = v
			return true
		}
	}
	return false
}

func remove[T any](items []T, id string, key func(T) string) []T {
	out := items[:0:0]
	for _, it := range items {
		if key(it) != id {
			out = append(out, it)
		}
	}
	return out
}
