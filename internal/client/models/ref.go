package models

// Ref is a reference to a related record. It is either an unresolved
// foreign key or a resolved entity; resolution is always an explicit call
// on the owning service, never a side effect of reading the field.
type Ref[T any] struct {
	id     string
	entity *T
}

// Unresolved returns a reference that only knows the foreign key.
func Unresolved[T any](id string) Ref[T] {
	return Ref[T]{id: id}
}

// Resolved returns a reference holding the loaded entity.
func Resolved[T any](id string, v T) Ref[T] {
	return Ref[T]{id: id, entity: &v}
}

func (r Ref[T]) ID() string { return r.id }

func (r Ref[T]) IsResolved() bool { return r.entity != nil }

// Entity returns the resolved value and true, or the zero value and false.
func (r Ref[T]) Entity() (T, bool) {
	if r.entity == nil {
		var zero T
		return zero, false
	}
	return *r.entity, true
}
