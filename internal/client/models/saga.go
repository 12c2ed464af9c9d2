package models

import "time"

// SagaKind names the multi-step entry operation a saga tracks.
type SagaKind string

const (
	SagaCreateEntry SagaKind = "create_entry"
	SagaUpdateEntry SagaKind = "update_entry"
)

// SagaStep is the last step a saga completed.
type SagaStep string

const (
	SagaStarted  SagaStep = "started"
	SagaCreated  SagaStep = "created"
	SagaUploaded SagaStep = "uploaded"
	SagaAttached SagaStep = "attached"
	SagaDone     SagaStep = "done"
)

// Saga records the progress of a create/update-entry operation that spans
// a record mutation, image uploads and an image attach mutation. A non-empty
// LastError means the step after Step failed.
type Saga struct {
	ID        string
	Kind      SagaKind
	EntryID   string
	Step      SagaStep
	ImageKeys []string
	LastError string
	UpdatedAt time.Time
}

func (s Saga) Completed() bool { return s.Step == SagaDone }

func (s Saga) Failed() bool { return s.LastError != "" }

// Resumable reports whether the saga can be finished without the original
// image bytes: the keys are uploaded and only the attach step is left.
func (s Saga) Resumable() bool {
	return s.EntryID != "" && (s.Step == SagaUploaded || s.Step == SagaAttached)
}
