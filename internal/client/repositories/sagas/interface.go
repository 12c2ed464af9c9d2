package sagas

import (
	"context"

	"github.com/dmitrijs2005/repslog/internal/client/models"
)

type Repository interface {
	// Begin records a new saga at the started step.
	Begin(ctx context.Context, kind models.SagaKind, entryID string) (models.Saga, error)

	// Advance moves a saga to step and clears its last error. An empty
	// entryID or nil imageKeys leave the stored values unchanged.
	Advance(ctx context.Context, id string, step models.SagaStep, entryID string, imageKeys []string) error

	// Fail records cause without changing the step. Non-nil imageKeys replace
	// the stored keys, so partially uploaded images are not forgotten.
	Fail(ctx context.Context, id string, imageKeys []string, cause error) error

	Get(ctx context.Context, id string) (models.Saga, error)

	// ListIncomplete returns sagas not yet done, oldest first.
	ListIncomplete(ctx context.Context) ([]models.Saga, error)
}
