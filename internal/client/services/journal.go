package services

import (
	"context"

	"github.com/dmitrijs2005/repslog/internal/client/models"
	"github.com/dmitrijs2005/repslog/internal/client/repositories/sagas"
	"github.com/dmitrijs2005/repslog/internal/logging"
)

// journal records saga progress best-effort. A journal write failure is
// logged and never fails the entry operation itself. A nil repo disables it.
type journal struct {
	repo sagas.Repository
	log  logging.Logger
}

func (j journal) begin(ctx context.Context, kind models.SagaKind, entryID string) string {
	if j.repo == nil {
		return ""
	}
	s, err := j.repo.Begin(ctx, kind, entryID)
	if err != nil {
		j.log.Warn(ctx, "saga journal unavailable", "kind", kind, "error", err)
		return ""
	}
	return s.ID
}

func (j journal) advance(ctx context.Context, id string, step models.SagaStep, entryID string, keys []string) {
	if j.repo == nil || id == "" {
		return
	}
	if err := j.repo.Advance(ctx, id, step, entryID, keys); err != nil {
		j.log.Warn(ctx, "saga advance failed", "saga_id", id, "step", step, "error", err)
	}
}

func (j journal) fail(ctx context.Context, id string, keys []string, cause error) {
	if j.repo == nil || id == "" {
		return
	}
	if err := j.repo.Fail(ctx, id, keys, cause); err != nil {
		j.log.Warn(ctx, "saga failure not recorded", "saga_id", id, "error", err)
	}
}
