package execution

import (
	"context"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BatchRepository persists execution batches. The dispatcher is the
// only writer of a running batch; the aggregator is the only writer of
// its terminal counters.
type BatchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Batch, int64, error)
	Save(ctx context.Context, batch *Batch) error
}

// ResultRepository persists per-case results. Each worker writes
// exactly one row and never touches another case's row.
type ResultRepository interface {
	FindByBatch(ctx context.Context, batchID uuid.UUID) ([]TestResult, error)
	Insert(ctx context.Context, result *TestResult) error
}

// PlanRepository persists test plans and their ordered case lists
type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TestPlan, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]TestPlan, int64, error)
	FindByExecuteType(ctx context.Context, executeType ExecuteType) ([]TestPlan, error)
	Save(ctx context.Context, plan *TestPlan) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindCaseIDs returns the plan's case ids ordered by sort order
	FindCaseIDs(ctx context.Context, planID uuid.UUID) ([]uuid.UUID, error)
	// ReplaceCases swaps the plan's ordered case list atomically
	ReplaceCases(ctx context.Context, planID uuid.UUID, caseIDs []uuid.UUID) error
}
