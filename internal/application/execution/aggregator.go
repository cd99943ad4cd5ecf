package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/apitest/backend/internal/domain/execution"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Aggregator finalizes completed batches. It runs strictly after the
// dispatcher's completion barrier, so the result set it reads is the
// full result set of the batch.
type Aggregator struct {
	batchRepo  execution.BatchRepository
	resultRepo execution.ResultRepository
	logger     *zap.Logger
}

// NewAggregator creates a new Aggregator
func NewAggregator(batchRepo execution.BatchRepository, resultRepo execution.ResultRepository, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		batchRepo:  batchRepo,
		resultRepo: resultRepo,
		logger:     logger,
	}
}

// Finalize computes the batch counters from its result rows and marks
// it completed. FAIL and ERROR both count as failures. A result set
// short of the submitted case count is refused: completing it would
// publish counters that do not add up to the total. Idempotent:
// re-running recomputes the same terminal state from the same rows.
func (a *Aggregator) Finalize(ctx context.Context, batchID uuid.UUID) error {
	batch, err := a.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return fmt.Errorf("loading batch: %w", err)
	}

	results, err := a.resultRepo.FindByBatch(ctx, batchID)
	if err != nil {
		return fmt.Errorf("loading batch results: %w", err)
	}
	if len(results) != batch.Total {
		return fmt.Errorf("refusing to complete batch %s: %d results for %d submitted cases",
			batchID, len(results), batch.Total)
	}

	passCount := 0
	for _, result := range results {
		if result.Passed() {
			passCount++
		}
	}
	failCount := len(results) - passCount

	batch.Complete(passCount, failCount, time.Now())
	if err := a.batchRepo.Save(ctx, batch); err != nil {
		return fmt.Errorf("saving completed batch: %w", err)
	}

	a.logger.Info("Batch completed",
		zap.String("batch_id", batch.ID.String()),
		zap.Int("total", batch.Total),
		zap.Int("pass", passCount),
		zap.Int("fail", failCount),
	)
	return nil
}
