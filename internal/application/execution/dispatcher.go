package execution

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/apitest/backend/internal/domain/execution"
	"github.com/apitest/backend/internal/domain/spec"
	"github.com/apitest/backend/internal/domain/testcase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// workerCount is the fixed size of the batch worker pool. It is a
// design constant, not scaled per batch.
const workerCount = 5

// Dispatcher runs batches of test cases under bounded concurrency.
// Each submitted case id produces exactly one result; one case's
// failure never blocks another. After the completion barrier the
// aggregator finalizes the batch exactly once.
type Dispatcher struct {
	batchRepo  execution.BatchRepository
	resultRepo execution.ResultRepository
	caseRepo   testcase.Repository
	ifaceRepo  spec.InterfaceRepository
	invoker    *Invoker
	aggregator *Aggregator
	resolver   spec.DependencyResolver
	logger     *zap.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(
	batchRepo execution.BatchRepository,
	resultRepo execution.ResultRepository,
	caseRepo testcase.Repository,
	ifaceRepo spec.InterfaceRepository,
	invoker *Invoker,
	aggregator *Aggregator,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		batchRepo:  batchRepo,
		resultRepo: resultRepo,
		caseRepo:   caseRepo,
		ifaceRepo:  ifaceRepo,
		invoker:    invoker,
		aggregator: aggregator,
		logger:     logger,
	}
}

// SetResolver attaches a dependency resolver. Declared prerequisites
// are surfaced in the batch log for operators; cases are still executed
// independently, never chained.
func (d *Dispatcher) SetResolver(resolver spec.DependencyResolver) {
	d.resolver = resolver
}

// RunBatch creates the batch record and starts executing it in the
// background. It returns the batch handle immediately; callers poll the
// batch record for completion. Only the initial store write can fail
// here; per-case failures are contained in their own results.
func (d *Dispatcher) RunBatch(ctx context.Context, caseIDs []uuid.UUID, envURL string, planID *uuid.UUID) (uuid.UUID, error) {
	batch, err := execution.NewBatch(caseIDs, envURL, planID)
	if err != nil {
		return uuid.Nil, err
	}
	if err := d.batchRepo.Save(ctx, batch); err != nil {
		return uuid.Nil, fmt.Errorf("creating batch record: %w", err)
	}

	d.logger.Info("Batch dispatched",
		zap.String("batch_id", batch.ID.String()),
		zap.String("env_url", envURL),
		zap.Int("total", batch.Total),
	)

	// The batch outlives the triggering request; detach from its context.
	go d.run(context.Background(), batch, caseIDs)

	return batch.ID, nil
}

// run executes every case of the batch through the worker pool, waits
// on the completion barrier, then hands off to the aggregator. A result
// row that could not be persisted means the stored result set is short
// of the submitted case list, so the batch is aborted rather than
// completed with understated counters.
func (d *Dispatcher) run(ctx context.Context, batch *execution.Batch, caseIDs []uuid.UUID) {
	jobs := make(chan uuid.UUID, len(caseIDs))
	var wg sync.WaitGroup
	var lostResults atomic.Int64

	for range workerCount {
		go func() {
			for caseID := range jobs {
				if !d.runCase(ctx, batch, caseID) {
					lostResults.Add(1)
				}
				wg.Done()
			}
		}()
	}

	for _, caseID := range caseIDs {
		wg.Add(1)
		jobs <- caseID
	}
	close(jobs)

	wg.Wait() // every submitted case has produced its result

	if lost := lostResults.Load(); lost > 0 {
		d.abort(ctx, batch.ID, int(lost))
		return
	}

	if err := d.aggregator.Finalize(ctx, batch.ID); err != nil {
		d.logger.Error("Batch aggregation failed",
			zap.String("batch_id", batch.ID.String()),
			zap.Error(err),
		)
	}
}

// abort moves the batch to ABORTED after a result store failure.
func (d *Dispatcher) abort(ctx context.Context, batchID uuid.UUID, lost int) {
	d.logger.Error("Aborting batch, result store rejected writes",
		zap.String("batch_id", batchID.String()),
		zap.Int("lost_results", lost),
	)
	batch, err := d.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		d.logger.Error("Failed to load batch for abort",
			zap.String("batch_id", batchID.String()),
			zap.Error(err),
		)
		return
	}
	batch.Abort(time.Now())
	if err := d.batchRepo.Save(ctx, batch); err != nil {
		d.logger.Error("Failed to persist batch abort",
			zap.String("batch_id", batchID.String()),
			zap.Error(err),
		)
	}
}

// runCase produces exactly one result for one case and reports whether
// that result reached the store. Every failure mode is converted into a
// result row: load or decode failures and transport errors become
// ERROR, assertion mismatches become FAIL. A panic in the pipeline is
// contained the same way so the rest of the batch keeps running.
func (d *Dispatcher) runCase(ctx context.Context, batch *execution.Batch, caseID uuid.UUID) (persisted bool) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Panic during case execution",
				zap.String("batch_id", batch.ID.String()),
				zap.String("case_id", caseID.String()),
				zap.Any("panic", r),
				zap.Stack("stacktrace"),
			)
			persisted = d.saveResult(ctx, execution.NewErrorResult(batch.ID, caseID, time.Since(start),
				fmt.Sprintf("internal error: %v", r)))
		}
	}()

	tc, err := d.caseRepo.FindByID(ctx, caseID)
	if err != nil {
		return d.saveResult(ctx, execution.NewErrorResult(batch.ID, caseID, time.Since(start),
			fmt.Sprintf("loading case: %v", err)))
	}
	iface, err := d.ifaceRepo.FindByID(ctx, tc.InterfaceID)
	if err != nil {
		return d.saveResult(ctx, execution.NewErrorResult(batch.ID, caseID, time.Since(start),
			fmt.Sprintf("loading interface: %v", err)))
	}

	if d.resolver != nil {
		if deps, depErr := d.resolver.ResolvePrerequisites(ctx, iface.ID); depErr == nil && len(deps) > 0 {
			d.logger.Debug("Case interface declares prerequisites",
				zap.String("case_id", caseID.String()),
				zap.String("interface_id", iface.ID.String()),
				zap.Int("prerequisites", len(deps)),
			)
		}
	}

	outcome, err := d.invoker.Invoke(ctx, batch.EnvURL, iface, tc)
	if err != nil {
		return d.saveResult(ctx, execution.NewErrorResult(batch.ID, caseID, time.Since(start), err.Error()))
	}

	rule, err := tc.Rule()
	if err != nil {
		// A malformed stored rule is an assertion failure, not an
		// infrastructure error: the request itself succeeded.
		return d.saveResult(ctx, execution.NewFailResult(batch.ID, caseID, outcome.Body, outcome.Elapsed, err.Error()))
	}

	verdict := Evaluate(rule, outcome)
	if verdict.Passed {
		return d.saveResult(ctx, execution.NewPassResult(batch.ID, caseID, outcome.Body, outcome.Elapsed))
	}
	return d.saveResult(ctx, execution.NewFailResult(batch.ID, caseID, outcome.Body, outcome.Elapsed, verdict.Mismatch))
}

// saveResult persists one result row and reports whether the write
// succeeded. The caller decides the batch's fate; a lost row must not
// be papered over by completing with understated counters.
func (d *Dispatcher) saveResult(ctx context.Context, result *execution.TestResult) bool {
	if err := d.resultRepo.Insert(ctx, result); err != nil {
		d.logger.Error("Failed to persist test result",
			zap.String("batch_id", result.BatchID.String()),
			zap.String("case_id", result.CaseID.String()),
			zap.Error(err),
		)
		return false
	}
	return true
}
