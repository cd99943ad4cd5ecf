package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/apitest/backend/internal/domain/execution"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlanExecutor dispatches one plan's batch. Satisfied by the execution
// application service.
type PlanExecutor interface {
	ExecutePlan(ctx context.Context, planID uuid.UUID) (uuid.UUID, error)
}

// PlanTriggerConfig holds configuration for the plan trigger
type PlanTriggerConfig struct {
	// CheckInterval is how often to compare cron plans against the clock
	CheckInterval time.Duration
}

// DefaultPlanTriggerConfig returns default plan trigger configuration
func DefaultPlanTriggerConfig() PlanTriggerConfig {
	return PlanTriggerConfig{CheckInterval: time.Minute}
}

// PlanTrigger fires cron test plans. Every tick it loads the cron
// plans and dispatches those whose "HH:MM" schedule matches the current
// minute, at most once per plan per day.
type PlanTrigger struct {
	config   PlanTriggerConfig
	planRepo execution.PlanRepository
	executor PlanExecutor
	logger   *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastRun   map[uuid.UUID]string // plan id -> date it last fired
}

// NewPlanTrigger creates a new plan trigger
func NewPlanTrigger(config PlanTriggerConfig, planRepo execution.PlanRepository, executor PlanExecutor, logger *zap.Logger) *PlanTrigger {
	return &PlanTrigger{
		config:   config,
		planRepo: planRepo,
		executor: executor,
		logger:   logger,
		lastRun:  make(map[uuid.UUID]string),
	}
}

// Start starts the plan trigger
func (p *PlanTrigger) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = true
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.runLoop(ctx)

	p.logger.Info("Plan trigger started",
		zap.Duration("check_interval", p.config.CheckInterval),
	)
	return nil
}

// Stop stops the plan trigger, waiting for the loop to exit
func (p *PlanTrigger) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Plan trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *PlanTrigger) runLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.checkAndTrigger(ctx, time.Now())
		}
	}
}

// checkAndTrigger fires every due cron plan for the given instant
func (p *PlanTrigger) checkAndTrigger(ctx context.Context, now time.Time) {
	plans, err := p.planRepo.FindByExecuteType(ctx, execution.ExecuteCron)
	if err != nil {
		p.logger.Error("Failed to load cron plans", zap.Error(err))
		return
	}

	currentTime := now.Format("15:04")
	currentDate := now.Format("2006-01-02")

	for _, plan := range plans {
		if plan.CronSpec != currentTime {
			continue
		}
		if !p.markFired(plan.ID, currentDate) {
			continue // already fired today
		}

		batchID, err := p.executor.ExecutePlan(ctx, plan.ID)
		if err != nil {
			p.logger.Error("Failed to execute cron plan",
				zap.String("plan_id", plan.ID.String()),
				zap.String("plan", plan.Name),
				zap.Error(err),
			)
			continue
		}
		p.logger.Info("Cron plan dispatched",
			zap.String("plan_id", plan.ID.String()),
			zap.String("plan", plan.Name),
			zap.String("batch_id", batchID.String()),
		)
	}
}

// markFired records the plan as fired for the date. Returns false when
// it already fired that day.
func (p *PlanTrigger) markFired(planID uuid.UUID, date string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastRun[planID] == date {
		return false
	}
	p.lastRun[planID] = date
	return true
}
