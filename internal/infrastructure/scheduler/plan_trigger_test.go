package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/apitest/backend/internal/domain/execution"
	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPlanRepo struct {
	plans []execution.TestPlan
}

func (s *stubPlanRepo) FindByID(_ context.Context, id uuid.UUID) (*execution.TestPlan, error) {
	for i := range s.plans {
		if s.plans[i].ID == id {
			return &s.plans[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubPlanRepo) FindAll(_ context.Context, _ shared.Filter) ([]execution.TestPlan, int64, error) {
	return s.plans, int64(len(s.plans)), nil
}

func (s *stubPlanRepo) FindByExecuteType(_ context.Context, executeType execution.ExecuteType) ([]execution.TestPlan, error) {
	var out []execution.TestPlan
	for _, plan := range s.plans {
		if plan.ExecuteType == executeType {
			out = append(out, plan)
		}
	}
	return out, nil
}

func (s *stubPlanRepo) Save(_ context.Context, _ *execution.TestPlan) error    { return nil }
func (s *stubPlanRepo) Delete(_ context.Context, _ uuid.UUID) error            { return nil }
func (s *stubPlanRepo) FindCaseIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}
func (s *stubPlanRepo) ReplaceCases(_ context.Context, _ uuid.UUID, _ []uuid.UUID) error {
	return nil
}

type recordingExecutor struct {
	mu       sync.Mutex
	executed []uuid.UUID
}

func (r *recordingExecutor) ExecutePlan(_ context.Context, planID uuid.UUID) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executed = append(r.executed, planID)
	return uuid.New(), nil
}

func (r *recordingExecutor) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.executed)
}

func cronPlan(t *testing.T, cronSpec string) execution.TestPlan {
	t.Helper()
	plan, err := execution.NewTestPlan(uuid.New(), "nightly "+cronSpec, "http://staging.internal",
		execution.ExecuteCron, cronSpec, uuid.New())
	require.NoError(t, err)
	return *plan
}

func TestCheckAndTriggerFiresMatchingPlans(t *testing.T) {
	now := time.Date(2026, 3, 14, 2, 30, 0, 0, time.UTC)
	due := cronPlan(t, "02:30")
	notDue := cronPlan(t, "14:00")

	repo := &stubPlanRepo{plans: []execution.TestPlan{due, notDue}}
	executor := &recordingExecutor{}
	trigger := NewPlanTrigger(DefaultPlanTriggerConfig(), repo, executor, zap.NewNop())

	trigger.checkAndTrigger(context.Background(), now)

	require.Equal(t, 1, executor.count())
	assert.Equal(t, due.ID, executor.executed[0])
}

func TestCheckAndTriggerFiresOncePerDay(t *testing.T) {
	now := time.Date(2026, 3, 14, 2, 30, 0, 0, time.UTC)
	plan := cronPlan(t, "02:30")

	repo := &stubPlanRepo{plans: []execution.TestPlan{plan}}
	executor := &recordingExecutor{}
	trigger := NewPlanTrigger(DefaultPlanTriggerConfig(), repo, executor, zap.NewNop())

	// Several ticks within the same minute, then the same time next day.
	trigger.checkAndTrigger(context.Background(), now)
	trigger.checkAndTrigger(context.Background(), now.Add(10*time.Second))
	assert.Equal(t, 1, executor.count())

	trigger.checkAndTrigger(context.Background(), now.Add(24*time.Hour))
	assert.Equal(t, 2, executor.count())
}

func TestCheckAndTriggerIgnoresManualPlans(t *testing.T) {
	now := time.Date(2026, 3, 14, 2, 30, 0, 0, time.UTC)
	manual, err := execution.NewTestPlan(uuid.New(), "ad hoc", "http://staging.internal",
		execution.ExecuteManual, "", uuid.New())
	require.NoError(t, err)

	repo := &stubPlanRepo{plans: []execution.TestPlan{*manual}}
	executor := &recordingExecutor{}
	trigger := NewPlanTrigger(DefaultPlanTriggerConfig(), repo, executor, zap.NewNop())

	trigger.checkAndTrigger(context.Background(), now)
	assert.Zero(t, executor.count())
}

func TestStartStop(t *testing.T) {
	repo := &stubPlanRepo{}
	executor := &recordingExecutor{}
	cfg := PlanTriggerConfig{CheckInterval: 10 * time.Millisecond}
	trigger := NewPlanTrigger(cfg, repo, executor, zap.NewNop())

	require.NoError(t, trigger.Start(context.Background()))
	require.NoError(t, trigger.Start(context.Background()), "second start is a no-op")

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, trigger.Stop(stopCtx))
	require.NoError(t, trigger.Stop(stopCtx), "second stop is a no-op")
}
