package persistence

import (
	"context"
	"testing"

	"github.com/apitest/backend/internal/domain/execution"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedPlan(t *testing.T, executeType execution.ExecuteType, cronSpec string) *execution.TestPlan {
	t.Helper()
	plan, err := execution.NewTestPlan(uuid.New(), "nightly regression", "http://staging.internal",
		executeType, cronSpec, uuid.New())
	require.NoError(t, err)
	return plan
}

func TestPlanRepositoryReplaceCasesKeepsOrder(t *testing.T) {
	repo := NewGormPlanRepository(setupTestDB(t))
	ctx := context.Background()

	plan := storedPlan(t, execution.ExecuteManual, "")
	require.NoError(t, repo.Save(ctx, plan))

	first := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	require.NoError(t, repo.ReplaceCases(ctx, plan.ID, first))

	got, err := repo.FindCaseIDs(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got, "sort order follows the submitted order")

	// Replacing swaps the list atomically, including reordering.
	second := []uuid.UUID{first[2], first[0]}
	require.NoError(t, repo.ReplaceCases(ctx, plan.ID, second))

	got, err = repo.FindCaseIDs(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestPlanRepositoryDeleteRemovesCaseLinks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPlanRepository(db)
	ctx := context.Background()

	plan := storedPlan(t, execution.ExecuteManual, "")
	require.NoError(t, repo.Save(ctx, plan))
	require.NoError(t, repo.ReplaceCases(ctx, plan.ID, []uuid.UUID{uuid.New()}))

	require.NoError(t, repo.Delete(ctx, plan.ID))

	var linkCount int64
	require.NoError(t, db.Model(&execution.PlanCase{}).Where("plan_id = ?", plan.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount)
}

func TestPlanRepositoryFindByExecuteType(t *testing.T) {
	repo := NewGormPlanRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, storedPlan(t, execution.ExecuteManual, "")))
	require.NoError(t, repo.Save(ctx, storedPlan(t, execution.ExecuteCron, "02:30")))
	require.NoError(t, repo.Save(ctx, storedPlan(t, execution.ExecuteCron, "14:00")))

	cronPlans, err := repo.FindByExecuteType(ctx, execution.ExecuteCron)
	require.NoError(t, err)
	assert.Len(t, cronPlans, 2)
	for _, plan := range cronPlans {
		assert.Equal(t, execution.ExecuteCron, plan.ExecuteType)
	}
}
