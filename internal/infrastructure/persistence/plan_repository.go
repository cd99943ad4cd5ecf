package persistence

import (
	"context"
	"errors"

	"github.com/apitest/backend/internal/domain/execution"
	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPlanRepository implements execution.PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by its ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*execution.TestPlan, error) {
	var plan execution.TestPlan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindAll finds plans matching the filter
func (r *GormPlanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]execution.TestPlan, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&execution.TestPlan{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var plans []execution.TestPlan
	query := applyFilter(r.db.WithContext(ctx).Model(&execution.TestPlan{}), filter, "name")
	if err := query.Find(&plans).Error; err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

// FindByExecuteType returns every plan of one execute type
func (r *GormPlanRepository) FindByExecuteType(ctx context.Context, executeType execution.ExecuteType) ([]execution.TestPlan, error) {
	var plans []execution.TestPlan
	if err := r.db.WithContext(ctx).
		Where("execute_type = ?", executeType).
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Save creates or updates a plan
func (r *GormPlanRepository) Save(ctx context.Context, plan *execution.TestPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// Delete removes a plan and its case links
func (r *GormPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&execution.PlanCase{}, "plan_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&execution.TestPlan{}, "id = ?", id).Error
	})
}

// FindCaseIDs returns the plan's case ids ordered by sort order
func (r *GormPlanRepository) FindCaseIDs(ctx context.Context, planID uuid.UUID) ([]uuid.UUID, error) {
	var links []execution.PlanCase
	if err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("sort_order ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(links))
	for i, link := range links {
		ids[i] = link.CaseID
	}
	return ids, nil
}

// ReplaceCases swaps the plan's ordered case list atomically
func (r *GormPlanRepository) ReplaceCases(ctx context.Context, planID uuid.UUID, caseIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&execution.PlanCase{}, "plan_id = ?", planID).Error; err != nil {
			return err
		}
		if len(caseIDs) == 0 {
			return nil
		}
		links := make([]execution.PlanCase, len(caseIDs))
		for i, caseID := range caseIDs {
			links[i] = execution.PlanCase{
				BaseEntity: shared.NewBaseEntity(),
				PlanID:     planID,
				CaseID:     caseID,
				SortOrder:  i,
			}
		}
		return tx.Create(&links).Error
	})
}
