package persistence

import (
	"context"
	"errors"

	"github.com/apitest/backend/internal/domain/execution"
	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBatchRepository implements execution.BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*execution.Batch, error) {
	var batch execution.Batch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindAll finds batches matching the filter
func (r *GormBatchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]execution.Batch, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&execution.Batch{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var batches []execution.Batch
	query := applyFilter(r.db.WithContext(ctx).Model(&execution.Batch{}), filter, "")
	if err := query.Find(&batches).Error; err != nil {
		return nil, 0, err
	}
	return batches, total, nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *execution.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// GormResultRepository implements execution.ResultRepository using GORM
type GormResultRepository struct {
	db *gorm.DB
}

// NewGormResultRepository creates a new GormResultRepository
func NewGormResultRepository(db *gorm.DB) *GormResultRepository {
	return &GormResultRepository{db: db}
}

// FindByBatch returns every result of one batch
func (r *GormResultRepository) FindByBatch(ctx context.Context, batchID uuid.UUID) ([]execution.TestResult, error) {
	var results []execution.TestResult
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("exec_time ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Insert creates a result row
func (r *GormResultRepository) Insert(ctx context.Context, result *execution.TestResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}
