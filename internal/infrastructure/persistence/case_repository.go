package persistence

import (
	"context"
	"errors"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/apitest/backend/internal/domain/testcase"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCaseRepository implements testcase.Repository using GORM
type GormCaseRepository struct {
	db *gorm.DB
}

// NewGormCaseRepository creates a new GormCaseRepository
func NewGormCaseRepository(db *gorm.DB) *GormCaseRepository {
	return &GormCaseRepository{db: db}
}

// FindByID finds a test case by its ID
func (r *GormCaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*testcase.TestCase, error) {
	var tc testcase.TestCase
	if err := r.db.WithContext(ctx).First(&tc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tc, nil
}

// FindByInterface finds the cases of one interface
func (r *GormCaseRepository) FindByInterface(ctx context.Context, interfaceID uuid.UUID, filter shared.Filter) ([]testcase.TestCase, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&testcase.TestCase{}).
		Where("interface_id = ?", interfaceID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cases []testcase.TestCase
	query := applyFilter(
		r.db.WithContext(ctx).Model(&testcase.TestCase{}).Where("interface_id = ?", interfaceID),
		filter, "name")
	if err := query.Find(&cases).Error; err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

// FindNamesByInterface returns the persisted case names of one
// interface as a set, in a single query.
func (r *GormCaseRepository) FindNamesByInterface(ctx context.Context, interfaceID uuid.UUID) (map[string]struct{}, error) {
	var names []string
	if err := r.db.WithContext(ctx).Model(&testcase.TestCase{}).
		Where("interface_id = ?", interfaceID).
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set, nil
}

// Insert creates a test case. A violation of the (interface, name)
// unique index surfaces as shared.ErrAlreadyExists.
func (r *GormCaseRepository) Insert(ctx context.Context, tc *testcase.TestCase) error {
	if err := r.db.WithContext(ctx).Create(tc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save updates a test case
func (r *GormCaseRepository) Save(ctx context.Context, tc *testcase.TestCase) error {
	return r.db.WithContext(ctx).Save(tc).Error
}

// Delete removes a test case
func (r *GormCaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&testcase.TestCase{}, "id = ?", id).Error
}
