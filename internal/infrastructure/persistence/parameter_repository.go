package persistence

import (
	"context"

	"github.com/apitest/backend/internal/domain/spec"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParameterRepository implements spec.ParameterRepository using GORM
type GormParameterRepository struct {
	db *gorm.DB
}

// NewGormParameterRepository creates a new GormParameterRepository
func NewGormParameterRepository(db *gorm.DB) *GormParameterRepository {
	return &GormParameterRepository{db: db}
}

// FindByInterface returns every parameter of one interface
func (r *GormParameterRepository) FindByInterface(ctx context.Context, interfaceID uuid.UUID) ([]spec.Parameter, error) {
	var params []spec.Parameter
	if err := r.db.WithContext(ctx).
		Where("interface_id = ?", interfaceID).
		Order("location ASC, name ASC").
		Find(&params).Error; err != nil {
		return nil, err
	}
	return params, nil
}

// FindByInterfaceAndLocation returns the parameters of one location
func (r *GormParameterRepository) FindByInterfaceAndLocation(ctx context.Context, interfaceID uuid.UUID, location spec.ParamLocation) ([]spec.Parameter, error) {
	var params []spec.Parameter
	if err := r.db.WithContext(ctx).
		Where("interface_id = ? AND location = ?", interfaceID, location).
		Order("name ASC").
		Find(&params).Error; err != nil {
		return nil, err
	}
	return params, nil
}

// Upsert creates or replaces parameters keyed by (interface, name,
// location). Re-imports overwrite type, requiredness, example and
// constraint of matching rows instead of duplicating them.
func (r *GormParameterRepository) Upsert(ctx context.Context, params []spec.Parameter) error {
	if len(params) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "interface_id"}, {Name: "name"}, {Name: "location"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"data_type", "required", "parent_key", "example_value", "constraint", "updated_at",
		}),
	}).Create(&params).Error
}

// DeleteByInterface removes every parameter of one interface
func (r *GormParameterRepository) DeleteByInterface(ctx context.Context, interfaceID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&spec.Parameter{}, "interface_id = ?", interfaceID).Error
}
