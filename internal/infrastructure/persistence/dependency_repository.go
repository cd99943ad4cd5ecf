package persistence

import (
	"context"

	"github.com/apitest/backend/internal/domain/spec"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDependencyRepository implements spec.DependencyRepository using GORM
type GormDependencyRepository struct {
	db *gorm.DB
}

// NewGormDependencyRepository creates a new GormDependencyRepository
func NewGormDependencyRepository(db *gorm.DB) *GormDependencyRepository {
	return &GormDependencyRepository{db: db}
}

// FindBySource returns the declared dependencies of one interface or case
func (r *GormDependencyRepository) FindBySource(ctx context.Context, kind spec.DependencyKind, sourceID uuid.UUID) ([]spec.Dependency, error) {
	var deps []spec.Dependency
	if err := r.db.WithContext(ctx).
		Where("source_kind = ? AND source_id = ?", kind, sourceID).
		Order("created_at ASC").
		Find(&deps).Error; err != nil {
		return nil, err
	}
	return deps, nil
}

// Save creates or updates a dependency record
func (r *GormDependencyRepository) Save(ctx context.Context, dep *spec.Dependency) error {
	return r.db.WithContext(ctx).Save(dep).Error
}

// Delete removes a dependency record
func (r *GormDependencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&spec.Dependency{}, "id = ?", id).Error
}
