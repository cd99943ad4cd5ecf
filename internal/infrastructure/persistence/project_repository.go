package persistence

import (
	"context"
	"errors"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/apitest/backend/internal/domain/spec"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProjectRepository implements spec.ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project by its ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*spec.Project, error) {
	var project spec.Project
	if err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindByName finds a project by its name
func (r *GormProjectRepository) FindByName(ctx context.Context, name string) (*spec.Project, error) {
	var project spec.Project
	if err := r.db.WithContext(ctx).First(&project, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// FindAll finds projects matching the filter
func (r *GormProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]spec.Project, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&spec.Project{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []spec.Project
	query := applyFilter(r.db.WithContext(ctx).Model(&spec.Project{}), filter, "name")
	if err := query.Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// Save creates or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, project *spec.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes a project
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&spec.Project{}, "id = ?", id).Error
}
