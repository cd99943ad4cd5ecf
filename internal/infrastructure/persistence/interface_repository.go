package persistence

import (
	"context"
	"errors"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/apitest/backend/internal/domain/spec"
	"github.com/apitest/backend/internal/domain/testcase"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInterfaceRepository implements spec.InterfaceRepository using GORM
type GormInterfaceRepository struct {
	db *gorm.DB
}

// NewGormInterfaceRepository creates a new GormInterfaceRepository
func NewGormInterfaceRepository(db *gorm.DB) *GormInterfaceRepository {
	return &GormInterfaceRepository{db: db}
}

// FindByID finds an interface by its ID
func (r *GormInterfaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*spec.Interface, error) {
	var iface spec.Interface
	if err := r.db.WithContext(ctx).First(&iface, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &iface, nil
}

// FindByProjectAndName finds an interface by its unique (project, name) pair
func (r *GormInterfaceRepository) FindByProjectAndName(ctx context.Context, projectID uuid.UUID, name string) (*spec.Interface, error) {
	var iface spec.Interface
	if err := r.db.WithContext(ctx).
		Where("project_id = ? AND name = ?", projectID, name).
		First(&iface).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &iface, nil
}

// FindByProject finds the interfaces of one project
func (r *GormInterfaceRepository) FindByProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]spec.Interface, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&spec.Interface{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ifaces []spec.Interface
	query := applyFilter(
		r.db.WithContext(ctx).Model(&spec.Interface{}).Where("project_id = ?", projectID),
		filter, "name")
	if err := query.Find(&ifaces).Error; err != nil {
		return nil, 0, err
	}
	return ifaces, total, nil
}

// Save creates or updates an interface
func (r *GormInterfaceRepository) Save(ctx context.Context, iface *spec.Interface) error {
	return r.db.WithContext(ctx).Save(iface).Error
}

// DeleteCascade removes an interface together with its parameters and
// test cases in one transaction.
func (r *GormInterfaceRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&spec.Parameter{}, "interface_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&testcase.TestCase{}, "interface_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&spec.Interface{}, "id = ?", id).Error
	})
}
