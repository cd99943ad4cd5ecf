package spec

import (
	"context"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DependencyKind distinguishes interface-level from case-level dependencies
type DependencyKind string

const (
	DependencyInterface DependencyKind = "interface"
	DependencyCase      DependencyKind = "case"
)

// ParseDependencyKind validates a raw dependency kind string
func ParseDependencyKind(raw string) (DependencyKind, error) {
	switch DependencyKind(raw) {
	case DependencyInterface, DependencyCase:
		return DependencyKind(raw), nil
	default:
		return "", shared.NewDomainError("INVALID_DEPENDENCY", "Dependency kind must be interface or case")
	}
}

// Dependency records that one interface or case depends on another.
// This is persisted metadata for operators; the execution path does not
// consult it. A future extension may feed it through a
// DependencyResolver to chain parameter extraction between cases.
type Dependency struct {
	shared.BaseEntity
	SourceKind  DependencyKind `gorm:"type:varchar(10);not null"`
	SourceID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	TargetKind  DependencyKind `gorm:"type:varchar(10);not null"`
	TargetID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Description string         `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Dependency) TableName() string {
	return "dependencies"
}

// DependencyResolver reports the declared prerequisites of an interface.
// Execution components may accept a resolver for visibility; none of them
// chain requests based on it.
type DependencyResolver interface {
	ResolvePrerequisites(ctx context.Context, interfaceID uuid.UUID) ([]Dependency, error)
}

// NewDependency creates a new dependency record
func NewDependency(sourceKind DependencyKind, sourceID uuid.UUID, targetKind DependencyKind, targetID uuid.UUID, description string) (*Dependency, error) {
	if sourceID == targetID && sourceKind == targetKind {
		return nil, shared.NewDomainError("INVALID_DEPENDENCY", "A resource cannot depend on itself")
	}
	return &Dependency{
		BaseEntity:  shared.NewBaseEntity(),
		SourceKind:  sourceKind,
		SourceID:    sourceID,
		TargetKind:  targetKind,
		TargetID:    targetID,
		Description: description,
	}, nil
}
