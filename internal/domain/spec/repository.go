package spec

import (
	"context"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectRepository persists projects
type ProjectRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindByName(ctx context.Context, name string) (*Project, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Project, int64, error)
	Save(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InterfaceRepository persists interfaces. Delete cascades to the
// interface's parameters and test cases via explicit repository logic.
type InterfaceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Interface, error)
	FindByProjectAndName(ctx context.Context, projectID uuid.UUID, name string) (*Interface, error)
	FindByProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]Interface, int64, error)
	Save(ctx context.Context, iface *Interface) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

// ParameterRepository persists normalized parameters
type ParameterRepository interface {
	FindByInterface(ctx context.Context, interfaceID uuid.UUID) ([]Parameter, error)
	FindByInterfaceAndLocation(ctx context.Context, interfaceID uuid.UUID, location ParamLocation) ([]Parameter, error)
	// Upsert creates or replaces parameters keyed by (interface, name, location)
	Upsert(ctx context.Context, params []Parameter) error
	DeleteByInterface(ctx context.Context, interfaceID uuid.UUID) error
}

// DependencyRepository persists declared dependency metadata
type DependencyRepository interface {
	FindBySource(ctx context.Context, kind DependencyKind, sourceID uuid.UUID) ([]Dependency, error)
	Save(ctx context.Context, dep *Dependency) error
	Delete(ctx context.Context, id uuid.UUID) error
}
