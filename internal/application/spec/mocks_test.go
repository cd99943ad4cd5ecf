package spec

import (
	"context"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/apitest/backend/internal/domain/spec"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProjectRepository is a mock implementation of spec.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*spec.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spec.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByName(ctx context.Context, name string) (*spec.Project, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spec.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]spec.Project, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]spec.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepository) Save(ctx context.Context, project *spec.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInterfaceRepository is a mock implementation of spec.InterfaceRepository
type MockInterfaceRepository struct {
	mock.Mock
}

func (m *MockInterfaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*spec.Interface, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spec.Interface), args.Error(1)
}

func (m *MockInterfaceRepository) FindByProjectAndName(ctx context.Context, projectID uuid.UUID, name string) (*spec.Interface, error) {
	args := m.Called(ctx, projectID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spec.Interface), args.Error(1)
}

func (m *MockInterfaceRepository) FindByProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]spec.Interface, int64, error) {
	args := m.Called(ctx, projectID, filter)
	return args.Get(0).([]spec.Interface), args.Get(1).(int64), args.Error(2)
}

func (m *MockInterfaceRepository) Save(ctx context.Context, iface *spec.Interface) error {
	args := m.Called(ctx, iface)
	return args.Error(0)
}

func (m *MockInterfaceRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockParameterRepository is a mock implementation of spec.ParameterRepository
type MockParameterRepository struct {
	mock.Mock
}

func (m *MockParameterRepository) FindByInterface(ctx context.Context, interfaceID uuid.UUID) ([]spec.Parameter, error) {
	args := m.Called(ctx, interfaceID)
	return args.Get(0).([]spec.Parameter), args.Error(1)
}

func (m *MockParameterRepository) FindByInterfaceAndLocation(ctx context.Context, interfaceID uuid.UUID, location spec.ParamLocation) ([]spec.Parameter, error) {
	args := m.Called(ctx, interfaceID, location)
	return args.Get(0).([]spec.Parameter), args.Error(1)
}

func (m *MockParameterRepository) Upsert(ctx context.Context, params []spec.Parameter) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockParameterRepository) DeleteByInterface(ctx context.Context, interfaceID uuid.UUID) error {
	args := m.Called(ctx, interfaceID)
	return args.Error(0)
}

// MockDependencyRepository is a mock implementation of spec.DependencyRepository
type MockDependencyRepository struct {
	mock.Mock
}

func (m *MockDependencyRepository) FindBySource(ctx context.Context, kind spec.DependencyKind, sourceID uuid.UUID) ([]spec.Dependency, error) {
	args := m.Called(ctx, kind, sourceID)
	return args.Get(0).([]spec.Dependency), args.Error(1)
}

func (m *MockDependencyRepository) Save(ctx context.Context, dep *spec.Dependency) error {
	args := m.Called(ctx, dep)
	return args.Error(0)
}

func (m *MockDependencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
