package spec

import (
	"context"
	"errors"
	"testing"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/apitest/backend/internal/domain/spec"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDependency(t *testing.T) {
	depRepo := new(MockDependencyRepository)
	service := NewDependencyService(depRepo)

	depRepo.On("Save", mock.Anything, mock.AnythingOfType("*spec.Dependency")).Return(nil)

	sourceID := uuid.New()
	targetID := uuid.New()
	resp, err := service.Create(context.Background(), CreateDependencyRequest{
		SourceKind:  "interface",
		SourceID:    sourceID,
		TargetKind:  "interface",
		TargetID:    targetID,
		Description: "login before checkout",
	})
	require.NoError(t, err)

	assert.Equal(t, "interface", resp.SourceKind)
	assert.Equal(t, sourceID, resp.SourceID)
	assert.Equal(t, targetID, resp.TargetID)
	assert.NotEmpty(t, resp.ID)
	depRepo.AssertExpectations(t)
}

func TestCreateDependencyInvalidKind(t *testing.T) {
	depRepo := new(MockDependencyRepository)
	service := NewDependencyService(depRepo)

	_, err := service.Create(context.Background(), CreateDependencyRequest{
		SourceKind: "project",
		SourceID:   uuid.New(),
		TargetKind: "interface",
		TargetID:   uuid.New(),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_DEPENDENCY", domainErr.Code)
	depRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateDependencySelfReference(t *testing.T) {
	depRepo := new(MockDependencyRepository)
	service := NewDependencyService(depRepo)

	id := uuid.New()
	_, err := service.Create(context.Background(), CreateDependencyRequest{
		SourceKind: "interface",
		SourceID:   id,
		TargetKind: "interface",
		TargetID:   id,
	})
	require.Error(t, err)
	depRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestListDependenciesBySource(t *testing.T) {
	depRepo := new(MockDependencyRepository)
	service := NewDependencyService(depRepo)

	sourceID := uuid.New()
	first, err := spec.NewDependency(spec.DependencyInterface, sourceID, spec.DependencyInterface, uuid.New(), "auth first")
	require.NoError(t, err)
	second, err := spec.NewDependency(spec.DependencyInterface, sourceID, spec.DependencyCase, uuid.New(), "")
	require.NoError(t, err)

	depRepo.On("FindBySource", mock.Anything, spec.DependencyInterface, sourceID).
		Return([]spec.Dependency{*first, *second}, nil)

	deps, err := service.ListBySource(context.Background(), "interface", sourceID)
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "auth first", deps[0].Description)
	assert.Equal(t, "case", deps[1].TargetKind)
}

func TestListDependenciesInvalidKind(t *testing.T) {
	depRepo := new(MockDependencyRepository)
	service := NewDependencyService(depRepo)

	_, err := service.ListBySource(context.Background(), "plan", uuid.New())
	assert.Error(t, err)
	depRepo.AssertNotCalled(t, "FindBySource", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolvePrerequisitesReturnsStoredOrder(t *testing.T) {
	depRepo := new(MockDependencyRepository)
	service := NewDependencyService(depRepo)

	interfaceID := uuid.New()
	first, err := spec.NewDependency(spec.DependencyInterface, interfaceID, spec.DependencyInterface, uuid.New(), "")
	require.NoError(t, err)
	second, err := spec.NewDependency(spec.DependencyInterface, interfaceID, spec.DependencyInterface, uuid.New(), "")
	require.NoError(t, err)

	depRepo.On("FindBySource", mock.Anything, spec.DependencyInterface, interfaceID).
		Return([]spec.Dependency{*first, *second}, nil)

	deps, err := service.ResolvePrerequisites(context.Background(), interfaceID)
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, first.TargetID, deps[0].TargetID)
	assert.Equal(t, second.TargetID, deps[1].TargetID)
}
