package persistence

import (
	"context"
	"testing"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/apitest/backend/internal/domain/spec"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterfaceRepositoryFindByProjectAndName(t *testing.T) {
	repo := NewGormInterfaceRepository(setupTestDB(t))
	ctx := context.Background()
	projectID := uuid.New()

	iface, err := spec.NewInterface(projectID, "get item", "/items/{id}", spec.MethodGet)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, iface))

	found, err := repo.FindByProjectAndName(ctx, projectID, "get item")
	require.NoError(t, err)
	assert.Equal(t, iface.ID, found.ID)

	_, err = repo.FindByProjectAndName(ctx, uuid.New(), "get item")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInterfaceRepositoryDeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	ifaceRepo := NewGormInterfaceRepository(db)
	paramRepo := NewGormParameterRepository(db)
	caseRepo := NewGormCaseRepository(db)
	ctx := context.Background()

	iface, err := spec.NewInterface(uuid.New(), "get item", "/items/{id}", spec.MethodGet)
	require.NoError(t, err)
	require.NoError(t, ifaceRepo.Save(ctx, iface))

	require.NoError(t, paramRepo.Upsert(ctx, []spec.Parameter{
		{BaseEntity: shared.NewBaseEntity(), InterfaceID: iface.ID, Name: "id", Location: spec.LocationPath, DataType: spec.TypeNumber},
	}))
	require.NoError(t, caseRepo.Insert(ctx, storedCase(t, iface.ID, "normal case")))

	require.NoError(t, ifaceRepo.DeleteCascade(ctx, iface.ID))

	_, err = ifaceRepo.FindByID(ctx, iface.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	params, err := paramRepo.FindByInterface(ctx, iface.ID)
	require.NoError(t, err)
	assert.Empty(t, params)

	names, err := caseRepo.FindNamesByInterface(ctx, iface.ID)
	require.NoError(t, err)
	assert.Empty(t, names)
}
