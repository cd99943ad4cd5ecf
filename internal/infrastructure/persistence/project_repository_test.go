package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProjectRepository creates a GormProjectRepository with a mocked SQL connection
func newMockProjectRepository(t *testing.T) (*GormProjectRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProjectRepository(gormDB), mock, mockDB
}

func TestGormProjectRepository_FindByID(t *testing.T) {
	t.Run("finds existing project", func(t *testing.T) {
		repo, mock, mockDB := newMockProjectRepository(t)
		defer mockDB.Close()

		projectID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "name", "description", "owner_id", "created_at", "updated_at"}).
			AddRow(projectID, "shop", "storefront APIs", uuid.New(), time.Now(), time.Now())

		mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(projectID, 1).
			WillReturnRows(rows)

		project, err := repo.FindByID(context.Background(), projectID)
		require.NoError(t, err)
		assert.Equal(t, "shop", project.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockProjectRepository(t)
		defer mockDB.Close()

		projectID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(projectID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(context.Background(), projectID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProjectRepository_FindByName(t *testing.T) {
	repo, mock, mockDB := newMockProjectRepository(t)
	defer mockDB.Close()

	projectID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "description", "owner_id", "created_at", "updated_at"}).
		AddRow(projectID, "shop", "", uuid.New(), time.Now(), time.Now())

	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE name = \$1 ORDER BY .* LIMIT .*`).
		WithArgs("shop", 1).
		WillReturnRows(rows)

	project, err := repo.FindByName(context.Background(), "shop")
	require.NoError(t, err)
	assert.Equal(t, projectID, project.ID)
}
