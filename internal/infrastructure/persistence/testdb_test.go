package persistence

import (
	"testing"

	"github.com/apitest/backend/internal/domain/execution"
	"github.com/apitest/backend/internal/domain/spec"
	"github.com/apitest/backend/internal/domain/testcase"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&spec.Project{},
		&spec.Interface{},
		&spec.Parameter{},
		&spec.Dependency{},
		&testcase.TestCase{},
		&execution.Batch{},
		&execution.TestResult{},
		&execution.TestPlan{},
		&execution.PlanCase{},
	))
	return db
}
