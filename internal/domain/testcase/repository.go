package testcase

import (
	"context"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository persists test cases. Insert must surface a duplicate
// (interface, name) pair as shared.ErrAlreadyExists so that concurrent
// synthesis runs can treat the race as "already existing".
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TestCase, error)
	FindByInterface(ctx context.Context, interfaceID uuid.UUID, filter shared.Filter) ([]TestCase, int64, error)
	// FindNamesByInterface returns the set of persisted case names for
	// one interface in a single batched lookup.
	FindNamesByInterface(ctx context.Context, interfaceID uuid.UUID) (map[string]struct{}, error)
	Insert(ctx context.Context, tc *TestCase) error
	Save(ctx context.Context, tc *TestCase) error
	Delete(ctx context.Context, id uuid.UUID) error
}
