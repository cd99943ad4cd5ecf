package spec

import (
	"context"

	"github.com/apitest/backend/internal/domain/spec"
	"github.com/google/uuid"
)

// CreateDependencyRequest carries the fields of a dependency record
type CreateDependencyRequest struct {
	SourceKind  string    `json:"source_kind" binding:"required"`
	SourceID    uuid.UUID `json:"source_id" binding:"required"`
	TargetKind  string    `json:"target_kind" binding:"required"`
	TargetID    uuid.UUID `json:"target_id" binding:"required"`
	Description string    `json:"description"`
}

// DependencyResponse is the application-level view of a dependency
type DependencyResponse struct {
	ID          uuid.UUID `json:"id"`
	SourceKind  string    `json:"source_kind"`
	SourceID    uuid.UUID `json:"source_id"`
	TargetKind  string    `json:"target_kind"`
	TargetID    uuid.UUID `json:"target_id"`
	Description string    `json:"description,omitempty"`
}

// DependencyService manages declared dependency metadata. Records are
// operator documentation; execution never chains requests off them.
type DependencyService struct {
	depRepo spec.DependencyRepository
}

// NewDependencyService creates a new DependencyService
func NewDependencyService(depRepo spec.DependencyRepository) *DependencyService {
	return &DependencyService{depRepo: depRepo}
}

// Create stores a dependency record
func (s *DependencyService) Create(ctx context.Context, req CreateDependencyRequest) (*DependencyResponse, error) {
	sourceKind, err := spec.ParseDependencyKind(req.SourceKind)
	if err != nil {
		return nil, err
	}
	targetKind, err := spec.ParseDependencyKind(req.TargetKind)
	if err != nil {
		return nil, err
	}

	dep, err := spec.NewDependency(sourceKind, req.SourceID, targetKind, req.TargetID, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.depRepo.Save(ctx, dep); err != nil {
		return nil, err
	}
	return toDependencyResponse(dep), nil
}

// ListBySource returns the dependencies declared for one source
func (s *DependencyService) ListBySource(ctx context.Context, kind string, sourceID uuid.UUID) ([]DependencyResponse, error) {
	sourceKind, err := spec.ParseDependencyKind(kind)
	if err != nil {
		return nil, err
	}

	deps, err := s.depRepo.FindBySource(ctx, sourceKind, sourceID)
	if err != nil {
		return nil, err
	}
	responses := make([]DependencyResponse, len(deps))
	for i := range deps {
		responses[i] = *toDependencyResponse(&deps[i])
	}
	return responses, nil
}

// Delete removes a dependency record
func (s *DependencyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.depRepo.Delete(ctx, id)
}

// ResolvePrerequisites implements spec.DependencyResolver over the store,
// returning the declared interface-level prerequisites in stored order.
func (s *DependencyService) ResolvePrerequisites(ctx context.Context, interfaceID uuid.UUID) ([]spec.Dependency, error) {
	return s.depRepo.FindBySource(ctx, spec.DependencyInterface, interfaceID)
}

func toDependencyResponse(d *spec.Dependency) *DependencyResponse {
	return &DependencyResponse{
		ID:          d.ID,
		SourceKind:  string(d.SourceKind),
		SourceID:    d.SourceID,
		TargetKind:  string(d.TargetKind),
		TargetID:    d.TargetID,
		Description: d.Description,
	}
}
