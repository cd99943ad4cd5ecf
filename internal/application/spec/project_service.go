package spec

import (
	"context"
	"errors"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/apitest/backend/internal/domain/spec"
	"github.com/google/uuid"
)

// ProjectService handles project lifecycle operations
type ProjectService struct {
	projectRepo spec.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo spec.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// Create creates a new project
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	existing, err := s.projectRepo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Project with this name already exists")
	}

	project, err := spec.NewProject(req.Name, req.Description, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := s.projectRepo.Save(ctx, project); err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// Get returns one project by id
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// List returns projects matching the filter
func (s *ProjectService) List(ctx context.Context, filter shared.Filter) ([]ProjectResponse, int64, error) {
	projects, total, err := s.projectRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = *toProjectResponse(&projects[i])
	}
	return responses, total, nil
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.projectRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, id)
}
