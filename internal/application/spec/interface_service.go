package spec

import (
	"context"
	"errors"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/apitest/backend/internal/domain/spec"
	"github.com/google/uuid"
)

// InterfaceService handles interface and parameter operations
type InterfaceService struct {
	projectRepo spec.ProjectRepository
	ifaceRepo   spec.InterfaceRepository
	paramRepo   spec.ParameterRepository
}

// NewInterfaceService creates a new InterfaceService
func NewInterfaceService(projectRepo spec.ProjectRepository, ifaceRepo spec.InterfaceRepository, paramRepo spec.ParameterRepository) *InterfaceService {
	return &InterfaceService{
		projectRepo: projectRepo,
		ifaceRepo:   ifaceRepo,
		paramRepo:   paramRepo,
	}
}

// Create creates a new interface under a project
func (s *InterfaceService) Create(ctx context.Context, req CreateInterfaceRequest) (*InterfaceResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PROJECT", "Project not found")
		}
		return nil, err
	}

	existing, err := s.ifaceRepo.FindByProjectAndName(ctx, req.ProjectID, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Interface with this name already exists in the project")
	}

	iface, err := spec.NewInterface(req.ProjectID, req.Name, req.URL, spec.ParseHTTPMethod(req.Method))
	if err != nil {
		return nil, err
	}
	if err := iface.SetDefaultHeaders(req.DefaultHeaders); err != nil {
		return nil, err
	}
	if err := s.ifaceRepo.Save(ctx, iface); err != nil {
		return nil, err
	}
	return toInterfaceResponse(iface), nil
}

// Get returns one interface by id
func (s *InterfaceService) Get(ctx context.Context, id uuid.UUID) (*InterfaceResponse, error) {
	iface, err := s.ifaceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInterfaceResponse(iface), nil
}

// ListByProject returns the interfaces of one project
func (s *InterfaceService) ListByProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]InterfaceResponse, int64, error) {
	ifaces, total, err := s.ifaceRepo.FindByProject(ctx, projectID, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]InterfaceResponse, len(ifaces))
	for i := range ifaces {
		responses[i] = *toInterfaceResponse(&ifaces[i])
	}
	return responses, total, nil
}

// ListParameters returns the normalized parameter set of one interface
func (s *InterfaceService) ListParameters(ctx context.Context, interfaceID uuid.UUID) ([]ParameterResponse, error) {
	if _, err := s.ifaceRepo.FindByID(ctx, interfaceID); err != nil {
		return nil, err
	}
	params, err := s.paramRepo.FindByInterface(ctx, interfaceID)
	if err != nil {
		return nil, err
	}
	responses := make([]ParameterResponse, len(params))
	for i := range params {
		responses[i] = *toParameterResponse(&params[i])
	}
	return responses, nil
}

// Delete removes an interface and cascades to its parameters and cases
func (s *InterfaceService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.ifaceRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.ifaceRepo.DeleteCascade(ctx, id)
}
