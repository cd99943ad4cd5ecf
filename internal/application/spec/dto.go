package spec

import (
	"time"

	"github.com/apitest/backend/internal/domain/spec"
	"github.com/google/uuid"
)

// CreateProjectRequest carries the fields for creating a project
type CreateProjectRequest struct {
	Name        string
	Description string
	OwnerID     uuid.UUID
}

// ProjectResponse is the application-level view of a project
type ProjectResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateInterfaceRequest carries the fields for creating an interface
type CreateInterfaceRequest struct {
	ProjectID      uuid.UUID
	Name           string
	URL            string
	Method         string
	DefaultHeaders map[string]string
}

// InterfaceResponse is the application-level view of an interface
type InterfaceResponse struct {
	ID             uuid.UUID         `json:"id"`
	ProjectID      uuid.UUID         `json:"project_id"`
	Name           string            `json:"name"`
	URL            string            `json:"url"`
	Method         string            `json:"method"`
	DefaultHeaders map[string]string `json:"default_headers,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// ParameterResponse is the application-level view of a parameter
type ParameterResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	DataType     string    `json:"data_type"`
	Required     bool      `json:"required"`
	ParentKey    string    `json:"parent_key,omitempty"`
	ExampleValue string    `json:"example_value,omitempty"`
	Constraint   string    `json:"constraint,omitempty"`
}

// ImportReport summarizes one import run
type ImportReport struct {
	ProjectID  uuid.UUID `json:"project_id"`
	Interfaces int       `json:"interfaces"`
	Parameters int       `json:"parameters"`
	Warnings   []string  `json:"warnings,omitempty"`
}

func toProjectResponse(p *spec.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
	}
}

func toInterfaceResponse(i *spec.Interface) *InterfaceResponse {
	return &InterfaceResponse{
		ID:             i.ID,
		ProjectID:      i.ProjectID,
		Name:           i.Name,
		URL:            i.URL,
		Method:         string(i.Method),
		DefaultHeaders: i.DefaultHeaderMap(),
		CreatedAt:      i.CreatedAt,
	}
}

func toParameterResponse(p *spec.Parameter) *ParameterResponse {
	return &ParameterResponse{
		ID:           p.ID,
		Name:         p.Name,
		Location:     string(p.Location),
		DataType:     string(p.DataType),
		Required:     p.Required,
		ParentKey:    p.ParentKey,
		ExampleValue: p.ExampleValue,
		Constraint:   p.Constraint,
	}
}
