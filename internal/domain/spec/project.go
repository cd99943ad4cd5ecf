package spec

import (
	"strings"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Project groups the interfaces and test cases of one system under test
type Project struct {
	shared.BaseEntity
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}

// NewProject creates a new project
func NewProject(name, description string, ownerID uuid.UUID) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PROJECT_NAME", "Project name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_PROJECT_NAME", "Project name cannot exceed 100 characters")
	}
	return &Project{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}, nil
}
