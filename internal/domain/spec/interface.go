package spec

import (
	"encoding/json"
	"strings"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// HTTPMethod is the request method of an interface
type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodPut    HTTPMethod = "PUT"
	MethodDelete HTTPMethod = "DELETE"
	MethodPatch  HTTPMethod = "PATCH"
)

// ParseHTTPMethod normalizes a method string, defaulting to GET for
// unrecognized values so that lenient import sources still produce a
// usable interface.
func ParseHTTPMethod(s string) HTTPMethod {
	switch HTTPMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return HTTPMethod(strings.ToUpper(strings.TrimSpace(s)))
	default:
		return MethodGet
	}
}

// Interface represents one API endpoint of a project. Its URL may contain
// {param} placeholders that are substituted from PATH parameters at
// execution time.
type Interface struct {
	shared.BaseEntity
	ProjectID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_interface_project_name,priority:1"`
	Name           string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_interface_project_name,priority:2"`
	URL            string     `gorm:"type:varchar(500);not null"`
	Method         HTTPMethod `gorm:"type:varchar(10);not null"`
	DefaultHeaders string     `gorm:"type:text"` // JSON object of header name -> value
}

// TableName returns the table name for GORM
func (Interface) TableName() string {
	return "interfaces"
}

// NewInterface creates a new interface
func NewInterface(projectID uuid.UUID, name, url string, method HTTPMethod) (*Interface, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INTERFACE_NAME", "Interface name cannot be empty")
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, shared.NewDomainError("INVALID_INTERFACE_URL", "Interface URL cannot be empty")
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return &Interface{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  projectID,
		Name:       name,
		URL:        url,
		Method:     method,
	}, nil
}

// SetDefaultHeaders stores the default header set as JSON
func (i *Interface) SetDefaultHeaders(headers map[string]string) error {
	if len(headers) == 0 {
		i.DefaultHeaders = ""
		return nil
	}
	raw, err := json.Marshal(headers)
	if err != nil {
		return shared.NewDomainError("INVALID_HEADERS", "Default headers are not serializable")
	}
	i.DefaultHeaders = string(raw)
	return nil
}

// DefaultHeaderMap decodes the stored default header set. An empty or
// malformed column yields an empty map rather than an error; stored
// headers are advisory and must never block execution.
func (i *Interface) DefaultHeaderMap() map[string]string {
	headers := make(map[string]string)
	if i.DefaultHeaders == "" {
		return headers
	}
	_ = json.Unmarshal([]byte(i.DefaultHeaders), &headers)
	return headers
}
