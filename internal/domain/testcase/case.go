package testcase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TestCase is one executable case of an interface. The case name is the
// deduplication key: it is unique within the interface and, for
// synthesized cases, a deterministic function of the interface name,
// synthesis category and parameter under test.
type TestCase struct {
	shared.BaseEntity
	InterfaceID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_case_iface_name,priority:1"`
	Name           string    `gorm:"type:varchar(300);not null;uniqueIndex:idx_case_iface_name,priority:2"`
	RequestHeaders string    `gorm:"type:text"` // JSON object of header name -> value
	RequestParams  string    `gorm:"type:text"` // JSON object covering PATH+QUERY+BODY merged
	ExpectedResult string    `gorm:"type:text"` // informational descriptor for operators
	AssertRule     string    `gorm:"type:text;not null"`
	CreatorID      uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (TestCase) TableName() string {
	return "test_cases"
}

// NewTestCase creates a new test case
func NewTestCase(interfaceID uuid.UUID, name string, params, headers map[string]string, expected string, rule Rule, creatorID uuid.UUID) (*TestCase, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CASE_NAME", "Case name cannot be empty")
	}
	tc := &TestCase{
		BaseEntity:     shared.NewBaseEntity(),
		InterfaceID:    interfaceID,
		Name:           name,
		ExpectedResult: expected,
		AssertRule:     rule.Encode(),
		CreatorID:      creatorID,
	}
	if err := tc.setJSONMap(&tc.RequestParams, params); err != nil {
		return nil, err
	}
	if err := tc.setJSONMap(&tc.RequestHeaders, headers); err != nil {
		return nil, err
	}
	return tc, nil
}

func (tc *TestCase) setJSONMap(dst *string, m map[string]string) error {
	if len(m) == 0 {
		*dst = ""
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Case values are not serializable")
	}
	*dst = string(raw)
	return nil
}

// ParamMap decodes the stored request parameters. A malformed column is
// a hard error: the invoker must report it as an ERROR result rather
// than silently sending an empty request.
func (tc *TestCase) ParamMap() (map[string]string, error) {
	return decodeStoredMap(tc.RequestParams, "request parameters")
}

// HeaderMap decodes the stored request headers
func (tc *TestCase) HeaderMap() (map[string]string, error) {
	return decodeStoredMap(tc.RequestHeaders, "request headers")
}

// Rule decodes the stored assertion rule
func (tc *TestCase) Rule() (Rule, error) {
	return DecodeRule(tc.AssertRule)
}

func decodeStoredMap(raw, what string) (map[string]string, error) {
	values := make(map[string]string)
	if raw == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, shared.NewDomainError("PARSE_ERROR",
			fmt.Sprintf("Stored %s are not valid JSON: %v", what, err))
	}
	return values, nil
}
