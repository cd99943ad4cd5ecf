package testcase

import (
	"encoding/json"
	"fmt"

	"github.com/apitest/backend/internal/domain/shared"
)

// CheckKind enumerates the declarative assertion vocabulary. The
// evaluator switches exhaustively over this set; an unknown kind in a
// stored rule evaluates to FAIL, never to a fault.
type CheckKind string

const (
	// CheckStatusEquals passes when the response status equals Status
	CheckStatusEquals CheckKind = "status_equals"
	// CheckStatusIn passes when the response status is any of Statuses
	CheckStatusIn CheckKind = "status_in"
	// CheckBodyFieldEquals passes when the JSON body field at the dotted
	// Path equals Value (compared as strings)
	CheckBodyFieldEquals CheckKind = "body_field_equals"
)

// Check is one assertion clause
type Check struct {
	Kind     CheckKind `json:"kind"`
	Status   int       `json:"status,omitempty"`
	Statuses []int     `json:"statuses,omitempty"`
	Path     string    `json:"path,omitempty"`
	Value    string    `json:"value,omitempty"`
}

// Rule is the sparse assertion predicate of one test case. Only the
// checks present in the rule are evaluated.
type Rule struct {
	Checks []Check `json:"checks"`
}

// StatusEquals builds a status-code equality check
func StatusEquals(status int) Check {
	return Check{Kind: CheckStatusEquals, Status: status}
}

// StatusIn builds a status-code membership check
func StatusIn(statuses ...int) Check {
	return Check{Kind: CheckStatusIn, Statuses: statuses}
}

// BodyFieldEquals builds a response-body field equality check
func BodyFieldEquals(path, value string) Check {
	return Check{Kind: CheckBodyFieldEquals, Path: path, Value: value}
}

// NewRule builds a rule from checks
func NewRule(checks ...Check) Rule {
	return Rule{Checks: checks}
}

// Encode serializes the rule for storage
func (r Rule) Encode() string {
	raw, err := json.Marshal(r)
	if err != nil {
		// Rule contains only plain values; this cannot realistically fail
		return `{"checks":[]}`
	}
	return string(raw)
}

// DecodeRule parses a stored assertion rule
func DecodeRule(raw string) (Rule, error) {
	var r Rule
	if raw == "" {
		return r, shared.NewDomainError("INVALID_RULE", "Assertion rule is empty")
	}
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Rule{}, shared.NewDomainError("INVALID_RULE",
			fmt.Sprintf("Assertion rule is not valid JSON: %v", err))
	}
	if len(r.Checks) == 0 {
		return Rule{}, shared.NewDomainError("INVALID_RULE", "Assertion rule has no checks")
	}
	return r, nil
}
