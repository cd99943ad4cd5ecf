package spec

import (
	"fmt"
	"strings"

	"github.com/apitest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParamLocation identifies where a parameter travels in a request, or
// whether it describes the expected response shape.
type ParamLocation string

const (
	LocationPath     ParamLocation = "PATH"
	LocationQuery    ParamLocation = "QUERY"
	LocationBody     ParamLocation = "BODY"
	LocationHeader   ParamLocation = "HEADER"
	LocationResponse ParamLocation = "RESPONSE"
)

// RequestLocations lists the locations that contribute to outbound
// requests, in the canonical order used by case synthesis. RESPONSE
// parameters are descriptive only.
func RequestLocations() []ParamLocation {
	return []ParamLocation{LocationPath, LocationQuery, LocationBody, LocationHeader}
}

// DataType is the canonical type vocabulary for parameter values
type DataType string

const (
	TypeString  DataType = "string"
	TypeNumber  DataType = "number"
	TypeBoolean DataType = "boolean"
	TypeArray   DataType = "array"
	TypeObject  DataType = "object"
	TypeNull    DataType = "null"
)

// ParseDataType maps a declared type string onto the canonical
// vocabulary. Unknown or custom types fall back to string.
func ParseDataType(s string) DataType {
	switch DataType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeString, TypeNumber, TypeBoolean, TypeArray, TypeObject, TypeNull:
		return DataType(strings.ToLower(strings.TrimSpace(s)))
	case "int", "integer", "float", "double", "long":
		return TypeNumber
	case "bool":
		return TypeBoolean
	default:
		return TypeString
	}
}

// Parameter is one normalized input or output parameter of an interface.
// Name carries the full dotted path for parameters that originate from
// nested structures (e.g. "data.user.name"). Parameters are immutable
// after normalization; re-import upserts by (interface, name, location).
type Parameter struct {
	shared.BaseEntity
	InterfaceID  uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_param_iface_name_loc,priority:1"`
	Name         string        `gorm:"type:varchar(200);not null;uniqueIndex:idx_param_iface_name_loc,priority:2"`
	Location     ParamLocation `gorm:"type:varchar(10);not null;uniqueIndex:idx_param_iface_name_loc,priority:3"`
	DataType     DataType      `gorm:"type:varchar(10);not null"`
	Required     bool          `gorm:"not null;default:false"`
	ParentKey    string        `gorm:"type:varchar(200)"`
	ExampleValue string        `gorm:"type:varchar(500)"`
	Constraint   string        `gorm:"type:varchar(200)"` // e.g. "min=1000;max=3000"
}

// TableName returns the table name for GORM
func (Parameter) TableName() string {
	return "interface_params"
}

// IsRequestParam reports whether the parameter contributes to outbound requests
func (p *Parameter) IsRequestParam() bool {
	return p.Location != LocationResponse
}

// NumericRange is a parsed min/max constraint on a number parameter
type NumericRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// OutOfRangeValue returns the canonical out-of-range probe value (max+1)
func (r NumericRange) OutOfRangeValue() decimal.Decimal {
	return r.Max.Add(decimal.NewFromInt(1))
}

// ParseConstraint parses a "min=<n>;max=<n>" constraint expression.
// Returns (nil, nil) for an empty constraint. A malformed expression is a
// validation error; callers recover by treating the parameter as
// unconstrained.
func ParseConstraint(expr string) (*NumericRange, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	var r NumericRange
	var haveMin, haveMax bool
	for _, part := range strings.Split(expr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			return nil, shared.NewDomainError("INVALID_CONSTRAINT",
				fmt.Sprintf("Constraint segment %q is not key=value", part))
		}
		num, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, shared.NewDomainError("INVALID_CONSTRAINT",
				fmt.Sprintf("Constraint value %q is not numeric", value))
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "min":
			r.Min = num
			haveMin = true
		case "max":
			r.Max = num
			haveMax = true
		default:
			return nil, shared.NewDomainError("INVALID_CONSTRAINT",
				fmt.Sprintf("Unknown constraint key %q", key))
		}
	}
	if !haveMin || !haveMax {
		return nil, shared.NewDomainError("INVALID_CONSTRAINT", "Constraint must define both min and max")
	}
	if r.Min.GreaterThan(r.Max) {
		return nil, shared.NewDomainError("INVALID_CONSTRAINT", "Constraint min cannot exceed max")
	}
	return &r, nil
}

// Range returns the parsed numeric constraint of the parameter, or nil
// when the parameter is unconstrained, not numeric, or carries a
// malformed expression.
func (p *Parameter) Range() *NumericRange {
	if p.DataType != TypeNumber {
		return nil
	}
	r, err := ParseConstraint(p.Constraint)
	if err != nil {
		return nil
	}
	return r
}
