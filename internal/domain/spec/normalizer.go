package spec

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Normalization flattens the arbitrarily nested parameter trees produced
// by import front-ends into flat Parameter records. Nested maps
// contribute no record of their own; only their leaves become
// parameters, named by the full dotted path.

// Warning describes one leaf that was skipped during normalization
type Warning struct {
	Key    string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("parameter %q skipped: %s", w.Key, w.Reason)
}

// NormalizeTree flattens one nested parameter tree tagged with a single
// location. Keys are visited in sorted order so that normalizing the
// same tree twice yields the same parameter sequence. A leaf that cannot
// be stringified is skipped with a warning; normalization always
// completes for the remaining parameters.
func NormalizeTree(tree map[string]any, location ParamLocation) ([]Parameter, []Warning) {
	var params []Parameter
	var warnings []Warning
	normalizeInto(tree, location, "", &params, &warnings)
	return params, warnings
}

func normalizeInto(tree map[string]any, location ParamLocation, parentKey string, out *[]Parameter, warnings *[]Warning) {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fullKey := key
		if parentKey != "" {
			fullKey = parentKey + "." + key
		}

		value := tree[key]
		if nested, ok := value.(map[string]any); ok {
			normalizeInto(nested, location, fullKey, out, warnings)
			continue
		}

		example, dataType, err := stringifyLeaf(value)
		if err != nil {
			*warnings = append(*warnings, Warning{Key: fullKey, Reason: err.Error()})
			continue
		}

		*out = append(*out, Parameter{
			Name:         fullKey,
			Location:     location,
			DataType:     dataType,
			Required:     true, // present in the example payload; importers clear it for explicitly optional params
			ParentKey:    parentKey,
			ExampleValue: example,
		})
	}
}

// stringifyLeaf converts a leaf value to its opaque string example and
// infers the canonical data type.
func stringifyLeaf(value any) (string, DataType, error) {
	switch v := value.(type) {
	case nil:
		return "", TypeNull, nil
	case bool:
		return strconv.FormatBool(v), TypeBoolean, nil
	case string:
		return v, TypeString, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), TypeNumber, nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), TypeNumber, nil
	case int:
		return strconv.Itoa(v), TypeNumber, nil
	case int64:
		return strconv.FormatInt(v, 10), TypeNumber, nil
	case json.Number:
		return v.String(), TypeNumber, nil
	case []any:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", TypeArray, fmt.Errorf("array value is not serializable: %w", err)
		}
		return string(raw), TypeArray, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", TypeString, fmt.Errorf("value of type %T is not serializable: %w", value, err)
		}
		return string(raw), TypeString, nil
	}
}
