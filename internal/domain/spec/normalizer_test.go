package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTreeFlattensNestedMaps(t *testing.T) {
	tree := map[string]any{
		"id": float64(42),
		"user": map[string]any{
			"name": "alice",
			"address": map[string]any{
				"city": "Shanghai",
			},
		},
	}

	params, warnings := NormalizeTree(tree, LocationBody)
	require.Empty(t, warnings)
	require.Len(t, params, 3)

	byName := make(map[string]Parameter)
	for _, p := range params {
		byName[p.Name] = p
	}

	id := byName["id"]
	assert.Equal(t, TypeNumber, id.DataType)
	assert.Equal(t, "42", id.ExampleValue)
	assert.Equal(t, "", id.ParentKey)
	assert.True(t, id.Required)

	name := byName["user.name"]
	assert.Equal(t, TypeString, name.DataType)
	assert.Equal(t, "user", name.ParentKey)

	city := byName["user.address.city"]
	assert.Equal(t, "user.address", city.ParentKey)
	assert.Equal(t, "Shanghai", city.ExampleValue)

	// Nested maps contribute no parameter of their own
	_, hasUser := byName["user"]
	assert.False(t, hasUser)
}

func TestNormalizeTreeTypeInference(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantType DataType
		wantVal  string
	}{
		{"string", "hello", TypeString, "hello"},
		{"number integer", float64(7), TypeNumber, "7"},
		{"number fraction", float64(3.5), TypeNumber, "3.5"},
		{"boolean", true, TypeBoolean, "true"},
		{"null", nil, TypeNull, ""},
		{"array", []any{float64(1), float64(2)}, TypeArray, "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, warnings := NormalizeTree(map[string]any{"v": tt.value}, LocationQuery)
			require.Empty(t, warnings)
			require.Len(t, params, 1)
			assert.Equal(t, tt.wantType, params[0].DataType)
			assert.Equal(t, tt.wantVal, params[0].ExampleValue)
			assert.Equal(t, LocationQuery, params[0].Location)
		})
	}
}

func TestNormalizeTreeIsDeterministic(t *testing.T) {
	tree := map[string]any{
		"zeta":  "z",
		"alpha": "a",
		"mid": map[string]any{
			"beta": float64(2),
			"ack":  true,
		},
	}

	first, _ := NormalizeTree(tree, LocationBody)
	second, _ := NormalizeTree(tree, LocationBody)
	require.Equal(t, first, second)

	// Sorted traversal: alpha before mid.* before zeta
	names := make([]string, 0, len(first))
	for _, p := range first {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"alpha", "mid.ack", "mid.beta", "zeta"}, names)
}

func TestNormalizeTreeSkipsUnserializableLeaf(t *testing.T) {
	tree := map[string]any{
		"good": "value",
		"bad":  make(chan int),
	}

	params, warnings := NormalizeTree(tree, LocationBody)
	require.Len(t, params, 1)
	assert.Equal(t, "good", params[0].Name)
	require.Len(t, warnings, 1)
	assert.Equal(t, "bad", warnings[0].Key)
	assert.Contains(t, warnings[0].String(), "skipped")
}
