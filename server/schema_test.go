package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportSchema() InputSchema {
	return InputSchema{
		Type: "object",
		Properties: map[string]Property{
			"path":    {Type: "string", Description: "Notebook path"},
			"format":  {Type: "string", Enum: []string{"SOURCE", "HTML"}, Default: "SOURCE"},
			"limit":   {Type: "integer"},
			"ratio":   {Type: "number"},
			"dry_run": {Type: "boolean"},
			"params":  {Type: "object"},
		},
		Required: []string{"path"},
	}
}

func TestValidateAccepts(t *testing.T) {
	validated, err := exportSchema().Validate(map[string]any{
		"path":    "/Users/a",
		"format":  "HTML",
		"limit":   float64(10),
		"ratio":   0.5,
		"dry_run": true,
		"params":  map[string]any{"k": "v"},
	})
	require.NoError(t, err)
	assert.Equal(t, "HTML", validated["format"])
	assert.Equal(t, float64(10), validated["limit"])
}

func TestValidateMissingRequired(t *testing.T) {
	_, err := exportSchema().Validate(map[string]any{})
	require.ErrorIs(t, err, ErrInvalidArguments)
	assert.Contains(t, err.Error(), `missing required parameter "path"`)
}

func TestValidateUnknownParameter(t *testing.T) {
	_, err := exportSchema().Validate(map[string]any{
		"path":     "/Users/a",
		"mystery":  1,
		"mystery2": 2,
	})
	require.ErrorIs(t, err, ErrInvalidArguments)
	assert.Contains(t, err.Error(), `unknown parameter "mystery"`)
	assert.Contains(t, err.Error(), `unknown parameter "mystery2"`)
}

func TestValidateTypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"string gets number", map[string]any{"path": 42}},
		{"integer gets fraction", map[string]any{"path": "/a", "limit": 1.5}},
		{"integer gets string", map[string]any{"path": "/a", "limit": "10"}},
		{"boolean gets string", map[string]any{"path": "/a", "dry_run": "yes"}},
		{"object gets array", map[string]any{"path": "/a", "params": []any{1}}},
		{"number gets bool", map[string]any{"path": "/a", "ratio": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := exportSchema().Validate(tt.args)
			require.ErrorIs(t, err, ErrInvalidArguments)
		})
	}
}

func TestValidateEnum(t *testing.T) {
	_, err := exportSchema().Validate(map[string]any{"path": "/a", "format": "PDF"})
	require.ErrorIs(t, err, ErrInvalidArguments)
	assert.Contains(t, err.Error(), `"format"`)
}

func TestValidateAppliesDefaults(t *testing.T) {
	validated, err := exportSchema().Validate(map[string]any{"path": "/a"})
	require.NoError(t, err)
	assert.Equal(t, "SOURCE", validated["format"])
	_, hasLimit := validated["limit"]
	assert.False(t, hasLimit, "no default declared for limit")
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	args := map[string]any{"path": "/a"}
	_, err := exportSchema().Validate(args)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"path": "/a"}, args)
}
