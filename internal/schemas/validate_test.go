package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pair-overlap/internal/types"
)

func writeJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateResult_Empty(t *testing.T) {
	assert.NoError(t, ValidateResult(types.NewEngineResult()))
}

func TestValidateResult_Populated(t *testing.T) {
	top := types.PairResult{
		EmpA:      1,
		EmpB:      types.InvalidEmployeeID,
		Projects:  []types.ProjectOverlap{{Project: "P1", Days: 3}},
		TotalDays: 3,
	}
	result := &types.EngineResult{
		Pairs: []types.PairResult{top},
		Top:   &top,
		Errors: []types.EngineError{
			{Message: `Malformed row: ["x"]`, Kind: types.ErrorKindMalformedRow, Record: []string{"x"}},
			{Message: "Stream error: boom", Kind: types.ErrorKindStream},
		},
	}

	assert.NoError(t, ValidateResult(result))
}

func TestValidateResult_NilSlicesRejected(t *testing.T) {
	err := ValidateResult(&types.EngineResult{})
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Len(t, validationErr.Errors, 2)
}

func TestValidateResult_ZeroDayOverlapRejected(t *testing.T) {
	result := types.NewEngineResult()
	result.Pairs = []types.PairResult{{EmpA: 1, EmpB: 2, Projects: []types.ProjectOverlap{{Project: "P", Days: 0}}, TotalDays: 0}}

	err := ValidateResult(result)
	require.Error(t, err)
	_, ok := err.(*ValidationError)
	assert.True(t, ok)
}

func TestValidateResultFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "valid",
			content: `{"pairs":[],"top":null,"errors":[{"message":"Stream error: x","type":"stream_error","record":null}]}`,
		},
		{
			name:    "missing top",
			content: `{"pairs":[],"errors":[]}`,
			wantErr: true,
		},
		{
			name:    "unknown error kind",
			content: `{"pairs":[],"top":null,"errors":[{"message":"m","type":"other","record":null}]}`,
			wantErr: true,
		},
		{
			name:    "employee id wrong type",
			content: `{"pairs":[{"empA":"1","empB":2,"projects":[{"project":"P","days":1}],"totalDays":1}],"top":null,"errors":[]}`,
			wantErr: true,
		},
		{
			name:    "extra property",
			content: `{"pairs":[],"top":null,"errors":[],"extra":true}`,
			wantErr: true,
		},
		{
			name:    "malformed",
			content: `{"pairs": [`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResultFile(writeJSON(t, tt.content))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			_, ok := err.(*ValidationError)
			assert.True(t, ok, "error should be ValidationError type, got %T", err)
		})
	}
}

func TestValidateResultFile_NotFound(t *testing.T) {
	err := ValidateResultFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_Valid(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`
	assert.NoError(t, ValidateJSONString(schema, `{"name":"ok"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	err := ValidateJSONString(schema, `{"name":5}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "name", validationErr.Errors[0].Field)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "(string schema)", loadErr.Path)
	assert.NotNil(t, loadErr.Unwrap())
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "top", Message: "Invalid type"},
		{Field: "(root)", Message: "pairs is required"},
	}}

	assert.Equal(t, "validation failed:\n  1. top: Invalid type\n  2. (root): pairs is required\n", err.Error())
}
