package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"creditscan/docs"
)

func TestSwaggerDocRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(doc)), "rendered swagger doc must be valid JSON")

	var parsed struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, "/api/v1", parsed.BasePath)
	for _, p := range []string{
		"/reports", "/reports/{id}", "/reports/{id}/parse", "/reports/{id}/result",
		"/reports/{id}/export", "/reports/{id}/download", "/parse/text", "/stats",
	} {
		assert.Contains(t, parsed.Paths, p)
	}
}
