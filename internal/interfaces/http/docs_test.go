package http_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// El servidor monta la UI de Swagger sobre docs/swagger.json: la spec tiene
// que venir en el repo (un despliegue sin ella arranca sin UI de docs, pero
// el checkout de referencia la trae) y documentar todas las rutas
// registradas.
func TestSwaggerSpec_CubreLasRutas(t *testing.T) {
	data, err := os.ReadFile("../../../docs/swagger.json")
	require.NoError(t, err, "docs/swagger.json debe venir en el repo")

	var spec struct {
		Swagger string                            `json:"swagger"`
		Paths   map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(data, &spec), "la spec debe ser JSON válido")
	assert.Equal(t, "2.0", spec.Swagger)

	app := newTestApp(t)
	for _, route := range app.GetRoutes(true) {
		if route.Method == "HEAD" {
			continue
		}
		path := strings.TrimSuffix(route.Path, "/")
		path = strings.ReplaceAll(path, ":id", "{id}")

		operations, ok := spec.Paths[path]
		require.True(t, ok, "ruta %s ausente en la spec", path)
		assert.Contains(t, operations, strings.ToLower(route.Method),
			"método %s no documentado para %s", route.Method, path)
	}
}
