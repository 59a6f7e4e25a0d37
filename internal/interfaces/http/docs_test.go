package http_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/docs"
)

type swaggerDoc struct {
	Paths map[string]map[string]struct {
		Responses map[string]json.RawMessage `json:"responses"`
	} `json:"paths"`
	Definitions map[string]json.RawMessage `json:"definitions"`
}

func loadSwagger(t *testing.T) swaggerDoc {
	t.Helper()
	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))
	return doc
}

// swaggerPath /api/ventas/:id/estado -> /api/ventas/{id}/estado
func swaggerPath(route string) string {
	parts := strings.Split(strings.TrimSuffix(route, "/"), "/")
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			parts[i] = "{" + strings.TrimPrefix(p, ":") + "}"
		}
	}
	return strings.Join(parts, "/")
}

func TestSwagger_DocumentaTodasLasRutas(t *testing.T) {
	doc := loadSwagger(t)
	app := newSalesApp(t, "")

	documented := 0
	for _, r := range app.GetRoutes(true) {
		if r.Method == fiber.MethodHead || !strings.HasPrefix(r.Path, "/api/") {
			continue
		}
		ops, ok := doc.Paths[swaggerPath(r.Path)]
		if !assert.True(t, ok, "ruta sin documentar: %s", r.Path) {
			continue
		}
		_, ok = ops[strings.ToLower(r.Method)]
		assert.True(t, ok, "método sin documentar: %s %s", r.Method, r.Path)
		documented++
	}
	assert.Equal(t, 7, documented)
}

func TestSwagger_ErroresUsanErrorResponse(t *testing.T) {
	doc := loadSwagger(t)
	require.Contains(t, doc.Definitions, "dto.ErrorResponse")
	require.Contains(t, doc.Definitions, "dto.CreateSaleRequest")

	create := doc.Paths["/api/ventas"]["post"]
	for _, code := range []string{"400", "409", "422"} {
		require.Contains(t, create.Responses, code)
		assert.Contains(t, string(create.Responses[code]), "#/definitions/dto.ErrorResponse")
	}
}
