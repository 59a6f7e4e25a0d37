package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/ventas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/ventas-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "vendedor-jwt"
	testIssuer    = "ventas-api-test"
	testExpMin    = 60
)

// buildActorApp aplicación mínima con ActorMiddleware y un handler que devuelve el actor.
func buildActorApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", apphttp.ActorMiddleware(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"actor": apphttp.GetActorID(c)})
	})
	return app
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doGet(t *testing.T, app *fiber.App, authHeader string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// ActorMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestActorMiddleware_TokenValido_CargaActor(t *testing.T) {
	status, body := doGet(t, buildActorApp(testJWTSecret), bearer(t, testUserID))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, testUserID, body["actor"])
}

func TestActorMiddleware_SinHeader_401(t *testing.T) {
	status, body := doGet(t, buildActorApp(testJWTSecret), "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestActorMiddleware_FormatoInvalido_401(t *testing.T) {
	status, body := doGet(t, buildActorApp(testJWTSecret), "Token abc")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestActorMiddleware_FirmaIncorrecta_401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, testIssuer, testExpMin)
	require.NoError(t, err)
	status, body := doGet(t, buildActorApp(testJWTSecret), "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestActorMiddleware_TokenExpirado_401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)
	status, _ := doGet(t, buildActorApp(testJWTSecret), "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestActorMiddleware_SinSecreto_NoExigeToken(t *testing.T) {
	status, body := doGet(t, buildActorApp(""), "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "", body["actor"])
}
