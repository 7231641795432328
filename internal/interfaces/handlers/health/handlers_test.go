package health

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"wasteline-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHealthTest(t *testing.T) (*fiber.App, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	h := &Handlers{Rdb: rdb, AdminKey: "admin-key"}
	app := fiber.New()
	app.Get("/", h.Root)
	app.Get("/health/json", h.JSON)
	app.Post("/health/reset", h.Reset)
	return app, rdb
}

func TestRoot(t *testing.T) {
	app, _ := setupHealthTest(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "Wasteline API is running", result["message"])
}

func TestJSON(t *testing.T) {
	app, _ := setupHealthTest(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, "issue", result["status"]) // no DB wired
	deps := result["dependencies"].(map[string]interface{})
	redisDep := deps["redis"].(map[string]interface{})
	assert.Equal(t, "connected", redisDep["status"])
}

func TestReset_RequiresAdminKey(t *testing.T) {
	app, rdb := setupHealthTest(t)
	require.NoError(t, rdb.Set(context.Background(), middleware.KeyReqTotal, 5, 0).Err())

	resp, err := app.Test(httptest.NewRequest("POST", "/health/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	req := httptest.NewRequest("POST", "/health/reset", nil)
	req.Header.Set("X-Admin-Key", "wrong")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestReset_ClearsCounters(t *testing.T) {
	app, rdb := setupHealthTest(t)
	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, middleware.KeyReqTotal, 5, 0).Err())

	req := httptest.NewRequest("POST", "/health/reset", nil)
	req.Header.Set("X-Admin-Key", "admin-key")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	_, err = rdb.Get(ctx, middleware.KeyReqTotal).Result()
	assert.Equal(t, redis.Nil, err)
}
