package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosilo/silosys/pkg/middleware/db"
	"github.com/agrosilo/silosys/pkg/repo/migrate"
	"github.com/agrosilo/silosys/pkg/web"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db.InitSQLite(ctx, dsn)
	require.NoError(t, migrate.Table(ctx))

	g := gin.New()
	web.NewRouter(ctx, g)
	return g
}

func doJSON(t *testing.T, g *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, g *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, g, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "maria",
		"email":    "maria@fazenda.br",
		"password": "segredo123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func TestHealth(t *testing.T) {
	g := setupRouter(t)
	rec := doJSON(t, g, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadiness(t *testing.T) {
	g := setupRouter(t)
	rec := doJSON(t, g, http.MethodGet, "/api/health/ready", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)
	assert.Contains(t, rec.Body.String(), `"redis":"disabled"`)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	g := setupRouter(t)

	rec := doJSON(t, g, http.MethodGet, "/api/v1/warehouses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, g, http.MethodGet, "/api/v1/warehouses", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWarehouseFlow(t *testing.T) {
	g := setupRouter(t)
	token := registerUser(t, g)

	rec := doJSON(t, g, http.MethodPost, "/api/v1/warehouses", token, map[string]any{
		"name":     "silo A",
		"capacity": 1000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.Data.ID)

	rec = doJSON(t, g, http.MethodGet, "/api/v1/warehouses", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, g, http.MethodPatch,
		fmt.Sprintf("/api/v1/warehouses/%d", created.Data.ID), token,
		map[string]any{"capacity": 2000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, g, http.MethodDelete,
		fmt.Sprintf("/api/v1/warehouses/%d", created.Data.ID), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, g, http.MethodGet,
		fmt.Sprintf("/api/v1/warehouses/%d", created.Data.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdditionValidationOverHTTP(t *testing.T) {
	g := setupRouter(t)
	token := registerUser(t, g)

	rec := doJSON(t, g, http.MethodPost, "/api/v1/warehouses", token, map[string]any{
		"name":     "silo A",
		"capacity": 100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, g, http.MethodPost, "/api/v1/additions", token, map[string]any{
		"warehouse_id": created.Data.ID,
		"grain_id":     1,
		"quantity":     60,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, g, http.MethodPost, "/api/v1/additions", token, map[string]any{
		"warehouse_id": created.Data.ID,
		"grain_id":     1,
		"quantity":     41,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "max addable 40")
}

func TestGrainAndPlotCatalog(t *testing.T) {
	g := setupRouter(t)
	token := registerUser(t, g)

	rec := doJSON(t, g, http.MethodGet, "/api/v1/grains", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "milho")
	assert.Contains(t, rec.Body.String(), "soja")
	assert.Contains(t, rec.Body.String(), "milheto")

	rec = doJSON(t, g, http.MethodGet, "/api/v1/plots", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "talh")
}

func TestVerifyEndpoint(t *testing.T) {
	g := setupRouter(t)
	token := registerUser(t, g)

	rec := doJSON(t, g, http.MethodGet, "/api/v1/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "maria@fazenda.br")
	assert.NotContains(t, rec.Body.String(), "password")
}
