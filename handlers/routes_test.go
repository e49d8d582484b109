package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"shelf_life_app_go/middleware"
	"shelf_life_app_go/models"
	"shelf_life_app_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	cfg := testConfig()
	svc := services.NewWorkspaceService(db, cfg, nil)

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})
	e.Use(middleware.Locale(cfg))

	noLimit := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	RegisterCalculatorRoutes(e, svc, middleware.Workspace(svc, cfg, zap.NewNop()), noLimit, zap.NewNop())
	return e, db
}

func countWorkspaces(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Workspace{}).Count(&n).Error)
	return n
}

func TestUnknownPathDoesNotCreateWorkspace(t *testing.T) {
	e, db := setupRouter(t)

	for _, path := range []string{"/favicon.ico", "/robots.txt", "/fields"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Empty(t, rec.Header().Get("Set-Cookie"), path)
	}
	assert.Zero(t, countWorkspaces(t, db))
}

func TestCalculatorRouteCreatesWorkspace(t *testing.T) {
	e, db := setupRouter(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), middleware.WorkspaceCookie+"=")
	assert.Equal(t, int64(1), countWorkspaces(t, db))
}
