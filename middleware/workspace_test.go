package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shelf_life_app_go/config"
	"shelf_life_app_go/models"
	"shelf_life_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newWorkspaceService(t *testing.T) (*services.WorkspaceService, *config.Config) {
	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Workspace{}, &models.Preference{}))

	cfg := &config.Config{WorkspaceTTL: time.Hour, Timezone: "UTC"}
	return services.NewWorkspaceService(db, cfg, nil), cfg
}

func TestWorkspaceMiddleware(t *testing.T) {
	e := echo.New()
	svc, cfg := newWorkspaceService(t)
	mw := Workspace(svc, cfg, zap.NewNop())

	var seen string
	handler := mw(func(c echo.Context) error {
		seen = GetWorkspaceID(c)
		return c.NoContent(http.StatusOK)
	})

	t.Run("CreatesWorkspaceWithoutCookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, handler(c))
		require.NotEmpty(t, seen)

		cookie := findCookie(rec, WorkspaceCookie)
		require.NotNil(t, cookie)
		assert.Equal(t, seen, cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, 3600, cookie.MaxAge)

		_, err := svc.Get(context.Background(), seen)
		assert.NoError(t, err)
	})

	t.Run("ReusesExistingWorkspace", func(t *testing.T) {
		ws, err := svc.Create(context.Background())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: WorkspaceCookie, Value: ws.ID()})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, handler(c))
		assert.Equal(t, ws.ID(), seen)
		assert.Nil(t, findCookie(rec, WorkspaceCookie))
	})

	t.Run("ReplacesStaleCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: WorkspaceCookie, Value: uuid.New().String()})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, handler(c))
		cookie := findCookie(rec, WorkspaceCookie)
		require.NotNil(t, cookie)
		assert.Equal(t, seen, cookie.Value)
	})
}

func TestGetWorkspaceIDMissing(t *testing.T) {
	c := echo.New().NewContext(nil, nil)
	assert.Empty(t, GetWorkspaceID(c))
}
