package middleware

import (
	"errors"
	"net/http"

	"shelf_life_app_go/config"
	"shelf_life_app_go/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	// WorkspaceCookie holds the id of the browser's calculator workspace.
	WorkspaceCookie = "workspace_id"
	// WorkspaceIDKey is the echo context key of the workspace id.
	WorkspaceIDKey = "workspace_id"
)

// Workspace makes sure the request has a workspace, creating one (and the
// cookie) when the cookie is missing or its workspace was cleaned up.
func Workspace(svc *services.WorkspaceService, cfg *config.Config, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if cookie, err := c.Cookie(WorkspaceCookie); err == nil && cookie.Value != "" {
				_, err := svc.Get(ctx, cookie.Value)
				if err == nil {
					c.Set(WorkspaceIDKey, cookie.Value)
					return next(c)
				}
				if !errors.Is(err, services.ErrWorkspaceNotFound) {
					return err
				}
				log.Debug("workspace cookie is stale", zap.String("workspace_id", cookie.Value))
			}

			ws, err := svc.Create(ctx)
			if err != nil {
				return err
			}
			c.SetCookie(&http.Cookie{
				Name:     WorkspaceCookie,
				Value:    ws.ID(),
				Path:     "/",
				MaxAge:   int(cfg.WorkspaceTTL.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Secure:   cfg.SecureCookies,
			})
			c.Set(WorkspaceIDKey, ws.ID())
			return next(c)
		}
	}
}

// GetWorkspaceID returns the workspace id stored by the Workspace middleware.
func GetWorkspaceID(c echo.Context) string {
	id, _ := c.Get(WorkspaceIDKey).(string)
	return id
}
