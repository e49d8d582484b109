package handlers

import (
	"errors"
	"net/http"

	"shelf_life_app_go/services"
	"shelf_life_app_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// httpError maps service errors to HTTP errors with a localized message.
func httpError(c echo.Context, err error) error {
	ctx := c.Request().Context()
	switch {
	case errors.Is(err, services.ErrUnknownField):
		return echo.NewHTTPError(http.StatusBadRequest, i18n.T(ctx, "errors.unknown_field")).SetInternal(err)
	case errors.Is(err, services.ErrWorkspaceNotFound):
		return echo.NewHTTPError(http.StatusNotFound, i18n.T(ctx, "errors.workspace_not_found")).SetInternal(err)
	case errors.Is(err, services.ErrCursorPending), errors.Is(err, services.ErrNoPendingCursor):
		return echo.NewHTTPError(http.StatusConflict, i18n.T(ctx, "errors.cursor_pending")).SetInternal(err)
	}
	return err
}
