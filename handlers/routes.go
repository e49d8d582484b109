package handlers

import (
	"shelf_life_app_go/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RegisterCalculatorRoutes mounts the workspace-backed routes. The workspace
// middleware is attached per route so unknown paths never create a workspace.
func RegisterCalculatorRoutes(e *echo.Echo, svc *services.WorkspaceService, workspace, keystrokeLimit echo.MiddlewareFunc, log *zap.Logger) {
	e.GET("/", CalculatorPageHandler(svc), workspace)
	e.POST("/fields/:field/keystroke", KeystrokeHandler(svc, log), keystrokeLimit, workspace)
	e.POST("/dates/clear", ClearDatesHandler(svc), workspace)
	e.POST("/reset", ResetHandler(svc), workspace)
	e.POST("/theme/toggle", ToggleThemeHandler(svc), workspace)
	e.GET("/results", ResultsHandler(svc), workspace)
	e.GET("/export.xlsx", ExportHandler(svc), workspace)
}
