package handlers

import (
	"encoding/json"
	"html"
	"net/http"
	"strconv"

	"shelf_life_app_go/config"
	"shelf_life_app_go/middleware"
	"shelf_life_app_go/models"
	"shelf_life_app_go/services"
	"shelf_life_app_go/services/i18n"
	"shelf_life_app_go/services/shelflife"
	"shelf_life_app_go/templates/pages"
	"shelf_life_app_go/templates/partials"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// maxRawLength bounds the text accepted for one keystroke (a paste included).
const maxRawLength = 64

// rawPolicy detects markup in keystroke input. The input itself is never
// rewritten: the masking engine needs the exact text and cursor the browser
// sent, and every rendered value is escaped on output.
var rawPolicy = bluemonday.StrictPolicy()

// checkRaw rejects oversized input and input carrying HTML tags or entities.
func checkRaw(raw string) error {
	if len(raw) > maxRawLength {
		return echo.NewHTTPError(http.StatusBadRequest, "input too long")
	}
	if html.UnescapeString(rawPolicy.Sanitize(raw)) != raw {
		return echo.NewHTTPError(http.StatusBadRequest, "markup is not allowed")
	}
	return nil
}

func render(c echo.Context, components ...templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	for _, component := range components {
		if err := component.Render(c.Request().Context(), c.Response().Writer); err != nil {
			return err
		}
	}
	return nil
}

func getConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get("config").(*config.Config); ok {
		return cfg
	}
	return &config.Config{DefaultTheme: config.ThemeLight}
}

func fieldViews(c echo.Context, ws *services.Workspace) []partials.FieldView {
	token := middleware.GetCSRFToken(c)
	views := make([]partials.FieldView, 0, len(models.DateFields))
	for _, field := range models.DateFields {
		value, _ := ws.Displayed(field)
		views = append(views, fieldView(c, field, value, token))
	}
	return views
}

func fieldView(c echo.Context, field, value, token string) partials.FieldView {
	ctx := c.Request().Context()
	return partials.FieldView{
		Name:        field,
		Label:       i18n.T(ctx, "fields."+field),
		Placeholder: i18n.T(ctx, "fields.placeholder"),
		Value:       value,
		CSRFToken:   token,
	}
}

func resultView(ws *services.Workspace) partials.ResultView {
	view := partials.ResultView{GraceDays: shelflife.GraceDays}
	if calc, ok := ws.Calculation(); ok {
		view.Calculation = &calc
	}
	return view
}

// CalculatorPageHandler renders the calculator for the request's workspace
func CalculatorPageHandler(svc *services.WorkspaceService) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		cfg := getConfig(c)

		ws, err := svc.Get(ctx, middleware.GetWorkspaceID(c))
		if err != nil {
			return httpError(c, err)
		}
		theme, err := ws.Theme(ctx, cfg.DefaultTheme)
		if err != nil {
			return err
		}

		view := pages.CalculatorView{
			Title:     i18n.T(ctx, "app.title"),
			Lang:      middleware.GetLocale(c),
			Theme:     theme,
			CSRFToken: middleware.GetCSRFToken(c),
			Fields:    fieldViews(c, ws),
			CanClear:  ws.HasProductDates(),
			Result:    resultView(ws),
		}
		return render(c, pages.Calculator(view))
	}
}

// caretEvent is sent in HX-Trigger-After-Settle so the script can restore the caret
type caretEvent struct {
	Field    string `json:"field"`
	Position int    `json:"position"`
}

// KeystrokeHandler masks one keystroke, applies the cursor to the rendered
// input and returns the input plus an out-of-band results panel.
func KeystrokeHandler(svc *services.WorkspaceService, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		field := c.Param("field")

		raw := c.FormValue("raw")
		if err := checkRaw(raw); err != nil {
			return err
		}

		cursor, err := strconv.Atoi(c.FormValue("cursor"))
		if err != nil {
			cursor = len(raw)
		}

		var displayed string
		var position int
		ws, err := svc.Update(ctx, middleware.GetWorkspaceID(c), func(ws *services.Workspace) error {
			res, err := ws.Keystroke(field, raw, cursor)
			if err != nil {
				return err
			}
			// The rendered input holds exactly the displayed text.
			displayed = res.Displayed
			position, err = ws.ApplyCursor(field, displayed)
			return err
		})
		if err != nil {
			log.Debug("keystroke rejected", zap.String("field", field), zap.Error(err))
			return httpError(c, err)
		}

		trigger, err := json.Marshal(map[string]caretEvent{
			"caret": {Field: field, Position: position},
		})
		if err != nil {
			return err
		}
		c.Response().Header().Set("HX-Trigger-After-Settle", string(trigger))

		return render(c,
			partials.DateInput(fieldView(c, field, displayed, middleware.GetCSRFToken(c))),
			partials.ResultsOOB(resultView(ws)),
			partials.ClearButtonOOB(ws.HasProductDates()),
		)
	}
}

// refresh reloads the page for htmx requests and redirects plain form posts
func refresh(c echo.Context) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Refresh", "true")
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// ClearDatesHandler empties the elaboration and expiration dates
func ClearDatesHandler(svc *services.WorkspaceService) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, err := svc.Update(c.Request().Context(), middleware.GetWorkspaceID(c), func(ws *services.Workspace) error {
			ws.ClearDates()
			return nil
		})
		if err != nil {
			return httpError(c, err)
		}
		return refresh(c)
	}
}

// ResetHandler returns the workspace to its initial state
func ResetHandler(svc *services.WorkspaceService) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, err := svc.Update(c.Request().Context(), middleware.GetWorkspaceID(c), func(ws *services.Workspace) error {
			ws.Reset(svc.LocalNow())
			return nil
		})
		if err != nil {
			return httpError(c, err)
		}
		return refresh(c)
	}
}

// ToggleThemeHandler flips between light and dark
func ToggleThemeHandler(svc *services.WorkspaceService) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		cfg := getConfig(c)
		_, err := svc.Update(ctx, middleware.GetWorkspaceID(c), func(ws *services.Workspace) error {
			_, err := ws.ToggleTheme(ctx, cfg.DefaultTheme)
			return err
		})
		if err != nil {
			return httpError(c, err)
		}
		return refresh(c)
	}
}

// ResultsHandler returns the results panel
func ResultsHandler(svc *services.WorkspaceService) echo.HandlerFunc {
	return func(c echo.Context) error {
		ws, err := svc.Get(c.Request().Context(), middleware.GetWorkspaceID(c))
		if err != nil {
			return httpError(c, err)
		}
		return render(c, partials.Results(resultView(ws)))
	}
}

// ExportHandler downloads the current evaluation as a spreadsheet
func ExportHandler(svc *services.WorkspaceService) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		ws, err := svc.Get(ctx, middleware.GetWorkspaceID(c))
		if err != nil {
			return httpError(c, err)
		}

		buf, err := services.ExportWorkspace(ctx, ws)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate spreadsheet").SetInternal(err)
		}

		c.Response().Header().Set("Content-Disposition", "attachment; filename="+services.ExportFileName)
		return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	}
}
