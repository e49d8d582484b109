package handlers

import (
	"net/http"
	"time"

	"shelf_life_app_go/services/shelflife"

	"github.com/labstack/echo/v4"
)

type maskRequest struct {
	PreviousDisplayed string `json:"previous_displayed"`
	RawEdited         string `json:"raw_edited"`
	Cursor            *int   `json:"cursor"`
}

type maskResponse struct {
	Displayed string  `json:"displayed"`
	Cursor    int     `json:"cursor"`
	Date      *string `json:"date"`
	Deleting  bool    `json:"deleting"`
}

// MaskAPIHandler runs the masking engine on one keystroke without any state
func MaskAPIHandler(c echo.Context) error {
	var req maskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if len(req.PreviousDisplayed) > maxRawLength {
		return echo.NewHTTPError(http.StatusBadRequest, "input too long")
	}
	if err := checkRaw(req.RawEdited); err != nil {
		return err
	}

	raw := req.RawEdited
	cursor := len(raw)
	if req.Cursor != nil {
		cursor = *req.Cursor
	}

	res := shelflife.MaskKeystroke(req.PreviousDisplayed, raw, cursor)
	resp := maskResponse{
		Displayed: res.Displayed,
		Cursor:    res.Cursor,
		Deleting:  res.Deleting,
	}
	if res.HasDate {
		formatted := shelflife.Format(res.Date)
		resp.Date = &formatted
	}
	return c.JSON(http.StatusOK, resp)
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Date   *string `json:"date"`
	Reason string  `json:"reason,omitempty"`
}

// ParseAPIHandler parses a DD/MM/YYYY string and reports why it was rejected
func ParseAPIHandler(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	d, reason := shelflife.ParseReason(req.Text)
	if reason != shelflife.ReasonNone {
		return c.JSON(http.StatusOK, parseResponse{Reason: string(reason)})
	}
	formatted := shelflife.Format(d)
	return c.JSON(http.StatusOK, parseResponse{Date: &formatted})
}

type calculateRequest struct {
	Elaboration *string `json:"elaboration"`
	Expiration  *string `json:"expiration"`
	Evaluation  *string `json:"evaluation"`
}

type calculateResponse struct {
	Calculation *shelflife.Calculation `json:"calculation"`
}

// CalculateAPIHandler evaluates the given dates. A missing evaluation date
// means today; unparseable product dates count as absent.
func CalculateAPIHandler(now func() time.Time) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req calculateRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
		}

		dates := shelflife.ProductDates{
			Elaboration: optionalParse(req.Elaboration),
			Expiration:  optionalParse(req.Expiration),
			Evaluation:  shelflife.Today(now),
		}
		if req.Evaluation != nil {
			d, reason := shelflife.ParseReason(*req.Evaluation)
			if reason != shelflife.ReasonNone {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid evaluation date: "+string(reason))
			}
			dates.Evaluation = d
		}

		var resp calculateResponse
		if calc, ok := shelflife.Calculate(dates); ok {
			resp.Calculation = &calc
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func optionalParse(text *string) *shelflife.CalendarDate {
	if text == nil {
		return nil
	}
	d, ok := shelflife.Parse(*text)
	if !ok {
		return nil
	}
	return &d
}

// HealthHandler reports that the server and database respond
func HealthHandler(ping func() error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := ping(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
