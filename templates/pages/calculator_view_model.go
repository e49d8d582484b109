package pages

import (
	"shelf_life_app_go/templates/partials"
)

// CalculatorView holds the data for the calculator page
type CalculatorView struct {
	Title     string
	Lang      string
	Theme     string
	CSRFToken string
	Fields    []partials.FieldView
	// CanClear is false while neither product date is set
	CanClear bool
	Result   partials.ResultView
}
