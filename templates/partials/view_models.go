package partials

import (
	"shelf_life_app_go/services/shelflife"
)

// FieldView is one masked date input.
type FieldView struct {
	Name        string // elaboration, expiration or evaluation
	Label       string
	Placeholder string
	Value       string
	CSRFToken   string
}

// ResultView is the results panel. Calculation is nil when data is insufficient.
type ResultView struct {
	Calculation *shelflife.Calculation
	GraceDays   int
}
