package partials

import (
	"context"
	"io"

	"shelf_life_app_go/services/i18n"
	"shelf_life_app_go/templates/components"

	"github.com/a-h/templ"
)

// ClearButton renders "clear dates", disabled while neither product date is set.
func ClearButton(enabled bool) templ.Component {
	return clearButton(enabled, false)
}

// ClearButtonOOB renders the button for an out-of-band htmx swap.
func ClearButtonOOB(enabled bool) templ.Component {
	return clearButton(enabled, true)
}

func clearButton(enabled, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<button type="button" id="clear-dates" class="btn" hx-post="/dates/clear" hx-swap="none"`)
		if oob {
			hw.Raw(` hx-swap-oob="true"`)
		}
		if !enabled {
			hw.Raw(` disabled`)
		}
		hw.Printf(`>%s</button>`, i18n.T(ctx, "actions.clear"))
		return hw.Err()
	})
}
