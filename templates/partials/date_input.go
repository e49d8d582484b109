package partials

import (
	"context"
	"io"

	"shelf_life_app_go/services/shelflife"
	"shelf_life_app_go/templates/components"

	"github.com/a-h/templ"
)

// allowedKeysJSON is the key whitelist read by calculator.js.
var allowedKeysJSON = components.JSON(shelflife.NavigationKeys, "[]")

// DateInput renders a masked DD/MM/YYYY input. Each input event posts the raw
// text and caret to the keystroke endpoint, which answers with this partial.
func DateInput(f FieldView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		id := InputID(f.Name)

		hw.Printf(`<div class="field" id="field-%s">`, f.Name)
		hw.Printf(`<label for="%s">%s</label>`, id, f.Label)
		hw.Printf(`<input type="text" id="%s" name="raw" value="%s" placeholder="%s" inputmode="numeric" autocomplete="off" maxlength="%d"`,
			id, f.Value, f.Placeholder, shelflife.MaxDisplayLength)
		hw.Printf(` data-date-field="%s" data-allowed-keys="%s"`, f.Name, allowedKeysJSON)
		hw.Printf(` hx-post="/fields/%s/keystroke" hx-trigger="input" hx-target="#field-%s" hx-swap="outerHTML" hx-sync="this:queue all"`,
			f.Name, f.Name)
		if f.CSRFToken != "" {
			hw.Printf(` hx-headers='{"X-CSRF-Token": "%s"}'`, f.CSRFToken)
		}
		hw.Raw(`></div>`)

		return hw.Err()
	})
}
