package partials

import (
	"context"
	"io"

	"shelf_life_app_go/services/i18n"
	"shelf_life_app_go/templates/components"

	"github.com/a-h/templ"
)

// Results renders the calculation panel, or the insufficient-data placeholder.
func Results(r ResultView) templ.Component {
	return resultsPanel(r, false)
}

// ResultsOOB renders the panel for an out-of-band htmx swap.
func ResultsOOB(r ResultView) templ.Component {
	return resultsPanel(r, true)
}

func resultsPanel(r ResultView, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)

		hw.Raw(`<section id="results" class="results" aria-live="polite"`)
		if oob {
			hw.Raw(` hx-swap-oob="true"`)
		}
		hw.Raw(`>`)
		hw.Printf(`<h2>%s</h2>`, i18n.T(ctx, "results.title"))

		calc := r.Calculation
		if calc == nil {
			hw.Printf(`<p class="results-empty">%s</p>`, i18n.T(ctx, "results.insufficient"))
			hw.Raw(`</section>`)
			return hw.Err()
		}

		hw.Raw(`<dl class="results-grid">`)
		hw.Printf(`<dt>%s</dt><dd data-result="total">%s</dd>`,
			i18n.T(ctx, "results.total_shelf_life"),
			i18n.T(ctx, "results.days", map[string]interface{}{"count": calc.TotalShelfLife}))
		hw.Printf(`<dt>%s</dt><dd data-result="remaining">%s</dd>`,
			i18n.T(ctx, "results.remaining_days"),
			i18n.T(ctx, "results.days", map[string]interface{}{"count": calc.RemainingDays}))
		hw.Printf(`<dt>%s</dt><dd data-result="percentage">%s%%</dd>`,
			i18n.T(ctx, "results.remaining_percentage"), itoa(calc.RemainingPercentage))
		hw.Raw(`</dl>`)

		hw.Printf(`<div class="status %s" data-status="%s"><span class="status-icon" aria-hidden="true">%s</span> <span class="status-message">%s</span></div>`,
			StatusClass(calc.Status), string(calc.Status), StatusIcon(calc.Status), calc.StatusMessage)
		hw.Printf(`<p class="grace-note">%s</p>`,
			i18n.T(ctx, "results.grace_note", map[string]interface{}{"days": r.GraceDays}))
		hw.Raw(`</section>`)

		return hw.Err()
	})
}
