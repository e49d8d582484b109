package pages

import (
	"context"
	"io"
	"strings"

	"shelf_life_app_go/config"
	"shelf_life_app_go/middleware"
	"shelf_life_app_go/services/i18n"
	"shelf_life_app_go/templates/components"
	"shelf_life_app_go/templates/partials"

	"github.com/a-h/templ"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Calculator renders the full page: three date inputs, the action buttons and
// the results panel.
func Calculator(v CalculatorView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		nonce := middleware.GetNonce(ctx)

		themeLabel := i18n.T(ctx, "actions.theme_dark")
		if v.Theme == config.ThemeDark {
			themeLabel = i18n.T(ctx, "actions.theme_light")
		}

		hw.Raw(`<!DOCTYPE html>`)
		hw.Printf(`<html lang="%s" data-theme="%s">`, v.Lang, v.Theme)
		hw.Raw(`<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.Raw(`<meta name="htmx-config" content='{"includeIndicatorStyles":false}'>`)
		hw.Printf(`<title>%s</title>`, v.Title)
		hw.Printf(`<link rel="stylesheet" href="/static/css/style.css?v=%s">`, middleware.GetCSSVersion(ctx))
		hw.Printf(`<script src="%s" nonce="%s"></script>`, htmxSrc, nonce)
		hw.Printf(`<script src="/static/js/calculator.js?v=%s" nonce="%s" defer></script>`, middleware.GetJSVersion(ctx), nonce)
		hw.Raw(`</head>`)

		hw.Printf(`<body hx-headers='{"X-CSRF-Token": "%s"}'>`, v.CSRFToken)
		hw.Raw(`<main class="container">`)
		hw.Printf(`<header class="page-header"><h1>%s</h1><p>%s</p>`, v.Title, i18n.T(ctx, "app.subtitle"))
		hw.Printf(`<button type="button" class="btn btn-ghost" id="theme-toggle" hx-post="/theme/toggle" hx-swap="none">%s</button>`, themeLabel)
		hw.Raw(`<nav class="languages">`)
		for _, lang := range i18n.Supported() {
			if lang == v.Lang {
				hw.Printf(`<span class="lang-current">%s</span>`, strings.ToUpper(lang))
				continue
			}
			hw.Printf(`<a href="/?lang=%s">%s</a>`, lang, strings.ToUpper(lang))
		}
		hw.Raw(`</nav>`)
		hw.Raw(`</header>`)

		hw.Raw(`<section class="fields">`)
		for _, f := range v.Fields {
			hw.Component(func(w io.Writer) error {
				return partials.DateInput(f).Render(ctx, w)
			})
		}
		hw.Raw(`</section>`)

		hw.Raw(`<div class="actions">`)
		hw.Component(func(w io.Writer) error {
			return partials.ClearButton(v.CanClear).Render(ctx, w)
		})
		hw.Printf(`<button type="button" class="btn btn-ghost" hx-post="/reset" hx-swap="none">%s</button>`, i18n.T(ctx, "actions.reset"))
		hw.Printf(`<a class="btn btn-ghost" href="/export.xlsx">%s</a>`, i18n.T(ctx, "actions.export"))
		hw.Raw(`</div>`)

		hw.Component(func(w io.Writer) error {
			return partials.Results(v.Result).Render(ctx, w)
		})

		hw.Raw(`</main></body></html>`)
		return hw.Err()
	})
}
