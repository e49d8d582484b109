package middleware

import (
	"net/http"
	"time"

	"shelf_life_app_go/config"
	"shelf_life_app_go/services/i18n"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

// LangCookie stores the chosen UI language.
const LangCookie = "lang"

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header, matched against the loaded locales
// 4. Default (cfg.DefaultLocale)
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	supported := i18n.Supported()
	fallback := cfg.DefaultLocale
	if fallback == "" {
		fallback = i18n.DefaultLocale
	}
	matcher := newMatcher(fallback, supported)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := ""
			if q := c.QueryParam("lang"); q != "" {
				lang = matchLocale(matcher, fallback, supported, q)
				SetLanguageCookie(c, cfg, lang)
			} else if cookie, err := c.Cookie(LangCookie); err == nil {
				lang = matchLocale(matcher, fallback, supported, cookie.Value)
			} else {
				lang = matchLocale(matcher, fallback, supported, c.Request().Header.Get("Accept-Language"))
			}

			c.Set("locale", lang)
			ctx := i18n.WithLocale(c.Request().Context(), lang)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func newMatcher(fallback string, supported []string) language.Matcher {
	tags := []language.Tag{language.Make(fallback)}
	for _, s := range supported {
		if s != fallback {
			tags = append(tags, language.Make(s))
		}
	}
	return language.NewMatcher(tags)
}

// matchLocale maps an Accept-Language style value to a supported locale.
func matchLocale(m language.Matcher, fallback string, supported []string, value string) string {
	if value == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	tag, _, confidence := m.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	base, _ := tag.Base()
	for _, s := range supported {
		if s == base.String() {
			return s
		}
	}
	return fallback
}

// SetLanguageCookie sets the language cookie
func SetLanguageCookie(c echo.Context, cfg *config.Config, lang string) {
	c.SetCookie(&http.Cookie{
		Name:     LangCookie,
		Value:    lang,
		Expires:  time.Now().Add(24 * 365 * time.Hour),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.SecureCookies,
	})
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok {
		return lang
	}
	return i18n.Default()
}
