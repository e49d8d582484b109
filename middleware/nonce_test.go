package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNonce(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		nonce, err := GenerateNonce()
		require.NoError(t, err)
		assert.Len(t, nonce, 22)
		assert.False(t, seen[nonce], "nonce repeated")
		seen[nonce] = true
	}
}

func TestCSPNonce(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var fromRequest string
	handler := CSPNonce(nil)(func(c echo.Context) error {
		fromRequest = GetNonce(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	nonce, ok := c.Get(string(NonceKey)).(string)
	require.True(t, ok)
	assert.NotEmpty(t, nonce)
	assert.Equal(t, nonce, fromRequest)
	assert.Equal(t, ContentSecurityPolicy(nonce), rec.Header().Get("Content-Security-Policy"))
}

func TestContentSecurityPolicy(t *testing.T) {
	csp := ContentSecurityPolicy("abc")

	assert.Contains(t, csp, "script-src 'self' 'nonce-abc' https://unpkg.com;")
	assert.Contains(t, csp, "style-src 'self' 'nonce-abc';")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.NotContains(t, csp, "unsafe-eval")
	assert.NotContains(t, csp, "unsafe-inline")
}

func TestGetNonce(t *testing.T) {
	ctx := context.WithValue(context.Background(), NonceKey, "test-nonce")
	assert.Equal(t, "test-nonce", GetNonce(ctx))
	assert.Equal(t, "", GetNonce(context.Background()))
}
