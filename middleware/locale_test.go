package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"reflexo_app_go/config"
	"reflexo_app_go/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func runLocale(t *testing.T, cfg *config.Config, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Locale(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, handler(c))
	return c, rec
}

func TestLocale(t *testing.T) {
	cfg := &config.Config{Environment: "development"}

	t.Run("PriorityQueryParam", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=es", nil)
		req.Header.Set("Accept-Language", "en-US")
		c, rec := runLocale(t, cfg, req)

		assert.Equal(t, "es", c.Get("locale"))
		cookie := findCookie(rec, "lang")
		if assert.NotNil(t, cookie) {
			assert.Equal(t, "es", cookie.Value)
			assert.False(t, cookie.Secure)
		}
	})

	t.Run("UnsupportedQueryParamFallsBack", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=fr", nil)
		c, _ := runLocale(t, cfg, req)
		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("PriorityCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "es"})
		c, _ := runLocale(t, cfg, req)
		assert.Equal(t, "es", c.Get("locale"))
	})

	t.Run("PriorityHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "fr-FR,es-PE;q=0.9,en;q=0.8")
		c, _ := runLocale(t, cfg, req)
		assert.Equal(t, "es", c.Get("locale"))
	})

	t.Run("DefaultLanguage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c, _ := runLocale(t, cfg, req)
		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("RequestContext", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=es", nil)
		c, _ := runLocale(t, cfg, req)
		assert.Equal(t, "es", i18n.GetLocale(c.Request().Context()))
	})

	t.Run("SecureCookieInProduction", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
		_, rec := runLocale(t, &config.Config{Environment: "production"}, req)
		cookie := findCookie(rec, "lang")
		if assert.NotNil(t, cookie) {
			assert.True(t, cookie.Secure)
		}
	})
}

func TestFromAcceptLanguage(t *testing.T) {
	assert.Equal(t, "es", fromAcceptLanguage("es"))
	assert.Equal(t, "es", fromAcceptLanguage("ES-pe"))
	assert.Equal(t, "en", fromAcceptLanguage("en-GB,es;q=0.5"))
	assert.Equal(t, "en", fromAcceptLanguage("de-DE"))
	assert.Equal(t, "en", fromAcceptLanguage(""))
}

func TestGetLocale(t *testing.T) {
	e := echo.New()
	t.Run("WithLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("locale", "es")
		assert.Equal(t, "es", GetLocale(c))
	})

	t.Run("WithoutLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		assert.Equal(t, "en", GetLocale(c))
	})
}
