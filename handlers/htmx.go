package handlers

import (
	"net/http"

	"reflexo_app_go/services/i18n"
	"reflexo_app_go/templates/components"

	"github.com/labstack/echo/v4"
)

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// renderOptions answers an HTMX request with <option> elements instead of JSON
func renderOptions(c echo.Context, placeholderKey string, options []components.Option) error {
	placeholder := i18n.T(c.Request().Context(), placeholderKey)
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return components.SelectOptions(placeholder, options).Render(c.Request().Context(), c.Response().Writer)
}
