package middleware

import (
	"reflexo_app_go/services"

	"github.com/labstack/echo/v4"
)

// AuditContext stores the client's address and user agent in the request context,
// where the services pick them up when writing audit entries
func AuditContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ac := services.AuditContext{
				IPAddress: c.RealIP(),
				UserAgent: c.Request().UserAgent(),
			}

			ctx := services.WithAuditContext(c.Request().Context(), ac)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
