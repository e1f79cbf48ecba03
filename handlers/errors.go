package handlers

import (
	"errors"
	"net/http"

	"reflexo_app_go/services"
	"reflexo_app_go/services/i18n"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

// respondError maps a service error to its HTTP response:
// validation failures to 400 with a field map, missing records to 404, anything else to 500.
func respondError(c echo.Context, err error) error {
	ctx := c.Request().Context()

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": verr.Fields})
	}

	var nf *services.NotFoundError
	if errors.As(err, &nf) {
		msg := i18n.T(ctx, "errors.not_found", map[string]interface{}{
			"resource": i18n.T(ctx, "resources."+nf.Resource),
			"id":       nf.ID,
		})
		return c.JSON(http.StatusNotFound, map[string]string{"error": msg})
	}

	zap.L().Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": internalErrorMessage})
}

func badRequest(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": i18n.T(c.Request().Context(), "errors.bad_request")})
}

// HTTPErrorHandler renders errors raised outside the handlers (unknown routes, rate limits,
// recovered panics) with the same {"error": ...} body the handlers use
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := internalErrorMessage

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code < http.StatusInternalServerError {
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}
	}
	if code >= http.StatusInternalServerError {
		zap.L().Error("unhandled error", zap.String("path", c.Request().URL.Path), zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"error": message})
	}
	if err != nil {
		zap.L().Warn("failed to write error response", zap.Error(err))
	}
}
