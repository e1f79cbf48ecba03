package handlers

import (
	"net/http"

	"reflexo_app_go/db"
	"reflexo_app_go/middleware"
	"reflexo_app_go/services"
	"reflexo_app_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// IndexHandler renders the therapist list page
// GET /?active=&search=
func IndexHandler(c echo.Context) error {
	filters := therapistFilters(c)
	therapists, err := services.ListTherapists(db.DB, filters)
	if err != nil {
		return respondError(c, err)
	}

	regions, err := services.ListRegions(db.DB)
	if err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	data := pages.TherapistsPageData{
		Lang:         middleware.GetLocale(c),
		Nonce:        middleware.GetNonce(ctx),
		Search:       filters.Search,
		ShowInactive: filters.Active != nil && !*filters.Active,
		Therapists:   therapists,
		Regions:      regions,
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return pages.TherapistsPage(data).Render(ctx, c.Response().Writer)
}

// DebugHandler reports location and therapist counts
// GET /debug
func DebugHandler(c echo.Context) error {
	stats, err := services.GetLocationStats(db.DB)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
