package handlers

import (
	"reflexo_app_go/config"
	"reflexo_app_go/middleware"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts every page and API route on e.
// Writes go through the per-IP rate limiter, which is returned so the caller can stop it.
func RegisterRoutes(e *echo.Echo, cfg *config.Config) *middleware.RateLimiter {
	limiter := middleware.NewWriteRateLimiter(cfg)
	e.Use(limiter.Middleware())

	e.GET("/", IndexHandler, middleware.CSPNonce())
	e.GET("/debug", DebugHandler)
	e.GET("/audit-logs", GetAuditLogsHandler)

	// Therapists
	therapists := e.Group("/therapists")
	{
		therapists.GET("", ListTherapistsHandler)
		therapists.POST("", CreateTherapistHandler)
		therapists.GET("/inactive", ListInactiveTherapistsHandler)
		therapists.GET("/export", ExportTherapistsHandler)
		therapists.GET("/:id", GetTherapistHandler)
		therapists.PATCH("/:id", UpdateTherapistHandler)
		therapists.PUT("/:id", UpdateTherapistHandler)
		therapists.DELETE("/:id", DeleteTherapistHandler)
		therapists.POST("/:id/restore", RestoreTherapistHandler)
		therapists.PATCH("/:id/restore", RestoreTherapistHandler)
		therapists.POST("/:id/profile-picture", UploadProfilePictureHandler)
		therapists.GET("/:id/profile-picture", GetProfilePictureHandler)
		therapists.GET("/:id/history", TherapistHistoryHandler)
	}

	// Locations
	e.GET("/locations/options", LocationOptionsHandler)

	countries := e.Group("/countries")
	{
		countries.GET("", ListCountriesHandler)
		countries.POST("", CreateCountryHandler)
		countries.GET("/:id", GetCountryHandler)
		countries.PUT("/:id", UpdateCountryHandler)
		countries.DELETE("/:id", DeleteCountryHandler)
	}

	regions := e.Group("/regions")
	{
		regions.GET("", ListRegionsHandler)
		regions.POST("", CreateRegionHandler)
		regions.GET("/:id", GetRegionHandler)
		regions.PUT("/:id", UpdateRegionHandler)
		regions.DELETE("/:id", DeleteRegionHandler)
		regions.GET("/:id/provinces", RegionProvincesHandler)
	}

	provinces := e.Group("/provinces")
	{
		provinces.GET("", ListProvincesHandler)
		provinces.POST("", CreateProvinceHandler)
		provinces.GET("/:id", GetProvinceHandler)
		provinces.PUT("/:id", UpdateProvinceHandler)
		provinces.DELETE("/:id", DeleteProvinceHandler)
		provinces.GET("/:id/districts", ProvinceDistrictsHandler)
	}

	districts := e.Group("/districts")
	{
		districts.GET("", ListDistrictsHandler)
		districts.POST("", CreateDistrictHandler)
		districts.GET("/:id", GetDistrictHandler)
		districts.PUT("/:id", UpdateDistrictHandler)
		districts.DELETE("/:id", DeleteDistrictHandler)
	}

	return limiter
}
