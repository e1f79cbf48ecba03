package handlers

import (
	"net/http"

	"reflexo_app_go/db"
	"reflexo_app_go/services"
	"reflexo_app_go/templates/components"

	"github.com/labstack/echo/v4"
)

// LocationOptionsHandler returns regions, provinces and districts in one response
// GET /locations/options
func LocationOptionsHandler(c echo.Context) error {
	set, err := services.LocationOptions(db.DB)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, set)
}

// ----- Countries -----

// ListCountriesHandler lists countries by name
// GET /countries
func ListCountriesHandler(c echo.Context) error {
	countries, err := services.ListCountries(db.DB)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, countries)
}

// GetCountryHandler retrieves a country
// GET /countries/:id
func GetCountryHandler(c echo.Context) error {
	country, err := services.GetCountryByID(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, country)
}

// CreateCountryHandler creates a country
// POST /countries
func CreateCountryHandler(c echo.Context) error {
	var in services.CountryInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c)
	}
	country, err := services.CreateCountry(c.Request().Context(), db.DB, &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, country)
}

// UpdateCountryHandler replaces a country's fields
// PUT /countries/:id
func UpdateCountryHandler(c echo.Context) error {
	var in services.CountryInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c)
	}
	country, err := services.UpdateCountry(c.Request().Context(), db.DB, c.Param("id"), &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, country)
}

// DeleteCountryHandler deletes a country
// DELETE /countries/:id
func DeleteCountryHandler(c echo.Context) error {
	if err := services.DeleteCountry(c.Request().Context(), db.DB, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- Regions -----

// ListRegionsHandler lists regions by name
// GET /regions
func ListRegionsHandler(c echo.Context) error {
	regions, err := services.ListRegions(db.DB)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, regions)
}

// GetRegionHandler retrieves a region
// GET /regions/:id
func GetRegionHandler(c echo.Context) error {
	region, err := services.GetRegionByID(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newRegionResponse(region))
}

// CreateRegionHandler creates a region
// POST /regions
func CreateRegionHandler(c echo.Context) error {
	var in services.RegionInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c)
	}
	region, err := services.CreateRegion(c.Request().Context(), db.DB, &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newRegionResponse(region))
}

// UpdateRegionHandler replaces a region's fields
// PUT /regions/:id
func UpdateRegionHandler(c echo.Context) error {
	var in services.RegionInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c)
	}
	region, err := services.UpdateRegion(c.Request().Context(), db.DB, c.Param("id"), &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newRegionResponse(region))
}

// DeleteRegionHandler deletes a region
// DELETE /regions/:id
func DeleteRegionHandler(c echo.Context) error {
	if err := services.DeleteRegion(c.Request().Context(), db.DB, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RegionProvincesHandler returns a region with its provinces and their count
// GET /regions/:id/provinces
func RegionProvincesHandler(c echo.Context) error {
	result, err := services.ProvincesByRegion(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ----- Provinces -----

// ListProvincesHandler lists provinces, optionally scoped to a region.
// HTMX requests get <option> elements for a cascading select.
// GET /provinces?region_id=
func ListProvincesHandler(c echo.Context) error {
	provinces, err := services.ListProvinces(db.DB, c.QueryParam("region_id"))
	if err != nil {
		return respondError(c, err)
	}

	if isHTMX(c) {
		options := make([]components.Option, len(provinces))
		for i, p := range provinces {
			options[i] = components.Option{Value: p.ID, Label: p.Name}
		}
		return renderOptions(c, "pages.locations.select_province", options)
	}
	return c.JSON(http.StatusOK, provinces)
}

// GetProvinceHandler retrieves a province
// GET /provinces/:id
func GetProvinceHandler(c echo.Context) error {
	province, err := services.GetProvinceByID(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newProvinceResponse(province))
}

// CreateProvinceHandler creates a province
// POST /provinces
func CreateProvinceHandler(c echo.Context) error {
	var in services.ProvinceInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c)
	}
	province, err := services.CreateProvince(c.Request().Context(), db.DB, &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newProvinceResponse(province))
}

// UpdateProvinceHandler replaces a province's fields
// PUT /provinces/:id
func UpdateProvinceHandler(c echo.Context) error {
	var in services.ProvinceInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c)
	}
	province, err := services.UpdateProvince(c.Request().Context(), db.DB, c.Param("id"), &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newProvinceResponse(province))
}

// DeleteProvinceHandler deletes a province
// DELETE /provinces/:id
func DeleteProvinceHandler(c echo.Context) error {
	if err := services.DeleteProvince(c.Request().Context(), db.DB, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ProvinceDistrictsHandler returns a province with its districts and their count
// GET /provinces/:id/districts
func ProvinceDistrictsHandler(c echo.Context) error {
	result, err := services.DistrictsByProvince(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// ----- Districts -----

// ListDistrictsHandler lists districts scoped by province, else by region, else all.
// HTMX requests get <option> elements for a cascading select.
// GET /districts?province_id=&region_id=
func ListDistrictsHandler(c echo.Context) error {
	districts, err := services.ListDistricts(db.DB, c.QueryParam("province_id"), c.QueryParam("region_id"))
	if err != nil {
		return respondError(c, err)
	}

	if isHTMX(c) {
		options := make([]components.Option, len(districts))
		for i, d := range districts {
			options[i] = components.Option{Value: d.ID, Label: d.Name}
		}
		return renderOptions(c, "pages.locations.select_district", options)
	}
	return c.JSON(http.StatusOK, districts)
}

// GetDistrictHandler retrieves a district
// GET /districts/:id
func GetDistrictHandler(c echo.Context) error {
	district, err := services.GetDistrictByID(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newDistrictResponse(district))
}

// CreateDistrictHandler creates a district
// POST /districts
func CreateDistrictHandler(c echo.Context) error {
	var in services.DistrictInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c)
	}
	district, err := services.CreateDistrict(c.Request().Context(), db.DB, &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newDistrictResponse(district))
}

// UpdateDistrictHandler replaces a district's fields
// PUT /districts/:id
func UpdateDistrictHandler(c echo.Context) error {
	var in services.DistrictInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c)
	}
	district, err := services.UpdateDistrict(c.Request().Context(), db.DB, c.Param("id"), &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newDistrictResponse(district))
}

// DeleteDistrictHandler deletes a district
// DELETE /districts/:id
func DeleteDistrictHandler(c echo.Context) error {
	if err := services.DeleteDistrict(c.Request().Context(), db.DB, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
