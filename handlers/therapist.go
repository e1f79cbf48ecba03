package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"reflexo_app_go/db"
	"reflexo_app_go/services"
	"reflexo_app_go/services/i18n"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func therapistFilters(c echo.Context) services.TherapistFilters {
	return services.TherapistFilters{
		Active: services.ParseActiveFilter(c.QueryParam("active")),
		Search: c.QueryParam("search"),
	}
}

// ListTherapistsHandler lists therapists, active ones by default
// GET /therapists?active=&search=
func ListTherapistsHandler(c echo.Context) error {
	therapists, err := services.ListTherapists(db.DB, therapistFilters(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newTherapistResponses(therapists))
}

// ListInactiveTherapistsHandler lists soft-deleted therapists
// GET /therapists/inactive
func ListInactiveTherapistsHandler(c echo.Context) error {
	therapists, err := services.ListInactiveTherapists(db.DB)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newTherapistResponses(therapists))
}

// ExportTherapistsHandler downloads the filtered list as an Excel workbook
// GET /therapists/export?active=&search=
func ExportTherapistsHandler(c echo.Context) error {
	buf, err := services.ExportTherapistsXLSX(c.Request().Context(), db.DB, therapistFilters(c))
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("therapists_%s.xlsx", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// CreateTherapistHandler creates an active therapist
// POST /therapists
func CreateTherapistHandler(c echo.Context) error {
	var in services.TherapistInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c)
	}

	therapist, err := services.CreateTherapist(c.Request().Context(), db.DB, &in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newTherapistResponse(therapist))
}

// GetTherapistHandler retrieves a therapist, active or not
// GET /therapists/:id
func GetTherapistHandler(c echo.Context) error {
	therapist, err := services.GetTherapistByID(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newTherapistResponse(therapist))
}

// UpdateTherapistHandler changes only the supplied fields
// PATCH, PUT /therapists/:id
func UpdateTherapistHandler(c echo.Context) error {
	var patch services.TherapistPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c)
	}

	therapist, err := services.UpdateTherapist(c.Request().Context(), db.DB, c.Param("id"), &patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newTherapistResponse(therapist))
}

// DeleteTherapistHandler marks a therapist inactive
// DELETE /therapists/:id
func DeleteTherapistHandler(c echo.Context) error {
	if err := services.SoftDeleteTherapist(c.Request().Context(), db.DB, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RestoreTherapistHandler marks a therapist active again
// POST, PATCH /therapists/:id/restore
func RestoreTherapistHandler(c echo.Context) error {
	therapist, err := services.RestoreTherapist(c.Request().Context(), db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newTherapistResponse(therapist))
}

// UploadProfilePictureHandler stores the "file" form field as the therapist's picture
// POST /therapists/:id/profile-picture
func UploadProfilePictureHandler(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"errors": map[string][]string{"file": {i18n.T(c.Request().Context(), "errors.file_required")}},
		})
	}

	therapist, err := services.SetTherapistProfilePicture(c.Request().Context(), db.DB, services.Storage, c.Param("id"), file)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newTherapistResponse(therapist))
}

// GetProfilePictureHandler serves the therapist's picture, redirecting to the public bucket when there is one
// GET /therapists/:id/profile-picture
func GetProfilePictureHandler(c echo.Context) error {
	therapist, err := services.GetTherapistByID(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if therapist.ProfilePicture == nil || *therapist.ProfilePicture == "" {
		return echo.NewHTTPError(http.StatusNotFound, "Profile picture not found")
	}

	key := *therapist.ProfilePicture
	if url := services.Storage.GetPublicURL(key); url != "" {
		return c.Redirect(http.StatusFound, url)
	}

	reader, contentType, err := services.Storage.Get(c.Request().Context(), key)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Profile picture not found")
	}
	defer reader.Close()

	return c.Stream(http.StatusOK, contentType, io.Reader(reader))
}

// TherapistHistoryHandler returns the audit trail of a therapist, newest first
// GET /therapists/:id/history
func TherapistHistoryHandler(c echo.Context) error {
	logs, err := services.GetTherapistHistory(db.DB, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
