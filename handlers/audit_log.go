package handlers

import (
	"net/http"
	"strconv"
	"time"

	"reflexo_app_go/db"
	"reflexo_app_go/models"
	"reflexo_app_go/services"

	"github.com/labstack/echo/v4"
)

const auditPageSize = 20

// AuditLogPage is one page of the audit trail
type AuditLogPage struct {
	Logs     []models.AuditLog `json:"logs"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// GetAuditLogsHandler returns filtered and paginated audit logs
// GET /audit-logs?resource_type=&action=&search=&date_from=&date_to=&page=
func GetAuditLogsHandler(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	filters := services.AuditLogFilters{
		ResourceType: c.QueryParam("resource_type"),
		Action:       c.QueryParam("action"),
		SearchQuery:  c.QueryParam("search"),
	}
	if dateFrom := c.QueryParam("date_from"); dateFrom != "" {
		if t, err := services.ParseDate(dateFrom); err == nil {
			filters.DateFrom = t
		}
	}
	if dateTo := c.QueryParam("date_to"); dateTo != "" {
		if t, err := services.ParseDate(dateTo); err == nil {
			filters.DateTo = t.Add(24*time.Hour - time.Second) // End of day
		}
	}

	logs, total, err := services.GetAuditLogs(db.DB, filters, page, auditPageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, AuditLogPage{Logs: logs, Total: total, Page: page, PageSize: auditPageSize})
}
