package services

import (
	"context"
	"encoding/json"
	"time"

	"reflexo_app_go/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuditContext contains request metadata recorded with each audit entry
type AuditContext struct {
	IPAddress string
	UserAgent string
}

type auditContextKey struct{}

// WithAuditContext stores request metadata for the audit trail in ctx
func WithAuditContext(ctx context.Context, ac AuditContext) context.Context {
	return context.WithValue(ctx, auditContextKey{}, ac)
}

// AuditContextFrom returns the metadata stored by WithAuditContext, or a zero value
func AuditContextFrom(ctx context.Context) AuditContext {
	if ac, ok := ctx.Value(auditContextKey{}).(AuditContext); ok {
		return ac
	}
	return AuditContext{}
}

// LogAuditEvent appends an audit entry. Failures are logged and never fail the caller's write.
func LogAuditEvent(
	ctx context.Context,
	db *gorm.DB,
	action models.AuditAction,
	resourceType string,
	resourceID string,
	resourceName string,
	description string,
	oldValues interface{},
	newValues interface{},
) {
	ac := AuditContextFrom(ctx)
	entry := models.AuditLog{
		ResourceType: resourceType,
		ResourceID:   resourceID,
		ResourceName: resourceName,
		Action:       action,
		Description:  description,
		OldValues:    marshalAuditValues(oldValues),
		NewValues:    marshalAuditValues(newValues),
		IPAddress:    ac.IPAddress,
		UserAgent:    ac.UserAgent,
	}

	if err := db.WithContext(ctx).Create(&entry).Error; err != nil {
		zap.L().Error("failed to create audit log",
			zap.String("resource_type", resourceType),
			zap.String("resource_id", resourceID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

func marshalAuditValues(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// GetResourceAuditHistory retrieves the audit history for a specific resource, newest first
func GetResourceAuditHistory(db *gorm.DB, resourceType, resourceID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Order("id").
		Find(&logs).Error
	return logs, err
}

// AuditLogFilters contains filter options for audit log queries
type AuditLogFilters struct {
	ResourceType string
	Action       string
	DateFrom     time.Time
	DateTo       time.Time
	SearchQuery  string
}

// GetAuditLogs returns one page of audit entries matching filters, newest first, and the total match count
func GetAuditLogs(db *gorm.DB, filters AuditLogFilters, page, pageSize int) ([]models.AuditLog, int64, error) {
	query := db.Model(&models.AuditLog{})

	if filters.ResourceType != "" {
		query = query.Where("resource_type = ?", filters.ResourceType)
	}
	if filters.Action != "" {
		query = query.Where("action = ?", filters.Action)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("created_at <= ?", filters.DateTo)
	}
	if filters.SearchQuery != "" {
		pattern := "%" + filters.SearchQuery + "%"
		query = query.Where("resource_name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := query.Order("created_at DESC").
		Order("id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error
	return logs, total, err
}
