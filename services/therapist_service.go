package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"reflexo_app_go/models"
	"reflexo_app_go/services/i18n"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxPictureSize is the largest accepted profile picture upload
const MaxPictureSize = 5 * 1024 * 1024 // 5MB

// TherapistFilters narrows ListTherapists. A nil Active lists every therapist.
type TherapistFilters struct {
	Active *bool
	Search string
}

// ParseActiveFilter maps the raw "active" query value to a filter.
// Empty, true, 1 and yes select active therapists; false, 0 and no select inactive ones;
// anything else selects all of them.
func ParseActiveFilter(raw string) *bool {
	active, inactive := true, false
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "true", "1", "yes":
		return &active
	case "false", "0", "no":
		return &inactive
	default:
		return nil
	}
}

// Columns matched by the free-text search
var therapistSearchColumns = []string{
	"therapists.first_name",
	"therapists.last_name_paternal",
	"therapists.last_name_maternal",
	"therapists.document_number",
	"therapists.document_type",
	"therapists.email",
	"therapists.phone",
	"therapists.address",
	"therapists.personal_reference",
	"regions.name",
	"provinces.name",
	"districts.name",
}

func preloadTherapistLocations(db *gorm.DB) *gorm.DB {
	return db.Preload("Region").
		Preload("Province.Region").
		Preload("District.Province.Region")
}

// GetTherapistByID retrieves a therapist with its location references loaded
func GetTherapistByID(db *gorm.DB, id string) (*models.Therapist, error) {
	var therapist models.Therapist
	if err := preloadTherapistLocations(db).First(&therapist, "therapists.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("therapist", id)
		}
		return nil, fmt.Errorf("failed to get therapist: %w", err)
	}
	return &therapist, nil
}

// ListTherapists returns therapists matching filters, oldest first
func ListTherapists(db *gorm.DB, filters TherapistFilters) ([]models.Therapist, error) {
	query := db.Model(&models.Therapist{}).
		Joins("LEFT JOIN regions ON regions.id = therapists.region_id").
		Joins("LEFT JOIN provinces ON provinces.id = therapists.province_id").
		Joins("LEFT JOIN districts ON districts.id = therapists.district_id")

	if filters.Active != nil {
		query = query.Where("therapists.is_active = ?", *filters.Active)
	}

	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		conditions := make([]string, len(therapistSearchColumns))
		args := make([]interface{}, len(therapistSearchColumns))
		for i, col := range therapistSearchColumns {
			conditions[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
			args[i] = pattern
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}

	var therapists []models.Therapist
	err := preloadTherapistLocations(query).
		Select("therapists.*").
		Order("therapists.created_at ASC").
		Order("therapists.id ASC").
		Find(&therapists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list therapists: %w", err)
	}
	return therapists, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in s match literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ListInactiveTherapists returns soft-deleted therapists
func ListInactiveTherapists(db *gorm.DB) ([]models.Therapist, error) {
	inactive := false
	return ListTherapists(db, TherapistFilters{Active: &inactive})
}

// CreateTherapist validates in and stores it as an active therapist
func CreateTherapist(ctx context.Context, db *gorm.DB, in *TherapistInput) (*models.Therapist, error) {
	in.Normalize()
	if err := checkTherapist(ctx, db, in, ""); err != nil {
		return nil, err
	}

	therapist := &models.Therapist{IsActive: true}
	if err := in.ApplyTo(therapist); err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Omit(clause.Associations).Create(therapist).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateDocumentError(ctx)
		}
		return nil, fmt.Errorf("failed to create therapist: %w", err)
	}

	created, err := GetTherapistByID(db, therapist.ID)
	if err != nil {
		return nil, err
	}

	LogAuditEvent(ctx, db, models.AuditActionCreate, models.AuditResourceTherapist, created.ID,
		created.DisplayName(), "Therapist created", nil, created)
	return created, nil
}

// UpdateTherapist overlays patch on the stored record and re-validates the whole result
func UpdateTherapist(ctx context.Context, db *gorm.DB, id string, patch *TherapistPatch) (*models.Therapist, error) {
	existing, err := GetTherapistByID(db, id)
	if err != nil {
		return nil, err
	}

	in := InputFromTherapist(existing)
	patch.MergeInto(&in)
	in.Normalize()
	if err := checkTherapist(ctx, db, &in, id); err != nil {
		return nil, err
	}

	updated := *existing
	if err := in.ApplyTo(&updated); err != nil {
		return nil, err
	}
	updated.Region, updated.Province, updated.District = nil, nil, nil

	if err := db.WithContext(ctx).Omit(clause.Associations).Save(&updated).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateDocumentError(ctx)
		}
		return nil, fmt.Errorf("failed to update therapist: %w", err)
	}

	result, err := GetTherapistByID(db, id)
	if err != nil {
		return nil, err
	}

	LogAuditEvent(ctx, db, models.AuditActionUpdate, models.AuditResourceTherapist, id,
		result.DisplayName(), "Therapist updated", existing, result)
	return result, nil
}

// SoftDeleteTherapist marks a therapist inactive. Nothing else changes, including updated_at.
func SoftDeleteTherapist(ctx context.Context, db *gorm.DB, id string) error {
	therapist, err := GetTherapistByID(db, id)
	if err != nil {
		return err
	}

	if err := setTherapistActive(ctx, db, id, false); err != nil {
		return err
	}

	LogAuditEvent(ctx, db, models.AuditActionDelete, models.AuditResourceTherapist, id,
		therapist.DisplayName(), "Therapist deactivated",
		map[string]bool{"is_active": therapist.IsActive}, map[string]bool{"is_active": false})
	return nil
}

// RestoreTherapist marks a therapist active again and returns it
func RestoreTherapist(ctx context.Context, db *gorm.DB, id string) (*models.Therapist, error) {
	therapist, err := GetTherapistByID(db, id)
	if err != nil {
		return nil, err
	}

	if err := setTherapistActive(ctx, db, id, true); err != nil {
		return nil, err
	}
	wasActive := therapist.IsActive
	therapist.IsActive = true

	LogAuditEvent(ctx, db, models.AuditActionRestore, models.AuditResourceTherapist, id,
		therapist.DisplayName(), "Therapist restored",
		map[string]bool{"is_active": wasActive}, map[string]bool{"is_active": true})
	return therapist, nil
}

func setTherapistActive(ctx context.Context, db *gorm.DB, id string, active bool) error {
	// UpdateColumn skips hooks and the updated_at bump
	err := db.WithContext(ctx).Model(&models.Therapist{}).
		Where("id = ?", id).
		UpdateColumn("is_active", active).Error
	if err != nil {
		return fmt.Errorf("failed to set therapist active=%t: %w", active, err)
	}
	return nil
}

// SetTherapistProfilePicture uploads file and stores its key on the therapist.
// The previous picture, if any, is removed from storage afterwards.
func SetTherapistProfilePicture(ctx context.Context, db *gorm.DB, storage StorageProvider, id string, file *multipart.FileHeader) (*models.Therapist, error) {
	therapist, err := GetTherapistByID(db, id)
	if err != nil {
		return nil, err
	}

	verr := NewValidationError()
	if !IsAllowedPictureName(file.Filename) {
		verr.Add("profile_picture", i18n.T(ctx, "validation.profile_picture"))
	}
	if file.Size > MaxPictureSize {
		verr.Add("profile_picture", i18n.T(ctx, "validation.profile_picture_size",
			map[string]interface{}{"mb": MaxPictureSize / (1024 * 1024)}))
	}
	if verr.HasErrors() {
		return nil, verr
	}

	result, err := storage.Upload(ctx, file, GenerateProfilePictureKey(id, file.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to store profile picture: %w", err)
	}

	previous := therapist.ProfilePicture
	err = db.WithContext(ctx).Model(&models.Therapist{}).
		Where("id = ?", id).
		Update("profile_picture", result.Key).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save profile picture: %w", err)
	}

	if previous != nil && *previous != "" && *previous != result.Key {
		if err := storage.Delete(ctx, *previous); err != nil {
			zap.L().Warn("failed to delete previous profile picture",
				zap.String("therapist_id", id), zap.String("key", *previous), zap.Error(err))
		}
	}

	updated, err := GetTherapistByID(db, id)
	if err != nil {
		return nil, err
	}

	LogAuditEvent(ctx, db, models.AuditActionUpload, models.AuditResourceTherapist, id,
		updated.DisplayName(), "Profile picture uploaded",
		map[string]*string{"profile_picture": previous}, map[string]string{"profile_picture": result.Key})
	return updated, nil
}

// GetTherapistHistory returns the audit trail of an existing therapist
func GetTherapistHistory(db *gorm.DB, id string) ([]models.AuditLog, error) {
	if _, err := GetTherapistByID(db, id); err != nil {
		return nil, err
	}
	return GetResourceAuditHistory(db, models.AuditResourceTherapist, id)
}

// checkTherapist runs the field rules plus the checks that need storage:
// referenced locations must exist and the document number must be unused by anyone but excludeID.
func checkTherapist(ctx context.Context, db *gorm.DB, in *TherapistInput, excludeID string) error {
	verr := NewValidationError()
	if err := ValidateTherapist(ctx, in); err != nil {
		if !errors.As(err, &verr) {
			return err
		}
	}

	refs := []struct {
		field string
		id    *string
		model interface{}
	}{
		{"region", in.RegionID, &models.Region{}},
		{"province", in.ProvinceID, &models.Province{}},
		{"district", in.DistrictID, &models.District{}},
	}
	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		exists, err := recordExists(db, ref.model, *ref.id)
		if err != nil {
			return err
		}
		if !exists {
			verr.Add(ref.field, i18n.T(ctx, "validation.does_not_exist", map[string]interface{}{"id": *ref.id}))
		}
	}

	if in.DocumentNumber != "" {
		query := db.Model(&models.Therapist{}).Where("document_number = ?", in.DocumentNumber)
		if excludeID != "" {
			query = query.Where("id <> ?", excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check document number: %w", err)
		}
		if count > 0 {
			verr.Add("document_number", i18n.T(ctx, "validation.unique"))
		}
	}

	return verr.OrNil()
}

func recordExists(db *gorm.DB, model interface{}, id string) (bool, error) {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check reference %s: %w", id, err)
	}
	return count > 0, nil
}

func duplicateDocumentError(ctx context.Context) error {
	verr := NewValidationError()
	verr.Add("document_number", i18n.T(ctx, "validation.unique"))
	return verr
}
