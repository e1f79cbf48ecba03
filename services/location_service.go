package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reflexo_app_go/models"
	"reflexo_app_go/services/i18n"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CountryInput is the writable field set of a country
type CountryInput struct {
	Code *string `json:"code" validate:"omitnil,len=3"`
	Name string  `json:"name" validate:"required,nonblank"`
}

// RegionInput is the writable field set of a region
type RegionInput struct {
	CountryID  *string `json:"country_id"`
	UbigeoCode *string `json:"ubigeo_code" validate:"omitnil,ubigeo"`
	Name       string  `json:"name" validate:"required,nonblank"`
}

// ProvinceInput is the writable field set of a province
type ProvinceInput struct {
	RegionID   *string `json:"region_id"`
	UbigeoCode *string `json:"ubigeo_code" validate:"omitnil,ubigeo"`
	Name       string  `json:"name" validate:"required,nonblank"`
}

// DistrictInput is the writable field set of a district
type DistrictInput struct {
	ProvinceID *string `json:"province_id"`
	UbigeoCode *string `json:"ubigeo_code" validate:"omitnil,ubigeo"`
	Name       string  `json:"name" validate:"required,nonblank"`
}

// checkLocation validates in and verifies that parentID, when set, names an existing row of parent
func checkLocation(ctx context.Context, db *gorm.DB, in interface{}, parentField string, parentID *string, parent interface{}) error {
	verr := NewValidationError()
	if err := validateFields(ctx, in); err != nil {
		if !errors.As(err, &verr) {
			return err
		}
	}

	if parentID != nil {
		exists, err := recordExists(db, parent, *parentID)
		if err != nil {
			return err
		}
		if !exists {
			verr.Add(parentField, i18n.T(ctx, "validation.does_not_exist", map[string]interface{}{"id": *parentID}))
		}
	}
	return verr.OrNil()
}

func trimName(name string) string {
	return strings.TrimSpace(name)
}

// ----- Countries -----

// ListCountries returns every country sorted by name
func ListCountries(db *gorm.DB) ([]models.Country, error) {
	var countries []models.Country
	if err := db.Scopes(byName).Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

// GetCountryByID retrieves a country
func GetCountryByID(db *gorm.DB, id string) (*models.Country, error) {
	var country models.Country
	if err := db.First(&country, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("country", id)
		}
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return &country, nil
}

// CreateCountry stores a new country
func CreateCountry(ctx context.Context, db *gorm.DB, in *CountryInput) (*models.Country, error) {
	in.Code = nilIfEmpty(in.Code)
	if err := checkLocation(ctx, db, in, "", nil, nil); err != nil {
		return nil, err
	}

	country := &models.Country{Code: in.Code, Name: trimName(in.Name)}
	if err := db.WithContext(ctx).Create(country).Error; err != nil {
		return nil, fmt.Errorf("failed to create country: %w", err)
	}

	LogAuditEvent(ctx, db, models.AuditActionCreate, models.AuditResourceCountry, country.ID, country.Name,
		"Country created", nil, country)
	return country, nil
}

// UpdateCountry replaces the writable fields of a country
func UpdateCountry(ctx context.Context, db *gorm.DB, id string, in *CountryInput) (*models.Country, error) {
	country, err := GetCountryByID(db, id)
	if err != nil {
		return nil, err
	}
	in.Code = nilIfEmpty(in.Code)
	if err := checkLocation(ctx, db, in, "", nil, nil); err != nil {
		return nil, err
	}

	old := *country
	country.Code = in.Code
	country.Name = trimName(in.Name)
	if err := db.WithContext(ctx).Save(country).Error; err != nil {
		return nil, fmt.Errorf("failed to update country: %w", err)
	}

	LogAuditEvent(ctx, db, models.AuditActionUpdate, models.AuditResourceCountry, id, country.Name,
		"Country updated", old, country)
	return country, nil
}

// DeleteCountry removes a country. Its regions are kept without a country.
func DeleteCountry(ctx context.Context, db *gorm.DB, id string) error {
	country, err := GetCountryByID(db, id)
	if err != nil {
		return err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Region{}).Where("country_id = ?", id).Update("country_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Country{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete country: %w", err)
	}

	LogAuditEvent(ctx, db, models.AuditActionDelete, models.AuditResourceCountry, id, country.Name,
		"Country deleted", country, nil)
	return nil
}

// ----- Regions -----

// GetRegionByID retrieves a region with its country
func GetRegionByID(db *gorm.DB, id string) (*models.Region, error) {
	var region models.Region
	if err := db.Preload("Country").First(&region, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("region", id)
		}
		return nil, fmt.Errorf("failed to get region: %w", err)
	}
	return &region, nil
}

// CreateRegion stores a new region
func CreateRegion(ctx context.Context, db *gorm.DB, in *RegionInput) (*models.Region, error) {
	in.CountryID = nilIfEmpty(in.CountryID)
	in.UbigeoCode = nilIfEmpty(in.UbigeoCode)
	if err := checkLocation(ctx, db, in, "country_id", in.CountryID, &models.Country{}); err != nil {
		return nil, err
	}

	region := &models.Region{CountryID: in.CountryID, UbigeoCode: in.UbigeoCode, Name: trimName(in.Name)}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(region).Error; err != nil {
		return nil, fmt.Errorf("failed to create region: %w", err)
	}

	LogAuditEvent(ctx, db, models.AuditActionCreate, models.AuditResourceRegion, region.ID, region.Name,
		"Region created", nil, region)
	return GetRegionByID(db, region.ID)
}

// UpdateRegion replaces the writable fields of a region
func UpdateRegion(ctx context.Context, db *gorm.DB, id string, in *RegionInput) (*models.Region, error) {
	region, err := GetRegionByID(db, id)
	if err != nil {
		return nil, err
	}
	in.CountryID = nilIfEmpty(in.CountryID)
	in.UbigeoCode = nilIfEmpty(in.UbigeoCode)
	if err := checkLocation(ctx, db, in, "country_id", in.CountryID, &models.Country{}); err != nil {
		return nil, err
	}

	old := *region
	region.Country = nil
	region.CountryID = in.CountryID
	region.UbigeoCode = in.UbigeoCode
	region.Name = trimName(in.Name)
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(region).Error; err != nil {
		return nil, fmt.Errorf("failed to update region: %w", err)
	}

	LogAuditEvent(ctx, db, models.AuditActionUpdate, models.AuditResourceRegion, id, region.Name,
		"Region updated", old, region)
	return GetRegionByID(db, id)
}

// DeleteRegion removes a region. Its provinces and therapists keep existing without it.
func DeleteRegion(ctx context.Context, db *gorm.DB, id string) error {
	region, err := GetRegionByID(db, id)
	if err != nil {
		return err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Province{}).Where("region_id = ?", id).Update("region_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Therapist{}).Where("region_id = ?", id).UpdateColumn("region_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Region{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete region: %w", err)
	}

	LogAuditEvent(ctx, db, models.AuditActionDelete, models.AuditResourceRegion, id, region.Name,
		"Region deleted", region, nil)
	return nil
}

// ----- Provinces -----

// GetProvinceByID retrieves a province with its region
func GetProvinceByID(db *gorm.DB, id string) (*models.Province, error) {
	return getProvince(db, id)
}

// CreateProvince stores a new province
func CreateProvince(ctx context.Context, db *gorm.DB, in *ProvinceInput) (*models.Province, error) {
	in.RegionID = nilIfEmpty(in.RegionID)
	in.UbigeoCode = nilIfEmpty(in.UbigeoCode)
	if err := checkLocation(ctx, db, in, "region_id", in.RegionID, &models.Region{}); err != nil {
		return nil, err
	}

	province := &models.Province{RegionID: in.RegionID, UbigeoCode: in.UbigeoCode, Name: trimName(in.Name)}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(province).Error; err != nil {
		return nil, fmt.Errorf("failed to create province: %w", err)
	}

	LogAuditEvent(ctx, db, models.AuditActionCreate, models.AuditResourceProvince, province.ID, province.Name,
		"Province created", nil, province)
	return getProvince(db, province.ID)
}

// UpdateProvince replaces the writable fields of a province
func UpdateProvince(ctx context.Context, db *gorm.DB, id string, in *ProvinceInput) (*models.Province, error) {
	province, err := getProvince(db, id)
	if err != nil {
		return nil, err
	}
	in.RegionID = nilIfEmpty(in.RegionID)
	in.UbigeoCode = nilIfEmpty(in.UbigeoCode)
	if err := checkLocation(ctx, db, in, "region_id", in.RegionID, &models.Region{}); err != nil {
		return nil, err
	}

	old := *province
	province.Region = nil
	province.RegionID = in.RegionID
	province.UbigeoCode = in.UbigeoCode
	province.Name = trimName(in.Name)
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(province).Error; err != nil {
		return nil, fmt.Errorf("failed to update province: %w", err)
	}

	LogAuditEvent(ctx, db, models.AuditActionUpdate, models.AuditResourceProvince, id, province.Name,
		"Province updated", old, province)
	return getProvince(db, id)
}

// DeleteProvince removes a province. Its districts and therapists keep existing without it.
func DeleteProvince(ctx context.Context, db *gorm.DB, id string) error {
	province, err := getProvince(db, id)
	if err != nil {
		return err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.District{}).Where("province_id = ?", id).Update("province_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Therapist{}).Where("province_id = ?", id).UpdateColumn("province_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Province{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete province: %w", err)
	}

	LogAuditEvent(ctx, db, models.AuditActionDelete, models.AuditResourceProvince, id, province.Name,
		"Province deleted", province, nil)
	return nil
}

// ----- Districts -----

// GetDistrictByID retrieves a district with its province and region
func GetDistrictByID(db *gorm.DB, id string) (*models.District, error) {
	var district models.District
	if err := db.Preload("Province.Region").First(&district, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("district", id)
		}
		return nil, fmt.Errorf("failed to get district: %w", err)
	}
	return &district, nil
}

// CreateDistrict stores a new district
func CreateDistrict(ctx context.Context, db *gorm.DB, in *DistrictInput) (*models.District, error) {
	in.ProvinceID = nilIfEmpty(in.ProvinceID)
	in.UbigeoCode = nilIfEmpty(in.UbigeoCode)
	if err := checkLocation(ctx, db, in, "province_id", in.ProvinceID, &models.Province{}); err != nil {
		return nil, err
	}

	district := &models.District{ProvinceID: in.ProvinceID, UbigeoCode: in.UbigeoCode, Name: trimName(in.Name)}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(district).Error; err != nil {
		return nil, fmt.Errorf("failed to create district: %w", err)
	}

	LogAuditEvent(ctx, db, models.AuditActionCreate, models.AuditResourceDistrict, district.ID, district.Name,
		"District created", nil, district)
	return GetDistrictByID(db, district.ID)
}

// UpdateDistrict replaces the writable fields of a district
func UpdateDistrict(ctx context.Context, db *gorm.DB, id string, in *DistrictInput) (*models.District, error) {
	district, err := GetDistrictByID(db, id)
	if err != nil {
		return nil, err
	}
	in.ProvinceID = nilIfEmpty(in.ProvinceID)
	in.UbigeoCode = nilIfEmpty(in.UbigeoCode)
	if err := checkLocation(ctx, db, in, "province_id", in.ProvinceID, &models.Province{}); err != nil {
		return nil, err
	}

	old := *district
	district.Province = nil
	district.ProvinceID = in.ProvinceID
	district.UbigeoCode = in.UbigeoCode
	district.Name = trimName(in.Name)
	if err := db.WithContext(ctx).Omit(clause.Associations).Save(district).Error; err != nil {
		return nil, fmt.Errorf("failed to update district: %w", err)
	}

	LogAuditEvent(ctx, db, models.AuditActionUpdate, models.AuditResourceDistrict, id, district.Name,
		"District updated", old, district)
	return GetDistrictByID(db, id)
}

// DeleteDistrict removes a district and clears it from therapists
func DeleteDistrict(ctx context.Context, db *gorm.DB, id string) error {
	district, err := GetDistrictByID(db, id)
	if err != nil {
		return err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Therapist{}).Where("district_id = ?", id).UpdateColumn("district_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.District{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete district: %w", err)
	}

	LogAuditEvent(ctx, db, models.AuditActionDelete, models.AuditResourceDistrict, id, district.Name,
		"District deleted", district, nil)
	return nil
}
