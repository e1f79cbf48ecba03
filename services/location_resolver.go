package services

import (
	"errors"
	"fmt"

	"reflexo_app_go/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegionOption is a region as offered in form selects
type RegionOption struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	UbigeoCode *string `json:"ubigeo_code"`
}

// ProvinceOption is a province with its region name for display
type ProvinceOption struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	UbigeoCode *string `json:"ubigeo_code"`
	RegionName string  `json:"region_name"`
}

// DistrictOption is a district with its province and derived region names
type DistrictOption struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	UbigeoCode   *string `json:"ubigeo_code"`
	ProvinceName string  `json:"province_name"`
	RegionName   string  `json:"region_name"`
}

// LocationOptionSet holds every level at once for populating a form
type LocationOptionSet struct {
	Regions   []RegionOption   `json:"regions"`
	Provinces []ProvinceOption `json:"provinces"`
	Districts []DistrictOption `json:"districts"`
}

// RegionProvinces is the provinces of a single region
type RegionProvinces struct {
	Region     RegionOption     `json:"region"`
	Provinces  []ProvinceOption `json:"provinces"`
	TotalCount int              `json:"total_count"`
}

// ProvinceParent identifies a province and its region
type ProvinceParent struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	UbigeoCode *string       `json:"ubigeo_code"`
	Region     *RegionOption `json:"region"`
}

// ProvinceDistricts is the districts of a single province
type ProvinceDistricts struct {
	Province   ProvinceParent   `json:"province"`
	Districts  []DistrictOption `json:"districts"`
	TotalCount int              `json:"total_count"`
}

// LocationStats summarises the hierarchy for diagnostics
type LocationStats struct {
	TotalCountries      int64 `json:"total_countries"`
	TotalRegions        int64 `json:"total_regions"`
	TotalProvinces      int64 `json:"total_provinces"`
	TotalDistricts      int64 `json:"total_districts"`
	RegionsWithUbigeo   int64 `json:"regions_with_ubigeo"`
	ProvincesWithUbigeo int64 `json:"provinces_with_ubigeo"`
	DistrictsWithUbigeo int64 `json:"districts_with_ubigeo"`
	TotalTherapists     int64 `json:"total_therapists"`
	ActiveTherapists    int64 `json:"active_therapists"`
}

func toRegionOption(r models.Region) RegionOption {
	return RegionOption{ID: r.ID, Name: r.Name, UbigeoCode: r.UbigeoCode}
}

func toProvinceOption(p models.Province) ProvinceOption {
	opt := ProvinceOption{ID: p.ID, Name: p.Name, UbigeoCode: p.UbigeoCode}
	if p.Region != nil {
		opt.RegionName = p.Region.Name
	}
	return opt
}

func toDistrictOption(d models.District) DistrictOption {
	opt := DistrictOption{ID: d.ID, Name: d.Name, UbigeoCode: d.UbigeoCode, RegionName: d.RegionName()}
	if d.Province != nil {
		opt.ProvinceName = d.Province.Name
	}
	return opt
}

// byName orders by byte value of name, with id as a tiebreaker
func byName(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC").Order("id ASC")
}

// ListRegions returns every region sorted by name
func ListRegions(db *gorm.DB) ([]RegionOption, error) {
	var regions []models.Region
	if err := db.Scopes(byName).Find(&regions).Error; err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	options := make([]RegionOption, len(regions))
	for i, r := range regions {
		options[i] = toRegionOption(r)
	}
	return options, nil
}

// ListProvinces returns the provinces of regionID, or all provinces when regionID is empty.
// An unknown regionID is a NotFoundError.
func ListProvinces(db *gorm.DB, regionID string) ([]ProvinceOption, error) {
	query := db.Model(&models.Province{}).Preload("Region")
	if regionID != "" {
		if _, err := getRegion(db, regionID); err != nil {
			return nil, err
		}
		query = query.Where("region_id = ?", regionID)
	}

	var provinces []models.Province
	if err := query.Scopes(byName).Find(&provinces).Error; err != nil {
		return nil, fmt.Errorf("failed to list provinces: %w", err)
	}

	options := make([]ProvinceOption, len(provinces))
	for i, p := range provinces {
		options[i] = toProvinceOption(p)
	}
	return options, nil
}

// ListDistricts scopes districts by provinceID, else by regionID through its provinces,
// else returns all of them. provinceID wins when both are given.
// An unknown id is a NotFoundError.
func ListDistricts(db *gorm.DB, provinceID, regionID string) ([]DistrictOption, error) {
	query := db.Model(&models.District{}).Preload("Province.Region")

	switch {
	case provinceID != "":
		if _, err := getProvince(db, provinceID); err != nil {
			return nil, err
		}
		query = query.Where("province_id = ?", provinceID)
	case regionID != "":
		if _, err := getRegion(db, regionID); err != nil {
			return nil, err
		}
		provinces := db.Model(&models.Province{}).Select("id").Where("region_id = ?", regionID)
		query = query.Where("province_id IN (?)", provinces)
	}

	var districts []models.District
	if err := query.Scopes(byName).Find(&districts).Error; err != nil {
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}

	options := make([]DistrictOption, len(districts))
	for i, d := range districts {
		options[i] = toDistrictOption(d)
	}
	return options, nil
}

// LocationOptions returns all three levels, each sorted by name
func LocationOptions(db *gorm.DB) (*LocationOptionSet, error) {
	regions, err := ListRegions(db)
	if err != nil {
		return nil, err
	}
	provinces, err := ListProvinces(db, "")
	if err != nil {
		return nil, err
	}
	districts, err := ListDistricts(db, "", "")
	if err != nil {
		return nil, err
	}

	zap.L().Debug("location options loaded",
		zap.Int("regions", len(regions)),
		zap.Int("provinces", len(provinces)),
		zap.Int("districts", len(districts)),
	)
	return &LocationOptionSet{Regions: regions, Provinces: provinces, Districts: districts}, nil
}

// ProvincesByRegion returns a region together with its provinces
func ProvincesByRegion(db *gorm.DB, regionID string) (*RegionProvinces, error) {
	region, err := getRegion(db, regionID)
	if err != nil {
		return nil, err
	}
	provinces, err := ListProvinces(db, regionID)
	if err != nil {
		return nil, err
	}
	return &RegionProvinces{
		Region:     toRegionOption(*region),
		Provinces:  provinces,
		TotalCount: len(provinces),
	}, nil
}

// DistrictsByProvince returns a province, its region and its districts
func DistrictsByProvince(db *gorm.DB, provinceID string) (*ProvinceDistricts, error) {
	province, err := getProvince(db, provinceID)
	if err != nil {
		return nil, err
	}
	districts, err := ListDistricts(db, provinceID, "")
	if err != nil {
		return nil, err
	}

	parent := ProvinceParent{ID: province.ID, Name: province.Name, UbigeoCode: province.UbigeoCode}
	if province.Region != nil {
		region := toRegionOption(*province.Region)
		parent.Region = &region
	}
	return &ProvinceDistricts{
		Province:   parent,
		Districts:  districts,
		TotalCount: len(districts),
	}, nil
}

// GetLocationStats counts the hierarchy rows and therapists
func GetLocationStats(db *gorm.DB) (*LocationStats, error) {
	var stats LocationStats
	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalCountries, db.Model(&models.Country{})},
		{&stats.TotalRegions, db.Model(&models.Region{})},
		{&stats.TotalProvinces, db.Model(&models.Province{})},
		{&stats.TotalDistricts, db.Model(&models.District{})},
		{&stats.RegionsWithUbigeo, db.Model(&models.Region{}).Where("ubigeo_code IS NOT NULL AND ubigeo_code <> ''")},
		{&stats.ProvincesWithUbigeo, db.Model(&models.Province{}).Where("ubigeo_code IS NOT NULL AND ubigeo_code <> ''")},
		{&stats.DistrictsWithUbigeo, db.Model(&models.District{}).Where("ubigeo_code IS NOT NULL AND ubigeo_code <> ''")},
		{&stats.TotalTherapists, db.Model(&models.Therapist{})},
		{&stats.ActiveTherapists, db.Model(&models.Therapist{}).Where("is_active = ?", true)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to count locations: %w", err)
		}
	}
	return &stats, nil
}

func getRegion(db *gorm.DB, id string) (*models.Region, error) {
	var region models.Region
	if err := db.First(&region, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("region", id)
		}
		return nil, fmt.Errorf("failed to get region: %w", err)
	}
	return &region, nil
}

func getProvince(db *gorm.DB, id string) (*models.Province, error) {
	var province models.Province
	if err := db.Preload("Region").First(&province, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("province", id)
		}
		return nil, fmt.Errorf("failed to get province: %w", err)
	}
	return &province, nil
}
