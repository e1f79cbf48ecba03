package services

import (
	"fmt"

	"reflexo_app_go/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedDistrict struct {
	Code string
	Name string
}

type seedProvince struct {
	Code      string
	Name      string
	Districts []seedDistrict
}

type seedRegion struct {
	Code      string
	Name      string
	Provinces []seedProvince
}

// Peruvian regions with INEI ubigeo codes
var peruRegions = []seedRegion{
	{"15", "Lima", []seedProvince{
		{"1501", "Lima", []seedDistrict{
			{"150101", "Lima"},
			{"150104", "Barranco"},
			{"150108", "Chorrillos"},
			{"150113", "Jesús María"},
			{"150116", "Lince"},
			{"150120", "Magdalena del Mar"},
			{"150122", "Miraflores"},
			{"150130", "San Borja"},
			{"150131", "San Isidro"},
			{"150140", "Santiago de Surco"},
		}},
		{"1505", "Cañete", []seedDistrict{
			{"150501", "San Vicente de Cañete"},
			{"150502", "Asia"},
		}},
	}},
	{"07", "Callao", []seedProvince{
		{"0701", "Callao", []seedDistrict{
			{"070101", "Callao"},
			{"070102", "Bellavista"},
			{"070104", "La Perla"},
		}},
	}},
	{"04", "Arequipa", []seedProvince{
		{"0401", "Arequipa", []seedDistrict{
			{"040101", "Arequipa"},
			{"040103", "Cayma"},
			{"040122", "Yanahuara"},
		}},
	}},
	{"08", "Cusco", []seedProvince{
		{"0801", "Cusco", []seedDistrict{
			{"080101", "Cusco"},
			{"080108", "Wanchaq"},
		}},
	}},
	{"13", "La Libertad", []seedProvince{
		{"1301", "Trujillo", []seedDistrict{
			{"130101", "Trujillo"},
			{"130105", "La Esperanza"},
		}},
	}},
}

// SeedLocations seeds Peru and its regions, provinces and districts.
// Rows are matched by ubigeo code, so running it again creates nothing new.
func SeedLocations(db *gorm.DB) error {
	zap.L().Info("seeding location data")

	code := "PER"
	var peru models.Country
	if err := db.Where(models.Country{Code: &code}).Attrs(models.Country{Name: "Perú"}).FirstOrCreate(&peru).Error; err != nil {
		return fmt.Errorf("failed to seed country: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, r := range peruRegions {
			region, err := seedRegionRow(tx, peru.ID, r)
			if err != nil {
				return err
			}
			for _, p := range r.Provinces {
				province, err := seedProvinceRow(tx, region.ID, p)
				if err != nil {
					return err
				}
				for _, d := range p.Districts {
					if err := seedDistrictRow(tx, province.ID, d); err != nil {
						return err
					}
				}
			}
		}
		zap.L().Info("location data seeded", zap.Int("regions", len(peruRegions)))
		return nil
	})
}

func seedRegionRow(tx *gorm.DB, countryID string, r seedRegion) (*models.Region, error) {
	code := r.Code
	var region models.Region
	err := tx.Where("ubigeo_code = ?", code).
		Attrs(models.Region{CountryID: &countryID, UbigeoCode: &code, Name: r.Name}).
		FirstOrCreate(&region).Error
	if err != nil {
		return nil, fmt.Errorf("failed to seed region %s: %w", r.Name, err)
	}
	return &region, nil
}

func seedProvinceRow(tx *gorm.DB, regionID string, p seedProvince) (*models.Province, error) {
	code := p.Code
	var province models.Province
	err := tx.Where("ubigeo_code = ?", code).
		Attrs(models.Province{RegionID: &regionID, UbigeoCode: &code, Name: p.Name}).
		FirstOrCreate(&province).Error
	if err != nil {
		return nil, fmt.Errorf("failed to seed province %s: %w", p.Name, err)
	}
	return &province, nil
}

func seedDistrictRow(tx *gorm.DB, provinceID string, d seedDistrict) error {
	code := d.Code
	var district models.District
	err := tx.Where("ubigeo_code = ?", code).
		Attrs(models.District{ProvinceID: &provinceID, UbigeoCode: &code, Name: d.Name}).
		FirstOrCreate(&district).Error
	if err != nil {
		return fmt.Errorf("failed to seed district %s: %w", d.Name, err)
	}
	return nil
}
