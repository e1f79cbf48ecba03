package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// District belongs to a province. Its region is always derived through the province.
type District struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProvinceID *string   `gorm:"type:uuid;index" json:"province_id"`
	Province   *Province `gorm:"foreignKey:ProvinceID" json:"-"`

	UbigeoCode *string `gorm:"size:10;index" json:"ubigeo_code"`
	Name       string  `gorm:"size:100;not null;index" json:"name"`
}

// BeforeCreate hook to generate UUID
func (d *District) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (District) TableName() string {
	return "districts"
}

// String renders "Name (Province)" when the province is loaded
func (d District) String() string {
	if d.Province != nil {
		return d.Name + " (" + d.Province.Name + ")"
	}
	return d.Name
}

// RegionName returns the derived region name, or "" for orphaned rows
func (d District) RegionName() string {
	if d.Province == nil || d.Province.Region == nil {
		return ""
	}
	return d.Province.Region.Name
}
