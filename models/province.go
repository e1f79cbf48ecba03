package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Province belongs to a region. RegionID becomes NULL when the region is deleted.
type Province struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RegionID *string `gorm:"type:uuid;index" json:"region_id"`
	Region   *Region `gorm:"foreignKey:RegionID" json:"-"`

	UbigeoCode *string `gorm:"size:10;index" json:"ubigeo_code"`
	Name       string  `gorm:"size:100;not null;index" json:"name"`

	// Relationships
	Districts []District `gorm:"foreignKey:ProvinceID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeCreate hook to generate UUID
func (p *Province) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Province) TableName() string {
	return "provinces"
}

// String renders "Name (Region)" when the region is loaded
func (p Province) String() string {
	if p.Region != nil {
		return p.Name + " (" + p.Region.Name + ")"
	}
	return p.Name
}
