package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Region is a first-level subdivision of a country (departamento in Peru)
type Region struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CountryID *string  `gorm:"type:uuid;index" json:"country_id"`
	Country   *Country `gorm:"foreignKey:CountryID" json:"-"`

	UbigeoCode *string `gorm:"size:10;index" json:"ubigeo_code"`
	Name       string  `gorm:"size:100;not null;index" json:"name"`

	// Relationships
	Provinces []Province `gorm:"foreignKey:RegionID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeCreate hook to generate UUID
func (r *Region) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Region) TableName() string {
	return "regions"
}

func (r Region) String() string {
	return r.Name
}
