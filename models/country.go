package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Country is the top level of the location hierarchy
type Country struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Code *string `gorm:"size:3" json:"code"` // ISO 3166-1 alpha-3 (PER, ...)
	Name string  `gorm:"size:100;not null" json:"name"`

	// Relationships
	Regions []Region `gorm:"foreignKey:CountryID;constraint:OnDelete:SET NULL" json:"regions,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Country) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Country) TableName() string {
	return "countries"
}

func (c Country) String() string {
	return c.Name
}
