package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity document types
const (
	DocumentTypeDNI = "DNI" // Documento Nacional de Identidad
	DocumentTypeCE  = "CE"  // Carné de Extranjería
	DocumentTypePTP = "PTP" // Permiso Temporal de Permanencia
	DocumentTypeCR  = "CR"  // Carné de Refugiado
	DocumentTypePAS = "PAS" // Pasaporte
)

// DocumentTypes lists the recognised document types in display order
var DocumentTypes = []string{
	DocumentTypeDNI,
	DocumentTypeCE,
	DocumentTypePTP,
	DocumentTypeCR,
	DocumentTypePAS,
}

// IsKnownDocumentType reports whether docType is one of DocumentTypes
func IsKnownDocumentType(docType string) bool {
	for _, t := range DocumentTypes {
		if t == docType {
			return true
		}
	}
	return false
}

// Therapist is a practitioner record. Deleting one only clears IsActive.
//
// RegionID, ProvinceID and DistrictID are independent references; nothing checks
// that the district lies inside the province or the province inside the region.
type Therapist struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Identity
	DocumentType      string    `gorm:"size:50;not null" json:"document_type"`
	DocumentNumber    string    `gorm:"size:20;not null;uniqueIndex" json:"document_number"`
	LastNamePaternal  string    `gorm:"size:100;not null" json:"last_name_paternal"`
	LastNameMaternal  *string   `gorm:"size:100" json:"last_name_maternal"`
	FirstName         string    `gorm:"size:100;not null" json:"first_name"`
	BirthDate         time.Time `gorm:"type:date;not null" json:"birth_date"`
	Gender            string    `gorm:"size:20;not null" json:"gender"`
	PersonalReference *string   `gorm:"size:255" json:"personal_reference"`
	IsActive          bool      `gorm:"not null;default:true;index" json:"is_active"`

	// Contact
	Phone          string  `gorm:"size:15;not null" json:"phone"`
	Email          *string `gorm:"size:254" json:"email"`
	Address        *string `gorm:"type:text" json:"address"`
	ProfilePicture *string `gorm:"size:255" json:"profile_picture"`

	// Location references
	RegionID   *string   `gorm:"type:uuid;index" json:"region"`
	Region     *Region   `gorm:"foreignKey:RegionID;constraint:OnDelete:SET NULL" json:"-"`
	ProvinceID *string   `gorm:"type:uuid;index" json:"province"`
	Province   *Province `gorm:"foreignKey:ProvinceID;constraint:OnDelete:SET NULL" json:"-"`
	DistrictID *string   `gorm:"type:uuid;index" json:"district"`
	District   *District `gorm:"foreignKey:DistrictID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeCreate hook to generate UUID
func (t *Therapist) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Therapist) TableName() string {
	return "therapists"
}

// FullName renders "First Paternal Maternal". A missing maternal name leaves the trailing space.
func (t Therapist) FullName() string {
	maternal := ""
	if t.LastNameMaternal != nil {
		maternal = *t.LastNameMaternal
	}
	return t.FirstName + " " + t.LastNamePaternal + " " + maternal
}

// DisplayName is FullName without the trailing space, for page titles and exports
func (t Therapist) DisplayName() string {
	return strings.TrimSpace(t.FullName())
}

func (t Therapist) String() string {
	return t.FullName()
}
