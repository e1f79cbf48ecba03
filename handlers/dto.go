package handlers

import (
	"time"

	"reflexo_app_go/models"
	"reflexo_app_go/services"
)

// TherapistResponse is the JSON shape of a therapist. birth_date is rendered as YYYY-MM-DD.
type TherapistResponse struct {
	ID                string    `json:"id"`
	DocumentType      string    `json:"document_type"`
	DocumentNumber    string    `json:"document_number"`
	FirstName         string    `json:"first_name"`
	LastNamePaternal  string    `json:"last_name_paternal"`
	LastNameMaternal  *string   `json:"last_name_maternal"`
	FullName          string    `json:"full_name"`
	BirthDate         string    `json:"birth_date"`
	Gender            string    `json:"gender"`
	PersonalReference *string   `json:"personal_reference"`
	IsActive          bool      `json:"is_active"`
	Phone             string    `json:"phone"`
	Email             *string   `json:"email"`
	Address           *string   `json:"address"`
	ProfilePicture    *string   `json:"profile_picture"`
	Region            *string   `json:"region"`
	RegionName        string    `json:"region_name"`
	Province          *string   `json:"province"`
	ProvinceName      string    `json:"province_name"`
	District          *string   `json:"district"`
	DistrictName      string    `json:"district_name"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func newTherapistResponse(t *models.Therapist) TherapistResponse {
	resp := TherapistResponse{
		ID:                t.ID,
		DocumentType:      t.DocumentType,
		DocumentNumber:    t.DocumentNumber,
		FirstName:         t.FirstName,
		LastNamePaternal:  t.LastNamePaternal,
		LastNameMaternal:  t.LastNameMaternal,
		FullName:          t.FullName(),
		BirthDate:         t.BirthDate.Format(services.DateLayout),
		Gender:            t.Gender,
		PersonalReference: t.PersonalReference,
		IsActive:          t.IsActive,
		Phone:             t.Phone,
		Email:             t.Email,
		Address:           t.Address,
		ProfilePicture:    t.ProfilePicture,
		Region:            t.RegionID,
		Province:          t.ProvinceID,
		District:          t.DistrictID,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	if t.Region != nil {
		resp.RegionName = t.Region.Name
	}
	if t.Province != nil {
		resp.ProvinceName = t.Province.Name
	}
	if t.District != nil {
		resp.DistrictName = t.District.Name
	}
	return resp
}

func newTherapistResponses(list []models.Therapist) []TherapistResponse {
	out := make([]TherapistResponse, len(list))
	for i := range list {
		out[i] = newTherapistResponse(&list[i])
	}
	return out
}

// RegionResponse is a region with its country name
type RegionResponse struct {
	models.Region
	CountryName string `json:"country_name"`
}

func newRegionResponse(r *models.Region) RegionResponse {
	resp := RegionResponse{Region: *r}
	if r.Country != nil {
		resp.CountryName = r.Country.Name
	}
	return resp
}

// ProvinceResponse is a province with its region name
type ProvinceResponse struct {
	models.Province
	RegionName string `json:"region_name"`
}

func newProvinceResponse(p *models.Province) ProvinceResponse {
	resp := ProvinceResponse{Province: *p}
	if p.Region != nil {
		resp.RegionName = p.Region.Name
	}
	return resp
}

// DistrictResponse is a district with its province and derived region names
type DistrictResponse struct {
	models.District
	ProvinceName string `json:"province_name"`
	RegionName   string `json:"region_name"`
}

func newDistrictResponse(d *models.District) DistrictResponse {
	resp := DistrictResponse{District: *d, RegionName: d.RegionName()}
	if d.Province != nil {
		resp.ProvinceName = d.Province.Name
	}
	return resp
}
