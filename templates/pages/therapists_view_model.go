package pages

import (
	"reflexo_app_go/models"
	"reflexo_app_go/services"
)

// TherapistsPageData holds the data for the therapist index page
type TherapistsPageData struct {
	Lang         string
	Nonce        string
	Search       string
	ShowInactive bool
	Therapists   []models.Therapist
	Regions      []services.RegionOption
}
