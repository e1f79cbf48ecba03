package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTherapistFullName(t *testing.T) {
	maternal := "López"
	th := Therapist{FirstName: "Juan", LastNamePaternal: "García", LastNameMaternal: &maternal}
	assert.Equal(t, "Juan García López", th.FullName())
	assert.Equal(t, "Juan García López", th.String())

	th.LastNameMaternal = nil
	assert.Equal(t, "Juan García ", th.FullName())
	assert.Equal(t, "Juan García", th.DisplayName())
}

func TestLocationStrings(t *testing.T) {
	region := Region{Name: "Amazonas"}
	province := Province{Name: "Chachapoyas", Region: &region}
	district := District{Name: "Chachapoyas", Province: &province}

	assert.Equal(t, "Amazonas", region.String())
	assert.Equal(t, "Chachapoyas (Amazonas)", province.String())
	assert.Equal(t, "Chachapoyas (Chachapoyas)", district.String())
	assert.Equal(t, "Amazonas", district.RegionName())

	orphan := District{Name: "Huérfano"}
	assert.Equal(t, "Huérfano", orphan.String())
	assert.Equal(t, "", orphan.RegionName())
}

func TestIsKnownDocumentType(t *testing.T) {
	for _, dt := range DocumentTypes {
		assert.True(t, IsKnownDocumentType(dt))
	}
	assert.False(t, IsKnownDocumentType("dni"))
	assert.False(t, IsKnownDocumentType("RUC"))
}
