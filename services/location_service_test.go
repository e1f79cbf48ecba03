package services

import (
	"testing"

	"reflexo_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountryCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := testCtx()

	country, err := CreateCountry(ctx, db, &CountryInput{Code: strPtr("PER"), Name: " Perú "})
	require.NoError(t, err)
	assert.Equal(t, "Perú", country.Name)

	updated, err := UpdateCountry(ctx, db, country.ID, &CountryInput{Code: strPtr(""), Name: "Peru"})
	require.NoError(t, err)
	assert.Nil(t, updated.Code)
	assert.Equal(t, "Peru", updated.Name)

	list, err := ListCountries(db)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	region, err := CreateRegion(ctx, db, &RegionInput{CountryID: &country.ID, Name: "Lima"})
	require.NoError(t, err)
	require.NotNil(t, region.Country)

	require.NoError(t, DeleteCountry(ctx, db, country.ID))
	_, err = GetCountryByID(db, country.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	orphan, err := GetRegionByID(db, region.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.CountryID)
}

func TestCreateCountryValidation(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateCountry(testCtx(), db, &CountryInput{Code: strPtr("PE"), Name: "  "})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "code")
}

func TestCreateRegionValidation(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateRegion(testCtx(), db, &RegionInput{CountryID: strPtr("missing"), UbigeoCode: strPtr("1A"), Name: ""})
	fields := fieldErrors(t, err)
	assert.Equal(t, []string{"This field is required."}, fields["name"])
	assert.Equal(t, []string{"The ubigeo code must contain only digits."}, fields["ubigeo_code"])
	assert.Equal(t, []string{`Invalid id "missing" - object does not exist.`}, fields["country_id"])
}

func TestUpdateProvinceMovesRegion(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)

	moved, err := UpdateProvince(testCtx(), db, h.p2.ID, &ProvinceInput{RegionID: &h.other.ID, Name: "Cañete"})
	require.NoError(t, err)
	require.NotNil(t, moved.Region)
	assert.Equal(t, "Arequipa", moved.Region.Name)

	// Districts follow their province into the new region
	list, err := ListDistricts(db, "", h.other.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{h.d2.ID, h.dOut.ID}, districtIDs(list))

	_, err = UpdateProvince(testCtx(), db, "missing", &ProvinceInput{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRegionDetachesChildrenAndTherapists(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)
	therapist := createTestTherapist(t, db, func(in *TherapistInput) {
		in.RegionID = &h.r.ID
		in.ProvinceID = &h.p1.ID
	})

	require.NoError(t, DeleteRegion(testCtx(), db, h.r.ID))

	p1, err := GetProvinceByID(db, h.p1.ID)
	require.NoError(t, err)
	assert.Nil(t, p1.RegionID)

	stored, err := GetTherapistByID(db, therapist.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RegionID)
	require.NotNil(t, stored.ProvinceID)
	assert.Equal(t, h.p1.ID, *stored.ProvinceID)

	assert.ErrorIs(t, DeleteRegion(testCtx(), db, h.r.ID), ErrNotFound)
}

func TestDeleteProvinceAndDistrict(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)
	therapist := createTestTherapist(t, db, func(in *TherapistInput) {
		in.ProvinceID = &h.p1.ID
		in.DistrictID = &h.d1.ID
	})

	require.NoError(t, DeleteDistrict(testCtx(), db, h.d1.ID))
	require.NoError(t, DeleteProvince(testCtx(), db, h.p1.ID))

	d3, err := GetDistrictByID(db, h.d3.ID)
	require.NoError(t, err)
	assert.Nil(t, d3.ProvinceID)
	assert.Empty(t, d3.RegionName())

	stored, err := GetTherapistByID(db, therapist.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ProvinceID)
	assert.Nil(t, stored.DistrictID)

	logs, err := GetResourceAuditHistory(db, models.AuditResourceDistrict, h.d1.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditActionDelete, logs[0].Action)
}

func TestDistrictCreateAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)

	district, err := CreateDistrict(testCtx(), db, &DistrictInput{ProvinceID: &h.p1.ID, UbigeoCode: strPtr("150131"), Name: "San Isidro"})
	require.NoError(t, err)
	assert.Equal(t, "San Isidro (Lima)", district.String())
	assert.Equal(t, "Lima", district.RegionName())

	updated, err := UpdateDistrict(testCtx(), db, district.ID, &DistrictInput{Name: "San Isidro"})
	require.NoError(t, err)
	assert.Nil(t, updated.ProvinceID)
	assert.Nil(t, updated.UbigeoCode)

	_, err = CreateDistrict(testCtx(), db, &DistrictInput{ProvinceID: strPtr("missing"), Name: "X"})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "province_id")
}
