package services

import (
	"testing"

	"reflexo_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type hierarchy struct {
	r, other         models.Region
	p1, p2, otherP   models.Province
	d1, d2, d3, dOut models.District
}

// seedHierarchy builds region R with provinces P1 and P2, districts D1 and D3 in P1,
// D2 in P2, plus an unrelated region with one province and one district.
func seedHierarchy(t *testing.T, db *gorm.DB) hierarchy {
	t.Helper()
	var h hierarchy

	h.r = models.Region{Name: "Lima", UbigeoCode: strPtr("15")}
	h.other = models.Region{Name: "Arequipa"}
	require.NoError(t, db.Create(&h.r).Error)
	require.NoError(t, db.Create(&h.other).Error)

	h.p1 = models.Province{Name: "Lima", RegionID: &h.r.ID, UbigeoCode: strPtr("1501")}
	h.p2 = models.Province{Name: "Cañete", RegionID: &h.r.ID}
	h.otherP = models.Province{Name: "Arequipa", RegionID: &h.other.ID}
	for _, p := range []*models.Province{&h.p1, &h.p2, &h.otherP} {
		require.NoError(t, db.Create(p).Error)
	}

	h.d1 = models.District{Name: "Miraflores", ProvinceID: &h.p1.ID, UbigeoCode: strPtr("150122")}
	h.d2 = models.District{Name: "Asia", ProvinceID: &h.p2.ID}
	h.d3 = models.District{Name: "Barranco", ProvinceID: &h.p1.ID}
	h.dOut = models.District{Name: "Cayma", ProvinceID: &h.otherP.ID}
	for _, d := range []*models.District{&h.d1, &h.d2, &h.d3, &h.dOut} {
		require.NoError(t, db.Create(d).Error)
	}
	return h
}

func districtIDs(options []DistrictOption) []string {
	ids := make([]string, len(options))
	for i, o := range options {
		ids[i] = o.ID
	}
	return ids
}

func TestListDistrictsByRegionIsUnionOfItsProvinces(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)

	byRegion, err := ListDistricts(db, "", h.r.ID)
	require.NoError(t, err)
	// Sorted by name: Asia, Barranco, Miraflores
	assert.Equal(t, []string{h.d2.ID, h.d3.ID, h.d1.ID}, districtIDs(byRegion))

	byP1, err := ListDistricts(db, h.p1.ID, "")
	require.NoError(t, err)
	assert.Equal(t, []string{h.d3.ID, h.d1.ID}, districtIDs(byP1))

	byP2, err := ListDistricts(db, h.p2.ID, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, districtIDs(byRegion), append(districtIDs(byP1), districtIDs(byP2)...))
}

func TestListDistrictsProvinceTakesPrecedence(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)

	list, err := ListDistricts(db, h.p2.ID, h.other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{h.d2.ID}, districtIDs(list))
}

func TestListDistrictsUnfiltered(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)

	list, err := ListDistricts(db, "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{h.d2.ID, h.d3.ID, h.dOut.ID, h.d1.ID}, districtIDs(list))

	miraflores := list[3]
	assert.Equal(t, "Lima", miraflores.ProvinceName)
	assert.Equal(t, "Lima", miraflores.RegionName)
	assert.Equal(t, "150122", *miraflores.UbigeoCode)
}

func TestListDistrictsUnknownIDs(t *testing.T) {
	db := setupTestDB(t)
	seedHierarchy(t, db)

	_, err := ListDistricts(db, "missing-province", "")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "province", nf.Resource)
	assert.Equal(t, "missing-province", nf.ID)

	_, err = ListDistricts(db, "", "missing-region")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "region", nf.Resource)
}

func TestListProvinces(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)

	list, err := ListProvinces(db, h.r.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Cañete", list[0].Name)
	assert.Equal(t, "Lima", list[1].Name)
	assert.Equal(t, "Lima", list[0].RegionName)

	all, err := ListProvinces(db, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = ListProvinces(db, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRegionsSortedByName(t *testing.T) {
	db := setupTestDB(t)
	seedHierarchy(t, db)

	list, err := ListRegions(db)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Arequipa", list[0].Name)
	assert.Equal(t, "Lima", list[1].Name)
}

func TestLocationOptions(t *testing.T) {
	db := setupTestDB(t)
	seedHierarchy(t, db)

	set, err := LocationOptions(db)
	require.NoError(t, err)
	assert.Len(t, set.Regions, 2)
	assert.Len(t, set.Provinces, 3)
	assert.Len(t, set.Districts, 4)
}

func TestProvincesByRegion(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)

	env, err := ProvincesByRegion(db, h.r.ID)
	require.NoError(t, err)
	assert.Equal(t, h.r.ID, env.Region.ID)
	assert.Equal(t, 2, env.TotalCount)
	assert.Len(t, env.Provinces, 2)

	_, err = ProvincesByRegion(db, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDistrictsByProvince(t *testing.T) {
	db := setupTestDB(t)
	h := seedHierarchy(t, db)

	env, err := DistrictsByProvince(db, h.p1.ID)
	require.NoError(t, err)
	assert.Equal(t, h.p1.ID, env.Province.ID)
	require.NotNil(t, env.Province.Region)
	assert.Equal(t, "Lima", env.Province.Region.Name)
	assert.Equal(t, 2, env.TotalCount)

	orphan := models.Province{Name: "Huérfana"}
	require.NoError(t, db.Create(&orphan).Error)
	env, err = DistrictsByProvince(db, orphan.ID)
	require.NoError(t, err)
	assert.Nil(t, env.Province.Region)
	assert.Zero(t, env.TotalCount)

	_, err = DistrictsByProvince(db, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetLocationStats(t *testing.T) {
	db := setupTestDB(t)
	seedHierarchy(t, db)
	createTestTherapist(t, db, nil)

	stats, err := GetLocationStats(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalRegions)
	assert.Equal(t, int64(3), stats.TotalProvinces)
	assert.Equal(t, int64(4), stats.TotalDistricts)
	assert.Equal(t, int64(1), stats.RegionsWithUbigeo)
	assert.Equal(t, int64(1), stats.ProvincesWithUbigeo)
	assert.Equal(t, int64(1), stats.DistrictsWithUbigeo)
	assert.Equal(t, int64(1), stats.TotalTherapists)
	assert.Equal(t, int64(1), stats.ActiveTherapists)
}
