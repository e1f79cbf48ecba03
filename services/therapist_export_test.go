package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportTherapistsXLSX(t *testing.T) {
	db := setupTestDB(t)
	locs := createTestLocations(t, db)
	createTestTherapist(t, db, func(in *TherapistInput) { in.DistrictID = &locs.district.ID })
	gone := createTestTherapist(t, db, func(in *TherapistInput) {
		in.DocumentNumber = "87654321"
		in.FirstName = "Rosa"
	})
	require.NoError(t, SoftDeleteTherapist(testCtx(), db, gone.ID))

	buf, err := ExportTherapistsXLSX(testCtx(), db, TherapistFilters{Active: ParseActiveFilter("true")})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Therapists")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Document type", rows[0][0])
	assert.Equal(t, "Status", rows[0][len(exportColumns)-1])

	assert.Equal(t, "12345678", rows[1][1])
	assert.Equal(t, "Juan", rows[1][2])
	assert.Equal(t, "1990-01-01", rows[1][5])
	assert.Equal(t, "Miraflores", rows[1][11])
	assert.Equal(t, "Active", rows[1][13])

	styleID, err := f.GetCellStyle("Therapists", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestWriteExportRow(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	t.Run("writes values from column A", func(t *testing.T) {
		require.NoError(t, writeExportRow(f, "Sheet1", 3, []string{"a", "b"}))
		value, err := f.GetCellValue("Sheet1", "B3")
		require.NoError(t, err)
		assert.Equal(t, "b", value)
	})

	t.Run("invalid row", func(t *testing.T) {
		err := writeExportRow(f, "Sheet1", 0, []string{"a"})
		assert.ErrorContains(t, err, "failed to resolve cell")
	})

	t.Run("missing sheet", func(t *testing.T) {
		err := writeExportRow(f, "Nope", 1, []string{"a"})
		assert.ErrorContains(t, err, "failed to write cell A1")
	})
}
