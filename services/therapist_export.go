package services

import (
	"bytes"
	"context"
	"fmt"

	"reflexo_app_go/models"
	"reflexo_app_go/services/i18n"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var exportColumns = []string{
	"document_type",
	"document_number",
	"first_name",
	"last_name_paternal",
	"last_name_maternal",
	"birth_date",
	"gender",
	"phone",
	"email",
	"region",
	"province",
	"district",
	"address",
	"status",
}

// ExportTherapistsXLSX writes the therapists matching filters to a single-sheet workbook
func ExportTherapistsXLSX(ctx context.Context, db *gorm.DB, filters TherapistFilters) (*bytes.Buffer, error) {
	therapists, err := ListTherapists(db, filters)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.T(ctx, "export.sheet")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]string, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = i18n.T(ctx, "export.columns."+col)
	}
	if err := writeExportRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	for row, t := range therapists {
		if err := writeExportRow(f, sheet, row+2, exportRow(ctx, t)); err != nil {
			return nil, err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(exportColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve last column: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header row: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}

// writeExportRow fills the 1-based row with values starting at column A
func writeExportRow(f *excelize.File, sheet string, row int, values []string) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("failed to resolve cell (%d,%d): %w", i+1, row, err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}

func exportRow(ctx context.Context, t models.Therapist) []string {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	var region, province, district string
	if t.Region != nil {
		region = t.Region.Name
	}
	if t.Province != nil {
		province = t.Province.Name
	}
	if t.District != nil {
		district = t.District.Name
	}

	status := i18n.T(ctx, "pages.therapists.active")
	if !t.IsActive {
		status = i18n.T(ctx, "pages.therapists.inactive")
	}

	return []string{
		t.DocumentType,
		t.DocumentNumber,
		t.FirstName,
		t.LastNamePaternal,
		deref(t.LastNameMaternal),
		t.BirthDate.Format(DateLayout),
		t.Gender,
		t.Phone,
		deref(t.Email),
		region,
		province,
		district,
		deref(t.Address),
		status,
	}
}
