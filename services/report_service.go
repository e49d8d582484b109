package services

import (
	"bytes"
	"context"
	"fmt"

	"shelf_life_app_go/models"
	"shelf_life_app_go/services/i18n"
	"shelf_life_app_go/services/shelflife"

	"github.com/xuri/excelize/v2"
)

// ExportFileName is the download name of the evaluation spreadsheet.
const ExportFileName = "evaluacion_vida_util.xlsx"

// ExportWorkspace writes the dates and result of ws to a one-sheet workbook.
// Labels follow the locale in ctx; status labels are always the fixed ones.
func ExportWorkspace(ctx context.Context, ws *Workspace) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.T(ctx, "export.sheet")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	none := i18n.T(ctx, "export.none")
	dates := ws.Dates()
	rows := [][2]interface{}{
		{i18n.T(ctx, "export.field"), i18n.T(ctx, "export.value")},
		{i18n.T(ctx, "fields."+models.FieldElaboration), formatOptional(dates.Elaboration, none)},
		{i18n.T(ctx, "fields."+models.FieldExpiration), formatOptional(dates.Expiration, none)},
		{i18n.T(ctx, "fields."+models.FieldEvaluation), shelflife.Format(dates.Evaluation)},
	}

	if calc, ok := ws.Calculation(); ok {
		rows = append(rows,
			[2]interface{}{i18n.T(ctx, "results.total_shelf_life"), calc.TotalShelfLife},
			[2]interface{}{i18n.T(ctx, "results.remaining_days"), calc.RemainingDays},
			[2]interface{}{i18n.T(ctx, "results.remaining_percentage"), fmt.Sprintf("%d%%", calc.RemainingPercentage)},
			[2]interface{}{i18n.T(ctx, "results.status"), calc.StatusMessage},
		)
	} else {
		rows = append(rows, [2]interface{}{i18n.T(ctx, "results.status"), i18n.T(ctx, "results.insufficient")})
	}

	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := styleSheet(f, sheet); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

// styleSheet bolds the header row and widens both columns.
func styleSheet(f *excelize.File, sheet string) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 36); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return nil
}

func formatOptional(d *shelflife.CalendarDate, none string) string {
	if d == nil {
		return none
	}
	return shelflife.Format(*d)
}
