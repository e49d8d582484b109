package services

import (
	"context"
	"testing"

	"shelf_life_app_go/services/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportWorkspace(t *testing.T) {
	require.NoError(t, i18n.Load(nil))
	ctx := i18n.WithLocale(context.Background(), "es")

	ws := newTestWorkspace()
	ws.SetElaborationDate(ptrDate(cal(2025, 1, 1)))
	ws.SetExpirationDate(ptrDate(cal(2025, 1, 31)))

	buf, err := ExportWorkspace(ctx, ws)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := i18n.T(ctx, "export.sheet")
	assert.Equal(t, []string{sheet}, f.GetSheetList())

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 8)
	assert.Equal(t, []string{"Fecha de elaboración", "01/01/2025"}, rows[1])
	assert.Equal(t, []string{"Fecha de vencimiento", "31/01/2025"}, rows[2])
	assert.Equal(t, []string{"Fecha de evaluación", "01/01/2025"}, rows[3])
	assert.Equal(t, "30", rows[4][1])
	assert.Equal(t, "27", rows[5][1])
	assert.Equal(t, "90%", rows[6][1])
	assert.Equal(t, "Recién producido - Aceptable", rows[7][1])
}

func TestExportWorkspaceInsufficientData(t *testing.T) {
	require.NoError(t, i18n.Load(nil))
	ctx := i18n.WithLocale(context.Background(), "en")

	buf, err := ExportWorkspace(ctx, newTestWorkspace())
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Evaluation")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Production date", "No data"}, rows[1])
	assert.Equal(t, i18n.Translate("en", "results.insufficient"), rows[4][1])
}

func TestStyleSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, styleSheet(f, "Sheet1"))
	styleID, err := f.GetCellStyle("Sheet1", "B1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)

	width, err := f.GetColWidth("Sheet1", "B")
	require.NoError(t, err)
	assert.Equal(t, float64(36), width)

	err = styleSheet(f, "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to style header")
}
