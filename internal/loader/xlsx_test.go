package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeTestXLSX(t *testing.T, sheetName string, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	require.NoError(t, err)
	for _, cells := range rows {
		row := sheet.AddRow()
		for _, c := range cells {
			row.AddCell().SetString(c)
		}
	}
	path := filepath.Join(t.TempDir(), "activity.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeTestXLSX(t, "Activity", [][]string{
		{"Recruiter", "Team", "Date", "Outbound Calls", "p50_engage"},
		{"Ann", "Alpha", "2026-07-01", "120", "300"},
		{"Bob", "Alpha", "2026-07-02", "50", "-"},
	})

	records, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Ann", records[0].RecruiterName)
	assert.InDelta(t, 120, records[0].OutboundCalls, 0.001)
	assert.Equal(t, "300", records[0].Engage["p50_engage"])
	assert.Equal(t, "-", records[1].Engage["p50_engage"])
}

func TestReadXLSXSheetSelection(t *testing.T) {
	path := writeTestXLSX(t, "Raw", [][]string{
		{"recruiter", "outbound_calls"},
		{"Ann", "10"},
	})

	t.Run("by name", func(t *testing.T) {
		records, err := ReadXLSX(path, XLSXOptions{SheetName: "Raw"})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("missing name errors", func(t *testing.T) {
		_, err := ReadXLSX(path, XLSXOptions{SheetName: "Nope"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("index out of range errors", func(t *testing.T) {
		_, err := ReadXLSX(path, XLSXOptions{SheetIndex: 5})
		assert.Error(t, err)
	})
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("recruiter,outbound_calls\nAnn,10\n"), 0o644))
	xlsxPath := writeTestXLSX(t, "Activity", [][]string{
		{"recruiter", "outbound_calls"},
		{"Bob", "20"},
	})

	records, err := ReadFiles(context.Background(), []string{csvPath, xlsxPath})
	require.NoError(t, err)
	require.Len(t, records, 2)

	names := []string{records[0].RecruiterName, records[1].RecruiterName}
	assert.ElementsMatch(t, []string{"Ann", "Bob"}, names)
}

func TestReadFileUnsupportedExtension(t *testing.T) {
	_, err := ReadFile("activity.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}
