package grid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeFixture builds a two-sheet workbook on disk and returns its path.
func writeFixture(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "基础性息"))
	_, err := f.NewSheet("数据信息")
	require.NoError(t, err)

	require.NoError(t, f.MergeCell("基础性息", "B2", "D2"))
	require.NoError(t, f.SetCellStr("数据信息", "B2", "W-001"))
	require.NoError(t, f.SetCellStr("数据信息", "B3", "W-002"))
	require.NoError(t, f.SetCellStr("数据信息", "C3", "D"))
	require.NoError(t, f.SetCellStr("数据信息", "B5", "W-003"))
	require.NoError(t, f.SetCellStr("数据信息", "F4", "3.31"))

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}

func TestWorkbookSheetResolution(t *testing.T) {
	wb, err := Open(writeFixture(t))
	require.NoError(t, err)
	defer wb.Close()

	tests := []struct {
		name       string
		candidates []string
		fallback   int
		wantName   string
		wantErr    bool
	}{
		{
			name:       "first candidate wins",
			candidates: []string{"基础性息", "基础信息"},
			wantName:   "基础性息",
		},
		{
			name:       "later candidate matches",
			candidates: []string{"基础信息", "数据信息"},
			wantName:   "数据信息",
		},
		{
			name:       "falls back to index",
			candidates: []string{"不存在"},
			fallback:   1,
			wantName:   "数据信息",
		},
		{
			name:       "no match and index out of range",
			candidates: []string{"不存在"},
			fallback:   5,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := wb.Sheet(tt.candidates, tt.fallback)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, sheet.Name())
		})
	}
}

func TestSheetCell(t *testing.T) {
	wb, err := Open(writeFixture(t))
	require.NoError(t, err)
	defer wb.Close()

	sheet, err := wb.Sheet([]string{"数据信息"}, 0)
	require.NoError(t, err)

	assert.Equal(t, "W-001", sheet.Cell(2, 2))
	assert.Equal(t, "D", sheet.Cell(3, 3))
	assert.Equal(t, "", sheet.Cell(4, 2))
	assert.Equal(t, "", sheet.Cell(100, 100))
	assert.Equal(t, "", sheet.Cell(0, 0))
}

func TestSheetLastPopulatedRow(t *testing.T) {
	wb, err := Open(writeFixture(t))
	require.NoError(t, err)
	defer wb.Close()

	sheet, err := wb.Sheet([]string{"数据信息"}, 0)
	require.NoError(t, err)

	assert.Equal(t, 5, sheet.LastPopulatedRow(2))
	assert.Equal(t, 3, sheet.LastPopulatedRow(3))
	assert.Equal(t, 4, sheet.LastPopulatedRow(6))
	assert.Equal(t, 0, sheet.LastPopulatedRow(9))
}

func TestSheetWriteCellMergeAware(t *testing.T) {
	wb, err := Open(writeFixture(t))
	require.NoError(t, err)
	defer wb.Close()

	sheet, err := wb.Sheet([]string{"基础性息"}, 0)
	require.NoError(t, err)

	// A range address collapses to its anchor, which is the merged
	// region's top-left cell.
	require.NoError(t, sheet.WriteCell("B2:D2", "工程一"))
	assert.Equal(t, "工程一", sheet.Cell(2, 2))

	// An anchor inside the merged region redirects to the top-left cell.
	require.NoError(t, sheet.WriteCell("C2", "工程二"))
	assert.Equal(t, "工程二", sheet.Cell(2, 2))

	// Plain cells write through untouched.
	require.NoError(t, sheet.WriteCell("F9", "二级"))
	assert.Equal(t, "二级", sheet.Cell(9, 6))
}

func TestSheetWriteAtAndColumn(t *testing.T) {
	wb, err := Open(writeFixture(t))
	require.NoError(t, err)
	defer wb.Close()

	sheet, err := wb.Sheet([]string{"数据信息"}, 0)
	require.NoError(t, err)

	require.NoError(t, sheet.WriteAt(7, 12, "Ⅰ"))
	assert.Equal(t, "Ⅰ", sheet.Cell(7, 12))

	require.NoError(t, sheet.WriteColumn(3, 1, []string{"W-101", "W-102", "W-103"}))
	assert.Equal(t, "W-101", sheet.Cell(3, 1))
	assert.Equal(t, "W-102", sheet.Cell(4, 1))
	assert.Equal(t, "W-103", sheet.Cell(5, 1))

	require.NoError(t, sheet.WriteColumn(3, 1, nil))

	err = sheet.WriteAt(0, 0, "x")
	assert.Error(t, err)
}

func TestSheetClearRect(t *testing.T) {
	wb, err := Open(writeFixture(t))
	require.NoError(t, err)
	defer wb.Close()

	sheet, err := wb.Sheet([]string{"数据信息"}, 0)
	require.NoError(t, err)

	require.NoError(t, sheet.ClearRect(2, 1, 6, 6))
	assert.Equal(t, "", sheet.Cell(2, 2))
	assert.Equal(t, "", sheet.Cell(3, 3))
	assert.Equal(t, "", sheet.Cell(4, 6))
	assert.Equal(t, 0, sheet.LastPopulatedRow(2))
}

func TestWorkbookSaveRoundTrip(t *testing.T) {
	path := writeFixture(t)

	wb, err := Open(path)
	require.NoError(t, err)
	sheet, err := wb.Sheet([]string{"数据信息"}, 0)
	require.NoError(t, err)
	require.NoError(t, sheet.WriteAt(9, 2, "W-900"))
	require.NoError(t, wb.Save())
	require.NoError(t, wb.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	sheet, err = reopened.Sheet([]string{"数据信息"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "W-900", sheet.Cell(9, 2))
}
