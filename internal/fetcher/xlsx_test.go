package fetcher

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				cell := row.AddCell()
				cell.SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	err := f.Save(path)
	require.NoError(t, err)
	return path
}

func TestReadXLSX_Basic(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"Activity_ID", "Update_ID", "Longest_Path"},
			{"A1", "Baseline", "Yes"},
			{"A1", "U1", "No"},
		},
	})

	tbl, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	assert.Equal(t, path, tbl.Source)
	assert.Equal(t, []string{"Activity_ID", "Update_ID", "Longest_Path"}, tbl.Header)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, []any{"A1", "Baseline", "Yes"}, tbl.Rows[0])
	assert.Equal(t, []any{"A1", "U1", "No"}, tbl.Rows[1])
}

func TestReadXLSX_BlankCellsAreNil(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {
			{"a", "b"},
			{"  x  ", ""},
		},
	})

	tbl, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "x", tbl.Rows[0][0])
	assert.Nil(t, tbl.Rows[0][1])
}

func TestReadXLSX_TypedCells(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Schedule")
	require.NoError(t, err)

	header := sheet.AddRow()
	for _, h := range []string{"Finish", "Longest_Path", "Total_Float"} {
		header.AddCell().SetString(h)
	}
	row := sheet.AddRow()
	row.AddCell().SetDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	row.AddCell().SetBool(true)
	row.AddCell().SetFloat(-3.5)

	path := filepath.Join(t.TempDir(), "typed.xlsx")
	require.NoError(t, f.Save(path))

	tbl, err := ReadXLSX(path, XLSXOptions{SheetName: "Schedule"})
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())

	finish, ok := tbl.Rows[0][0].(time.Time)
	require.True(t, ok, "expected time.Time, got %T", tbl.Rows[0][0])
	assert.Equal(t, "2024-01-15", finish.Format("2006-01-02"))
	assert.Equal(t, true, tbl.Rows[0][1])
	assert.Equal(t, -3.5, tbl.Rows[0][2])
}

func TestReadXLSX_NumericHeaderCell(t *testing.T) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Schedule")
	require.NoError(t, err)

	header := sheet.AddRow()
	header.AddCell().SetString("Activity_ID")
	header.AddCell().SetInt(2024)
	row := sheet.AddRow()
	row.AddCell().SetString("A1")
	row.AddCell().SetFloat(3)

	path := filepath.Join(t.TempDir(), "numeric-header.xlsx")
	require.NoError(t, f.Save(path))

	tbl, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Activity_ID", "2024"}, tbl.Header)
}

func TestReadXLSX_SheetName(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"First":  {{"a", "b"}},
		"Second": {{"x", "y"}, {"1", "2"}},
	})

	tbl, err := ReadXLSX(path, XLSXOptions{SheetName: "Second"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, tbl.Header)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, []any{"1", "2"}, tbl.Rows[0])
}

func TestReadXLSX_SheetNameNotFound(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {{"a"}},
	})

	_, err := ReadXLSX(path, XLSXOptions{SheetName: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadXLSX_SheetIndexOutOfRange(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Sheet1": {{"a"}},
	})

	_, err := ReadXLSX(path, XLSXOptions{SheetIndex: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestReadXLSX_MissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), XLSXOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xlsx: open file")
}
