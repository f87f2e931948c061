package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reports.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTable_CSV(t *testing.T) {
	path := writeTempCSV(t, "narrative,altitude\nengine failure,10000\nroutine flight,\n")

	table, err := LoadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"narrative", "altitude"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "engine failure", table.Records[0]["narrative"])
	assert.Equal(t, "10000", table.Records[0]["altitude"])
	assert.Nil(t, table.Records[1]["altitude"])
}

func TestLoadTable_RaggedRows(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,2\n")

	table, err := LoadTable(path)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "2", table.Records[0]["b"])
	assert.Nil(t, table.Records[0]["c"])
}

func TestLoadTable_TrimsHeaderAndCells(t *testing.T) {
	path := writeTempCSV(t, " narrative , phase \n engine stall , climb \n")

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"narrative", "phase"}, table.Columns)
	assert.Equal(t, "engine stall", table.Records[0]["narrative"])
}

func TestLoadTable_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	_, err := LoadTable(path)
	assert.Error(t, err)
}

func TestLoadTable_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := LoadTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestLoadTable_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"narrative", "phase"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"turbine blade damage", "cruise"}))

	path := filepath.Join(t.TempDir(), "reports.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"narrative", "phase"}, table.Columns)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "turbine blade damage", table.Records[0]["narrative"])
}
