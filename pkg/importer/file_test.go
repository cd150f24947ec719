package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tablekit/internal/testutil"
	"tablekit/pkg/frame"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFromFile_CSV(t *testing.T) {
	path := writeFile(t, "prices.csv", "code,close,active\nBBOB,1.45,true\nTASC,,false\n")

	imp, err := New(nil, Config{})
	require.NoError(t, err)

	tbl, err := imp.FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"code", "close", "active"}, tbl.Names())
	assert.Equal(t, 2, tbl.NumRows())

	code, _ := tbl.Column("code")
	assert.Equal(t, frame.String, code.Type)

	closeCol, _ := tbl.Column("close")
	assert.Equal(t, frame.Float64, closeCol.Type)
	assert.Equal(t, 1.45, closeCol.Values[0])
	assert.Nil(t, closeCol.Values[1])

	active, _ := tbl.Column("active")
	assert.Equal(t, frame.Bool, active.Type)
	assert.Equal(t, []any{true, false}, active.Values)
}

func TestFromFile_TxtIsTabSeparated(t *testing.T) {
	path := writeFile(t, "data.txt", "id\tname\n1\tfoo\n2\tbar\n")

	imp, err := New(nil, Config{})
	require.NoError(t, err)

	tbl, err := imp.FromFile(path)
	require.NoError(t, err)

	id, _ := tbl.Column("id")
	assert.Equal(t, frame.Int64, id.Type)
	assert.Equal(t, []any{int64(1), int64(2)}, id.Values)
}

func TestFromFile_DelimiterOverride(t *testing.T) {
	path := writeFile(t, "data.csv", "a;b\n1;2\n")

	imp, err := New(nil, Config{Delimiter: ';'})
	require.NoError(t, err)

	tbl, err := imp.FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Names())
}

func TestFromFile_Spreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "ticker"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "volume"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "BBOB"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 1200))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "TASC"))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", 3400))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	imp, err := New(nil, Config{})
	require.NoError(t, err)

	tbl, err := imp.FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"ticker", "volume"}, tbl.Names())
	volume, _ := tbl.Column("volume")
	assert.Equal(t, frame.Int64, volume.Type)
	assert.Equal(t, []any{int64(1200), int64(3400)}, volume.Values)
}

func TestFromFile_UnknownExtension(t *testing.T) {
	path := writeFile(t, "data.parquet", "whatever")

	logger, handler := testutil.NewLogger(t)
	imp, err := New(logger, Config{})
	require.NoError(t, err)

	_, err = imp.FromFile(path)
	var impErr *Error
	require.ErrorAs(t, err, &impErr)
	assert.Equal(t, KindUnsupported, impErr.Kind)
	assert.True(t, handler.ContainsMessage("Import failed"))
}

func TestFromFile_MissingFile(t *testing.T) {
	imp, err := New(nil, Config{})
	require.NoError(t, err)

	_, err = imp.FromFile(filepath.Join(t.TempDir(), "nope.csv"))
	var impErr *Error
	require.ErrorAs(t, err, &impErr)
	assert.Equal(t, KindIO, impErr.Kind)
}

func TestFromFile_MalformedSpreadsheet(t *testing.T) {
	path := writeFile(t, "broken.xlsx", "this is not a workbook")

	imp, err := New(nil, Config{})
	require.NoError(t, err)

	_, err = imp.FromFile(path)
	var impErr *Error
	require.ErrorAs(t, err, &impErr)
	assert.Equal(t, KindDecode, impErr.Kind)
}

func TestFromFile_ShortRowsPadWithMissing(t *testing.T) {
	path := writeFile(t, "ragged.csv", "a,b,c\n1,2,3\n4\n")

	imp, err := New(nil, Config{})
	require.NoError(t, err)

	tbl, err := imp.FromFile(path)
	require.NoError(t, err)

	b, _ := tbl.Column("b")
	assert.Equal(t, int64(2), b.Values[0])
	assert.Nil(t, b.Values[1])
}
