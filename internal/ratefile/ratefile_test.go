package ratefile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"service-fxrates/internal"
	"service-fxrates/internal/ratefile"
)

const reportCSV = "\ufeffDate,Euro (EUR),U.S. dollar (USD),JPY\n" +
	"2-Jan-12,0.7728,1,76.99\n" +
	"3-Jan-12,0.7681,1,NaN\n" +
	"not a date,1,1,1\n" +
	"4-Jan-12,0.77,1,\"1,076.99\"\n"

func TestReadCSV(t *testing.T) {
	table, err := ratefile.ReadCSV(strings.NewReader(reportCSV), nil)
	require.NoError(t, err)

	require.Equal(t, 3, table.Len())
	assert.Equal(t, []internal.Currency{
		{Code: "EUR", Name: "Euro"},
		{Code: "USD", Name: "U.S. dollar"},
		{Code: "JPY", Name: "Japanese yen"},
	}, table.Currencies())

	first, last, ok := table.Span()
	require.True(t, ok)
	assert.Equal(t, "2012-01-02", first.String())
	assert.Equal(t, "2012-01-04", last.String())

	row, ok := table.Row(internal.NewDate(2012, 1, 2))
	require.True(t, ok)
	assert.Equal(t, "76.99", row["JPY"].String())

	row, ok = table.Row(internal.NewDate(2012, 1, 3))
	require.True(t, ok)
	assert.NotContains(t, row, internal.CurrencyCode("JPY"))

	row, _ = table.Row(internal.NewDate(2012, 1, 4))
	assert.Equal(t, "1076.99", row["JPY"].String())
}

func TestReadCSV_CustomLayouts(t *testing.T) {
	in := "date,EUR\n2024-03-01,0.9\n01.03.2024,0.8\n"

	table, err := ratefile.ReadCSV(strings.NewReader(in), []string{"02.01.2006"})

	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	row, ok := table.Row(internal.NewDate(2024, 3, 1))
	require.True(t, ok)
	assert.Equal(t, "0.8", row["EUR"].String())
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ratefile.ReadCSV(strings.NewReader(""), nil)
	assert.Error(t, err)

	_, err = ratefile.ReadCSV(strings.NewReader("Date\n2-Jan-12\n"), nil)
	assert.ErrorContains(t, err, "at least one currency")

	_, err = ratefile.ReadCSV(strings.NewReader("Date,EUR\nfoo,1\n"), nil)
	assert.ErrorContains(t, err, "no dated rows (1 rows skipped)")
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "rates.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(reportCSV), 0o600))

	table, err := ratefile.Load(csvPath, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	_, err = ratefile.Load(filepath.Join(dir, "rates.json"), nil)
	assert.ErrorContains(t, err, "unsupported rate file")

	_, err = ratefile.Load(filepath.Join(dir, "missing.csv"), nil)
	assert.Error(t, err)
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Date", "Euro (EUR)", "Pound sterling (GBP)"},
		{40909, 0.7728, 0.6452},
		{"2-Jan-12", "0.7710", nil},
		{"", 1, 1},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	path := filepath.Join(t.TempDir(), "rates.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ratefile.Load(path, nil)
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())
	assert.True(t, table.Has("GBP"))

	row, ok := table.Row(internal.NewDate(2012, 1, 1))
	require.True(t, ok)
	assert.Equal(t, "0.7728", row["EUR"].String())
	assert.Equal(t, "0.6452", row["GBP"].String())

	row, ok = table.Row(internal.NewDate(2012, 1, 2))
	require.True(t, ok)
	assert.NotContains(t, row, internal.CurrencyCode("GBP"))
}

func TestLoadXLSX_UnknownSheet(t *testing.T) {
	f := excelize.NewFile()
	path := filepath.Join(t.TempDir(), "rates.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := ratefile.LoadXLSX(path, "Rates", nil)
	assert.ErrorContains(t, err, `read sheet "Rates"`)
}
