package ratefile

import (
	"fmt"
	"strconv"
	"strings"

	"service-fxrates/internal"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads the named sheet, or the first one when sheet is empty.
// Cells are read raw, so dates stored as Excel serial numbers are converted
// here and text dates go through layouts.
func LoadXLSX(path, sheet string, layouts []string) (*internal.RateTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	b, err := newTableBuilder(rows[0], layouts)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	for _, rec := range rows[1:] {
		if len(rec) == 0 {
			continue
		}
		date, ok := xlsxDate(rec[0], b.layouts)
		if !ok {
			b.skipped++
			continue
		}
		b.add(date, rec[1:])
	}
	return b.build()
}

func xlsxDate(cell string, layouts []string) (internal.Date, bool) {
	cell = strings.TrimSpace(cell)
	if serial, err := strconv.ParseFloat(cell, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return internal.Date{}, false
		}
		return internal.DateOf(t), true
	}
	return parseDate(cell, layouts)
}
