// Package ratefile loads date-indexed rate tables from CSV and XLSX files.
//
// The first column holds the date, every other column one currency. A
// header of the form "Name (CODE)" yields the code and display name; any
// other header is normalised into a code.
package ratefile

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"service-fxrates/internal"

	"github.com/shopspring/decimal"
)

// DefaultDateLayouts matches the "%d-%b-%y" dates of the published reports
// followed by ISO and US forms.
var DefaultDateLayouts = []string{"2-Jan-06", "2-Jan-2006", "2006-01-02", "1/2/2006", "2006-01-02 15:04:05"}

var headerRe = regexp.MustCompile(`^(.*?)\s*\(\s*([A-Za-z]{3})\s*\)\s*$`)

var missingCells = map[string]struct{}{
	"": {}, "nan": {}, "#n/a": {}, "n/a": {}, "na": {}, "-": {}, "null": {},
}

// Load picks the reader from the file extension.
func Load(path string, layouts []string) (*internal.RateTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, "", layouts)
	case ".csv", ".txt":
		return LoadCSV(path, layouts)
	}
	return nil, fmt.Errorf("unsupported rate file %q", path)
}

func parseHeader(cols []string) ([]internal.Currency, error) {
	if len(cols) < 2 {
		return nil, fmt.Errorf("header needs a date column and at least one currency, got %d columns", len(cols))
	}

	out := make([]internal.Currency, 0, len(cols)-1)
	for _, raw := range cols[1:] {
		out = append(out, currencyFromHeader(raw))
	}
	return out, nil
}

func currencyFromHeader(raw string) internal.Currency {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
	if m := headerRe.FindStringSubmatch(raw); m != nil {
		code := internal.CurrencyCode(strings.ToUpper(m[2]))
		name := strings.Join(strings.Fields(m[1]), " ")
		if name == "" {
			name = internal.CurrencyName(code)
		}
		return internal.Currency{Code: code, Name: name}
	}

	norm := strings.NewReplacer(" ", "_", "(", "", ")", "").Replace(raw)
	code := internal.CurrencyCode(strings.ToUpper(norm))
	name := internal.CurrencyName(code)
	if name == "" {
		name = raw
	}
	return internal.Currency{Code: code, Name: name}
}

func parseDate(s string, layouts []string) (internal.Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return internal.Date{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return internal.DateOf(t), true
		}
	}
	return internal.Date{}, false
}

func parseRate(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if _, missing := missingCells[strings.ToLower(s)]; missing {
		return decimal.Decimal{}, false
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return v, true
}

// tableBuilder collects rows until the table is built. Later rows for the
// same date replace earlier ones.
type tableBuilder struct {
	currencies []internal.Currency
	layouts    []string
	rows       map[internal.Date]internal.RateRow
	skipped    int
}

func newTableBuilder(header []string, layouts []string) (*tableBuilder, error) {
	currencies, err := parseHeader(header)
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	return &tableBuilder{
		currencies: currencies,
		layouts:    layouts,
		rows:       map[internal.Date]internal.RateRow{},
	}, nil
}

func (b *tableBuilder) add(date internal.Date, cells []string) {
	row := make(internal.RateRow, len(b.currencies))
	for i, c := range b.currencies {
		if i >= len(cells) {
			break
		}
		if v, ok := parseRate(cells[i]); ok {
			row[c.Code] = v
		}
	}
	b.rows[date] = row
}

func (b *tableBuilder) build() (*internal.RateTable, error) {
	if len(b.rows) == 0 {
		return nil, fmt.Errorf("no dated rows (%d rows skipped)", b.skipped)
	}
	return internal.NewRateTable(b.currencies, b.rows), nil
}
