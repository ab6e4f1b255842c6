package internal

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RateRow holds the rates of one date. A currency without a key has no value
// on that date.
type RateRow map[CurrencyCode]decimal.Decimal

type Observation struct {
	Date  Date
	Rates RateRow
}

// RateTable is a date-ordered set of rate rows. It is built once and never
// mutated, so it can be shared between requests without locking.
type RateTable struct {
	currencies []Currency
	index      map[CurrencyCode]int
	dates      []Date
	rows       map[time.Time]RateRow
}

// NewRateTable copies the given rows. Rows are keyed by calendar day; values
// for currencies that are not columns of the table are dropped.
func NewRateTable(currencies []Currency, rows map[Date]RateRow) *RateTable {
	t := &RateTable{
		currencies: make([]Currency, 0, len(currencies)),
		index:      make(map[CurrencyCode]int, len(currencies)),
		rows:       make(map[time.Time]RateRow, len(rows)),
	}
	for _, c := range currencies {
		if _, dup := t.index[c.Code]; dup || c.Code == "" {
			continue
		}
		t.index[c.Code] = len(t.currencies)
		t.currencies = append(t.currencies, c)
	}

	for d, row := range rows {
		day := DateOf(d.Time)
		cp := make(RateRow, len(row))
		for code, v := range row {
			if _, ok := t.index[code]; ok {
				cp[code] = v
			}
		}
		if _, seen := t.rows[day.Time]; !seen {
			t.dates = append(t.dates, day)
		}
		t.rows[day.Time] = cp
	}
	sort.Slice(t.dates, func(i, j int) bool { return t.dates[i].Before(t.dates[j].Time) })
	return t
}

// Currencies returns the table columns in file order.
func (t *RateTable) Currencies() []Currency {
	out := make([]Currency, len(t.currencies))
	copy(out, t.currencies)
	return out
}

func (t *RateTable) Has(code CurrencyCode) bool {
	_, ok := t.index[code]
	return ok
}

func (t *RateTable) Currency(code CurrencyCode) (Currency, bool) {
	i, ok := t.index[code]
	if !ok {
		return Currency{}, false
	}
	return t.currencies[i], true
}

func (t *RateTable) Len() int { return len(t.dates) }

// Row returns the rates recorded for exactly the given day.
func (t *RateTable) Row(d Date) (RateRow, bool) {
	row, ok := t.rows[DateOf(d.Time).Time]
	return row, ok
}

// Span returns the first and last date of the table.
func (t *RateTable) Span() (first, last Date, ok bool) {
	if len(t.dates) == 0 {
		return Date{}, Date{}, false
	}
	return t.dates[0], t.dates[len(t.dates)-1], true
}

// Between returns the observations with start <= date <= end in date order.
func (t *RateTable) Between(start, end Date) []Observation {
	start, end = DateOf(start.Time), DateOf(end.Time)
	lo := sort.Search(len(t.dates), func(i int) bool { return !t.dates[i].Before(start.Time) })
	hi := sort.Search(len(t.dates), func(i int) bool { return t.dates[i].After(end.Time) })
	if lo >= hi {
		return nil
	}

	out := make([]Observation, 0, hi-lo)
	for _, d := range t.dates[lo:hi] {
		out = append(out, Observation{Date: d, Rates: t.rows[d.Time]})
	}
	return out
}
