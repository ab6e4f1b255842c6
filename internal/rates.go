package internal

import (
	"context"

	"github.com/shopspring/decimal"
)

// QuotesResponse is the envelope returned by the live rate provider.
type QuotesResponse struct {
	Success   bool                       `json:"success"`
	Source    string                     `json:"source"`
	Timestamp int64                      `json:"timestamp"`
	Date      *Date                      `json:"date,omitempty"`
	Quotes    map[string]decimal.Decimal `json:"quotes"`
	Error     *ProviderFailure           `json:"error,omitempty"`
}

type ProviderFailure struct {
	Code int    `json:"code"`
	Info string `json:"info"`
}

// RateSource supplies the rates of every known currency relative to base.
// A zero date asks for the latest rates where the source supports it.
type RateSource interface {
	Rates(ctx context.Context, base CurrencyCode, on Date) (map[CurrencyCode]decimal.Decimal, error)
}

// DeriveCrossRates expresses every currency of row relative to base:
// rate = row[base] / row[currency]. The base itself, currencies without a
// value and currencies whose value is zero are left out.
func DeriveCrossRates(row RateRow, base CurrencyCode) map[CurrencyCode]decimal.Decimal {
	baseRate, ok := row[base]
	if !ok {
		return map[CurrencyCode]decimal.Decimal{}
	}

	out := make(map[CurrencyCode]decimal.Decimal, len(row))
	for code, v := range row {
		if code == base || v.IsZero() {
			continue
		}
		out[code] = baseRate.Div(v)
	}
	return out
}

// HistoricalRateSource answers rate lookups from a loaded table.
type HistoricalRateSource struct {
	table *RateTable
}

func NewHistoricalRateSource(table *RateTable) *HistoricalRateSource {
	return &HistoricalRateSource{table: table}
}

func (s *HistoricalRateSource) Rates(_ context.Context, base CurrencyCode, on Date) (map[CurrencyCode]decimal.Decimal, error) {
	if on.IsZero() {
		return nil, invalidInput("date is required")
	}

	row, ok := s.table.Row(on)
	if !ok {
		return nil, dataNotFound("No exchange rates found for %s on %s", base, on)
	}
	if !s.table.Has(base) {
		return nil, dataNotFound("%s is not available in the dataset.", base)
	}
	if _, ok := row[base]; !ok {
		return nil, dataNotFound("No exchange rates found for %s on %s", base, on)
	}

	return DeriveCrossRates(row, base), nil
}

func (s *HistoricalRateSource) Currencies() []Currency { return s.table.Currencies() }
