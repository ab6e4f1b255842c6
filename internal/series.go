package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Granularity string

const (
	Weekly    Granularity = "W"
	Monthly   Granularity = "M"
	Quarterly Granularity = "Q"
	Yearly    Granularity = "Y"
)

func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Quarterly, nil
	case "w", "week", "weekly":
		return Weekly, nil
	case "m", "month", "monthly":
		return Monthly, nil
	case "q", "quarter", "quarterly":
		return Quarterly, nil
	case "y", "a", "year", "yearly", "annual":
		return Yearly, nil
	}
	return "", invalidInput("unknown granularity %q, expected one of W, M, Q, Y", s)
}

// BucketEnd returns the label of the bucket d falls into: the Sunday closing
// its week, or the last day of its month, quarter or year.
func (g Granularity) BucketEnd(d Date) Date {
	t := d.Time
	switch g {
	case Weekly:
		return DateOf(t.AddDate(0, 0, (7-int(t.Weekday()))%7))
	case Monthly:
		return NewDate(t.Year(), t.Month()+1, 0)
	case Quarterly:
		qEnd := ((int(t.Month())-1)/3 + 1) * 3
		return NewDate(t.Year(), time.Month(qEnd)+1, 0)
	default:
		return NewDate(t.Year(), time.December, 31)
	}
}

type SeriesPoint struct {
	Date  Date            `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// Resample groups points by bucket and averages each bucket. Points must be
// in date order; buckets without points are not emitted.
func Resample(points []SeriesPoint, g Granularity) []SeriesPoint {
	var (
		out   []SeriesPoint
		cur   Date
		sum   decimal.Decimal
		count int64
	)
	flush := func() {
		if count > 0 {
			out = append(out, SeriesPoint{Date: cur, Value: sum.Div(decimal.NewFromInt(count))})
		}
	}

	for _, p := range points {
		b := g.BucketEnd(p.Date)
		if count == 0 || !b.Equal(cur.Time) {
			flush()
			cur, sum, count = b, decimal.Zero, 0
		}
		sum = sum.Add(p.Value)
		count++
	}
	flush()
	return out
}

// Extremes returns the lowest and highest point. Ties keep the earliest.
func Extremes(points []SeriesPoint) (lo, hi SeriesPoint, ok bool) {
	if len(points) == 0 {
		return SeriesPoint{}, SeriesPoint{}, false
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		if p.Value.LessThan(lo.Value) {
			lo = p
		}
		if p.Value.GreaterThan(hi.Value) {
			hi = p
		}
	}
	return lo, hi, true
}

type ConversionRequest struct {
	From        CurrencyCode
	To          CurrencyCode
	Amount      decimal.Decimal
	Start       Date
	End         Date
	Granularity Granularity
}

type ConversionResult struct {
	From        CurrencyCode    `json:"from"`
	To          CurrencyCode    `json:"to"`
	Amount      decimal.Decimal `json:"amount"`
	Start       Date            `json:"start"`
	End         Date            `json:"end"`
	Granularity Granularity     `json:"granularity"`
	Points      []SeriesPoint   `json:"points"`
	Min         SeriesPoint     `json:"min"`
	Max         SeriesPoint     `json:"max"`
}

func (r ConversionResult) Summary() string {
	return fmt.Sprintf("Converted %s %s to %s over the date range from %s to %s. Min Value: %s Max Value: %s",
		r.Amount, r.From, r.To, r.Start, r.End, r.Min.Value.StringFixed(2), r.Max.Value.StringFixed(2))
}

type RiskLevel string

const (
	LowRisk    RiskLevel = "Low Risk"
	MediumRisk RiskLevel = "Medium Risk"
	HighRisk   RiskLevel = "High Risk"
)

var (
	lowRiskThreshold  = decimal.RequireFromString("0.5")
	highRiskThreshold = decimal.RequireFromString("2.0")
)

func ClassifyFluctuation(f decimal.Decimal) RiskLevel {
	switch {
	case f.LessThanOrEqual(lowRiskThreshold):
		return LowRisk
	case f.LessThanOrEqual(highRiskThreshold):
		return MediumRisk
	default:
		return HighRisk
	}
}

type VolatilityRequest struct {
	Currency1 CurrencyCode
	Currency2 CurrencyCode
	Start     Date
	End       Date
}

type VolatilityPoint struct {
	Date        Date            `json:"date"`
	Fluctuation decimal.Decimal `json:"fluctuation"`
	Risk        RiskLevel       `json:"risk"`
}

type RiskCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

func (c *RiskCounts) add(r RiskLevel) {
	switch r {
	case LowRisk:
		c.Low++
	case MediumRisk:
		c.Medium++
	default:
		c.High++
	}
}

type VolatilityResult struct {
	Currency1 CurrencyCode      `json:"currency1"`
	Currency2 CurrencyCode      `json:"currency2"`
	Start     Date              `json:"start"`
	End       Date              `json:"end"`
	Points    []VolatilityPoint `json:"points"`
	Counts    RiskCounts        `json:"counts"`
}

func (r VolatilityResult) Summary() string {
	return fmt.Sprintf("Risk Levels: %s: %d, %s: %d, %s: %d",
		LowRisk, r.Counts.Low, MediumRisk, r.Counts.Medium, HighRisk, r.Counts.High)
}

// SeriesConverter computes conversion and volatility series over a table.
type SeriesConverter struct {
	table *RateTable
}

func NewSeriesConverter(table *RateTable) *SeriesConverter {
	return &SeriesConverter{table: table}
}

func (s *SeriesConverter) Currencies() []Currency { return s.table.Currencies() }

func (s *SeriesConverter) Convert(req ConversionRequest) (ConversionResult, error) {
	if req.From == "" || req.To == "" || !req.Amount.IsPositive() {
		return ConversionResult{}, invalidInput("Please fill in all fields and press Convert.")
	}
	if req.Granularity == "" {
		req.Granularity = Quarterly
	}
	start, end, err := s.window(req.Start, req.End)
	if err != nil {
		return ConversionResult{}, err
	}

	if !s.table.Has(req.From) || !s.table.Has(req.To) {
		return ConversionResult{}, dataNotFound("Currency '%s' or '%s' not found in the dataset.", req.From, req.To)
	}

	rows := s.table.Between(start, end)
	if len(rows) == 0 {
		return ConversionResult{}, emptyRange("No data available for the selected date range.")
	}

	converted := make([]SeriesPoint, 0, len(rows))
	for _, obs := range rows {
		from, okFrom := obs.Rates[req.From]
		to, okTo := obs.Rates[req.To]
		if !okFrom || !okTo || from.IsZero() {
			continue
		}
		converted = append(converted, SeriesPoint{Date: obs.Date, Value: to.Div(from).Mul(req.Amount)})
	}

	points := Resample(converted, req.Granularity)
	lo, hi, ok := Extremes(points)
	if !ok {
		return ConversionResult{}, emptyRange("No data available for the selected granularity in the date range.")
	}

	return ConversionResult{
		From:        req.From,
		To:          req.To,
		Amount:      req.Amount,
		Start:       start,
		End:         end,
		Granularity: req.Granularity,
		Points:      points,
		Min:         lo,
		Max:         hi,
	}, nil
}

func (s *SeriesConverter) Volatility(req VolatilityRequest) (VolatilityResult, error) {
	if req.Currency1 == "" || req.Currency2 == "" {
		return VolatilityResult{}, invalidInput("two currencies are required")
	}
	start, end, err := s.window(req.Start, req.End)
	if err != nil {
		return VolatilityResult{}, err
	}

	if !s.table.Has(req.Currency1) || !s.table.Has(req.Currency2) {
		return VolatilityResult{}, dataNotFound("Currency '%s' or '%s' not found in the dataset.", req.Currency1, req.Currency2)
	}

	rows := s.table.Between(start, end)
	if len(rows) == 0 {
		return VolatilityResult{}, emptyRange("No data available for the selected date range.")
	}

	out := VolatilityResult{Currency1: req.Currency1, Currency2: req.Currency2, Start: start, End: end}
	for _, obs := range rows {
		a, okA := obs.Rates[req.Currency1]
		b, okB := obs.Rates[req.Currency2]
		if !okA || !okB {
			continue
		}
		f := a.Sub(b).Abs()
		risk := ClassifyFluctuation(f)
		out.Points = append(out.Points, VolatilityPoint{Date: obs.Date, Fluctuation: f, Risk: risk})
		out.Counts.add(risk)
	}
	return out, nil
}

// window fills a missing bound with the table span, checks ordering and
// clamps the range to the span. Results report the clamped bounds so a
// partially covered request shows what was actually used.
func (s *SeriesConverter) window(start, end Date) (Date, Date, error) {
	first, last, ok := s.table.Span()
	if !ok {
		return Date{}, Date{}, emptyRange("No data available for the selected date range.")
	}
	if start.IsZero() {
		start = first
	}
	if end.IsZero() {
		end = last
	}
	if start.After(end.Time) {
		return Date{}, Date{}, invalidInput("start date %s is after end date %s", start, end)
	}
	if start.Before(first.Time) {
		start = first
	}
	if end.After(last.Time) {
		end = last
	}
	if start.After(end.Time) {
		return Date{}, Date{}, emptyRange("No data available for the selected date range.")
	}
	return start, end, nil
}
