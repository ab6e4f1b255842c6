package internal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-fxrates/internal"
)

func seriesTable() *internal.RateTable {
	return internal.NewRateTable(
		[]internal.Currency{{Code: "USD"}, {Code: "EUR"}, {Code: "GBP"}},
		map[internal.Date]internal.RateRow{
			internal.NewDate(2024, 1, 15): {"USD": d("1"), "EUR": d("0.9"), "GBP": d("1.10")},
			internal.NewDate(2024, 2, 15): {"USD": d("1"), "EUR": d("0.8"), "GBP": d("1.08")},
			internal.NewDate(2024, 3, 15): {"USD": d("1"), "EUR": d("0.95")},
			internal.NewDate(2024, 4, 15): {"USD": d("1"), "EUR": d("0.85"), "GBP": d("3.5")},
		},
	)
}

func TestParseGranularity(t *testing.T) {
	tests := map[string]internal.Granularity{
		"":        internal.Quarterly,
		"W":       internal.Weekly,
		"monthly": internal.Monthly,
		" q ":     internal.Quarterly,
		"Y":       internal.Yearly,
		"annual":  internal.Yearly,
	}
	for in, want := range tests {
		got, err := internal.ParseGranularity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := internal.ParseGranularity("daily")
	assert.ErrorIs(t, err, internal.ErrInvalidInput)
}

func TestGranularity_BucketEnd(t *testing.T) {
	tests := []struct {
		g    internal.Granularity
		in   internal.Date
		want string
	}{
		{internal.Weekly, internal.NewDate(2024, 1, 3), "2024-01-07"},
		{internal.Weekly, internal.NewDate(2024, 1, 7), "2024-01-07"},
		{internal.Weekly, internal.NewDate(2024, 1, 8), "2024-01-14"},
		{internal.Monthly, internal.NewDate(2024, 2, 10), "2024-02-29"},
		{internal.Monthly, internal.NewDate(2023, 12, 31), "2023-12-31"},
		{internal.Quarterly, internal.NewDate(2024, 5, 10), "2024-06-30"},
		{internal.Quarterly, internal.NewDate(2024, 10, 1), "2024-12-31"},
		{internal.Yearly, internal.NewDate(2024, 7, 4), "2024-12-31"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.g.BucketEnd(tt.in).String(), "%s %s", tt.g, tt.in)
	}
}

func TestResample_AveragesAndSkipsEmptyBuckets(t *testing.T) {
	points := []internal.SeriesPoint{
		{Date: internal.NewDate(2024, 1, 2), Value: d("1")},
		{Date: internal.NewDate(2024, 1, 15), Value: d("3")},
		{Date: internal.NewDate(2024, 3, 10), Value: d("5")},
	}

	got := internal.Resample(points, internal.Monthly)

	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-31", got[0].Date.String())
	assert.Equal(t, "2", got[0].Value.String())
	assert.Equal(t, "2024-03-31", got[1].Date.String())
	assert.Equal(t, "5", got[1].Value.String())

	assert.Empty(t, internal.Resample(nil, internal.Monthly))
}

func TestExtremes_TiesKeepEarliest(t *testing.T) {
	points := []internal.SeriesPoint{
		{Date: internal.NewDate(2024, 1, 31), Value: d("2")},
		{Date: internal.NewDate(2024, 2, 29), Value: d("1")},
		{Date: internal.NewDate(2024, 3, 31), Value: d("2")},
		{Date: internal.NewDate(2024, 4, 30), Value: d("1")},
	}

	lo, hi, ok := internal.Extremes(points)

	require.True(t, ok)
	assert.Equal(t, "2024-02-29", lo.Date.String())
	assert.Equal(t, "2024-01-31", hi.Date.String())

	_, _, ok = internal.Extremes(nil)
	assert.False(t, ok)
}

func TestSeriesConverter_Convert_Monthly(t *testing.T) {
	conv := internal.NewSeriesConverter(seriesTable())

	res, err := conv.Convert(internal.ConversionRequest{
		From:        "USD",
		To:          "EUR",
		Amount:      d("100"),
		Granularity: internal.Monthly,
	})

	require.NoError(t, err)
	require.Len(t, res.Points, 4)
	assert.Equal(t, "2024-01-15", res.Start.String())
	assert.Equal(t, "2024-04-15", res.End.String())
	assert.Equal(t, "80", res.Min.Value.String())
	assert.Equal(t, "2024-02-29", res.Min.Date.String())
	assert.Equal(t, "95", res.Max.Value.String())
	assert.Equal(t, "2024-03-31", res.Max.Date.String())
	assert.Equal(t,
		"Converted 100 USD to EUR over the date range from 2024-01-15 to 2024-04-15. Min Value: 80.00 Max Value: 95.00",
		res.Summary())
}

func TestSeriesConverter_Convert_QuarterlyDefault(t *testing.T) {
	conv := internal.NewSeriesConverter(seriesTable())

	res, err := conv.Convert(internal.ConversionRequest{From: "USD", To: "EUR", Amount: d("100")})

	require.NoError(t, err)
	assert.Equal(t, internal.Quarterly, res.Granularity)
	require.Len(t, res.Points, 2)
	assert.Equal(t, "2024-03-31", res.Points[0].Date.String())
	assert.Equal(t, "88.33", res.Points[0].Value.StringFixed(2))
	assert.Equal(t, "2024-06-30", res.Min.Date.String())
	assert.Equal(t, "85", res.Min.Value.String())
}

func TestSeriesConverter_Convert_PartialOverlapReportsClampedRange(t *testing.T) {
	conv := internal.NewSeriesConverter(seriesTable())

	res, err := conv.Convert(internal.ConversionRequest{
		From:        "USD",
		To:          "EUR",
		Amount:      d("100"),
		Granularity: internal.Monthly,
		Start:       internal.NewDate(2023, 12, 1),
		End:         internal.NewDate(2024, 2, 20),
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", res.Start.String())
	assert.Equal(t, "2024-02-20", res.End.String())
	require.Len(t, res.Points, 2)
	assert.Contains(t, res.Summary(), "from 2024-01-15 to 2024-02-20")
}

func TestSeriesConverter_Volatility_PartialOverlapReportsClampedRange(t *testing.T) {
	conv := internal.NewSeriesConverter(seriesTable())

	res, err := conv.Volatility(internal.VolatilityRequest{
		Currency1: "GBP", Currency2: "EUR",
		Start: internal.NewDate(2024, 3, 1), End: internal.NewDate(2024, 12, 31),
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", res.Start.String())
	assert.Equal(t, "2024-04-15", res.End.String())
	require.Len(t, res.Points, 1)
}

func TestSeriesConverter_Convert_Errors(t *testing.T) {
	conv := internal.NewSeriesConverter(seriesTable())

	tests := []struct {
		name string
		req  internal.ConversionRequest
		kind error
		msg  string
	}{
		{
			name: "zero amount",
			req:  internal.ConversionRequest{From: "USD", To: "EUR"},
			kind: internal.ErrInvalidInput,
			msg:  "Please fill in all fields and press Convert.",
		},
		{
			name: "missing currency",
			req:  internal.ConversionRequest{To: "EUR", Amount: d("1")},
			kind: internal.ErrInvalidInput,
		},
		{
			name: "unknown column",
			req:  internal.ConversionRequest{From: "USD", To: "CHF", Amount: d("1")},
			kind: internal.ErrDataNotFound,
			msg:  "Currency 'USD' or 'CHF' not found in the dataset.",
		},
		{
			name: "empty range",
			req: internal.ConversionRequest{From: "USD", To: "EUR", Amount: d("1"),
				Start: internal.NewDate(2025, 1, 1), End: internal.NewDate(2025, 2, 1)},
			kind: internal.ErrEmptyRange,
			msg:  "No data available for the selected date range.",
		},
		{
			name: "inverted range",
			req: internal.ConversionRequest{From: "USD", To: "EUR", Amount: d("1"),
				Start: internal.NewDate(2024, 3, 1), End: internal.NewDate(2024, 2, 1)},
			kind: internal.ErrInvalidInput,
		},
		{
			name: "no usable points",
			req: internal.ConversionRequest{From: "GBP", To: "EUR", Amount: d("1"),
				Start: internal.NewDate(2024, 3, 1), End: internal.NewDate(2024, 3, 31)},
			kind: internal.ErrEmptyRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := conv.Convert(tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, err.Error())
			}
		})
	}
}

func TestClassifyFluctuation(t *testing.T) {
	assert.Equal(t, internal.LowRisk, internal.ClassifyFluctuation(d("1.10").Sub(d("1.08")).Abs()))
	assert.Equal(t, internal.LowRisk, internal.ClassifyFluctuation(d("0.5")))
	assert.Equal(t, internal.MediumRisk, internal.ClassifyFluctuation(d("0.51")))
	assert.Equal(t, internal.MediumRisk, internal.ClassifyFluctuation(d("2.0")))
	assert.Equal(t, internal.HighRisk, internal.ClassifyFluctuation(d("2.01")))
}

func TestSeriesConverter_Volatility(t *testing.T) {
	conv := internal.NewSeriesConverter(seriesTable())

	res, err := conv.Volatility(internal.VolatilityRequest{Currency1: "GBP", Currency2: "EUR"})

	require.NoError(t, err)
	require.Len(t, res.Points, 3)
	assert.Equal(t, "0.2", res.Points[0].Fluctuation.String())
	assert.Equal(t, internal.LowRisk, res.Points[0].Risk)
	assert.Equal(t, "0.28", res.Points[1].Fluctuation.String())
	assert.Equal(t, internal.HighRisk, res.Points[2].Risk)
	assert.Equal(t, internal.RiskCounts{Low: 2, Medium: 0, High: 1}, res.Counts)
	assert.Equal(t, "Risk Levels: Low Risk: 2, Medium Risk: 0, High Risk: 1", res.Summary())
}

func TestSeriesConverter_Volatility_Errors(t *testing.T) {
	conv := internal.NewSeriesConverter(seriesTable())

	_, err := conv.Volatility(internal.VolatilityRequest{Currency1: "GBP"})
	assert.ErrorIs(t, err, internal.ErrInvalidInput)

	_, err = conv.Volatility(internal.VolatilityRequest{Currency1: "GBP", Currency2: "CHF"})
	assert.ErrorIs(t, err, internal.ErrDataNotFound)

	_, err = conv.Volatility(internal.VolatilityRequest{
		Currency1: "GBP", Currency2: "EUR",
		Start: internal.NewDate(2023, 1, 1), End: internal.NewDate(2023, 6, 1),
	})
	assert.ErrorIs(t, err, internal.ErrEmptyRange)
}
