package rates

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"service-fxrates/internal"
	"service-fxrates/internal/middleware"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const (
	rateDecimals  = 6
	valueDecimals = 2
	maxBodyBytes  = 16 << 10
)

type TableSource interface {
	internal.RateSource
	Currencies() []internal.Currency
}

type BasketValuer interface {
	Value(ctx context.Context, basket internal.Basket) (internal.BasketValuation, error)
}

type SeriesService interface {
	Convert(req internal.ConversionRequest) (internal.ConversionResult, error)
	Volatility(req internal.VolatilityRequest) (internal.VolatilityResult, error)
	Currencies() []internal.Currency
}

type SnapshotReader interface {
	Latest(ctx context.Context, base internal.CurrencyCode) (time.Time, map[internal.CurrencyCode]decimal.Decimal, error)
}

type SkipObserver interface {
	BasketSkipped(currency string)
}

// Deps wires the handler. Snapshots and Skips may be nil.
type Deps struct {
	Live       internal.RateSource
	Historical TableSource
	Basket     BasketValuer
	Series     SeriesService
	Snapshots  SnapshotReader
	Audit      internal.RequestAuditLogger
	Skips      SkipObserver
	Logger     *slog.Logger
}

type Handler struct {
	Deps
}

func New(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Audit == nil {
		d.Audit = internal.NewSlogAuditLogger(d.Logger)
	}
	return &Handler{Deps: d}
}

func (h *Handler) Register(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/currencies", h.getCurrencies).Methods(http.MethodGet)
	api.HandleFunc("/rates/live", h.getLiveRates).Methods(http.MethodGet)
	api.HandleFunc("/rates/historical", h.getHistoricalRates).Methods(http.MethodGet)
	api.HandleFunc("/basket", h.valueBasket).Methods(http.MethodPost)
	api.HandleFunc("/convert", h.convert).Methods(http.MethodGet)
	api.HandleFunc("/volatility", h.volatility).Methods(http.MethodGet)
	if h.Snapshots != nil {
		api.HandleFunc("/rates/snapshot", h.getSnapshot).Methods(http.MethodGet)
	}
}

type CurrencyEntry struct {
	Code  internal.CurrencyCode `json:"code"`
	Name  string                `json:"name"`
	Label string                `json:"label"`
}

type CurrenciesResponse struct {
	Source     string          `json:"source"`
	Currencies []CurrencyEntry `json:"currencies"`
}

func (h *Handler) getCurrencies(w http.ResponseWriter, r *http.Request) {
	source := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("source")))
	var list []internal.Currency
	switch source {
	case "", "live":
		source, list = "live", internal.LiveCurrencies
	case "historical":
		list = h.Historical.Currencies()
	case "series":
		list = h.Series.Currencies()
	default:
		h.fail(w, r, internal.BizError(internal.ErrInvalidInput, "invalid_input",
			"source must be one of live, historical, series"), nil)
		return
	}

	out := CurrenciesResponse{Source: source, Currencies: make([]CurrencyEntry, 0, len(list))}
	for _, c := range list {
		out.Currencies = append(out.Currencies, CurrencyEntry{Code: c.Code, Name: c.Name, Label: c.Label()})
	}
	h.ok(w, r, out, nil)
}

type RateEntry struct {
	Currency internal.CurrencyCode `json:"currency"`
	Name     string                `json:"name,omitempty"`
	Rate     decimal.Decimal       `json:"rate"`
}

type RatesResponse struct {
	Base  internal.CurrencyCode `json:"base"`
	Date  *internal.Date        `json:"date,omitempty"`
	Rates []RateEntry           `json:"rates"`
}

func (h *Handler) getLiveRates(w http.ResponseWriter, r *http.Request) {
	base, err := internal.ParseCurrencyCode(r.URL.Query().Get("base"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}

	rates, err := h.Live.Rates(r.Context(), base, internal.Date{})
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	h.ok(w, r, ratesResponse(base, nil, rates, internal.CurrencyName), nil)
}

func (h *Handler) getHistoricalRates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	base, err := internal.ParseCurrencyCode(q.Get("base"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	date, err := internal.ParseDate(q.Get("date"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}

	rates, err := h.Historical.Rates(r.Context(), base, date)
	if err != nil {
		h.fail(w, r, err, &date)
		return
	}

	names := make(map[internal.CurrencyCode]string)
	for _, c := range h.Historical.Currencies() {
		names[c.Code] = c.Name
	}
	nameOf := func(c internal.CurrencyCode) string { return names[c] }
	h.ok(w, r, ratesResponse(base, &date, rates, nameOf), &date)
}

func (h *Handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	base, err := internal.ParseCurrencyCode(r.URL.Query().Get("base"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}

	fetchedAt, rates, err := h.Snapshots.Latest(r.Context(), base)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	if len(rates) == 0 {
		h.fail(w, r, internal.BizError(internal.ErrDataNotFound, "data_not_found",
			"no snapshot recorded for "+base.String()), nil)
		return
	}

	day := internal.DateOf(fetchedAt)
	h.ok(w, r, ratesResponse(base, &day, rates, internal.CurrencyName), &day)
}

func ratesResponse(base internal.CurrencyCode, date *internal.Date, rates map[internal.CurrencyCode]decimal.Decimal, nameOf func(internal.CurrencyCode) string) RatesResponse {
	out := RatesResponse{Base: base, Date: date, Rates: make([]RateEntry, 0, len(rates))}
	for code, rate := range rates {
		out.Rates = append(out.Rates, RateEntry{Currency: code, Name: nameOf(code), Rate: rate.Round(rateDecimals)})
	}
	sort.Slice(out.Rates, func(i, j int) bool { return out.Rates[i].Currency < out.Rates[j].Currency })
	return out
}

type BasketResponse struct {
	Base    internal.CurrencyCode   `json:"base"`
	Value   string                  `json:"value"`
	Skipped []internal.CurrencyCode `json:"skipped,omitempty"`
	Message string                  `json:"message"`
}

func (h *Handler) valueBasket(w http.ResponseWriter, r *http.Request) {
	var basket internal.Basket
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&basket); err != nil {
		h.fail(w, r, internal.BizError(internal.ErrInvalidInput, "invalid_input", "invalid basket: "+err.Error()), nil)
		return
	}

	v, err := h.Basket.Value(r.Context(), basket)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	if h.Skips != nil {
		for _, code := range v.Skipped {
			h.Skips.BasketSkipped(code.String())
		}
	}

	h.ok(w, r, BasketResponse{
		Base:    v.Base,
		Value:   v.Value.StringFixed(valueDecimals),
		Skipped: v.Skipped,
		Message: v.Summary(),
	}, nil)
}

type ConvertResponse struct {
	internal.ConversionResult
	Summary string `json:"summary"`
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := internal.ConversionRequest{
		From: internal.CurrencyCode(strings.ToUpper(strings.TrimSpace(q.Get("from")))),
		To:   internal.CurrencyCode(strings.ToUpper(strings.TrimSpace(q.Get("to")))),
	}
	if s := strings.TrimSpace(q.Get("amount")); s != "" {
		amount, err := decimal.NewFromString(s)
		if err != nil {
			h.fail(w, r, internal.BizError(internal.ErrInvalidInput, "invalid_input", "amount must be a number"), nil)
			return
		}
		req.Amount = amount
	}

	var err error
	if req.Granularity, err = internal.ParseGranularity(q.Get("granularity")); err != nil {
		h.fail(w, r, err, nil)
		return
	}
	if req.Start, req.End, err = parseRange(q.Get("start"), q.Get("end")); err != nil {
		h.fail(w, r, err, nil)
		return
	}

	res, err := h.Series.Convert(req)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	h.ok(w, r, ConvertResponse{ConversionResult: res, Summary: res.Summary()}, &res.End)
}

type VolatilityResponse struct {
	internal.VolatilityResult
	Summary string `json:"summary"`
}

func (h *Handler) volatility(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := internal.VolatilityRequest{
		Currency1: internal.CurrencyCode(strings.ToUpper(strings.TrimSpace(q.Get("currency1")))),
		Currency2: internal.CurrencyCode(strings.ToUpper(strings.TrimSpace(q.Get("currency2")))),
	}
	var err error
	if req.Start, req.End, err = parseRange(q.Get("start"), q.Get("end")); err != nil {
		h.fail(w, r, err, nil)
		return
	}

	res, err := h.Series.Volatility(req)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	h.ok(w, r, VolatilityResponse{VolatilityResult: res, Summary: res.Summary()}, nil)
}

// parseRange leaves a blank bound zero so the full table span applies.
func parseRange(start, end string) (internal.Date, internal.Date, error) {
	var s, e internal.Date
	var err error
	if strings.TrimSpace(start) != "" {
		if s, err = internal.ParseDate(start); err != nil {
			return s, e, err
		}
	}
	if strings.TrimSpace(end) != "" {
		if e, err = internal.ParseDate(end); err != nil {
			return s, e, err
		}
	}
	return s, e, nil
}

func (h *Handler) ok(w http.ResponseWriter, r *http.Request, body any, asOf *internal.Date) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
	h.audit(r, http.StatusOK, asOf)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, asOf *internal.Date) {
	st := writeErr(w, err)
	if st >= http.StatusInternalServerError {
		h.Logger.ErrorContext(r.Context(), "request failed",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	h.audit(r, st, asOf)
}

func (h *Handler) audit(r *http.Request, status int, asOf *internal.Date) {
	rec := internal.AuditRecord{
		RequestID: middleware.GetRequestID(r.Context()),
		Route:     middleware.RouteName(r),
		Path:      r.URL.Path,
		Status:    status,
		DateAsOf:  asOf,
	}
	if err := h.Audit.LogRequest(r.Context(), rec); err != nil {
		h.Logger.WarnContext(r.Context(), "audit log failed", slog.Any("error", err))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, internal.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, internal.ErrDataNotFound), errors.Is(err, internal.ErrEmptyRange):
		return http.StatusNotFound
	case errors.Is(err, internal.ErrProvider):
		return http.StatusBadGateway
	case errors.Is(err, internal.ErrConnectivity):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeErr(w http.ResponseWriter, err error) int {
	status := statusFor(err)

	body := internal.BusinessError{Code: "internal_error", Message: "internal error"}
	var biz *internal.BusinessError
	if errors.As(err, &biz) {
		body = internal.BusinessError{Code: biz.Code, Message: biz.Message}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
	return status
}
