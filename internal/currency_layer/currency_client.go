package currencyLayer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"service-fxrates/internal"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "http://apilayer.net/api"
	maxBodyBytes   = 64 << 10
)

// Observer is notified about every provider call. outcome is one of
// "ok", "provider_error" or "connectivity_error".
type Observer interface {
	ProviderRequest(endpoint, outcome string)
}

type Client struct {
	BaseURL    string
	apiKey     string
	currencies []internal.CurrencyCode
	httpClient *http.Client
	observer   Observer
}

func New(apiKey string, currencies []internal.CurrencyCode, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		currencies: currencies,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) WithObserver(o Observer) *Client {
	c.observer = o
	return c
}

func (c *Client) doQuotes(ctx context.Context, endpoint string, q url.Values) (*internal.QuotesResponse, error) {
	out, err := c.fetch(ctx, endpoint, q)
	if c.observer != nil {
		outcome := "ok"
		switch {
		case errors.Is(err, internal.ErrProvider):
			outcome = "provider_error"
		case err != nil:
			outcome = "connectivity_error"
		}
		c.observer.ProviderRequest(strings.Trim(endpoint, "/"), outcome)
	}
	return out, err
}

func (c *Client) fetch(ctx context.Context, endpoint string, q url.Values) (*internal.QuotesResponse, error) {
	u, err := url.Parse(c.BaseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: do request: %w", internal.ConnectivityError("Failed to connect to the API"), redact(err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %w", internal.ConnectivityError("Failed to connect to the API"), redact(err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, internal.ConnectivityError("Failed to connect to the API, Status code: %d", resp.StatusCode)
	}

	var out internal.QuotesResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: unmarshal response: %w", internal.ConnectivityError("Invalid response from the API"), err)
	}
	if !out.Success {
		info := "unknown error"
		if out.Error != nil && out.Error.Info != "" {
			info = out.Error.Info
		}
		return nil, internal.ProviderError(info)
	}
	return &out, nil
}

// redact drops the query string, which carries access_key, from the URL
// that net/http puts into its errors.
func redact(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	cp := *ue
	cp.URL = ""
	if u, perr := url.Parse(ue.URL); perr == nil {
		u.RawQuery = ""
		u.Fragment = ""
		cp.URL = u.String()
	}
	return &cp
}

func (c *Client) query(source internal.CurrencyCode) url.Values {
	q := url.Values{}
	q.Set("access_key", c.apiKey)
	if len(c.currencies) > 0 {
		codes := make([]string, len(c.currencies))
		for i, s := range c.currencies {
			codes[i] = string(s)
		}
		q.Set("currencies", strings.Join(codes, ","))
	}
	q.Set("source", strings.ToUpper(strings.TrimSpace(string(source))))
	q.Set("format", "1")
	return q
}

func (c *Client) LiveQuotes(ctx context.Context, source internal.CurrencyCode) (*internal.QuotesResponse, error) {
	if source == "" {
		return nil, internal.BizError(internal.ErrInvalidInput, "invalid_input", "base currency is required")
	}
	return c.doQuotes(ctx, "/live", c.query(source))
}

func (c *Client) HistoricalQuotes(ctx context.Context, date internal.Date, source internal.CurrencyCode) (*internal.QuotesResponse, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("date is empty")
	}
	if source == "" {
		return nil, internal.BizError(internal.ErrInvalidInput, "invalid_input", "base currency is required")
	}

	q := c.query(source)
	q.Set("date", date.String())
	return c.doQuotes(ctx, "/historical", q)
}

// Rates implements internal.RateSource. A zero date asks for live quotes.
// Quote keys "<BASE><CODE>" are reduced to "<CODE>" and the base's own
// quote is dropped.
func (c *Client) Rates(ctx context.Context, base internal.CurrencyCode, on internal.Date) (map[internal.CurrencyCode]decimal.Decimal, error) {
	var (
		resp *internal.QuotesResponse
		err  error
	)
	if on.IsZero() {
		resp, err = c.LiveQuotes(ctx, base)
	} else {
		resp, err = c.HistoricalQuotes(ctx, on, base)
	}
	if err != nil {
		return nil, err
	}

	prefix := strings.ToUpper(string(base))
	rates := make(map[internal.CurrencyCode]decimal.Decimal, len(resp.Quotes))
	for key, rate := range resp.Quotes {
		code := strings.ToUpper(strings.TrimSpace(key))
		code = strings.TrimPrefix(code, prefix)
		if code == "" || code == prefix {
			continue
		}
		rates[internal.CurrencyCode(code)] = rate
	}
	return rates, nil
}
