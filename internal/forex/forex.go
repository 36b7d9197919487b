// Package forex fetches currency exchange rates from the Yahoo Finance
// chart API. Rates are cached in-memory for the lifetime of the client,
// so repeated lookups for the same pair hit the upstream at most once
// per process.
package forex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

const yahooUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"

// Rate is one resolved exchange rate.
type Rate struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Rate      float64   `json:"rate"`
	FetchedAt time.Time `json:"fetched_at"`
}

// RateSource fetches the exchange rate between two currencies.
type RateSource interface {
	GetRate(ctx context.Context, from, to string) (*Rate, error)
}

// Client fetches exchange rates over HTTP with an in-memory cache.
type Client struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	mu         sync.RWMutex
	rates      map[string]*Rate // keyed by "USDEUR"
}

// NewClient creates a rate client against the given chart API base URL.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		rates:      make(map[string]*Rate),
	}
}

// GetRate fetches (or returns cached) the exchange rate from one
// currency to another. A pair of identical currencies resolves to 1
// without touching the upstream.
func (c *Client) GetRate(ctx context.Context, from, to string) (*Rate, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	if from == to {
		return &Rate{From: from, To: to, Rate: 1.0, FetchedAt: time.Now()}, nil
	}

	key := from + to
	c.mu.RLock()
	cached, ok := c.rates[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	rate, err := c.fetchRate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.rates[key] = rate
	c.mu.Unlock()

	return rate, nil
}

// yahooChartResponse is the top-level Yahoo Finance chart API response.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// fetchRate fetches the exchange rate for a currency pair. Yahoo Finance
// uses tickers like "USDEUR=X" for forex pairs.
func (c *Client) fetchRate(ctx context.Context, from, to string) (*Rate, error) {
	ticker := from + to + "=X"
	url := c.baseURL + "/" + ticker + "?interval=1d&range=1d"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building forex request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forex http request for %s: %w", ticker, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forex request for %s: unexpected status %d", ticker, resp.StatusCode)
	}

	var chartResp yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		return nil, fmt.Errorf("decoding forex response for %s: %w", ticker, err)
	}

	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("forex chart error for %s: %s: %s",
			ticker, chartResp.Chart.Error.Code, chartResp.Chart.Error.Description)
	}

	if len(chartResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no forex results for %s", ticker)
	}

	value := chartResp.Chart.Result[0].Meta.RegularMarketPrice
	if value <= 0 {
		return nil, fmt.Errorf("invalid forex rate for %s: %f", ticker, value)
	}

	return &Rate{From: from, To: to, Rate: value, FetchedAt: time.Now()}, nil
}
