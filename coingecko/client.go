// Package coingecko is a small client for the CoinGecko public market data API.
//
// Requests are spaced out, successful responses are cached for a few
// minutes and "too many requests" answers are retried after a pause.
package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Defaults of the free tier.
const (
	DefaultTimeout     = 10 * time.Second
	DefaultMinInterval = 2 * time.Second
	DefaultCacheTTL    = 5 * time.Minute
	PerPage            = 100
)

// DefaultRetryWaits are the pauses before retrying a rate limited request.
var DefaultRetryWaits = []time.Duration{5 * time.Second, 10 * time.Second}

// Errors returned by the client.
var (
	ErrRateLimited = errors.New("rate limited by the market data API")
	ErrNotFound    = errors.New("not found")
)

// Client queries the market data API. It is safe for concurrent use.
type Client struct {
	base       string
	apiKey     string
	http       *http.Client
	cache      *memCache
	retryWaits []time.Duration
	log        zerolog.Logger

	transport   http.RoundTripper
	timeout     time.Duration
	minInterval time.Duration
	ttl         time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL changes the API endpoint.
func WithBaseURL(base string) Option { return func(c *Client) { c.base = base } }

// WithAPIKey sends a demo API key with every request.
func WithAPIKey(key string) Option { return func(c *Client) { c.apiKey = key } }

// WithTransport changes the underlying transport.
func WithTransport(rt http.RoundTripper) Option { return func(c *Client) { c.transport = rt } }

// WithMinInterval changes the minimum interval between two requests. Zero
// disables the limit.
func WithMinInterval(d time.Duration) Option { return func(c *Client) { c.minInterval = d } }

// WithCacheTTL changes how long responses are cached.
func WithCacheTTL(d time.Duration) Option { return func(c *Client) { c.ttl = d } }

// WithRetryWaits changes the pauses before retrying a rate limited request.
// There is one retry per pause.
func WithRetryWaits(waits ...time.Duration) Option {
	return func(c *Client) { c.retryWaits = waits }
}

// WithLogger sets the logger for requests, cache hits and retries.
func WithLogger(log zerolog.Logger) Option { return func(c *Client) { c.log = log } }

// New returns a client for the public API.
func New(opts ...Option) *Client {
	c := &Client{
		base:        DefaultBaseURL,
		retryWaits:  DefaultRetryWaits,
		log:         zerolog.Nop(),
		transport:   http.DefaultTransport,
		timeout:     DefaultTimeout,
		minInterval: DefaultMinInterval,
		ttl:         DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	// cache first: cached responses are not rate limited.
	c.cache = newMemCache(&limited{base: c.transport, limiter: newLimiter(c.minInterval)}, c.ttl, c.log)
	c.http = &http.Client{Timeout: c.timeout, Transport: c.cache}
	return c
}

// get performs a GET on path and decodes the JSON response into v.
func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	addr := c.base + path
	if len(params) > 0 {
		addr += "?" + params.Encode()
	}

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("x-cg-demo-api-key", c.apiKey)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("cannot GET %s: %w", path, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < len(c.retryWaits) {
			resp.Body.Close()
			wait := c.retryWaits[attempt]
			c.log.Warn().Str("path", path).Dur("wait", wait).Msg("rate limited, retrying")
			select {
			case <-time.After(wait):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		defer resp.Body.Close()
		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusTooManyRequests:
			return fmt.Errorf("cannot GET %s: %w", path, ErrRateLimited)
		case http.StatusNotFound:
			return fmt.Errorf("cannot GET %s: %w", path, ErrNotFound)
		default:
			return fmt.Errorf("cannot GET %s: %v", path, resp.Status)
		}
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("cannot decode %s: %w", path, err)
		}
		return nil
	}
}

// Markets returns a page of PerPage coins in decreasing market cap order,
// with prices in currency. Pages start at 1.
func (c *Client) Markets(ctx context.Context, currency string, page int) ([]Coin, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{
		"vs_currency":             {currency},
		"order":                   {"market_cap_desc"},
		"per_page":                {strconv.Itoa(PerPage)},
		"page":                    {strconv.Itoa(page)},
		"sparkline":               {"true"},
		"price_change_percentage": {"24h"},
	}
	coins := make([]Coin, 0, PerPage)
	if err := c.get(ctx, "/coins/markets", params, &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

// Coin returns the detail of a coin.
func (c *Client) Coin(ctx context.Context, id string) (CoinDetail, error) {
	params := url.Values{
		"localization":   {"false"},
		"tickers":        {"false"},
		"market_data":    {"true"},
		"community_data": {"false"},
		"developer_data": {"false"},
	}
	var d CoinDetail
	if err := c.get(ctx, "/coins/"+url.PathEscape(id), params, &d); err != nil {
		return CoinDetail{}, err
	}
	return d, nil
}

// Chart returns the price history of a coin over the last days, in currency.
func (c *Client) Chart(ctx context.Context, id string, days int, currency string) (Chart, error) {
	params := url.Values{
		"vs_currency": {currency},
		"days":        {strconv.Itoa(days)},
	}
	var raw struct {
		Prices [][]float64 `json:"prices"`
	}
	if err := c.get(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", params, &raw); err != nil {
		return Chart{}, err
	}
	chart := Chart{CoinID: id, Currency: currency, Days: days, Prices: make([]ChartPoint, 0, len(raw.Prices))}
	for _, p := range raw.Prices {
		if len(p) < 2 {
			continue
		}
		chart.Prices = append(chart.Prices, ChartPoint{Time: time.UnixMilli(int64(p[0])).UTC(), Price: p[1]})
	}
	return chart, nil
}

// Trending returns the coins most searched for in the last 24 hours.
func (c *Client) Trending(ctx context.Context) ([]TrendingCoin, error) {
	var raw struct {
		Coins []struct {
			Item TrendingCoin `json:"item"`
		} `json:"coins"`
	}
	if err := c.get(ctx, "/search/trending", nil, &raw); err != nil {
		return nil, err
	}
	coins := make([]TrendingCoin, 0, len(raw.Coins))
	for _, c := range raw.Coins {
		coins = append(coins, c.Item)
	}
	return coins, nil
}
