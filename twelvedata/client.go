package twelvedata

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrMissingAPIKey is returned by NewClient when no API key is given.
var ErrMissingAPIKey = errors.New("twelvedata API key is required")

// Client builds requests against the Twelve Data API.
type Client struct {
	rc     *RequestContext
	logger zerolog.Logger
}

// NewClient creates a new Twelve Data client
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.defaults.Validate(); err != nil {
		return nil, err
	}

	transport := o.transport
	if transport == nil {
		t, err := newTransport(o, logger)
		if err != nil {
			return nil, err
		}
		transport = t
	}

	return &Client{
		rc:     NewRequestContext(apiKey, o.baseURL, transport, o.defaults.Params()),
		logger: logger,
	}, nil
}

func newTransport(o clientOptions, logger zerolog.Logger) (*HTTPTransport, error) {
	hc := o.httpClient
	if hc == nil {
		hc = newHTTPClient(o.timeout)
	}

	if o.rps > 0 || o.burst > 0 {
		next := hc.Transport
		rt, err := newThrottle(o.rps, o.burst, logger, next)
		if err != nil {
			return nil, fmt.Errorf("failed to configure throttle: %w", err)
		}
		throttled := *hc
		throttled.Transport = rt
		hc = &throttled
	}

	t := NewHTTPTransport(o.baseURL, o.source, hc, logger)
	t.userAgent = o.userAgent
	return t, nil
}

// Context returns the shared request context.
func (c *Client) Context() *RequestContext {
	return c.rc
}

// UpdateDefaults merges caller defaults into the context. Requests built
// before the call keep their parameters.
func (c *Client) UpdateDefaults(p Params) {
	c.logger.Debug().
		Int("count", len(p)).
		Msg("Updating caller defaults")
	c.rc.UpdateDefaults(p)
}

// TimeSeries starts a time_series request.
func (c *Client) TimeSeries(symbol, interval string) *Request[*TimeSeries] {
	return NewRequest(c.rc, TimeSeriesResource).Symbol(symbol).Interval(interval)
}

// Daily starts a time_series request pinned to interval=1day.
func (c *Client) Daily(symbol string) *Request[*Daily] {
	return NewRequest(c.rc, DailyResource).Symbol(symbol)
}

// Quote starts a quote request.
func (c *Client) Quote(symbol string) *Request[*Quote] {
	return NewRequest(c.rc, QuoteResource).Symbol(symbol)
}

// Price starts a price request.
func (c *Client) Price(symbol string) *Request[*Price] {
	return NewRequest(c.rc, PriceResource).Symbol(symbol)
}

// EndOfDay starts an eod request.
func (c *Client) EndOfDay(symbol string) *Request[*EndOfDay] {
	return NewRequest(c.rc, EndOfDayResource).Symbol(symbol)
}
