package twelvedata

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	source     string
	userAgent  string
	defaults   Defaults
	httpClient *http.Client
	transport  Transport
	rps        float64
	burst      int
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:  DefaultBaseURL,
		timeout:  DefaultTimeout,
		source:   DefaultSource,
		defaults: DefaultDefaults(),
	}
}

// WithBaseURL overrides the API host.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithTimeout sets the connect, handshake and overall call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithSource sets the source tag sent with every request.
func WithSource(source string) Option {
	return func(o *clientOptions) {
		if source != "" {
			o.source = source
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithDefaults replaces the library-level default parameters.
func WithDefaults(d Defaults) Option {
	return func(o *clientOptions) {
		o.defaults = d
	}
}

// WithHTTPClient uses hc instead of the tuned default client. WithTimeout
// does not apply to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithTransport replaces the HTTP transport entirely.
func WithTransport(t Transport) Option {
	return func(o *clientOptions) {
		o.transport = t
	}
}

// WithThrottle limits outbound calls to rps with the given burst.
func WithThrottle(rps float64, burst int) Option {
	return func(o *clientOptions) {
		o.rps = rps
		o.burst = burst
	}
}
