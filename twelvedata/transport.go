package twelvedata

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public API host.
	DefaultBaseURL = "https://api.twelvedata.com"
	// DefaultTimeout bounds connect, handshake and the whole call.
	DefaultTimeout = 30 * time.Second
	// DefaultSource tags requests from this library.
	DefaultSource = "go"

	batchHeader = "Is_batch"
)

// Transport performs a single GET against the API.
type Transport interface {
	Get(ctx context.Context, path string, params url.Values) (*Response, error)
}

var _ Transport = (*HTTPTransport)(nil)

// HTTPTransport is the net/http implementation of Transport. It is safe for
// concurrent use.
type HTTPTransport struct {
	baseURL    string
	source     string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewHTTPTransport creates a transport for baseURL. A nil httpClient gets a
// tuned client bounded by timeout.
func NewHTTPTransport(baseURL, source string, httpClient *http.Client, logger zerolog.Logger) *HTTPTransport {
	if httpClient == nil {
		httpClient = newHTTPClient(DefaultTimeout)
	}
	if source == "" {
		source = DefaultSource
	}

	return &HTTPTransport{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		source:     source,
		httpClient: httpClient,
		logger:     logger,
	}
}

// newHTTPClient applies timeout to dialing, the TLS handshake, waiting for
// response headers and to the call as a whole.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// BaseURL returns the host requests are sent to.
func (t *HTTPTransport) BaseURL() string {
	return t.baseURL
}

// Get issues one GET to baseURL+path with params and the source tag. Non-2xx
// statuses are not errors here; they are left to Classify.
func (t *HTTPTransport) Get(ctx context.Context, path string, params url.Values) (*Response, error) {
	query := make(url.Values, len(params)+1)
	for k, v := range params {
		query[k] = append([]string(nil), v...)
	}
	query.Set(string(ParamSource), t.source)

	endpoint := t.baseURL + "/" + strings.TrimPrefix(path, "/") + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/csv")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	requestID := uuid.NewString()
	t.logger.Debug().
		Str("request_id", requestID).
		Str("path", path).
		Str("symbol", params.Get(string(ParamSymbol))).
		Msg("Making Twelve Data API request")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	t.logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("Received Twelve Data API response")

	return &Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		Batch:       strings.EqualFold(resp.Header.Get(batchHeader), "true"),
	}, nil
}
