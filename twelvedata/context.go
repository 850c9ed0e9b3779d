package twelvedata

import "strings"

// RequestContext is the configuration shared by every request a client
// builds: API key, host, transport and the two default layers.
//
// Caller defaults may be changed at any time. Requests snapshot the merged
// parameters when they are built, so a change only affects later requests.
// RequestContext does no locking; do not update defaults while other
// goroutines are building requests from it.
type RequestContext struct {
	apiKey          string
	baseURL         string
	transport       Transport
	libraryDefaults Params
	callerDefaults  Params
}

// NewRequestContext creates a context. libraryDefaults is copied.
func NewRequestContext(apiKey, baseURL string, transport Transport, libraryDefaults Params) *RequestContext {
	return &RequestContext{
		apiKey:          apiKey,
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		transport:       transport,
		libraryDefaults: libraryDefaults.Clone(),
		callerDefaults:  NewParams(),
	}
}

// APIKey returns the key injected into every request.
func (rc *RequestContext) APIKey() string { return rc.apiKey }

// BaseURL returns the API host.
func (rc *RequestContext) BaseURL() string { return rc.baseURL }

// Transport returns the transport used by requests.
func (rc *RequestContext) Transport() Transport { return rc.transport }

// LibraryDefaults returns a copy of the library-level defaults.
func (rc *RequestContext) LibraryDefaults() Params { return rc.libraryDefaults.Clone() }

// CallerDefaults returns a copy of the caller overrides.
func (rc *RequestContext) CallerDefaults() Params { return rc.callerDefaults.Clone() }

// UpdateDefaults merges p into the caller defaults. Absent values are ignored.
func (rc *RequestContext) UpdateDefaults(p Params) {
	rc.callerDefaults.Merge(p)
}

// All returns the merged parameter set: library defaults, then caller
// defaults, then the API key.
func (rc *RequestContext) All() Params {
	return Merge(rc.libraryDefaults, rc.callerDefaults, rc.apiKey)
}
