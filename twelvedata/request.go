package twelvedata

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Resource describes one API endpoint: its path, the parameters it pins and
// how a success payload becomes a result.
type Resource[T any] struct {
	Name  string
	Path  string
	Fixed Params
	Map   func(body []byte) (T, error)
}

// Request accumulates the parameters of one call. It snapshots the context's
// merged parameters when created. A Request is not safe for concurrent use.
type Request[T any] struct {
	rc       *RequestContext
	resource Resource[T]
	params   Params
}

// NewRequest starts a request for resource.
func NewRequest[T any](rc *RequestContext, resource Resource[T]) *Request[T] {
	r := &Request[T]{
		rc:       rc,
		resource: resource,
		params:   rc.All(),
	}
	r.params.Merge(resource.Fixed)
	return r
}

// Set stores a parameter. Absent values are ignored. Parameters pinned by the
// resource cannot be changed.
func (r *Request[T]) Set(key Param, v Value) *Request[T] {
	if _, fixed := r.resource.Fixed[key]; fixed {
		return r
	}
	r.params.Set(key, v)
	return r
}

// Symbol sets the instrument symbol, e.g. AAPL or EUR/USD.
func (r *Request[T]) Symbol(s string) *Request[T] { return r.Set(ParamSymbol, String(s)) }

// Interval sets the bar interval, e.g. 1min, 1h or 1day.
func (r *Request[T]) Interval(s string) *Request[T] { return r.Set(ParamInterval, String(s)) }

// Exchange narrows the symbol to one exchange.
func (r *Request[T]) Exchange(s string) *Request[T] { return r.Set(ParamExchange, String(s)) }

// Country narrows the symbol to one country.
func (r *Request[T]) Country(s string) *Request[T] { return r.Set(ParamCountry, String(s)) }

// Type narrows the symbol to one instrument type.
func (r *Request[T]) Type(s string) *Request[T] { return r.Set(ParamType, String(s)) }

// Currency narrows the symbol to one quote currency.
func (r *Request[T]) Currency(s string) *Request[T] { return r.Set(ParamCurrency, String(s)) }

// StartDate sets the first date of the range.
func (r *Request[T]) StartDate(s string) *Request[T] { return r.Set(ParamStartDate, String(s)) }

// EndDate sets the last date of the range.
func (r *Request[T]) EndDate(s string) *Request[T] { return r.Set(ParamEndDate, String(s)) }

// Date requests a single day, including "today" and "yesterday".
func (r *Request[T]) Date(s string) *Request[T] { return r.Set(ParamDate, String(s)) }

// Timezone sets the output timezone: Exchange, UTC or an IANA name.
func (r *Request[T]) Timezone(s string) *Request[T] { return r.Set(ParamTimezone, String(s)) }

// Order sets the sort order of bars, asc or desc.
func (r *Request[T]) Order(s string) *Request[T] { return r.Set(ParamOrder, String(s)) }

// MICCode narrows the symbol by market identifier code.
func (r *Request[T]) MICCode(s string) *Request[T] { return r.Set(ParamMICCode, String(s)) }

// Adjust selects the price adjustment: all, splits, dividends or none.
func (r *Request[T]) Adjust(s string) *Request[T] { return r.Set(ParamAdjust, String(s)) }

// FIGI identifies the instrument by its FIGI.
func (r *Request[T]) FIGI(s string) *Request[T] { return r.Set(ParamFIGI, String(s)) }

// ISIN identifies the instrument by its ISIN.
func (r *Request[T]) ISIN(s string) *Request[T] { return r.Set(ParamISIN, String(s)) }

// CUSIP identifies the instrument by its CUSIP.
func (r *Request[T]) CUSIP(s string) *Request[T] { return r.Set(ParamCUSIP, String(s)) }

// Format sets the response format, JSON or CSV.
func (r *Request[T]) Format(s string) *Request[T] { return r.Set(ParamFormat, String(s)) }

// Delimiter sets the CSV column separator.
func (r *Request[T]) Delimiter(s string) *Request[T] { return r.Set(ParamDelimiter, String(s)) }

// OutputSize sets the number of data points, 1 to 5000.
func (r *Request[T]) OutputSize(n int) *Request[T] { return r.Set(ParamOutputSize, Int(n)) }

// DP sets the number of decimal places, 0 to 11.
func (r *Request[T]) DP(n int) *Request[T] { return r.Set(ParamDP, Int(n)) }

// RollingPeriod sets the hours used for the rolling change.
func (r *Request[T]) RollingPeriod(n int) *Request[T] { return r.Set(ParamRollingPeriod, Int(n)) }

// VolumeTimePeriod sets the periods used for the average volume.
func (r *Request[T]) VolumeTimePeriod(n int) *Request[T] { return r.Set(ParamVolumeTimePeriod, Int(n)) }

// Prepost includes pre and post market data.
func (r *Request[T]) Prepost(b bool) *Request[T] { return r.Set(ParamPrepost, Bool(b)) }

// PreviousClose adds the previous close to the result.
func (r *Request[T]) PreviousClose(b bool) *Request[T] { return r.Set(ParamPreviousClose, Bool(b)) }

// EOD returns the last closed day instead of live data.
func (r *Request[T]) EOD(b bool) *Request[T] { return r.Set(ParamEOD, Bool(b)) }

// TimezoneLocation sets timezone from a location. A nil location is ignored.
func (r *Request[T]) TimezoneLocation(loc *time.Location) *Request[T] {
	if loc == nil {
		return r
	}
	return r.Timezone(loc.String())
}

// DateRange sets start_date and end_date. Zero times are ignored.
func (r *Request[T]) DateRange(start, end time.Time) *Request[T] {
	if !start.IsZero() {
		r.StartDate(start.Format(time.DateTime))
	}
	if !end.IsZero() {
		r.EndDate(end.Format(time.DateTime))
	}
	return r
}

// Params returns a copy of the accumulated parameters.
func (r *Request[T]) Params() Params {
	return r.params.Clone()
}

// URL renders the request URL without performing any I/O. Parameters are
// sorted by name so the result is stable.
func (r *Request[T]) URL() string {
	return r.rc.BaseURL() + "/" + strings.TrimPrefix(r.resource.Path, "/") + "?" + r.params.Encode()
}

func (r *Request[T]) send(ctx context.Context, params Params) (*Response, error) {
	resp, err := r.rc.Transport().Get(ctx, r.resource.Path, params.Values())
	if err != nil {
		return nil, &TransportError{Endpoint: r.resource.Name, Err: err}
	}
	return resp, nil
}

// Do fetches the resource and maps it to its typed result. A body that is
// not valid JSON yields a *MalformedResponseError.
func (r *Request[T]) Do(ctx context.Context) (T, error) {
	var zero T

	resp, err := r.send(ctx, r.params)
	if err != nil {
		return zero, err
	}

	body, err := Classify(resp)
	if err != nil {
		return zero, err
	}

	result, err := r.resource.Map(body)
	if err != nil {
		var malformed *MalformedResponseError
		if errors.As(err, &malformed) {
			malformed.StatusCode = resp.StatusCode
		}
		return zero, err
	}
	return result, nil
}

// JSON fetches the resource and returns the raw success body. A 2xx body
// that is not valid JSON is returned as is.
func (r *Request[T]) JSON(ctx context.Context) ([]byte, error) {
	resp, err := r.send(ctx, r.params)
	if err != nil {
		return nil, err
	}
	return Classify(resp)
}

// CSV fetches the resource with format=CSV and returns the raw body. The
// response is classified by HTTP status only.
func (r *Request[T]) CSV(ctx context.Context) (string, error) {
	params := r.params.Clone()
	params.Set(ParamFormat, String("CSV"))

	resp, err := r.send(ctx, params)
	if err != nil {
		return "", err
	}

	body, err := classifyStatus(resp)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Bars fetches the resource as CSV and parses the rows.
func (r *Request[T]) Bars(ctx context.Context) ([]Bar, error) {
	body, err := r.CSV(ctx)
	if err != nil {
		return nil, err
	}

	var delim rune
	if v, ok := r.params.Get(ParamDelimiter); ok {
		if s := v.String(); len(s) > 0 {
			delim = []rune(s)[0]
		}
	}
	return ParseCSV(body, delim)
}

// ErrorResponse fetches the resource and returns its error envelope without
// raising it. Successful responses yield an envelope with status "ok".
func (r *Request[T]) ErrorResponse(ctx context.Context) (*ErrorEnvelope, error) {
	resp, err := r.send(ctx, r.params)
	if err != nil {
		return nil, err
	}

	if env, ok := parseErrorEnvelope(resp.Body); ok {
		return env, nil
	}
	if !resp.Successful() {
		return &ErrorEnvelope{Status: "error", Code: resp.StatusCode, Message: string(resp.Body)}, nil
	}
	return &ErrorEnvelope{Status: "ok", Code: resp.StatusCode}, nil
}
