package twelvedata

import (
	"maps"
	"net/url"
	"slices"
	"strconv"
)

// Param is a query parameter name understood by the API.
type Param string

// Known request parameters.
const (
	ParamSymbol           Param = "symbol"
	ParamInterval         Param = "interval"
	ParamExchange         Param = "exchange"
	ParamCountry          Param = "country"
	ParamType             Param = "type"
	ParamCurrency         Param = "currency"
	ParamTimezone         Param = "timezone"
	ParamStartDate        Param = "start_date"
	ParamEndDate          Param = "end_date"
	ParamDate             Param = "date"
	ParamOrder            Param = "order"
	ParamOutputSize       Param = "outputsize"
	ParamDP               Param = "dp"
	ParamFormat           Param = "format"
	ParamDelimiter        Param = "delimiter"
	ParamPrepost          Param = "prepost"
	ParamEOD              Param = "eod"
	ParamRollingPeriod    Param = "rolling_period"
	ParamVolumeTimePeriod Param = "volume_time_period"
	ParamPreviousClose    Param = "previous_close"
	ParamAdjust           Param = "adjust"
	ParamMICCode          Param = "mic_code"
	ParamFIGI             Param = "figi"
	ParamISIN             Param = "isin"
	ParamCUSIP            Param = "cusip"
	ParamAPIKey           Param = "apikey"
	ParamSource           Param = "source"
)

type valueKind uint8

const (
	kindAbsent valueKind = iota
	kindString
	kindInt
	kindFloat
	kindBool
)

// Value is a typed parameter value. The zero Value is absent and is never
// stored by Params.Set.
type Value struct {
	kind valueKind
	s    string
	i    int64
	f    float64
	b    bool
}

// String returns a string Value. An empty string is absent.
func String(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: kindString, s: s}
}

// Int returns an integer Value.
func Int(i int) Value { return Value{kind: kindInt, i: int64(i)} }

// Float returns a floating point Value.
func Float(f float64) Value { return Value{kind: kindFloat, f: f} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: kindBool, b: b} }

// OptString returns an absent Value for a nil pointer.
func OptString(s *string) Value {
	if s == nil {
		return Value{}
	}
	return String(*s)
}

// OptInt returns an absent Value for a nil pointer.
func OptInt(i *int) Value {
	if i == nil {
		return Value{}
	}
	return Int(*i)
}

// OptBool returns an absent Value for a nil pointer.
func OptBool(b *bool) Value {
	if b == nil {
		return Value{}
	}
	return Bool(*b)
}

// IsSet reports whether the value is present.
func (v Value) IsSet() bool { return v.kind != kindAbsent }

// String returns the wire representation of the value.
func (v Value) String() string {
	switch v.kind {
	case kindString:
		return v.s
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case kindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Params is a set of request parameters. Later writes to a key win.
type Params map[Param]Value

// NewParams returns an empty parameter set.
func NewParams() Params {
	return make(Params)
}

// Set stores v at key. An absent value leaves the existing entry untouched.
func (p Params) Set(key Param, v Value) {
	if !v.IsSet() {
		return
	}
	p[key] = v
}

// SetString is a convenience for Set(key, String(s)).
func (p Params) SetString(key Param, s string) {
	p.Set(key, String(s))
}

// Get returns the value stored at key.
func (p Params) Get(key Param) (Value, bool) {
	v, ok := p[key]
	return v, ok
}

// Merge copies every entry of other into p, overwriting existing keys.
func (p Params) Merge(other Params) {
	for k, v := range other {
		p.Set(k, v)
	}
}

// Clone returns an independent copy of p.
func (p Params) Clone() Params {
	if p == nil {
		return NewParams()
	}
	return maps.Clone(p)
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []Param {
	return slices.Sorted(maps.Keys(p))
}

// Values converts the set to url.Values for transport.
func (p Params) Values() url.Values {
	vals := make(url.Values, len(p))
	for k, v := range p {
		vals.Set(string(k), v.String())
	}
	return vals
}

// Encode renders the set as a query string with keys in sorted order.
func (p Params) Encode() string {
	return p.Values().Encode()
}

// Merge builds a fresh working set from library defaults, caller defaults and
// the API key, in increasing precedence. Inputs are not modified.
func Merge(libraryDefaults, callerDefaults Params, apiKey string) Params {
	out := make(Params, len(libraryDefaults)+len(callerDefaults)+1)
	out.Merge(libraryDefaults)
	out.Merge(callerDefaults)
	out.Set(ParamAPIKey, String(apiKey))
	return out
}

// ParamsFromMap converts a plain string map into Params, skipping empty values.
func ParamsFromMap(m map[string]string) Params {
	out := make(Params, len(m))
	for k, v := range m {
		out.Set(Param(k), String(v))
	}
	return out
}
