package twelvedata

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ErrFieldNotSet is returned by Number accessors when the field was absent.
var ErrFieldNotSet = errors.New("field not set")

// Number holds a numeric field exactly as the API sent it. Accessors parse
// on every call.
type Number string

// String returns the literal.
func (n Number) String() string { return string(n) }

// IsSet reports whether the API sent the field.
func (n Number) IsSet() bool { return n != "" }

// Float64 parses the literal as a float.
func (n Number) Float64() (float64, error) {
	if !n.IsSet() {
		return 0, ErrFieldNotSet
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q as float: %w", string(n), err)
	}
	return f, nil
}

// Int64 parses the literal as an integer.
func (n Number) Int64() (int64, error) {
	if !n.IsSet() {
		return 0, ErrFieldNotSet
	}
	i, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q as integer: %w", string(n), err)
	}
	return i, nil
}

// Decimal parses the literal without losing precision.
func (n Number) Decimal() (decimal.Decimal, error) {
	if !n.IsSet() {
		return decimal.Zero, ErrFieldNotSet
	}
	d, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %q as decimal: %w", string(n), err)
	}
	return d, nil
}

// ErrorEnvelope is the {status, code, message} body of an error response.
type ErrorEnvelope struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Meta describes the instrument of a time series.
type Meta struct {
	Symbol           string `json:"symbol"`
	Interval         string `json:"interval"`
	Currency         string `json:"currency"`
	ExchangeTimezone string `json:"exchange_timezone"`
	Exchange         string `json:"exchange"`
	MICCode          string `json:"mic_code"`
	Type             string `json:"type"`
}

// Bar is one OHLCV point.
type Bar struct {
	Datetime string `json:"datetime"`
	Open     Number `json:"open"`
	High     Number `json:"high"`
	Low      Number `json:"low"`
	Close    Number `json:"close"`
	Volume   Number `json:"volume"`
}

var barLayouts = []string{
	time.DateTime,
	time.DateOnly,
	"2006-01-02T15:04:05",
}

// Time parses Datetime. Intraday bars carry a time of day, daily bars only a
// date. The exchange timezone is not applied.
func (b Bar) Time() (time.Time, error) {
	for _, layout := range barLayouts {
		if t, err := time.Parse(layout, b.Datetime); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", b.Datetime)
}

// TimeSeries is the result of the time_series endpoint.
type TimeSeries struct {
	Status string `json:"status"`
	Meta   *Meta  `json:"meta,omitempty"`
	Values []Bar  `json:"values"`
}

// Daily is a TimeSeries fixed to one bar per day.
type Daily struct {
	TimeSeries
}

// IsDaily reports whether the server confirmed a daily interval.
func (d *Daily) IsDaily() bool {
	return d.Meta != nil && d.Meta.Interval == IntervalDaily
}

// HasData reports whether any bars were returned.
func (d *Daily) HasData() bool {
	return len(d.Values) > 0
}

// Len returns the number of bars.
func (d *Daily) Len() int {
	return len(d.Values)
}

// At returns the bar at index i.
func (d *Daily) At(i int) (Bar, bool) {
	if i < 0 || i >= len(d.Values) {
		return Bar{}, false
	}
	return d.Values[i], true
}

// Bars returns a copy of the bars.
func (d *Daily) Bars() []Bar {
	return append([]Bar(nil), d.Values...)
}

// LatestClose returns the close of the first bar, which is the most recent
// one under the default descending order.
func (d *Daily) LatestClose() Number {
	if !d.HasData() {
		return ""
	}
	return d.Values[0].Close
}

// LatestDate returns the datetime of the first bar.
func (d *Daily) LatestDate() string {
	if !d.HasData() {
		return ""
	}
	return d.Values[0].Datetime
}

// FiftyTwoWeek is the 52 week block of a quote.
type FiftyTwoWeek struct {
	Low               Number `json:"low"`
	High              Number `json:"high"`
	LowChange         Number `json:"low_change"`
	HighChange        Number `json:"high_change"`
	LowChangePercent  Number `json:"low_change_percent"`
	HighChangePercent Number `json:"high_change_percent"`
	Range             string `json:"range"`
}

// Quote is the result of the quote endpoint.
type Quote struct {
	Symbol        string        `json:"symbol"`
	Name          string        `json:"name"`
	Exchange      string        `json:"exchange"`
	MICCode       string        `json:"mic_code"`
	Currency      string        `json:"currency"`
	Datetime      string        `json:"datetime"`
	Timestamp     Number        `json:"timestamp"`
	LastQuoteAt   Number        `json:"last_quote_at"`
	Open          Number        `json:"open"`
	High          Number        `json:"high"`
	Low           Number        `json:"low"`
	Close         Number        `json:"close"`
	Volume        Number        `json:"volume"`
	PreviousClose Number        `json:"previous_close"`
	Change        Number        `json:"change"`
	PercentChange Number        `json:"percent_change"`
	AverageVolume Number        `json:"average_volume"`
	IsMarketOpen  *bool         `json:"is_market_open,omitempty"`
	FiftyTwoWeek  *FiftyTwoWeek `json:"fifty_two_week,omitempty"`
}

// Price is the result of the price endpoint.
type Price struct {
	Price Number `json:"price"`
}

// EndOfDay is the result of the eod endpoint.
type EndOfDay struct {
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
	MICCode  string `json:"mic_code"`
	Currency string `json:"currency"`
	Datetime string `json:"datetime"`
	Close    Number `json:"close"`
}
