package twelvedata

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/buger/jsonparser"
)

var errInvalidJSON = errors.New("body is not valid JSON")

// field copies one optional JSON value into a result. Absent and null values
// are skipped.
type field[T any] struct {
	path []string
	set  func(dst *T, raw []byte, dt jsonparser.ValueType)
}

func stringField[T any](set func(*T, string), path ...string) field[T] {
	return field[T]{path: path, set: func(dst *T, raw []byte, dt jsonparser.ValueType) {
		if s, ok := scalarString(raw, dt); ok {
			set(dst, s)
		}
	}}
}

func numberField[T any](set func(*T, Number), path ...string) field[T] {
	return field[T]{path: path, set: func(dst *T, raw []byte, dt jsonparser.ValueType) {
		if s, ok := scalarString(raw, dt); ok {
			set(dst, Number(s))
		}
	}}
}

func boolField[T any](set func(*T, bool), path ...string) field[T] {
	return field[T]{path: path, set: func(dst *T, raw []byte, dt jsonparser.ValueType) {
		switch dt {
		case jsonparser.Boolean:
			if b, err := jsonparser.ParseBoolean(raw); err == nil {
				set(dst, b)
			}
		case jsonparser.String:
			if b, err := strconv.ParseBool(string(raw)); err == nil {
				set(dst, b)
			}
		}
	}}
}

// scalarString returns the text of a string, number or boolean value.
func scalarString(raw []byte, dt jsonparser.ValueType) (string, bool) {
	switch dt {
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return string(raw), true
		}
		return s, true
	case jsonparser.Number, jsonparser.Boolean:
		return string(raw), true
	}
	return "", false
}

func extract[T any](data []byte, dst *T, fields []field[T]) {
	for _, f := range fields {
		raw, dt, _, err := jsonparser.Get(data, f.path...)
		if err != nil || dt == jsonparser.NotExist || dt == jsonparser.Null {
			continue
		}
		f.set(dst, raw, dt)
	}
}

func ensureJSON(body []byte) error {
	if !json.Valid(body) {
		return &MalformedResponseError{Body: string(body), Err: errInvalidJSON}
	}
	return nil
}

var barFields = []field[Bar]{
	stringField(func(b *Bar, v string) { b.Datetime = v }, "datetime"),
	numberField(func(b *Bar, v Number) { b.Open = v }, "open"),
	numberField(func(b *Bar, v Number) { b.High = v }, "high"),
	numberField(func(b *Bar, v Number) { b.Low = v }, "low"),
	numberField(func(b *Bar, v Number) { b.Close = v }, "close"),
	numberField(func(b *Bar, v Number) { b.Volume = v }, "volume"),
}

func (ts *TimeSeries) meta() *Meta {
	if ts.Meta == nil {
		ts.Meta = &Meta{}
	}
	return ts.Meta
}

var timeSeriesFields = []field[TimeSeries]{
	stringField(func(ts *TimeSeries, v string) { ts.Status = v }, "status"),
	stringField(func(ts *TimeSeries, v string) { ts.meta().Symbol = v }, "meta", "symbol"),
	stringField(func(ts *TimeSeries, v string) { ts.meta().Interval = v }, "meta", "interval"),
	stringField(func(ts *TimeSeries, v string) { ts.meta().Currency = v }, "meta", "currency"),
	stringField(func(ts *TimeSeries, v string) { ts.meta().ExchangeTimezone = v }, "meta", "exchange_timezone"),
	stringField(func(ts *TimeSeries, v string) { ts.meta().Exchange = v }, "meta", "exchange"),
	stringField(func(ts *TimeSeries, v string) { ts.meta().MICCode = v }, "meta", "mic_code"),
	stringField(func(ts *TimeSeries, v string) { ts.meta().Type = v }, "meta", "type"),
}

func (q *Quote) week() *FiftyTwoWeek {
	if q.FiftyTwoWeek == nil {
		q.FiftyTwoWeek = &FiftyTwoWeek{}
	}
	return q.FiftyTwoWeek
}

var quoteFields = []field[Quote]{
	stringField(func(q *Quote, v string) { q.Symbol = v }, "symbol"),
	stringField(func(q *Quote, v string) { q.Name = v }, "name"),
	stringField(func(q *Quote, v string) { q.Exchange = v }, "exchange"),
	stringField(func(q *Quote, v string) { q.MICCode = v }, "mic_code"),
	stringField(func(q *Quote, v string) { q.Currency = v }, "currency"),
	stringField(func(q *Quote, v string) { q.Datetime = v }, "datetime"),
	numberField(func(q *Quote, v Number) { q.Timestamp = v }, "timestamp"),
	numberField(func(q *Quote, v Number) { q.LastQuoteAt = v }, "last_quote_at"),
	numberField(func(q *Quote, v Number) { q.Open = v }, "open"),
	numberField(func(q *Quote, v Number) { q.High = v }, "high"),
	numberField(func(q *Quote, v Number) { q.Low = v }, "low"),
	numberField(func(q *Quote, v Number) { q.Close = v }, "close"),
	numberField(func(q *Quote, v Number) { q.Volume = v }, "volume"),
	numberField(func(q *Quote, v Number) { q.PreviousClose = v }, "previous_close"),
	numberField(func(q *Quote, v Number) { q.Change = v }, "change"),
	numberField(func(q *Quote, v Number) { q.PercentChange = v }, "percent_change"),
	numberField(func(q *Quote, v Number) { q.AverageVolume = v }, "average_volume"),
	boolField(func(q *Quote, v bool) { q.IsMarketOpen = &v }, "is_market_open"),
	numberField(func(q *Quote, v Number) { q.week().Low = v }, "fifty_two_week", "low"),
	numberField(func(q *Quote, v Number) { q.week().High = v }, "fifty_two_week", "high"),
	numberField(func(q *Quote, v Number) { q.week().LowChange = v }, "fifty_two_week", "low_change"),
	numberField(func(q *Quote, v Number) { q.week().HighChange = v }, "fifty_two_week", "high_change"),
	numberField(func(q *Quote, v Number) { q.week().LowChangePercent = v }, "fifty_two_week", "low_change_percent"),
	numberField(func(q *Quote, v Number) { q.week().HighChangePercent = v }, "fifty_two_week", "high_change_percent"),
	stringField(func(q *Quote, v string) { q.week().Range = v }, "fifty_two_week", "range"),
}

var priceFields = []field[Price]{
	numberField(func(p *Price, v Number) { p.Price = v }, "price"),
}

var endOfDayFields = []field[EndOfDay]{
	stringField(func(e *EndOfDay, v string) { e.Symbol = v }, "symbol"),
	stringField(func(e *EndOfDay, v string) { e.Exchange = v }, "exchange"),
	stringField(func(e *EndOfDay, v string) { e.MICCode = v }, "mic_code"),
	stringField(func(e *EndOfDay, v string) { e.Currency = v }, "currency"),
	stringField(func(e *EndOfDay, v string) { e.Datetime = v }, "datetime"),
	numberField(func(e *EndOfDay, v Number) { e.Close = v }, "close"),
}

var errorEnvelopeFields = []field[ErrorEnvelope]{
	stringField(func(e *ErrorEnvelope, v string) { e.Status = v }, "status"),
	numberField(func(e *ErrorEnvelope, v Number) {
		if code, err := v.Int64(); err == nil {
			e.Code = int(code)
		}
	}, "code"),
	stringField(func(e *ErrorEnvelope, v string) { e.Message = v }, "message"),
}

// MapTimeSeries decodes a {status, meta, values} payload.
func MapTimeSeries(body []byte) (*TimeSeries, error) {
	if err := ensureJSON(body); err != nil {
		return nil, err
	}

	ts := &TimeSeries{}
	extract(body, ts, timeSeriesFields)

	values, dt, _, err := jsonparser.Get(body, "values")
	if err != nil || dt != jsonparser.Array {
		return ts, nil
	}

	_, err = jsonparser.ArrayEach(values, func(value []byte, dt jsonparser.ValueType, _ int, _ error) {
		if dt != jsonparser.Object {
			return
		}
		var bar Bar
		extract(value, &bar, barFields)
		ts.Values = append(ts.Values, bar)
	})
	if err != nil {
		return nil, &MalformedResponseError{Body: string(body), Err: err}
	}

	return ts, nil
}

// MapDaily decodes a daily time series payload.
func MapDaily(body []byte) (*Daily, error) {
	ts, err := MapTimeSeries(body)
	if err != nil {
		return nil, err
	}
	return &Daily{TimeSeries: *ts}, nil
}

// MapQuote decodes a quote payload.
func MapQuote(body []byte) (*Quote, error) {
	return mapObject(body, quoteFields)
}

// MapPrice decodes a price payload.
func MapPrice(body []byte) (*Price, error) {
	return mapObject(body, priceFields)
}

// MapEndOfDay decodes an eod payload.
func MapEndOfDay(body []byte) (*EndOfDay, error) {
	return mapObject(body, endOfDayFields)
}

// MapErrorEnvelope decodes an error envelope. Missing code and message default
// to 0 and "Unknown error".
func MapErrorEnvelope(body []byte) (*ErrorEnvelope, error) {
	env, err := mapObject(body, errorEnvelopeFields)
	if err != nil {
		return nil, err
	}
	if env.Message == "" {
		env.Message = unknownErrorMessage
	}
	return env, nil
}

func mapObject[T any](body []byte, fields []field[T]) (*T, error) {
	if err := ensureJSON(body); err != nil {
		return nil, err
	}
	out := new(T)
	extract(body, out, fields)
	return out, nil
}
