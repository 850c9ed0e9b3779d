package twelvedata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultCSVDelimiter separates CSV fields in API responses.
const DefaultCSVDelimiter = ';'

// csvColumns is the positional layout used when a body has no header row.
var csvColumns = []string{"datetime", "open", "high", "low", "close", "volume"}

// ParseCSV parses a time series CSV body into bars. A header row is optional;
// when present it decides the column order. A zero delimiter means ';'.
func ParseCSV(body string, delimiter rune) ([]Bar, error) {
	if delimiter == 0 {
		delimiter = DefaultCSVDelimiter
	}

	r := csv.NewReader(strings.NewReader(body))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var (
		bars    []Bar
		columns = csvColumns
		line    int
	)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line++

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "datetime") {
			columns = make([]string, len(record))
			for i, name := range record {
				columns[i] = strings.ToLower(strings.TrimSpace(name))
			}
			continue
		}

		if len(record) != len(columns) {
			return nil, fmt.Errorf("CSV line %d: expected %d fields, got %d", line, len(columns), len(record))
		}

		var bar Bar
		for i, name := range columns {
			setBarColumn(&bar, name, strings.TrimSpace(record[i]))
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

func setBarColumn(b *Bar, name, value string) {
	switch name {
	case "datetime":
		b.Datetime = value
	case "open":
		b.Open = Number(value)
	case "high":
		b.High = Number(value)
	case "low":
		b.Low = Number(value)
	case "close":
		b.Close = Number(value)
	case "volume":
		b.Volume = Number(value)
	}
}
