package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/s0up4200/twelvedata/twelvedata"
)

func writeSeries(w io.Writer, meta *twelvedata.Meta, bars []twelvedata.Bar) {
	if meta != nil {
		fmt.Fprintf(w, "%s (%s) %s", meta.Symbol, meta.Exchange, meta.Interval)
		if meta.Currency != "" {
			fmt.Fprintf(w, " [%s]", meta.Currency)
		}
		fmt.Fprintln(w)
	}

	if len(bars) == 0 {
		fmt.Fprintln(w, "No bars found.")
		return
	}

	fmt.Fprintf(w, "%-20s %12s %12s %12s %12s %14s\n", "DATETIME", "OPEN", "HIGH", "LOW", "CLOSE", "VOLUME")
	fmt.Fprintln(w, strings.Repeat("-", 87))
	for _, b := range bars {
		fmt.Fprintf(w, "%-20s %12s %12s %12s %12s %14s\n", b.Datetime, b.Open, b.High, b.Low, b.Close, b.Volume)
	}
}

func writeBarsCSV(w io.Writer, bars []twelvedata.Bar) {
	fmt.Fprintln(w, "datetime;open;high;low;close;volume")
	for _, b := range bars {
		fmt.Fprintf(w, "%s;%s;%s;%s;%s;%s\n", b.Datetime, b.Open, b.High, b.Low, b.Close, b.Volume)
	}
}

func writeQuote(w io.Writer, q *twelvedata.Quote) {
	fmt.Fprintf(w, "• %s", q.Symbol)
	if q.Name != "" {
		fmt.Fprintf(w, " - %s", q.Name)
	}
	if q.Exchange != "" {
		fmt.Fprintf(w, " (%s)", q.Exchange)
	}
	if q.IsMarketOpen != nil && *q.IsMarketOpen {
		fmt.Fprint(w, " [OPEN]")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Close: %s %s  Change: %s (%s%%)\n", q.Close, q.Currency, q.Change, q.PercentChange)
	fmt.Fprintf(w, "  Open: %s  High: %s  Low: %s  Volume: %s\n", q.Open, q.High, q.Low, q.Volume)
	if q.PreviousClose.IsSet() {
		fmt.Fprintf(w, "  Previous close: %s\n", q.PreviousClose)
	}
	if wk := q.FiftyTwoWeek; wk != nil {
		fmt.Fprintf(w, "  52 week: %s - %s\n", wk.Low, wk.High)
	}
}

func writeEndOfDay(w io.Writer, e *twelvedata.EndOfDay) {
	fmt.Fprintf(w, "• %s", e.Symbol)
	if e.Exchange != "" {
		fmt.Fprintf(w, " (%s)", e.Exchange)
	}
	fmt.Fprintf(w, "  %s  close %s %s\n", e.Datetime, e.Close, e.Currency)
}
