package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/twelvedata/twelvedata"
)

// requestFlags are the request parameters exposed on the command line. Only
// flags the user actually set are applied, so unset flags leave the configured
// defaults in place.
type requestFlags struct {
	exchange   string
	country    string
	instrument string
	micCode    string
	timezone   string
	order      string
	startDate  string
	endDate    string
	date       string
	adjust     string
	outputSize int
	dp         int
	prepost    bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.exchange, "exchange", "", "exchange the instrument is traded on")
	fs.StringVar(&f.country, "country", "", "country the exchange belongs to")
	fs.StringVar(&f.instrument, "type", "", "instrument type (e.g. 'Common Stock', 'ETF')")
	fs.StringVar(&f.micCode, "mic-code", "", "market identifier code")
	fs.StringVar(&f.timezone, "timezone", "", "output timezone ('Exchange', 'UTC' or an IANA name)")
	fs.StringVar(&f.order, "order", "", "sort order of bars (asc or desc)")
	fs.StringVar(&f.startDate, "start", "", "start date (YYYY-MM-DD or 'YYYY-MM-DD hh:mm:ss')")
	fs.StringVar(&f.endDate, "end", "", "end date (YYYY-MM-DD or 'YYYY-MM-DD hh:mm:ss')")
	fs.StringVar(&f.date, "date", "", "specific date, 'today' or 'yesterday'")
	fs.StringVar(&f.adjust, "adjust", "", "price adjustment (all, splits, dividends, none)")
	fs.IntVarP(&f.outputSize, "outputsize", "n", 0, "number of data points (1-5000)")
	fs.IntVar(&f.dp, "dp", 0, "decimal places (0-11)")
	fs.BoolVar(&f.prepost, "prepost", false, "include pre/post market data")
}

func applyRequestFlags[T any](cmd *cobra.Command, f *requestFlags, req *twelvedata.Request[T]) *twelvedata.Request[T] {
	fs := cmd.Flags()

	req.Exchange(f.exchange).
		Country(f.country).
		Type(f.instrument).
		MICCode(f.micCode).
		Timezone(f.timezone).
		Order(f.order).
		StartDate(f.startDate).
		EndDate(f.endDate).
		Date(f.date).
		Adjust(f.adjust)

	if fs.Changed("outputsize") {
		req.OutputSize(f.outputSize)
	}
	if fs.Changed("dp") {
		req.DP(f.dp)
	}
	if fs.Changed("prepost") {
		req.Prepost(f.prepost)
	}

	return req
}

// outputFlags select how a result is printed.
type outputFlags struct {
	csv   bool
	json  bool
	url   bool
	where string
}

func (f *outputFlags) register(cmd *cobra.Command, withCSV bool) {
	fs := cmd.Flags()
	fs.BoolVar(&f.json, "json", false, "print the raw JSON response")
	fs.BoolVar(&f.url, "url", false, "print the request URL without calling the API")
	if withCSV {
		fs.BoolVar(&f.csv, "csv", false, "request CSV output")
		fs.StringVarP(&f.where, "where", "w", "", "keep only bars matching an expression, e.g. 'Close > Open'")
	}
}

func (f *outputFlags) validate() error {
	n := 0
	for _, set := range []bool{f.csv, f.json, f.url} {
		if set {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("--csv, --json and --url are mutually exclusive")
	}
	if f.json && f.where != "" {
		return fmt.Errorf("--where cannot be combined with --json")
	}
	return nil
}

// maskAPIKey hides the key in a rendered URL.
func maskAPIKey(rendered, apiKey string) string {
	if apiKey == "" {
		return rendered
	}
	return strings.ReplaceAll(rendered, "apikey="+apiKey, "apikey=***")
}
