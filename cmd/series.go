package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/twelvedata/filter"
	"github.com/s0up4200/twelvedata/twelvedata"
)

var (
	seriesInterval string
	seriesRequest  requestFlags
	seriesOutput   outputFlags

	dailyRequest requestFlags
	dailyOutput  outputFlags
)

// seriesCmd represents the series command
var seriesCmd = &cobra.Command{
	Use:   "series SYMBOL",
	Short: "Fetch OHLCV bars for a symbol",
	Long: `Fetch a time series of OHLCV bars for a symbol at the given interval.

Examples:
  twelvedata series AAPL --interval 1h -n 24
  twelvedata series EUR/USD --interval 5min --csv
  twelvedata series AAPL --where 'Close > Open and Volume > 50000000'`,
	Args: cobra.ExactArgs(1),
	RunE: runSeries,
}

// dailyCmd represents the daily command
var dailyCmd = &cobra.Command{
	Use:   "daily SYMBOL",
	Short: "Fetch daily bars for a symbol",
	Long:  `Fetch one bar per trading day for a symbol. The interval is always 1day.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDaily,
}

func init() {
	seriesCmd.Flags().StringVarP(&seriesInterval, "interval", "i", twelvedata.IntervalDaily,
		"bar interval (1min, 5min, 15min, 30min, 45min, 1h, 2h, 4h, 1day, 1week, 1month)")
	seriesRequest.register(seriesCmd)
	seriesOutput.register(seriesCmd, true)

	dailyRequest.register(dailyCmd)
	dailyOutput.register(dailyCmd, true)

	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(dailyCmd)
}

func runSeries(cmd *cobra.Command, args []string) error {
	req := applyRequestFlags(cmd, &seriesRequest, client.TimeSeries(args[0], seriesInterval))
	return emitSeries(cmd.Context(), os.Stdout, req, &seriesOutput, func(ts *twelvedata.TimeSeries) *twelvedata.TimeSeries {
		return ts
	})
}

func runDaily(cmd *cobra.Command, args []string) error {
	req := applyRequestFlags(cmd, &dailyRequest, client.Daily(args[0]))
	return emitSeries(cmd.Context(), os.Stdout, req, &dailyOutput, func(d *twelvedata.Daily) *twelvedata.TimeSeries {
		return &d.TimeSeries
	})
}

// emitSeries runs req and prints it according to out.
func emitSeries[T any](ctx context.Context, w io.Writer, req *twelvedata.Request[T], out *outputFlags, series func(T) *twelvedata.TimeSeries) error {
	if err := out.validate(); err != nil {
		return err
	}

	var where filter.CompiledFilter
	if out.where != "" {
		f, err := filter.CompileFilter(out.where)
		if err != nil {
			return fmt.Errorf("invalid --where expression: %w", err)
		}
		where = f
	}

	switch {
	case out.url:
		fmt.Fprintln(w, maskAPIKey(req.URL(), client.Context().APIKey()))
		return nil

	case out.json:
		body, err := req.JSON(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(body))
		return nil

	case out.csv && where == nil:
		body, err := req.CSV(ctx)
		if err != nil {
			return err
		}
		fmt.Fprint(w, body)
		return nil

	case out.csv:
		bars, err := req.Bars(ctx)
		if err != nil {
			return err
		}
		if bars, err = filter.Apply(ctx, where, bars); err != nil {
			return err
		}
		writeBarsCSV(w, bars)
		return nil
	}

	result, err := req.Do(ctx)
	if err != nil {
		return err
	}

	ts := series(result)
	bars := ts.Values
	if where != nil {
		if bars, err = filter.Apply(ctx, where, bars); err != nil {
			return err
		}
		logger.Debug().
			Str("where", where.Expression()).
			Int("total", len(ts.Values)).
			Int("matched", len(bars)).
			Msg("Filtered bars")
	}

	writeSeries(w, ts.Meta, bars)
	return nil
}
