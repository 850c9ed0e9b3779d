package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/s0up4200/twelvedata/twelvedata"
)

var (
	quoteRequest      requestFlags
	quoteOutput       outputFlags
	quoteInterval     string
	quoteEOD          bool
	quoteRolling      int
	quoteVolumePeriod int

	priceRequest requestFlags
	priceOutput  outputFlags

	eodRequest requestFlags
	eodOutput  outputFlags
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote SYMBOL...",
	Short: "Fetch the latest quote for one or more symbols",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQuote,
}

// priceCmd represents the price command
var priceCmd = &cobra.Command{
	Use:   "price SYMBOL...",
	Short: "Fetch the latest price for one or more symbols",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPrice,
}

// eodCmd represents the eod command
var eodCmd = &cobra.Command{
	Use:   "eod SYMBOL...",
	Short: "Fetch the end-of-day close for one or more symbols",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEOD,
}

func init() {
	quoteRequest.register(quoteCmd)
	quoteOutput.register(quoteCmd, false)
	quoteCmd.Flags().StringVarP(&quoteInterval, "interval", "i", "", "interval the quote is computed over")
	quoteCmd.Flags().BoolVar(&quoteEOD, "eod", false, "return the last closed day")
	quoteCmd.Flags().IntVar(&quoteRolling, "rolling-period", 0, "hours for the rolling change calculation")
	quoteCmd.Flags().IntVar(&quoteVolumePeriod, "volume-time-period", 0, "periods for the average volume")

	priceRequest.register(priceCmd)
	priceOutput.register(priceCmd, false)

	eodRequest.register(eodCmd)
	eodOutput.register(eodCmd, false)

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(eodCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	build := func(symbol string) *twelvedata.Request[*twelvedata.Quote] {
		req := applyRequestFlags(cmd, &quoteRequest, client.Quote(symbol)).Interval(quoteInterval)
		fs := cmd.Flags()
		if fs.Changed("eod") {
			req.EOD(quoteEOD)
		}
		if fs.Changed("rolling-period") {
			req.RollingPeriod(quoteRolling)
		}
		if fs.Changed("volume-time-period") {
			req.VolumeTimePeriod(quoteVolumePeriod)
		}
		return req
	}

	return emitEach(cmd.Context(), args, &quoteOutput, build, func(_ string, q *twelvedata.Quote) {
		writeQuote(os.Stdout, q)
	})
}

func runPrice(cmd *cobra.Command, args []string) error {
	build := func(symbol string) *twelvedata.Request[*twelvedata.Price] {
		return applyRequestFlags(cmd, &priceRequest, client.Price(symbol))
	}

	return emitEach(cmd.Context(), args, &priceOutput, build, func(symbol string, p *twelvedata.Price) {
		fmt.Fprintf(os.Stdout, "%-12s %s\n", symbol, p.Price)
	})
}

func runEOD(cmd *cobra.Command, args []string) error {
	build := func(symbol string) *twelvedata.Request[*twelvedata.EndOfDay] {
		return applyRequestFlags(cmd, &eodRequest, client.EndOfDay(symbol))
	}

	return emitEach(cmd.Context(), args, &eodOutput, build, func(_ string, e *twelvedata.EndOfDay) {
		writeEndOfDay(os.Stdout, e)
	})
}

// emitEach fetches every symbol concurrently and prints results in argument
// order.
func emitEach[T any](
	ctx context.Context,
	symbols []string,
	out *outputFlags,
	build func(symbol string) *twelvedata.Request[T],
	show func(symbol string, value T),
) error {
	if err := out.validate(); err != nil {
		return err
	}

	if out.url {
		for _, s := range symbols {
			fmt.Println(maskAPIKey(build(s).URL(), client.Context().APIKey()))
		}
		return nil
	}

	if out.json {
		results := fetchAll(ctx, symbols, concurrency(), func(ctx context.Context, s string) ([]byte, error) {
			return build(s).JSON(ctx)
		})
		for _, r := range results {
			if r.Err == nil {
				fmt.Println(string(r.Value))
			}
		}
		return failures(results)
	}

	results := fetchAll(ctx, symbols, concurrency(), func(ctx context.Context, s string) (T, error) {
		return build(s).Do(ctx)
	})
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		show(r.Symbol, r.Value)
	}
	return failures(results)
}
