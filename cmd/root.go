package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/twelvedata/config"
	"github.com/s0up4200/twelvedata/twelvedata"
)

// skipInitAnnotation marks commands that run without config or API client.
const skipInitAnnotation = "skip-init"

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *twelvedata.Client
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "twelvedata",
	Short: "Query the Twelve Data market-data API from the command line",
	Long: `twelvedata fetches time series, quotes, prices and end-of-day data from
the Twelve Data API. Results can be printed as tables, raw JSON or CSV, and
time series bars can be filtered with expressions such as 'Close > Open'.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
}

// initializeApp initializes the configuration and client
func initializeApp(cmd *cobra.Command, args []string) error {
	if _, ok := cmd.Annotations[skipInitAnnotation]; ok {
		logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	logger = setupLogger(cfg.Logging)

	client, err = twelvedata.NewClient(cfg.API.APIKey, logger, cfg.ClientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create Twelve Data client: %w", err)
	}

	logger.Debug().
		Str("base_url", cfg.API.BaseURL).
		Dur("timeout", cfg.API.Timeout).
		Bool("throttle", cfg.Throttle.Enabled).
		Msg("Client initialized")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Colors only when stderr is a terminal
	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
