package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/equitas/internal/app"
	"github.com/ternarybob/equitas/internal/common"
	"github.com/ternarybob/equitas/internal/report"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles  configPaths
	tickerList   = flag.String("tickers", "", "Comma-separated ticker symbols (overrides config)")
	reportYear   = flag.Int("year", time.Now().UTC().Year(), "Reporting year")
	reportQtr    = flag.String("quarter", currentQuarter(), "Reporting quarter (Q1-Q4)")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func currentQuarter() string {
	return fmt.Sprintf("Q%d", (int(time.Now().UTC().Month())-1)/3+1)
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Equitas version %s\n", common.GetVersion())
		os.Exit(0)
	}

	// .env is optional; environment overrides still apply without one
	_ = godotenv.Load()

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file1 -> file2 -> ... -> env)
	// 2. Initialize logger
	// 3. Print banner

	if len(configFiles) == 0 {
		if _, err := os.Stat("equitas.toml"); err == nil {
			configFiles = append(configFiles, "equitas.toml")
		}
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		arbor.NewLogger().Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		os.Exit(1)
	}

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	if err := config.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}

	period, err := report.NewPeriod(*reportYear, *reportQtr)
	if err != nil {
		logger.Fatal().Int("year", *reportYear).Str("quarter", *reportQtr).Err(err).Msg("Invalid reporting period")
		os.Exit(1)
	}

	tickers := config.Tickers
	if *tickerList != "" {
		tickers = strings.Split(*tickerList, ",")
	}
	for i := range tickers {
		tickers[i] = strings.TrimSpace(tickers[i])
	}
	if len(tickers) == 0 {
		logger.Fatal().Msg("No tickers specified (use -tickers or set tickers in config)")
		os.Exit(1)
	}

	logger.Info().
		Strs("config_files", configFiles).
		Strs("tickers", tickers).
		Str("period", period.String()).
		Msg("Application configuration loaded")

	// Ctrl+C cancels the in-flight ticker and skips the rest
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}

	// One ticker's failure never stops the rest
	succeeded := 0
	for _, ticker := range tickers {
		if ticker == "" {
			continue
		}
		if ctx.Err() != nil {
			logger.Warn().Msg("Interrupted, skipping remaining tickers")
			break
		}
		if err := application.RunTicker(ctx, ticker, period); err != nil {
			logger.Error().Str("ticker", ticker).Err(err).Msg("Report run failed")
			continue
		}
		succeeded++
	}

	logger.Info().Int("succeeded", succeeded).Int("requested", len(tickers)).Msg("All runs complete")

	if succeeded == 0 {
		os.Exit(1)
	}
}
