// Package app wires the pipeline together and runs it per ticker:
// build sections, annotate with AI insights, render the PDF, export the
// CSV row.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/equitas/internal/common"
	"github.com/ternarybob/equitas/internal/eodhd"
	"github.com/ternarybob/equitas/internal/export"
	"github.com/ternarybob/equitas/internal/insight"
	"github.com/ternarybob/equitas/internal/market"
	"github.com/ternarybob/equitas/internal/render"
	"github.com/ternarybob/equitas/internal/report"
)

// App holds the wired pipeline for the process lifetime. One App serves
// any number of ticker runs.
type App struct {
	config    *common.Config
	logger    arbor.ILogger
	builder   *report.Builder
	annotator *insight.Annotator
	renderer  *render.Renderer
	exporter  *export.Exporter
}

// New wires the pipeline from configuration: EODHD client and gateway,
// section builder, insight annotator, PDF renderer and CSV exporter.
func New(ctx context.Context, config *common.Config, logger arbor.ILogger) (*App, error) {
	clientOpts := []eodhd.ClientOption{
		eodhd.WithLogger(logger),
		eodhd.WithRateLimit(config.EODHD.RateLimit),
	}
	if config.EODHD.BaseURL != "" {
		clientOpts = append(clientOpts, eodhd.WithBaseURL(config.EODHD.BaseURL))
	}
	client := eodhd.NewClient(config.EODHD.APIKey, clientOpts...)

	gateway := market.NewGateway(client, config.EODHD.NewsLimit, logger)
	builder := report.NewBuilder(gateway, logger)

	evaluator, err := insight.NewEvaluator(ctx, config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize insight evaluator: %w", err)
	}
	timeout, err := time.ParseDuration(config.LLM.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid llm.timeout %q: %w", config.LLM.Timeout, err)
	}
	annotator := insight.NewAnnotator(evaluator, timeout, logger)

	return &App{
		config:    config,
		logger:    logger,
		builder:   builder,
		annotator: annotator,
		renderer:  render.NewRenderer(config.Report.ReportsDir, logger),
		exporter:  export.NewExporter(config.Report.DataDir, logger),
	}, nil
}

// RunTicker executes the full pipeline for one raw ticker string. The
// build phase is all-or-nothing; after annotation, the PDF and CSV are
// attempted independently so a failure writing one artifact does not
// lose the other.
func (a *App) RunTicker(ctx context.Context, raw string, period report.Period) error {
	runID := uuid.New().String()
	logger := a.logger.WithCorrelationId(runID)

	ticker := common.ParseTicker(raw)
	if ticker.Code == "" {
		return fmt.Errorf("%w: %q", report.ErrInvalidTicker, raw)
	}
	symbol := ticker.EODHDSymbol()

	logger.Info().
		Str("ticker", ticker.String()).
		Str("symbol", symbol).
		Str("period", period.String()).
		Msg("Starting report run")

	doc, err := a.builder.Build(ctx, symbol, period)
	if err != nil {
		return fmt.Errorf("failed to build report for %s: %w", ticker, err)
	}

	a.annotator.Annotate(ctx, doc)

	var runErr error
	if path, err := a.renderer.Render(doc); err != nil {
		logger.Error().Err(err).Msg("PDF rendering failed")
		runErr = errors.Join(runErr, err)
	} else {
		logger.Info().Str("path", path).Msg("PDF report complete")
	}
	if path, err := a.exporter.Export(doc); err != nil {
		logger.Error().Err(err).Msg("CSV export failed")
		runErr = errors.Join(runErr, err)
	} else {
		logger.Info().Str("path", path).Msg("CSV export complete")
	}

	return runErr
}
