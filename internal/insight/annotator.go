package insight

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/equitas/internal/report"
)

// DefaultTimeout bounds a single section evaluation when the config
// gives no timeout.
const DefaultTimeout = 60 * time.Second

// Annotator attaches a judgment to every section of a document. Sections
// are evaluated concurrently and independently: one section's failure is
// recorded on that section and never blocks the others.
type Annotator struct {
	evaluator Evaluator
	timeout   time.Duration
	logger    arbor.ILogger
}

// NewAnnotator creates an annotator around an evaluator.
func NewAnnotator(evaluator Evaluator, timeout time.Duration, logger arbor.ILogger) *Annotator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Annotator{
		evaluator: evaluator,
		timeout:   timeout,
		logger:    logger,
	}
}

// Annotate evaluates every section of the document. It always returns
// with all sections carrying both an insight and a signal: failed
// evaluations leave a diagnostic insight and a neutral signal. A single
// failed attempt is the terminal outcome for that section.
func (a *Annotator) Annotate(ctx context.Context, doc *report.Document) {
	var wg sync.WaitGroup
	for _, section := range doc.Sections {
		wg.Add(1)
		go func(section *report.Section) {
			defer wg.Done()
			a.annotateSection(ctx, doc.Ticker, section)
		}(section)
	}
	wg.Wait()
}

func (a *Annotator) annotateSection(ctx context.Context, ticker string, section *report.Section) {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	judgment, err := a.evaluator.Evaluate(callCtx, section)
	if err != nil {
		a.logger.Warn().
			Str("ticker", ticker).
			Str("section", section.Kind.String()).
			Err(err).
			Msg("Section evaluation failed")
		section.SetJudgmentFailed(err)
		return
	}

	signal, err := report.SignalFromScore(judgment.Signal)
	if err != nil {
		a.logger.Warn().
			Str("ticker", ticker).
			Str("section", section.Kind.String()).
			Int("signal", judgment.Signal).
			Msg("Section evaluation returned invalid signal")
		section.SetJudgmentFailed(fmt.Errorf("invalid signal %d", judgment.Signal))
		return
	}

	a.logger.Debug().
		Str("ticker", ticker).
		Str("section", section.Kind.String()).
		Str("signal", signal.String()).
		Dur("elapsed", time.Since(start)).
		Msg("Section evaluated")
	section.SetJudgment(judgment.Insight, signal)
}
