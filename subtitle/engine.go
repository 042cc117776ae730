// Package subtitle resolves time-coded subtitles for platform video pages.
// An engine runs an ordered list of strategies, typically an API-first path
// with a DOM automation fallback, and returns the first successful result.
// Strategies share one trace log so a total failure carries enough context
// for field diagnosis.
package subtitle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/pagecap"
)

// DefaultTraceTail is the number of trailing trace entries attached to an
// ExhaustedError.
const DefaultTraceTail = 12

// Strategy is one way of producing subtitles for a page. Strategies record
// their progress on the shared trace and return a typed error on failure.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, p pagecap.Page, trace *Trace) ([]pagecap.SubtitleLine, error)
}

// Engine runs strategies in order until one succeeds. Strategies are strictly
// sequential; there is no value in racing an API call against UI automation
// that mutates the same page.
type Engine struct {
	strategies []Strategy
	logger     *slog.Logger
	traceTail  int
}

// NewEngine creates an Engine that tries the given strategies in order.
// Pass nil to discard logs.
func NewEngine(logger *slog.Logger, strategies ...Strategy) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		strategies: strategies,
		logger:     logger,
		traceTail:  DefaultTraceTail,
	}
}

// Extract produces an ordered sequence of subtitle lines for the page.
// If every strategy fails it returns an ExhaustedError aggregating all
// failures plus the trace tail.
func (e *Engine) Extract(ctx context.Context, p pagecap.Page) ([]pagecap.SubtitleLine, error) {
	trace := &Trace{}
	var failures []error

	for _, s := range e.strategies {
		trace.Addf("%s: start", s.Name())

		lines, err := s.Extract(ctx, p, trace)
		if err == nil {
			trace.Addf("%s: ok (%d lines)", s.Name(), len(lines))
			e.logger.Info("subtitles extracted",
				"strategy", s.Name(),
				"url", p.URL(),
				"lines", len(lines),
			)
			return lines, nil
		}

		trace.Addf("%s: failed: %v", s.Name(), err)
		failures = append(failures, fmt.Errorf("%s: %w", s.Name(), err))

		// A canceled context fails every remaining strategy the same way;
		// stop instead of piling on identical errors.
		if ctx.Err() != nil {
			break
		}
	}

	err := &ExhaustedError{Failures: failures, Trace: trace.Last(e.traceTail)}
	e.logger.Warn("subtitle extraction exhausted",
		"url", p.URL(),
		"strategies", len(e.strategies),
		"err", err,
	)
	return nil, err
}

// pageLocale reads the page's UI locale. Static pages (and anything else
// that can't evaluate script) yield "".
func pageLocale(ctx context.Context, p pagecap.Page) string {
	v, err := p.Eval(ctx, "navigator.language")
	if err != nil {
		return ""
	}
	return strings.Trim(strings.TrimSpace(v), `"`)
}
