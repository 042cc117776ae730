package subtitle

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/pagecap"
)

// DOM fallback steps, in execution order. Failure at any gate fails the
// strategy; the panel close step runs regardless of outcome.
const (
	StepOpenPanel       = "open-panel"
	StepAwaitListButton = "await-list-button"
	StepClickList       = "click-list"
	StepAwaitRender     = "await-render"
	StepExtractDOM      = "extract-dom"
	StepClosePanel      = "close-panel"
)

// Default polling parameters. The host page offers no "rendered" signal, so
// each gate polls with a bounded timeout instead of sleeping a fixed delay.
const (
	DefaultPollInterval = 150 * time.Millisecond
	DefaultStepTimeout  = 5 * time.Second
)

// Assistant-panel selector cascades for the Bilibili player UI.
var (
	panelOpenSelectors = []string{
		".video-ai-assistant",
		"[class*='video-ai-assistant'] .trigger",
		"[class*='ai-assistant-btn']",
	}
	panelCloseSelectors = []string{
		".video-ai-assistant-panel .close-btn",
		"[class*='ai-assistant'] [class*='close']",
	}
	listButtonSelectors = []string{
		".video-ai-assistant-panel .subtitle-btn",
		"[class*='ai-assistant'] [class*='subtitle-btn']",
		"[class*='ai-assistant'] [class*='subtitle-list-btn']",
	}
	itemPresenceSelectors = []string{
		".subtitle-item",
		"[class*='subtitle-item']",
		"[class*='subtitle-list']",
	}
)

var clockRE = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
var clockPrefixRE = regexp.MustCompile(`^(\d{1,2}:\d{2}(?::\d{2})?)\s+(\S.*)$`)

// Ensure BilibiliDOM implements Strategy at compile time.
var _ Strategy = (*BilibiliDOM)(nil)

// BilibiliDOM scrapes subtitles out of the player's assistant panel when the
// API path fails: open panel → await list button → click → await render →
// extract → close panel. Extraction tries three heuristics in priority
// order and de-duplicates items sharing identical (start, text).
type BilibiliDOM struct {
	PollInterval time.Duration
	StepTimeout  time.Duration
}

// Name returns the strategy's identifier.
func (s *BilibiliDOM) Name() string {
	return "bilibili-dom"
}

func (s *BilibiliDOM) pollInterval() time.Duration {
	if s.PollInterval > 0 {
		return s.PollInterval
	}
	return DefaultPollInterval
}

func (s *BilibiliDOM) stepTimeout() time.Duration {
	if s.StepTimeout > 0 {
		return s.StepTimeout
	}
	return DefaultStepTimeout
}

// Extract runs the fallback state machine. The panel is never left open:
// the close step is deferred and runs on success, failure and cancellation
// alike, on a context detached from the caller's.
func (s *BilibiliDOM) Extract(ctx context.Context, p pagecap.Page, trace *Trace) ([]pagecap.SubtitleLine, error) {
	if err := clickFirst(ctx, p, panelOpenSelectors); err != nil {
		trace.Addf("%s: %v", StepOpenPanel, err)
		return nil, &UIAutomationError{Step: StepOpenPanel}
	}
	trace.Addf("%s: ok", StepOpenPanel)

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.stepTimeout())
		defer cancel()
		if err := clickFirst(closeCtx, p, panelCloseSelectors); err != nil {
			trace.Addf("%s: %v", StepClosePanel, err)
			return
		}
		trace.Addf("%s: ok", StepClosePanel)
	}()

	listSel, err := s.await(ctx, p, listButtonSelectors)
	if err != nil {
		trace.Addf("%s: %v", StepAwaitListButton, err)
		return nil, &UIAutomationError{Step: StepAwaitListButton}
	}
	trace.Addf("%s: found %q", StepAwaitListButton, listSel)

	if err := p.Click(ctx, listSel); err != nil {
		trace.Addf("%s: %v", StepClickList, err)
		return nil, &UIAutomationError{Step: StepClickList}
	}
	trace.Addf("%s: ok", StepClickList)

	if _, err := s.await(ctx, p, itemPresenceSelectors); err != nil {
		trace.Addf("%s: %v", StepAwaitRender, err)
		return nil, &UIAutomationError{Step: StepAwaitRender}
	}
	trace.Addf("%s: ok", StepAwaitRender)

	lines := s.extract(ctx, p, trace)
	if len(lines) == 0 {
		trace.Addf("%s: no items", StepExtractDOM)
		return nil, &EmptyExtractionError{}
	}
	return lines, nil
}

// clickFirst clicks the first selector in the cascade that resolves to an
// element.
func clickFirst(ctx context.Context, p pagecap.Page, selectors []string) error {
	var lastErr error
	for _, sel := range selectors {
		if err := p.Click(ctx, sel); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = pagecap.Errorf(pagecap.ENOTFOUND, "no clickable element")
	}
	return lastErr
}

// await polls until any selector in the cascade resolves, the step timeout
// elapses, or the context is canceled.
func (s *BilibiliDOM) await(ctx context.Context, p pagecap.Page, selectors []string) (string, error) {
	deadline := time.Now().Add(s.stepTimeout())
	for {
		for _, sel := range selectors {
			if _, err := p.Element(ctx, sel); err == nil {
				return sel, nil
			}
		}
		if time.Now().After(deadline) {
			return "", pagecap.Errorf(pagecap.EUNAVAILABLE, "timed out after %s", s.stepTimeout())
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.pollInterval()):
		}
	}
}

// extract tries the DOM-matching heuristics in priority order, stopping at
// the first that yields at least one item.
func (s *BilibiliDOM) extract(ctx context.Context, p pagecap.Page, trace *Trace) []pagecap.SubtitleLine {
	heuristics := []struct {
		name string
		fn   func(context.Context, pagecap.Page) []pagecap.SubtitleLine
	}{
		{"structural", extractStructural},
		{"time-sibling", extractTimeSibling},
		{"container", extractContainer},
	}
	for _, h := range heuristics {
		items := h.fn(ctx, p)
		if len(items) > 0 {
			trace.Addf("%s: heuristic %s yielded %d items", StepExtractDOM, h.name, len(items))
			return dedupe(items)
		}
		trace.Addf("%s: heuristic %s yielded nothing", StepExtractDOM, h.name)
	}
	return nil
}

// extractStructural matches the panel's exact item structure: a
// .subtitle-item with dedicated time and text children.
func extractStructural(ctx context.Context, p pagecap.Page) []pagecap.SubtitleLine {
	items, err := p.Elements(ctx, ".subtitle-item")
	if err != nil {
		return nil
	}
	var out []pagecap.SubtitleLine
	for _, item := range items {
		times, err := item.Find(ctx, ".subtitle-item-time")
		if err != nil || len(times) == 0 {
			continue
		}
		texts, err := item.Find(ctx, ".subtitle-item-text")
		if err != nil || len(texts) == 0 {
			continue
		}
		line, ok := buildLine(ctx, times[0], texts[0])
		if !ok {
			continue
		}
		out = append(out, line)
	}
	return out
}

// extractTimeSibling pairs any element whose text is exactly a clock value
// with its next sibling's text.
func extractTimeSibling(ctx context.Context, p pagecap.Page) []pagecap.SubtitleLine {
	nodes, err := p.Elements(ctx, "[class*='subtitle'] span, [class*='subtitle'] div")
	if err != nil {
		return nil
	}
	var out []pagecap.SubtitleLine
	for _, node := range nodes {
		raw, err := node.Text(ctx)
		if err != nil {
			continue
		}
		start, ok := ParseClock(strings.TrimSpace(raw))
		if !ok {
			continue
		}
		sibling, err := node.Next(ctx)
		if err != nil {
			continue
		}
		text, err := sibling.Text(ctx)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text == "" {
			continue
		}
		out = append(out, pagecap.SubtitleLine{Start: start, Text: text})
	}
	return out
}

// extractContainer scans generic list containers and parses each child's
// combined "clock text" content.
func extractContainer(ctx context.Context, p pagecap.Page) []pagecap.SubtitleLine {
	containers, err := p.Elements(ctx, "[class*='subtitle-list'], [class*='subtitleList'], [class*='subtitle-panel']")
	if err != nil {
		return nil
	}
	var out []pagecap.SubtitleLine
	for _, container := range containers {
		children, err := container.Find(ctx, "div, li, p")
		if err != nil {
			continue
		}
		for _, child := range children {
			raw, err := child.Text(ctx)
			if err != nil {
				continue
			}
			m := clockPrefixRE.FindStringSubmatch(strings.TrimSpace(raw))
			if m == nil {
				continue
			}
			start, ok := ParseClock(m[1])
			if !ok {
				continue
			}
			out = append(out, pagecap.SubtitleLine{Start: start, Text: strings.TrimSpace(m[2])})
		}
		if len(out) > 0 {
			break
		}
	}
	return out
}

func buildLine(ctx context.Context, timeEl, textEl pagecap.Element) (pagecap.SubtitleLine, bool) {
	rawTime, err := timeEl.Text(ctx)
	if err != nil {
		return pagecap.SubtitleLine{}, false
	}
	start, ok := ParseClock(strings.TrimSpace(rawTime))
	if !ok {
		return pagecap.SubtitleLine{}, false
	}
	text, err := textEl.Text(ctx)
	if err != nil {
		return pagecap.SubtitleLine{}, false
	}
	if text = strings.TrimSpace(text); text == "" {
		return pagecap.SubtitleLine{}, false
	}
	return pagecap.SubtitleLine{Start: start, Text: text}, true
}

// dedupe drops items sharing identical (start, text), keeping first
// occurrences in order. DOM-sourced output is not sort-corrected.
func dedupe(lines []pagecap.SubtitleLine) []pagecap.SubtitleLine {
	seen := make(map[string]bool, len(lines))
	out := lines[:0]
	for _, line := range lines {
		key := fmt.Sprintf("%.3f|%s", line.Start, line.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, line)
	}
	return out
}

// ParseClock converts "mm:ss" or "hh:mm:ss" into seconds.
func ParseClock(s string) (float64, bool) {
	m := clockRE.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	if m[3] == "" {
		return float64(a*60 + b), true
	}
	c, _ := strconv.Atoi(m[3])
	return float64(a*3600 + b*60 + c), true
}
