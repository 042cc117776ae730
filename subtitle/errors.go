package subtitle

import (
	"fmt"
	"strings"
)

// Typed failures produced by the extraction strategies. Each step of a
// strategy catches locally, records a trace entry and re-raises one of these
// to the strategy driver; the engine falls through to the next strategy and
// only after all strategies are exhausted surfaces an ExhaustedError.

// IdentifierResolutionError indicates the platform's internal content IDs
// could not be derived from the page URL.
type IdentifierResolutionError struct {
	URL string
}

func (e *IdentifierResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve video identifiers from %q", e.URL)
}

// APIError indicates a platform API responded with an application-level
// error code.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// NoSubtitleTrackError indicates the video has no subtitle tracks.
type NoSubtitleTrackError struct{}

func (e *NoSubtitleTrackError) Error() string {
	return "no subtitle tracks available for this video"
}

// InvalidSubtitleURLError indicates a track URL could not be normalized.
type InvalidSubtitleURLError struct {
	Raw string
}

func (e *InvalidSubtitleURLError) Error() string {
	return fmt.Sprintf("invalid subtitle track URL %q", e.Raw)
}

// EmptyPayloadError indicates a subtitle payload parsed to zero usable lines.
type EmptyPayloadError struct{}

func (e *EmptyPayloadError) Error() string {
	return "subtitle payload contained no usable lines"
}

// UIAutomationError indicates the DOM fallback failed at a specific step.
type UIAutomationError struct {
	Step string
}

func (e *UIAutomationError) Error() string {
	return fmt.Sprintf("ui automation failed at step %q", e.Step)
}

// EmptyExtractionError indicates DOM extraction yielded zero items.
type EmptyExtractionError struct{}

func (e *EmptyExtractionError) Error() string {
	return "dom extraction yielded no subtitle items"
}

// ExhaustedError is returned by the engine after every strategy has failed.
// Its message concatenates all strategy failures plus the tail of the trace
// so a field report is diagnosable without reproducing the failure.
type ExhaustedError struct {
	Failures []error
	Trace    []string
}

func (e *ExhaustedError) Error() string {
	var b strings.Builder
	b.WriteString("subtitle extraction failed")
	for _, err := range e.Failures {
		b.WriteString("; ")
		b.WriteString(err.Error())
	}
	if len(e.Trace) > 0 {
		b.WriteString(" [trace: ")
		b.WriteString(strings.Join(e.Trace, " | "))
		b.WriteString("]")
	}
	return b.String()
}

// Unwrap exposes the individual strategy failures to errors.Is/As.
func (e *ExhaustedError) Unwrap() []error {
	return e.Failures
}
