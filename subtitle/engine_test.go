package subtitle_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pagecap"
	"github.com/fwojciec/pagecap/mock"
	"github.com/fwojciec/pagecap/subtitle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStrategy struct {
	name string
	fn   func(ctx context.Context, p pagecap.Page, trace *subtitle.Trace) ([]pagecap.SubtitleLine, error)
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Extract(ctx context.Context, p pagecap.Page, trace *subtitle.Trace) ([]pagecap.SubtitleLine, error) {
	return s.fn(ctx, p, trace)
}

func enginePage() *mock.Page {
	return &mock.Page{URLFn: func() string { return "https://www.bilibili.com/video/BV1xx411c7mD" }}
}

func TestEngine_Extract(t *testing.T) {
	t.Parallel()

	t.Run("first successful strategy wins", func(t *testing.T) {
		t.Parallel()

		want := []pagecap.SubtitleLine{{Start: 1, Duration: 2, Text: "hi"}}
		second := false

		e := subtitle.NewEngine(nil,
			&stubStrategy{name: "api", fn: func(ctx context.Context, p pagecap.Page, trace *subtitle.Trace) ([]pagecap.SubtitleLine, error) {
				return want, nil
			}},
			&stubStrategy{name: "dom", fn: func(ctx context.Context, p pagecap.Page, trace *subtitle.Trace) ([]pagecap.SubtitleLine, error) {
				second = true
				return nil, &subtitle.EmptyExtractionError{}
			}},
		)

		got, err := e.Extract(context.Background(), enginePage())
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.False(t, second, "later strategies must not run after a success")
	})

	t.Run("falls through to the next strategy on failure", func(t *testing.T) {
		t.Parallel()

		want := []pagecap.SubtitleLine{{Start: 0, Text: "from dom"}}

		e := subtitle.NewEngine(nil,
			&stubStrategy{name: "api", fn: func(ctx context.Context, p pagecap.Page, trace *subtitle.Trace) ([]pagecap.SubtitleLine, error) {
				return nil, &subtitle.NoSubtitleTrackError{}
			}},
			&stubStrategy{name: "dom", fn: func(ctx context.Context, p pagecap.Page, trace *subtitle.Trace) ([]pagecap.SubtitleLine, error) {
				return want, nil
			}},
		)

		got, err := e.Extract(context.Background(), enginePage())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("aggregate error carries every phase failure and the trace tail", func(t *testing.T) {
		t.Parallel()

		e := subtitle.NewEngine(nil,
			&stubStrategy{name: "api", fn: func(ctx context.Context, p pagecap.Page, trace *subtitle.Trace) ([]pagecap.SubtitleLine, error) {
				trace.Addf("api: 0 subtitle tracks")
				return nil, &subtitle.NoSubtitleTrackError{}
			}},
			&stubStrategy{name: "dom", fn: func(ctx context.Context, p pagecap.Page, trace *subtitle.Trace) ([]pagecap.SubtitleLine, error) {
				trace.Addf("dom: panel not found")
				return nil, &subtitle.UIAutomationError{Step: subtitle.StepOpenPanel}
			}},
		)

		_, err := e.Extract(context.Background(), enginePage())
		require.Error(t, err)

		var exhausted *subtitle.ExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Len(t, exhausted.Failures, 2)

		msg := err.Error()
		assert.Contains(t, msg, "no subtitle")
		assert.Contains(t, msg, "open-panel")
		assert.Contains(t, msg, "api: 0 subtitle tracks")
		assert.Contains(t, msg, "dom: panel not found")

		// Typed failures remain reachable through the aggregate.
		var noTracks *subtitle.NoSubtitleTrackError
		assert.ErrorAs(t, err, &noTracks)
		var uiErr *subtitle.UIAutomationError
		assert.ErrorAs(t, err, &uiErr)
	})

	t.Run("stops after cancellation instead of trying remaining strategies", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		domRan := false

		e := subtitle.NewEngine(nil,
			&stubStrategy{name: "api", fn: func(ctx context.Context, p pagecap.Page, trace *subtitle.Trace) ([]pagecap.SubtitleLine, error) {
				cancel()
				return nil, ctx.Err()
			}},
			&stubStrategy{name: "dom", fn: func(ctx context.Context, p pagecap.Page, trace *subtitle.Trace) ([]pagecap.SubtitleLine, error) {
				domRan = true
				return nil, nil
			}},
		)

		_, err := e.Extract(ctx, enginePage())
		require.Error(t, err)
		assert.False(t, domRan)
	})
}
