// Package capture orchestrates page capture: it resolves the adapter for a
// URL, opens the page, runs the relevant capture method and persists the
// result.
package capture

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/pagecap"
	"github.com/fwojciec/pagecap/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the default number of pages captured in parallel by
// CaptureAll.
const DefaultConcurrency = 3

// Service coordinates adapters, the page opener and the clip store.
type Service struct {
	registry    *pagecap.Registry
	opener      pagecap.PageOpener
	clips       pagecap.ClipService
	fallback    pagecap.Adapter
	limiter     pagecap.Limiter
	seen        *bloom.Filter
	logger      *slog.Logger
	retryDelays []time.Duration
	concurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithFallback sets the adapter used when no registered adapter matches a
// URL. Without a fallback, unmatched URLs fail with ENOTFOUND.
func WithFallback(a pagecap.Adapter) Option {
	return func(s *Service) {
		s.fallback = a
	}
}

// WithLimiter rate-limits page opens per host.
func WithLimiter(l pagecap.Limiter) Option {
	return func(s *Service) {
		s.limiter = l
	}
}

// WithSeenFilter enables seen-URL deduplication in CaptureAll.
func WithSeenFilter(f *bloom.Filter) Option {
	return func(s *Service) {
		s.seen = f
	}
}

// WithRetryDelays sets the page-open retry delays.
// Defaults to DefaultRetryDelays() if not specified.
func WithRetryDelays(delays []time.Duration) Option {
	return func(s *Service) {
		s.retryDelays = delays
	}
}

// WithConcurrency sets the number of parallel captures in CaptureAll.
// Non-positive values keep DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewService creates a capture Service. The clip service may be nil, in
// which case captured clips are returned but not persisted.
func NewService(registry *pagecap.Registry, opener pagecap.PageOpener, clips pagecap.ClipService, opts ...Option) *Service {
	s := &Service{
		registry:    registry,
		opener:      opener,
		clips:       clips,
		logger:      slog.New(slog.DiscardHandler),
		retryDelays: DefaultRetryDelays(),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolve returns the adapter for the URL, falling back to the configured
// fallback adapter when no registered adapter matches.
func (s *Service) resolve(rawURL string) (pagecap.Adapter, error) {
	if a := s.registry.ForURL(rawURL); a != nil {
		return a, nil
	}
	if s.fallback != nil && s.fallback.Match(rawURL) {
		return s.fallback, nil
	}
	return nil, pagecap.Errorf(pagecap.ENOTFOUND, "no adapter for %s", rawURL)
}

// open opens the page, waiting for the host's rate limit first.
func (s *Service) open(ctx context.Context, rawURL string) (pagecap.Page, error) {
	if s.limiter != nil {
		if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
			if err := s.limiter.Wait(ctx, u.Hostname()); err != nil {
				return nil, err
			}
		}
	}
	return openWithRetry(ctx, s.opener, rawURL, s.logger, s.retryDelays)
}

// CaptureContent captures the page as a clip and persists it.
func (s *Service) CaptureContent(ctx context.Context, rawURL string) (*pagecap.Clip, error) {
	adapter, err := s.resolve(rawURL)
	if err != nil {
		return nil, err
	}
	if !adapter.Capabilities().Content {
		return nil, pagecap.Errorf(pagecap.EINVALID, "platform %s cannot capture content", adapter.Info().ID)
	}

	page, err := s.open(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	clip, err := adapter.CaptureContent(ctx, page)
	if err != nil {
		return nil, err
	}
	if clip == nil {
		return nil, pagecap.Errorf(pagecap.ENOTFOUND, "no content found at %s", rawURL)
	}

	if s.clips != nil {
		if err := s.clips.CreateClip(ctx, clip); err != nil {
			return nil, err
		}
	}
	if s.seen != nil {
		s.seen.Add(rawURL)
	}

	s.logger.Info("content captured",
		"platform", clip.Platform,
		"url", rawURL,
		"title", clip.Title,
	)
	return clip, nil
}

// CaptureFrame captures a still frame of the page's primary video along with
// its playback metadata, title and author.
func (s *Service) CaptureFrame(ctx context.Context, rawURL string) (*pagecap.VideoFrame, error) {
	adapter, err := s.resolve(rawURL)
	if err != nil {
		return nil, err
	}
	if !adapter.Capabilities().Video {
		return nil, pagecap.Errorf(pagecap.EINVALID, "platform %s cannot capture video", adapter.Info().ID)
	}

	page, err := s.open(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	video, err := adapter.FindVideo(ctx, page)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, pagecap.Errorf(pagecap.ENOTFOUND, "no video found at %s", rawURL)
	}

	imageData, err := page.Screenshot(ctx, video.Selector)
	if err != nil {
		return nil, err
	}

	frame := &pagecap.VideoFrame{
		ImageData:  imageData,
		Timestamp:  video.CurrentTime,
		Duration:   video.Duration,
		VideoURL:   rawURL,
		Width:      video.Width,
		Height:     video.Height,
		CapturedAt: time.Now().UTC(),
	}
	// Title and author are best-effort.
	frame.VideoTitle, _ = adapter.VideoTitle(ctx, page)
	if au, err := adapter.AuthorInfo(ctx, page); err == nil && au != nil {
		frame.Author = *au
	}

	s.logger.Info("frame captured",
		"platform", adapter.Info().ID,
		"url", rawURL,
		"timestamp", frame.Timestamp,
	)
	return frame, nil
}

// ExtractSubtitles extracts the page's subtitles.
func (s *Service) ExtractSubtitles(ctx context.Context, rawURL string) ([]pagecap.SubtitleLine, error) {
	adapter, err := s.resolve(rawURL)
	if err != nil {
		return nil, err
	}
	extractor, ok := adapter.(pagecap.SubtitleExtractor)
	if !ok || !adapter.Capabilities().Subtitles {
		return nil, pagecap.Errorf(pagecap.EINVALID, "platform %s cannot extract subtitles", adapter.Info().ID)
	}

	page, err := s.open(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	return extractor.ExtractSubtitles(ctx, page)
}

// CaptureAll captures content from the URLs in parallel, skipping URLs the
// seen filter has recorded. Failures are logged and skipped; the returned
// clips preserve input order.
func (s *Service) CaptureAll(ctx context.Context, urls []string) ([]*pagecap.Clip, error) {
	results := make([]*pagecap.Clip, len(urls))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, u := range urls {
		if s.seen != nil && s.seen.Test(u) {
			s.logger.Debug("skipping seen url", "url", u)
			continue
		}
		g.Go(func() error {
			clip, err := s.CaptureContent(ctx, u)
			if err != nil {
				s.logger.Warn("capture failed", "url", u, "err", err)
				return nil
			}
			mu.Lock()
			results[i] = clip
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	clips := make([]*pagecap.Clip, 0, len(urls))
	for _, c := range results {
		if c != nil {
			clips = append(clips, c)
		}
	}
	return clips, nil
}
