package mock

import (
	"context"

	"github.com/fwojciec/pagecap"
)

var _ pagecap.Adapter = (*Adapter)(nil)

// Adapter is a mock implementation of pagecap.Adapter.
type Adapter struct {
	InfoFn           func() pagecap.PlatformInfo
	CapabilitiesFn   func() pagecap.Capabilities
	MatchFn          func(rawURL string) bool
	AuthorInfoFn     func(ctx context.Context, p pagecap.Page) (*pagecap.AuthorInfo, error)
	VideoTitleFn     func(ctx context.Context, p pagecap.Page) (string, error)
	FindVideoFn      func(ctx context.Context, p pagecap.Page) (*pagecap.VideoElement, error)
	CaptureContentFn func(ctx context.Context, p pagecap.Page) (*pagecap.Clip, error)
}

func (a *Adapter) Info() pagecap.PlatformInfo {
	return a.InfoFn()
}

func (a *Adapter) Capabilities() pagecap.Capabilities {
	if a.CapabilitiesFn != nil {
		return a.CapabilitiesFn()
	}
	return pagecap.Capabilities{}
}

func (a *Adapter) Match(rawURL string) bool {
	return a.MatchFn(rawURL)
}

func (a *Adapter) AuthorInfo(ctx context.Context, p pagecap.Page) (*pagecap.AuthorInfo, error) {
	if a.AuthorInfoFn != nil {
		return a.AuthorInfoFn(ctx, p)
	}
	return nil, nil
}

func (a *Adapter) VideoTitle(ctx context.Context, p pagecap.Page) (string, error) {
	if a.VideoTitleFn != nil {
		return a.VideoTitleFn(ctx, p)
	}
	return "", nil
}

func (a *Adapter) FindVideo(ctx context.Context, p pagecap.Page) (*pagecap.VideoElement, error) {
	if a.FindVideoFn != nil {
		return a.FindVideoFn(ctx, p)
	}
	return nil, nil
}

func (a *Adapter) CaptureContent(ctx context.Context, p pagecap.Page) (*pagecap.Clip, error) {
	if a.CaptureContentFn != nil {
		return a.CaptureContentFn(ctx, p)
	}
	return nil, nil
}

var _ pagecap.SubtitleExtractor = (*SubtitleExtractor)(nil)

// SubtitleExtractor is a mock implementation of pagecap.SubtitleExtractor.
type SubtitleExtractor struct {
	ExtractSubtitlesFn func(ctx context.Context, p pagecap.Page) ([]pagecap.SubtitleLine, error)
}

func (e *SubtitleExtractor) ExtractSubtitles(ctx context.Context, p pagecap.Page) ([]pagecap.SubtitleLine, error) {
	return e.ExtractSubtitlesFn(ctx, p)
}
