package platform

import (
	"context"
	"log/slog"

	"github.com/fwojciec/pagecap"
	"github.com/fwojciec/pagecap/subtitle"
)

// Bilibili selector cascades, most specific first.
var (
	bilibiliTitleSelectors = []string{
		"h1.video-title",
		".video-info-title h1",
		"h1[title]",
	}
	bilibiliAuthorNameSelectors = []string{
		".up-info .up-name",
		".up-info-container .up-name",
		"a.up-name",
	}
	bilibiliAuthorAvatarSelectors = []string{
		".up-info .bili-avatar img",
		".up-avatar img",
	}
	bilibiliAuthorLinkSelectors = []string{
		".up-info a.up-name",
		"a.up-name",
	}
	bilibiliVideoSelectors = []string{
		".bpx-player-video-wrap video",
		"#bilibili-player video",
		"video",
	}
)

// Ensure Bilibili implements the capture contracts at compile time.
var (
	_ pagecap.Adapter           = (*Bilibili)(nil)
	_ pagecap.SubtitleExtractor = (*Bilibili)(nil)
)

// Bilibili captures video frames and subtitles from bilibili.com video pages.
// Subtitle extraction runs the API-first engine with the DOM panel fallback.
type Bilibili struct {
	engine *subtitle.Engine
}

// NewBilibili creates a Bilibili adapter. The fetcher performs the subtitle
// API calls; the limiter is optional.
func NewBilibili(logger *slog.Logger, fetcher pagecap.Fetcher, limiter pagecap.Limiter) *Bilibili {
	return &Bilibili{
		engine: subtitle.NewEngine(logger,
			&subtitle.BilibiliAPI{Fetcher: fetcher, Limiter: limiter},
			&subtitle.BilibiliDOM{},
		),
	}
}

func (a *Bilibili) Info() pagecap.PlatformInfo {
	return pagecap.PlatformInfo{
		ID:      "bilibili",
		Name:    "Bilibili",
		Favicon: "https://www.bilibili.com/favicon.ico",
	}
}

func (a *Bilibili) Capabilities() pagecap.Capabilities {
	return pagecap.Capabilities{Video: true, Subtitles: true}
}

func (a *Bilibili) Match(rawURL string) bool {
	return matchHost(rawURL, "bilibili.com", "b23.tv")
}

func (a *Bilibili) AuthorInfo(ctx context.Context, p pagecap.Page) (*pagecap.AuthorInfo, error) {
	return author(
		pagecap.FirstText(ctx, p, bilibiliAuthorNameSelectors...),
		pagecap.FirstAttr(ctx, p, "src", bilibiliAuthorAvatarSelectors...),
		pagecap.FirstAttr(ctx, p, "href", bilibiliAuthorLinkSelectors...),
	), nil
}

func (a *Bilibili) VideoTitle(ctx context.Context, p pagecap.Page) (string, error) {
	return pagecap.FirstText(ctx, p, bilibiliTitleSelectors...), nil
}

func (a *Bilibili) FindVideo(ctx context.Context, p pagecap.Page) (*pagecap.VideoElement, error) {
	return findVideo(ctx, p, bilibiliVideoSelectors...)
}

// CaptureContent returns nil: Bilibili pages are captured as video frames and
// subtitles, not articles.
func (a *Bilibili) CaptureContent(ctx context.Context, p pagecap.Page) (*pagecap.Clip, error) {
	return nil, nil
}

func (a *Bilibili) ExtractSubtitles(ctx context.Context, p pagecap.Page) ([]pagecap.SubtitleLine, error) {
	return a.engine.Extract(ctx, p)
}
