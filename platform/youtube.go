package platform

import (
	"context"
	"log/slog"

	"github.com/fwojciec/pagecap"
	"github.com/fwojciec/pagecap/subtitle"
)

var (
	youtubeTitleSelectors = []string{
		"h1.ytd-watch-metadata yt-formatted-string",
		"h1.ytd-video-primary-info-renderer",
		"#title h1",
	}
	youtubeAuthorNameSelectors = []string{
		"#owner #channel-name a",
		"ytd-channel-name a",
		"#owner-name a",
	}
	youtubeAuthorAvatarSelectors = []string{
		"#owner #avatar img",
		"#avatar img",
	}
	youtubeAuthorLinkSelectors = []string{
		"#owner #channel-name a",
		"ytd-channel-name a",
	}
	youtubeVideoSelectors = []string{
		"video.html5-main-video",
		"#movie_player video",
		"video",
	}
)

var (
	_ pagecap.Adapter           = (*YouTube)(nil)
	_ pagecap.SubtitleExtractor = (*YouTube)(nil)
)

// YouTube captures video frames and subtitles from YouTube watch pages.
// Subtitles come from the timedtext API; there is no DOM fallback because
// the player exposes no scrapeable transcript panel structure worth pinning.
type YouTube struct {
	engine *subtitle.Engine
}

func NewYouTube(logger *slog.Logger, fetcher pagecap.Fetcher, limiter pagecap.Limiter) *YouTube {
	return &YouTube{
		engine: subtitle.NewEngine(logger,
			&subtitle.YouTubeAPI{Fetcher: fetcher, Limiter: limiter},
		),
	}
}

func (a *YouTube) Info() pagecap.PlatformInfo {
	return pagecap.PlatformInfo{
		ID:      "youtube",
		Name:    "YouTube",
		Favicon: "https://www.youtube.com/favicon.ico",
	}
}

func (a *YouTube) Capabilities() pagecap.Capabilities {
	return pagecap.Capabilities{Video: true, Subtitles: true}
}

func (a *YouTube) Match(rawURL string) bool {
	return matchHost(rawURL, "youtube.com", "youtu.be")
}

func (a *YouTube) AuthorInfo(ctx context.Context, p pagecap.Page) (*pagecap.AuthorInfo, error) {
	return author(
		pagecap.FirstText(ctx, p, youtubeAuthorNameSelectors...),
		pagecap.FirstAttr(ctx, p, "src", youtubeAuthorAvatarSelectors...),
		pagecap.FirstAttr(ctx, p, "href", youtubeAuthorLinkSelectors...),
	), nil
}

func (a *YouTube) VideoTitle(ctx context.Context, p pagecap.Page) (string, error) {
	return pagecap.FirstText(ctx, p, youtubeTitleSelectors...), nil
}

func (a *YouTube) FindVideo(ctx context.Context, p pagecap.Page) (*pagecap.VideoElement, error) {
	return findVideo(ctx, p, youtubeVideoSelectors...)
}

func (a *YouTube) CaptureContent(ctx context.Context, p pagecap.Page) (*pagecap.Clip, error) {
	return nil, nil
}

func (a *YouTube) ExtractSubtitles(ctx context.Context, p pagecap.Page) ([]pagecap.SubtitleLine, error) {
	return a.engine.Extract(ctx, p)
}
