package platform

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/pagecap"
)

var (
	xhsTitleSelectors = []string{
		"#detail-title",
		".note-content .title",
		".title",
	}
	xhsDescSelectors = []string{
		"#detail-desc",
		".note-content .desc",
		".desc",
	}
	xhsAuthorNameSelectors = []string{
		".author-wrapper .username",
		".author-container .name",
		".author .name",
	}
	xhsAuthorAvatarSelectors = []string{
		".author-wrapper img.avatar-item",
		".author-wrapper img",
		".author img",
	}
	xhsAuthorLinkSelectors = []string{
		".author-wrapper a.info",
		".author-wrapper a",
		".author a",
	}
	xhsImageGroups = [][]string{
		{".swiper-slide img.note-slider-img", ".note-slider img"},
		{".swiper-slide img"},
		{".media-container img"},
	}
	xhsTagGroups = [][]string{
		{"#detail-desc a.tag", ".note-content a.tag"},
		{"a.tag"},
	}
)

var _ pagecap.Adapter = (*XHS)(nil)

// XHS captures Xiaohongshu notes: title, description, the image carousel and
// tags. Tags merge the note's tag links with hashtags scanned out of the
// description text.
type XHS struct{}

func NewXHS() *XHS {
	return &XHS{}
}

func (a *XHS) Info() pagecap.PlatformInfo {
	return pagecap.PlatformInfo{
		ID:      "xhs",
		Name:    "Xiaohongshu",
		Favicon: "https://www.xiaohongshu.com/favicon.ico",
	}
}

func (a *XHS) Capabilities() pagecap.Capabilities {
	return pagecap.Capabilities{Content: true}
}

func (a *XHS) Match(rawURL string) bool {
	return matchHost(rawURL, "xiaohongshu.com", "xhslink.com")
}

func (a *XHS) AuthorInfo(ctx context.Context, p pagecap.Page) (*pagecap.AuthorInfo, error) {
	return author(
		pagecap.FirstText(ctx, p, xhsAuthorNameSelectors...),
		pagecap.FirstAttr(ctx, p, "src", xhsAuthorAvatarSelectors...),
		pagecap.FirstAttr(ctx, p, "href", xhsAuthorLinkSelectors...),
	), nil
}

func (a *XHS) VideoTitle(ctx context.Context, p pagecap.Page) (string, error) {
	return "", nil
}

func (a *XHS) FindVideo(ctx context.Context, p pagecap.Page) (*pagecap.VideoElement, error) {
	return nil, nil
}

// CaptureContent extracts the note field-by-field. A page that yields
// neither a title nor a description produces nil, not an error.
func (a *XHS) CaptureContent(ctx context.Context, p pagecap.Page) (*pagecap.Clip, error) {
	title := pagecap.FirstText(ctx, p, xhsTitleSelectors...)
	desc := pagecap.FirstText(ctx, p, xhsDescSelectors...)
	if title == "" && desc == "" {
		return nil, nil
	}

	// Tag links render with a leading "#"; strip it so link-sourced and
	// hashtag-sourced tags deduplicate against each other.
	linked := pagecap.GroupTexts(ctx, p, xhsTagGroups...)
	for i, t := range linked {
		linked[i] = strings.TrimPrefix(t, "#")
	}
	tags := pagecap.MergeTags(linked, pagecap.Hashtags(desc))

	clip := &pagecap.Clip{
		Platform:   a.Info().ID,
		URL:        p.URL(),
		Title:      title,
		Content:    desc,
		Images:     pagecap.GroupAttrs(ctx, p, "src", xhsImageGroups...),
		Tags:       tags,
		CapturedAt: time.Now(),
	}
	if au, _ := a.AuthorInfo(ctx, p); au != nil {
		clip.Author = *au
	}
	return clip, nil
}
