package platform

import (
	"context"
	"net/url"
	"time"

	"github.com/fwojciec/pagecap"
)

var _ pagecap.Adapter = (*Generic)(nil)

// Generic is the fallback adapter: it matches every syntactically valid URL
// and captures article content by probing a cascade of boilerplate-removing
// extractors, keeping the first non-empty result.
//
// Match records the last-matched URL. The field is single-threaded,
// last-match-wins state, not a concurrency-safe cache.
type Generic struct {
	extractors []pagecap.Extractor
	converter  pagecap.Converter
	lastURL    string
}

// NewGeneric creates a Generic adapter. Extractors are probed in the given
// order; the converter turns the winning extractor's HTML into Markdown.
func NewGeneric(converter pagecap.Converter, extractors ...pagecap.Extractor) *Generic {
	return &Generic{extractors: extractors, converter: converter}
}

func (a *Generic) Info() pagecap.PlatformInfo {
	return pagecap.PlatformInfo{ID: "generic", Name: "Generic"}
}

func (a *Generic) Capabilities() pagecap.Capabilities {
	return pagecap.Capabilities{Content: true}
}

// Match claims any URL with a scheme and a host.
func (a *Generic) Match(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	a.lastURL = rawURL
	return true
}

// LastURL returns the URL most recently claimed by Match.
func (a *Generic) LastURL() string {
	return a.lastURL
}

func (a *Generic) AuthorInfo(ctx context.Context, p pagecap.Page) (*pagecap.AuthorInfo, error) {
	name := pagecap.FirstAttr(ctx, p, "content",
		"meta[name='author']",
		"meta[property='article:author']",
	)
	return author(name, "", ""), nil
}

func (a *Generic) VideoTitle(ctx context.Context, p pagecap.Page) (string, error) {
	return "", nil
}

func (a *Generic) FindVideo(ctx context.Context, p pagecap.Page) (*pagecap.VideoElement, error) {
	return nil, nil
}

// CaptureContent probes the extractor cascade over the page's HTML and
// converts the first non-empty result to Markdown. Returns nil when no
// extractor finds main content.
func (a *Generic) CaptureContent(ctx context.Context, p pagecap.Page) (*pagecap.Clip, error) {
	html, err := p.HTML(ctx)
	if err != nil {
		return nil, err
	}

	var result *pagecap.ExtractResult
	for _, e := range a.extractors {
		r, err := e.Extract(html)
		if err != nil || r == nil || r.ContentHTML == "" {
			continue
		}
		result = r
		break
	}
	if result == nil {
		return nil, nil
	}

	content, err := a.converter.Convert(result.ContentHTML)
	if err != nil {
		return nil, err
	}

	clip := &pagecap.Clip{
		Platform:   a.Info().ID,
		URL:        p.URL(),
		Title:      result.Title,
		Content:    content,
		Author:     pagecap.AuthorInfo{Name: result.Author},
		Tags:       pagecap.MergeTags(result.Tags, pagecap.Hashtags(content)),
		CapturedAt: time.Now(),
	}
	if result.Image != "" {
		clip.Images = []string{result.Image}
	}
	if clip.Title == "" {
		clip.Title = pagecap.FirstText(ctx, p, "title", "h1")
	}
	return clip, nil
}
