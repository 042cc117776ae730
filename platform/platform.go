// Package platform implements the capture adapters for the supported
// platforms: Bilibili, YouTube, Xiaohongshu and a Generic fallback. Each
// adapter pairs its extraction algorithms with a pagecap.Page accessor so
// the algorithms stay testable against static HTML.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/pagecap"
)

// matchHost reports whether the URL's hostname contains any of the given
// host fragments. Malformed URLs never match.
func matchHost(rawURL string, hosts ...string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, h := range hosts {
		if strings.Contains(host, h) {
			return true
		}
	}
	return false
}

const videoMetaJS = `JSON.stringify((v => v ? {currentTime: v.currentTime || 0, duration: v.duration || 0, width: v.videoWidth || 0, height: v.videoHeight || 0} : null)(document.querySelector(%q)))`

// findVideo probes the selector cascade for a video element and annotates it
// with playback metadata when the page can evaluate script. Metadata is
// best-effort: a static page yields a zero-valued element with the matched
// selector.
func findVideo(ctx context.Context, p pagecap.Page, selectors ...string) (*pagecap.VideoElement, error) {
	for _, sel := range selectors {
		if _, err := p.Element(ctx, sel); err != nil {
			continue
		}
		v := &pagecap.VideoElement{Selector: sel}
		out, err := p.Eval(ctx, fmt.Sprintf(videoMetaJS, sel))
		if err != nil {
			return v, nil
		}
		var meta struct {
			CurrentTime float64 `json:"currentTime"`
			Duration    float64 `json:"duration"`
			Width       int     `json:"width"`
			Height      int     `json:"height"`
		}
		if err := json.Unmarshal([]byte(out), &meta); err != nil {
			return v, nil
		}
		v.CurrentTime = meta.CurrentTime
		v.Duration = meta.Duration
		v.Width = meta.Width
		v.Height = meta.Height
		return v, nil
	}
	return nil, nil
}

// author assembles an AuthorInfo from cascade results, returning nil when no
// name was found.
func author(name, avatar, profileURL string) *pagecap.AuthorInfo {
	if name == "" {
		return nil
	}
	return &pagecap.AuthorInfo{Name: name, Avatar: avatar, ProfileURL: profileURL}
}
