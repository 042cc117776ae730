package subtitle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/pagecap"
)

// Bilibili API endpoints. The player endpoint is the only documented-by-use
// source of subtitle track metadata.
const (
	bilibiliViewAPI   = "https://api.bilibili.com/x/web-interface/view"
	bilibiliPlayerAPI = "https://api.bilibili.com/x/player/v2"
)

var (
	bvidRE = regexp.MustCompile(`(BV[0-9A-Za-z]{10})`)
	avidRE = regexp.MustCompile(`(?i)\bav(\d+)\b`)
)

// Track is one selectable subtitle stream, as returned by the player API.
type Track struct {
	URL    string `json:"subtitle_url"`
	Lan    string `json:"lan"`
	LanDoc string `json:"lan_doc"`
}

// Ensure BilibiliAPI implements Strategy at compile time.
var _ Strategy = (*BilibiliAPI)(nil)

// BilibiliAPI is the API-first subtitle strategy for Bilibili video pages:
// identifier resolution, track metadata fetch, deterministic track selection,
// payload fetch and parsing. It is stateless and idempotent.
//
// The Fetcher is expected to route payload requests for hosts that reject
// in-page credentialed fetches through the cross-origin proxy; the strategy
// itself treats every fetch identically.
type BilibiliAPI struct {
	Fetcher pagecap.Fetcher
	Limiter pagecap.Limiter // optional
}

// Name returns the strategy's identifier.
func (s *BilibiliAPI) Name() string {
	return "bilibili-api"
}

// Extract runs the API path. Steps are strictly sequential; each depends on
// the previous result.
func (s *BilibiliAPI) Extract(ctx context.Context, p pagecap.Page, trace *Trace) ([]pagecap.SubtitleLine, error) {
	pageURL := p.URL()

	aid, cid, err := s.resolveIdentifiers(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	trace.Addf("bilibili-api: resolved aid=%d cid=%d", aid, cid)

	tracks, err := s.fetchTracks(ctx, pageURL, aid, cid)
	if err != nil {
		return nil, err
	}
	trace.Addf("bilibili-api: %d subtitle tracks", len(tracks))
	if len(tracks) == 0 {
		return nil, &NoSubtitleTrackError{}
	}

	locale := pageLocale(ctx, p)
	track := SelectTrack(tracks, locale)
	trace.Addf("bilibili-api: selected track lan=%s (locale=%q)", track.Lan, locale)

	trackURL, err := NormalizeURL(track.URL, pageURL)
	if err != nil {
		return nil, err
	}

	if s.Limiter != nil {
		if err := waitHost(ctx, s.Limiter, trackURL); err != nil {
			return nil, err
		}
	}
	payload, err := s.Fetcher.Fetch(ctx, trackURL, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching subtitle payload: %w", err)
	}
	trace.Addf("bilibili-api: payload %d bytes", len(payload))

	lines, err := ParsePayload(payload)
	if err != nil {
		return nil, err
	}
	trace.Addf("bilibili-api: parsed %d lines", len(lines))
	return lines, nil
}

// resolveIdentifiers derives the numeric video and part IDs from the page
// URL. A canonical content ID (bvid) embedded in the path is preferred; a
// numeric ID (avid) is the fallback. Either is resolved to aid+cid via the
// metadata API.
func (s *BilibiliAPI) resolveIdentifiers(ctx context.Context, pageURL string) (aid, cid int64, err error) {
	query := ""
	if m := bvidRE.FindStringSubmatch(pageURL); m != nil {
		query = "bvid=" + m[1]
	} else if m := avidRE.FindStringSubmatch(pageURL); m != nil {
		query = "aid=" + m[1]
	} else {
		return 0, 0, &IdentifierResolutionError{URL: pageURL}
	}

	var resp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Data    struct {
			Aid int64 `json:"aid"`
			Cid int64 `json:"cid"`
		} `json:"data"`
	}
	if err := s.fetchJSON(ctx, bilibiliViewAPI+"?"+query, pageURL, &resp); err != nil {
		return 0, 0, fmt.Errorf("resolving identifiers: %w", err)
	}
	if resp.Code != 0 {
		return 0, 0, &APIError{Code: resp.Code, Message: apiMessage(resp.Message, resp.Msg)}
	}
	if resp.Data.Aid == 0 || resp.Data.Cid == 0 {
		return 0, 0, &IdentifierResolutionError{URL: pageURL}
	}
	return resp.Data.Aid, resp.Data.Cid, nil
}

// fetchTracks retrieves subtitle track metadata for the identifiers.
func (s *BilibiliAPI) fetchTracks(ctx context.Context, pageURL string, aid, cid int64) ([]Track, error) {
	var resp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Data    struct {
			Subtitle struct {
				Subtitles []Track `json:"subtitles"`
			} `json:"subtitle"`
		} `json:"data"`
	}
	u := fmt.Sprintf("%s?aid=%d&cid=%d", bilibiliPlayerAPI, aid, cid)
	if err := s.fetchJSON(ctx, u, pageURL, &resp); err != nil {
		return nil, fmt.Errorf("fetching track metadata: %w", err)
	}
	if resp.Code != 0 {
		return nil, &APIError{Code: resp.Code, Message: apiMessage(resp.Message, resp.Msg)}
	}
	return resp.Data.Subtitle.Subtitles, nil
}

func (s *BilibiliAPI) fetchJSON(ctx context.Context, u, referer string, v any) error {
	if s.Limiter != nil {
		if err := waitHost(ctx, s.Limiter, u); err != nil {
			return err
		}
	}
	data, err := s.Fetcher.Fetch(ctx, u, referer)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func waitHost(ctx context.Context, l pagecap.Limiter, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return l.Wait(ctx, u.Host)
}

func apiMessage(message, msg string) string {
	if message != "" {
		return message
	}
	return msg
}

// bilibiliFallbackLans is the fixed language preference tail tried after the
// page locale: region-specific first, then generic, then English.
var bilibiliFallbackLans = []string{"zh-CN", "zh-Hans", "zh", "en"}

// SelectTrack picks the preferred track by a deterministic language
// tie-break: the first match, in order, among the page locale and the fixed
// fallback list. When nothing matches any preference the first available
// track wins. The result depends only on the inputs, never on list order
// among equal preferences beyond "first in list".
func SelectTrack(tracks []Track, locale string) Track {
	prefs := make([]string, 0, 1+len(bilibiliFallbackLans))
	if locale != "" {
		prefs = append(prefs, locale)
	}
	prefs = append(prefs, bilibiliFallbackLans...)

	for _, pref := range prefs {
		for _, t := range tracks {
			if strings.EqualFold(t.Lan, pref) {
				return t
			}
		}
	}
	return tracks[0]
}

// NormalizeURL turns a track URL into an absolute https URL: protocol-
// relative URLs get https, relative URLs resolve against the page origin.
// Normalization is idempotent.
func NormalizeURL(raw, pageURL string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &InvalidSubtitleURLError{Raw: raw}
	}
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", &InvalidSubtitleURLError{Raw: raw}
	}
	if u.IsAbs() {
		return u.String(), nil
	}

	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return "", &InvalidSubtitleURLError{Raw: raw}
	}
	return base.ResolveReference(u).String(), nil
}

// payloadItem accepts both field spellings seen in the wild: from/to and
// start/end, content and text.
type payloadItem struct {
	From    *float64 `json:"from"`
	To      *float64 `json:"to"`
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
	Content string   `json:"content"`
	Text    string   `json:"text"`
}

// ParsePayload parses a subtitle payload. Three response shapes are
// accepted, in priority order: a top-level body array, data.body, and
// data.subtitle.body. Items with empty trimmed text are dropped. Zero
// parsed items is a failure, not an empty success.
func ParsePayload(data []byte) ([]pagecap.SubtitleLine, error) {
	var resp struct {
		Body []payloadItem `json:"body"`
		Data struct {
			Body     []payloadItem `json:"body"`
			Subtitle struct {
				Body []payloadItem `json:"body"`
			} `json:"subtitle"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	body := resp.Body
	if len(body) == 0 {
		body = resp.Data.Body
	}
	if len(body) == 0 {
		body = resp.Data.Subtitle.Body
	}

	var lines []pagecap.SubtitleLine
	for _, item := range body {
		text := strings.TrimSpace(item.Content)
		if text == "" {
			text = strings.TrimSpace(item.Text)
		}
		if text == "" {
			continue
		}

		start := value(item.From, item.Start)
		end := value(item.To, item.End)
		lines = append(lines, pagecap.SubtitleLine{
			Start:    start,
			Duration: max(end-start, 0),
			Text:     text,
		})
	}
	if len(lines) == 0 {
		return nil, &EmptyPayloadError{}
	}
	return lines, nil
}

func value(primary, secondary *float64) float64 {
	if primary != nil {
		return *primary
	}
	if secondary != nil {
		return *secondary
	}
	return 0
}
