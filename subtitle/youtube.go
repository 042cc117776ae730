package subtitle

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/pagecap"
)

const timedtextAPI = "https://www.youtube.com/api/timedtext"

// TimedTextTrack is one caption track from the timedtext listing.
type TimedTextTrack struct {
	LangCode string
	Name     string
}

// Ensure YouTubeAPI implements Strategy at compile time.
var _ Strategy = (*YouTubeAPI)(nil)

// YouTubeAPI extracts subtitles through the timedtext endpoint: list the
// available caption tracks, pick one by language preference, fetch and parse
// its XML payload. Same trace and error discipline as the Bilibili path.
type YouTubeAPI struct {
	Fetcher pagecap.Fetcher
	Limiter pagecap.Limiter // optional
}

// Name returns the strategy's identifier.
func (s *YouTubeAPI) Name() string {
	return "youtube-timedtext"
}

// Extract runs the timedtext path.
func (s *YouTubeAPI) Extract(ctx context.Context, p pagecap.Page, trace *Trace) ([]pagecap.SubtitleLine, error) {
	pageURL := p.URL()

	videoID, ok := VideoID(pageURL)
	if !ok {
		return nil, &IdentifierResolutionError{URL: pageURL}
	}
	trace.Addf("youtube-timedtext: video id %s", videoID)

	listing, err := s.fetch(ctx, timedtextAPI+"?type=list&v="+url.QueryEscape(videoID), pageURL)
	if err != nil {
		return nil, fmt.Errorf("listing tracks: %w", err)
	}
	tracks, err := ParseTrackList(listing)
	if err != nil {
		return nil, err
	}
	trace.Addf("youtube-timedtext: %d tracks", len(tracks))
	if len(tracks) == 0 {
		return nil, &NoSubtitleTrackError{}
	}

	locale := pageLocale(ctx, p)
	track := SelectTimedTextTrack(tracks, locale)
	trace.Addf("youtube-timedtext: selected lang=%s (locale=%q)", track.LangCode, locale)

	q := url.Values{"v": {videoID}, "lang": {track.LangCode}}
	if track.Name != "" {
		q.Set("name", track.Name)
	}
	payload, err := s.fetch(ctx, timedtextAPI+"?"+q.Encode(), pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching payload: %w", err)
	}
	trace.Addf("youtube-timedtext: payload %d bytes", len(payload))

	lines, err := ParseTimedText(payload)
	if err != nil {
		return nil, err
	}
	trace.Addf("youtube-timedtext: parsed %d lines", len(lines))
	return lines, nil
}

func (s *YouTubeAPI) fetch(ctx context.Context, u, referer string) ([]byte, error) {
	if s.Limiter != nil {
		if err := waitHost(ctx, s.Limiter, u); err != nil {
			return nil, err
		}
	}
	return s.Fetcher.Fetch(ctx, u, referer)
}

// VideoID extracts the YouTube video ID from a watch, share, shorts or
// embed URL.
func VideoID(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if v := u.Query().Get("v"); v != "" {
		return v, true
	}
	host := strings.ToLower(u.Hostname())
	path := strings.Trim(u.Path, "/")
	if host == "youtu.be" && path != "" {
		return strings.SplitN(path, "/", 2)[0], true
	}
	for _, prefix := range []string{"shorts/", "embed/", "live/"} {
		if rest, ok := strings.CutPrefix(path, prefix); ok && rest != "" {
			return strings.SplitN(rest, "/", 2)[0], true
		}
	}
	return "", false
}

// ParseTrackList parses a timedtext track listing document.
func ParseTrackList(data []byte) ([]TimedTextTrack, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("decoding track list: %w", err)
	}
	var tracks []TimedTextTrack
	for _, el := range doc.FindElements("//track") {
		code := el.SelectAttrValue("lang_code", "")
		if code == "" {
			continue
		}
		tracks = append(tracks, TimedTextTrack{
			LangCode: code,
			Name:     el.SelectAttrValue("name", ""),
		})
	}
	return tracks, nil
}

// SelectTimedTextTrack picks a track preferring an exact locale match, then
// a language-only match (en-US matches en), then English, then the first
// available track. Deterministic for identical inputs.
func SelectTimedTextTrack(tracks []TimedTextTrack, locale string) TimedTextTrack {
	lang := locale
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	for _, pref := range []string{locale, lang, "en"} {
		if pref == "" {
			continue
		}
		for _, t := range tracks {
			if strings.EqualFold(t.LangCode, pref) {
				return t
			}
		}
	}
	return tracks[0]
}

// ParseTimedText parses a timedtext payload: <text start dur> elements with
// escaped text content. Empty lines are dropped; zero lines is a failure.
func ParseTimedText(data []byte) ([]pagecap.SubtitleLine, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	var lines []pagecap.SubtitleLine
	for _, el := range doc.FindElements("//text") {
		text := strings.TrimSpace(el.Text())
		if text == "" {
			continue
		}
		start, _ := strconv.ParseFloat(el.SelectAttrValue("start", "0"), 64)
		dur, _ := strconv.ParseFloat(el.SelectAttrValue("dur", "0"), 64)
		lines = append(lines, pagecap.SubtitleLine{
			Start:    start,
			Duration: max(dur, 0),
			Text:     text,
		})
	}
	if len(lines) == 0 {
		return nil, &EmptyPayloadError{}
	}
	return lines, nil
}
