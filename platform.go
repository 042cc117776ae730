package pagecap

import "context"

// PlatformInfo identifies a supported platform. The ID is the identity key
// and is immutable once the adapter is constructed.
type PlatformInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Favicon string `json:"favicon"`
}

// Capabilities declares what an adapter supports. Capabilities are fixed per
// adapter instance: they are declared, never detected at runtime.
type Capabilities struct {
	Content   bool `json:"content"`
	Video     bool `json:"video"`
	Subtitles bool `json:"subtitles"`
}

// AuthorInfo holds best-effort author metadata. Optional fields are empty
// when the page doesn't expose them.
type AuthorInfo struct {
	Name       string `json:"name"`
	Avatar     string `json:"avatar,omitempty"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

// VideoElement describes a video element discovered on a page.
// Metadata fields are zero when the page accessor cannot evaluate script.
type VideoElement struct {
	Selector    string  `json:"selector"`
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
}

// Adapter is the platform capture contract. Extraction methods degrade
// field-by-field: a selector miss yields a nil/empty result, not an error.
// Errors are reserved for page accessor failures.
type Adapter interface {
	// Info returns the platform's identity.
	Info() PlatformInfo

	// Capabilities returns the adapter's declared capabilities.
	Capabilities() Capabilities

	// Match reports whether the adapter claims the URL. It must not panic
	// or return an error for malformed URLs; those simply don't match.
	Match(rawURL string) bool

	// AuthorInfo extracts author metadata from the page.
	// Returns (nil, nil) when no author can be found.
	AuthorInfo(ctx context.Context, p Page) (*AuthorInfo, error)

	// VideoTitle extracts the title of the page's primary video.
	// Returns ("", nil) when no title can be found.
	VideoTitle(ctx context.Context, p Page) (string, error)

	// FindVideo discovers the page's primary video element.
	// Returns (nil, nil) when the page has no video.
	FindVideo(ctx context.Context, p Page) (*VideoElement, error)

	// CaptureContent captures the page as a Clip.
	// Returns (nil, nil) when the adapter lacks the content capability.
	CaptureContent(ctx context.Context, p Page) (*Clip, error)
}

// SubtitleExtractor is implemented by adapters that can extract subtitles.
// Unlike the other capture methods it returns an error on total failure:
// the host boundary converts it into its own error envelope.
type SubtitleExtractor interface {
	ExtractSubtitles(ctx context.Context, p Page) ([]SubtitleLine, error)
}
