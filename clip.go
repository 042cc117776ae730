package pagecap

import (
	"context"
	"time"
)

// Clip represents a captured article or post.
type Clip struct {
	ID          string     `json:"id"`
	Platform    string     `json:"platform"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Content     string     `json:"content"` // Markdown
	Images      []string   `json:"images"`  // ordered, deduplicated by value
	Author      AuthorInfo `json:"author"`
	Tags        []string   `json:"tags"` // deduplicated, case-sensitive
	ContentHash string     `json:"contentHash"`
	CapturedAt  time.Time  `json:"capturedAt"`
}

// Validate returns an error if the clip contains invalid fields.
func (c *Clip) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "clip URL required")
	}
	if c.Platform == "" {
		return Errorf(EINVALID, "clip platform required")
	}
	return nil
}

// VideoFrame represents a captured still frame of a playing video.
type VideoFrame struct {
	ImageData  []byte     `json:"-"` // encoded PNG
	Timestamp  float64    `json:"timestamp"`
	Duration   float64    `json:"duration"`
	VideoURL   string     `json:"videoUrl"`
	VideoTitle string     `json:"videoTitle"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Author     AuthorInfo `json:"author"`
	CapturedAt time.Time  `json:"capturedAt"`
}

// ClipService represents a service for managing captured clips.
type ClipService interface {
	// CreateClip persists a new clip, assigning ID, hash and timestamp.
	CreateClip(ctx context.Context, clip *Clip) error

	// FindClipByID retrieves a clip by ID.
	// Returns ENOTFOUND if the clip does not exist.
	FindClipByID(ctx context.Context, id string) (*Clip, error)

	// FindClips retrieves clips matching the filter.
	FindClips(ctx context.Context, filter ClipFilter) ([]*Clip, error)

	// DeleteClip permanently removes a clip.
	// Returns ENOTFOUND if the clip does not exist.
	DeleteClip(ctx context.Context, id string) error
}

// ClipFilter represents a filter for FindClips.
type ClipFilter struct {
	ID       *string `json:"id"`
	Platform *string `json:"platform"`
	URL      *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
