package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pagecap"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagecap.ClipService = (*ClipService)(nil)

// ClipService implements pagecap.ClipService using SQLite.
type ClipService struct {
	db *DB
}

// NewClipService creates a new ClipService.
func NewClipService(db *DB) *ClipService {
	return &ClipService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateClip persists a new clip, assigning ID, content hash and capture
// timestamp.
func (s *ClipService) CreateClip(ctx context.Context, clip *pagecap.Clip) error {
	if err := clip.Validate(); err != nil {
		return err
	}

	clip.ID = uuid.New().String()
	clip.ContentHash = hashContent(clip.Content)
	if clip.CapturedAt.IsZero() {
		clip.CapturedAt = time.Now().UTC()
	}

	images, err := json.Marshal(emptyAsList(clip.Images))
	if err != nil {
		return err
	}
	tags, err := json.Marshal(emptyAsList(clip.Tags))
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO clips (id, platform, url, title, content, images, author_name, author_avatar, author_profile_url, tags, content_hash, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, clip.ID, clip.Platform, clip.URL, clip.Title, clip.Content, string(images),
		clip.Author.Name, clip.Author.Avatar, clip.Author.ProfileURL, string(tags),
		clip.ContentHash, clip.CapturedAt.Format(time.RFC3339))

	return err
}

// FindClipByID retrieves a clip by ID.
func (s *ClipService) FindClipByID(ctx context.Context, id string) (*pagecap.Clip, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, platform, url, title, content, images, author_name, author_avatar, author_profile_url, tags, content_hash, captured_at
		FROM clips
		WHERE id = ?
	`, id)

	clip, err := scanClip(row.Scan)
	if err == sql.ErrNoRows {
		return nil, pagecap.Errorf(pagecap.ENOTFOUND, "clip not found")
	}
	if err != nil {
		return nil, err
	}
	return clip, nil
}

// FindClips retrieves clips matching the filter, newest first.
func (s *ClipService) FindClips(ctx context.Context, filter pagecap.ClipFilter) ([]*pagecap.Clip, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, platform, url, title, content, images, author_name, author_avatar, author_profile_url, tags, content_hash, captured_at FROM clips WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Platform != nil {
		query.WriteString(" AND platform = ?")
		args = append(args, *filter.Platform)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY captured_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clips []*pagecap.Clip
	for rows.Next() {
		clip, err := scanClip(rows.Scan)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}

	return clips, rows.Err()
}

// DeleteClip permanently removes a clip.
func (s *ClipService) DeleteClip(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM clips WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return pagecap.Errorf(pagecap.ENOTFOUND, "clip not found")
	}

	return nil
}

// scanClip scans one clips row using the given Scan function.
func scanClip(scan func(dest ...any) error) (*pagecap.Clip, error) {
	var clip pagecap.Clip
	var images, tags, capturedAt string

	if err := scan(&clip.ID, &clip.Platform, &clip.URL, &clip.Title, &clip.Content, &images,
		&clip.Author.Name, &clip.Author.Avatar, &clip.Author.ProfileURL, &tags,
		&clip.ContentHash, &capturedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(images), &clip.Images); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &clip.Tags); err != nil {
		return nil, err
	}
	if len(clip.Images) == 0 {
		clip.Images = nil
	}
	if len(clip.Tags) == 0 {
		clip.Tags = nil
	}

	var err error
	clip.CapturedAt, err = parseRFC3339(capturedAt, "captured_at")
	if err != nil {
		return nil, err
	}
	return &clip, nil
}

// emptyAsList keeps nil slices serializing as [] rather than null.
func emptyAsList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
