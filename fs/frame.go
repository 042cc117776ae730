// Package fs persists captured video frames to the local filesystem.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/pagecap"
)

// FrameStore writes video frames to a directory: one PNG per frame plus a
// JSON metadata sidecar. Writes are atomic (temp file + rename) so a crash
// never leaves a partial frame behind.
type FrameStore struct {
	dir string
}

// NewFrameStore creates a FrameStore rooted at dir, creating it if needed.
func NewFrameStore(dir string) (*FrameStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FrameStore{dir: dir}, nil
}

// Save writes the frame and its sidecar, returning the PNG path.
func (s *FrameStore) Save(frame *pagecap.VideoFrame) (string, error) {
	base := fmt.Sprintf("frame-%s-%04.0fs", frame.CapturedAt.Format("20060102-150405"), frame.Timestamp)

	pngPath := filepath.Join(s.dir, base+".png")
	if err := writeAtomic(pngPath, frame.ImageData); err != nil {
		return "", err
	}

	meta, err := json.MarshalIndent(frame, "", "  ")
	if err != nil {
		return "", err
	}
	if err := writeAtomic(filepath.Join(s.dir, base+".json"), meta); err != nil {
		return "", err
	}

	return pngPath, nil
}

// writeAtomic writes data to path via a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
