package fs_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/pagecap"
	"github.com/fwojciec/pagecap/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes png and metadata sidecar", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store, err := fs.NewFrameStore(dir)
		require.NoError(t, err)

		frame := &pagecap.VideoFrame{
			ImageData:  []byte("png-bytes"),
			Timestamp:  42.5,
			Duration:   300,
			VideoURL:   "https://www.bilibili.com/video/BV1",
			VideoTitle: "a title",
			CapturedAt: time.Date(2026, 8, 23, 15, 4, 5, 0, time.UTC),
		}

		pngPath, err := store.Save(frame)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(pngPath, ".png"))

		data, err := os.ReadFile(pngPath)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)

		metaPath := strings.TrimSuffix(pngPath, ".png") + ".json"
		meta, err := os.ReadFile(metaPath)
		require.NoError(t, err)

		var got pagecap.VideoFrame
		require.NoError(t, json.Unmarshal(meta, &got))
		assert.Equal(t, frame.VideoURL, got.VideoURL)
		assert.Equal(t, frame.Timestamp, got.Timestamp)
		assert.Nil(t, got.ImageData, "image bytes stay out of the sidecar")
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store, err := fs.NewFrameStore(dir)
		require.NoError(t, err)

		_, err = store.Save(&pagecap.VideoFrame{ImageData: []byte("x"), CapturedAt: time.Now()})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.Contains(e.Name(), ".tmp-"), "unexpected temp file %s", e.Name())
		}
		assert.Len(t, entries, 2)
	})
}
