package platform_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pagecap"
	"github.com/fwojciec/pagecap/goquery"
	"github.com/fwojciec/pagecap/mock"
	"github.com/fwojciec/pagecap/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	bilibili := platform.NewBilibili(nil, nil, nil)
	youtube := platform.NewYouTube(nil, nil, nil)
	xhs := platform.NewXHS()

	tests := []struct {
		adapter pagecap.Adapter
		rawURL  string
		want    bool
	}{
		{bilibili, "https://www.bilibili.com/video/BV1xx411c7mD", true},
		{bilibili, "https://b23.tv/abc", true},
		{bilibili, "https://www.youtube.com/watch?v=x", false},
		{bilibili, "not a url ://", false},
		{youtube, "https://www.youtube.com/watch?v=x", true},
		{youtube, "https://youtu.be/x", true},
		{youtube, "https://www.bilibili.com/video/BV1xx411c7mD", false},
		{xhs, "https://www.xiaohongshu.com/explore/abc", true},
		{xhs, "https://xhslink.com/abc", true},
		{xhs, "https://example.com/", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.adapter.Match(tt.rawURL), "%s vs %s", tt.adapter.Info().ID, tt.rawURL)
	}
}

func TestFindVideo(t *testing.T) {
	t.Parallel()

	t.Run("annotates the matched selector with playback metadata", func(t *testing.T) {
		t.Parallel()

		page := &mock.Page{
			ElementFn: func(ctx context.Context, sel string) (pagecap.Element, error) {
				if sel == "#movie_player video" {
					return &mock.Element{}, nil
				}
				return nil, pagecap.Errorf(pagecap.ENOTFOUND, "no element matches %q", sel)
			},
			EvalFn: func(ctx context.Context, js string) (string, error) {
				return `{"currentTime":12.5,"duration":300,"width":1920,"height":1080}`, nil
			},
		}

		got, err := platform.NewYouTube(nil, nil, nil).FindVideo(context.Background(), page)
		require.NoError(t, err)
		assert.Equal(t, &pagecap.VideoElement{
			Selector:    "#movie_player video",
			CurrentTime: 12.5,
			Duration:    300,
			Width:       1920,
			Height:      1080,
		}, got)
	})

	t.Run("static page yields selector without metadata", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewPage(`<html><body><video src="x.mp4"></video></body></html>`, "https://www.bilibili.com/video/BV1xx411c7mD")
		require.NoError(t, err)

		got, err := platform.NewBilibili(nil, nil, nil).FindVideo(context.Background(), p)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "video", got.Selector)
		assert.Zero(t, got.Duration)
	})

	t.Run("no video yields nil", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewPage(`<html><body><p>text only</p></body></html>`, "https://www.bilibili.com/video/BV1xx411c7mD")
		require.NoError(t, err)

		got, err := platform.NewBilibili(nil, nil, nil).FindVideo(context.Background(), p)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestBilibili_Extraction(t *testing.T) {
	t.Parallel()

	const html = `<html><body>
		<h1 class="video-title">【4K】Test Video</h1>
		<div class="up-info">
			<div class="bili-avatar"><img src="https://i0.hdslb.com/face.jpg"></div>
			<a class="up-name" href="https://space.bilibili.com/123">UP主</a>
		</div>
	</body></html>`

	p, err := goquery.NewPage(html, "https://www.bilibili.com/video/BV1xx411c7mD")
	require.NoError(t, err)
	a := platform.NewBilibili(nil, nil, nil)

	title, err := a.VideoTitle(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "【4K】Test Video", title)

	au, err := a.AuthorInfo(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, &pagecap.AuthorInfo{
		Name:       "UP主",
		Avatar:     "https://i0.hdslb.com/face.jpg",
		ProfileURL: "https://space.bilibili.com/123",
	}, au)

	t.Run("missing author yields nil, not an error", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewPage(`<html><body></body></html>`, "https://www.bilibili.com/video/BV1xx411c7mD")
		require.NoError(t, err)

		au, err := a.AuthorInfo(context.Background(), p)
		require.NoError(t, err)
		assert.Nil(t, au)
	})

	t.Run("content capture is out of capability", func(t *testing.T) {
		t.Parallel()

		clip, err := a.CaptureContent(context.Background(), p)
		require.NoError(t, err)
		assert.Nil(t, clip)
		assert.False(t, a.Capabilities().Content)
	})
}

func TestXHS_CaptureContent(t *testing.T) {
	t.Parallel()

	const html = `<html><body>
		<div class="author-wrapper">
			<a class="info" href="/user/profile/abc"><img class="avatar-item" src="https://sns-avatar.example/a.jpg"></a>
			<span class="username">小美</span>
		</div>
		<div id="detail-title">周末去处</div>
		<div id="detail-desc">超好玩的地方 #旅行 #周末 推荐！ <a class="tag">#旅行</a> <a class="tag">#美食</a></div>
		<div class="swiper-slide"><img class="note-slider-img" src="https://img.example/1.jpg"></div>
		<div class="swiper-slide"><img class="note-slider-img" src="https://img.example/2.jpg"></div>
		<div class="swiper-slide"><img class="note-slider-img" src="https://img.example/1.jpg"></div>
	</body></html>`

	p, err := goquery.NewPage(html, "https://www.xiaohongshu.com/explore/abc")
	require.NoError(t, err)

	clip, err := platform.NewXHS().CaptureContent(context.Background(), p)
	require.NoError(t, err)
	require.NotNil(t, clip)

	assert.Equal(t, "xhs", clip.Platform)
	assert.Equal(t, "https://www.xiaohongshu.com/explore/abc", clip.URL)
	assert.Equal(t, "周末去处", clip.Title)
	assert.Equal(t, "小美", clip.Author.Name)

	// Carousel images in order, duplicates dropped.
	assert.Equal(t, []string{"https://img.example/1.jpg", "https://img.example/2.jpg"}, clip.Images)

	// Tag links and description hashtags merge without duplicates.
	assert.Equal(t, []string{"旅行", "美食", "周末"}, clip.Tags)
	assert.False(t, clip.CapturedAt.IsZero())

	t.Run("empty note yields nil", func(t *testing.T) {
		t.Parallel()

		p, err := goquery.NewPage(`<html><body><p>nothing here</p></body></html>`, "https://www.xiaohongshu.com/explore/xyz")
		require.NoError(t, err)

		clip, err := platform.NewXHS().CaptureContent(context.Background(), p)
		require.NoError(t, err)
		assert.Nil(t, clip)
	})
}

func TestGeneric(t *testing.T) {
	t.Parallel()

	t.Run("matches every valid URL and records the last match", func(t *testing.T) {
		t.Parallel()

		g := platform.NewGeneric(nil)
		assert.True(t, g.Match("https://example.com/a"))
		assert.True(t, g.Match("http://other.example/b"))
		assert.Equal(t, "http://other.example/b", g.LastURL())

		assert.False(t, g.Match("not a url ://"))
		assert.False(t, g.Match("/relative/path"))
		assert.Equal(t, "http://other.example/b", g.LastURL())
	})

	t.Run("first extractor with content wins", func(t *testing.T) {
		t.Parallel()

		empty := &mock.Extractor{
			ExtractFn: func(html string) (*pagecap.ExtractResult, error) { return &pagecap.ExtractResult{}, nil },
		}
		full := &mock.Extractor{
			ExtractFn: func(html string) (*pagecap.ExtractResult, error) {
				return &pagecap.ExtractResult{
					Title:       "An Article",
					ContentHTML: "<p>body #golang</p>",
					Author:      "Writer",
					Image:       "https://img.example/lead.jpg",
					Tags:        []string{"tech"},
				}, nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) { return "body #golang", nil },
		}
		p, err := goquery.NewPage(`<html><head><title>fallback</title></head><body><p>body</p></body></html>`, "https://example.com/a")
		require.NoError(t, err)

		clip, err := platform.NewGeneric(converter, empty, full).CaptureContent(context.Background(), p)
		require.NoError(t, err)
		require.NotNil(t, clip)

		assert.Equal(t, "An Article", clip.Title)
		assert.Equal(t, "body #golang", clip.Content)
		assert.Equal(t, "Writer", clip.Author.Name)
		assert.Equal(t, []string{"https://img.example/lead.jpg"}, clip.Images)
		assert.Equal(t, []string{"tech", "golang"}, clip.Tags)
	})

	t.Run("title falls back to the document title", func(t *testing.T) {
		t.Parallel()

		e := &mock.Extractor{
			ExtractFn: func(html string) (*pagecap.ExtractResult, error) {
				return &pagecap.ExtractResult{ContentHTML: "<p>x</p>"}, nil
			},
		}
		converter := &mock.Converter{ConvertFn: func(html string) (string, error) { return "x", nil }}
		p, err := goquery.NewPage(`<html><head><title>Doc Title</title></head><body></body></html>`, "https://example.com/a")
		require.NoError(t, err)

		clip, err := platform.NewGeneric(converter, e).CaptureContent(context.Background(), p)
		require.NoError(t, err)
		require.NotNil(t, clip)
		assert.Equal(t, "Doc Title", clip.Title)
	})

	t.Run("no extractor result yields nil", func(t *testing.T) {
		t.Parallel()

		e := &mock.Extractor{
			ExtractFn: func(html string) (*pagecap.ExtractResult, error) { return nil, nil },
		}
		p, err := goquery.NewPage(`<html><body></body></html>`, "https://example.com/a")
		require.NoError(t, err)

		clip, err := platform.NewGeneric(nil, e).CaptureContent(context.Background(), p)
		require.NoError(t, err)
		assert.Nil(t, clip)
	})
}
