package pagecap_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pagecap"
	"github.com/fwojciec/pagecap/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdapter(id string, match func(string) bool, caps pagecap.Capabilities) *mock.Adapter {
	return &mock.Adapter{
		InfoFn:         func() pagecap.PlatformInfo { return pagecap.PlatformInfo{ID: id, Name: id} },
		CapabilitiesFn: func() pagecap.Capabilities { return caps },
		MatchFn:        match,
	}
}

func matchHost(host string) func(string) bool {
	return func(rawURL string) bool { return strings.Contains(rawURL, host) }
}

func TestRegistry_ForURL(t *testing.T) {
	t.Parallel()

	t.Run("returns first registered match", func(t *testing.T) {
		t.Parallel()

		first := newAdapter("first", matchHost("example.com"), pagecap.Capabilities{})
		second := newAdapter("second", matchHost("example.com"), pagecap.Capabilities{})

		r := pagecap.NewRegistry(nil)
		r.Register(first)
		r.Register(second)

		got := r.ForURL("https://example.com/watch")
		require.NotNil(t, got)
		assert.Equal(t, "first", got.Info().ID)
	})

	t.Run("first match wins regardless of later registrations", func(t *testing.T) {
		t.Parallel()

		a := newAdapter("a", matchHost("video.example"), pagecap.Capabilities{})
		b := newAdapter("b", matchHost("video.example"), pagecap.Capabilities{})

		r := pagecap.NewRegistry(nil)
		r.Register(b)
		r.Register(a)

		// Registration order decides, not any notion of specificity.
		got := r.ForURL("https://video.example/v/1")
		require.NotNil(t, got)
		assert.Equal(t, "b", got.Info().ID)
	})

	t.Run("returns nil when nothing matches", func(t *testing.T) {
		t.Parallel()

		r := pagecap.NewRegistry(nil)
		r.Register(newAdapter("a", matchHost("a.example"), pagecap.Capabilities{}))

		assert.Nil(t, r.ForURL("https://other.example/"))
		assert.False(t, r.CanHandle("https://other.example/"))
	})
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	t.Parallel()

	first := newAdapter("dup", matchHost("one.example"), pagecap.Capabilities{})
	second := newAdapter("dup", matchHost("two.example"), pagecap.Capabilities{})

	r := pagecap.NewRegistry(nil)
	r.Register(first)
	r.Register(second)

	// The duplicate registration is a no-op: only the first adapter is kept.
	assert.Len(t, r.Adapters(), 1)
	assert.Same(t, pagecap.Adapter(first), r.Get("dup"))
	assert.True(t, r.CanHandle("https://one.example/"))
	assert.False(t, r.CanHandle("https://two.example/"))
}

func TestRegistry_CapabilityFilters(t *testing.T) {
	t.Parallel()

	content := newAdapter("content", matchHost("c.example"), pagecap.Capabilities{Content: true})
	video := newAdapter("video", matchHost("v.example"), pagecap.Capabilities{Video: true, Subtitles: true})
	both := newAdapter("both", matchHost("b.example"), pagecap.Capabilities{Content: true, Video: true})

	r := pagecap.NewRegistry(nil)
	r.Register(content)
	r.Register(video)
	r.Register(both)

	ids := func(adapters []pagecap.Adapter) []string {
		var out []string
		for _, a := range adapters {
			out = append(out, a.Info().ID)
		}
		return out
	}

	assert.Equal(t, []string{"content", "both"}, ids(r.ContentAdapters()))
	assert.Equal(t, []string{"video", "both"}, ids(r.VideoAdapters()))
	assert.Equal(t, []string{"video"}, ids(r.SubtitleAdapters()))
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	r := pagecap.NewRegistry(nil)
	a := newAdapter("bilibili", matchHost("bilibili.com"), pagecap.Capabilities{})
	r.Register(a)

	assert.Same(t, pagecap.Adapter(a), r.Get("bilibili"))
	assert.Nil(t, r.Get("missing"))
}
