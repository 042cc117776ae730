package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/pagecap"
	"github.com/fwojciec/pagecap/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, pagecap.EINVALID, pagecap.ErrorCode(err))
	})

	t.Run("extracts main content without boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav class="main-nav"><a href="/">Home</a><a href="/about">About</a></nav>
<article>
<h1>Field Notes</h1>
<p>This is important article content that should be extracted.</p>
</article>
<footer>Copyright 2026</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "important article content")
		assert.NotContains(t, result.ContentHTML, "main-nav")
	})

	t.Run("extracts author and tags from metadata", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Tagged Post</title>
<meta name="author" content="Jane Writer">
<meta property="article:tag" content="travel">
</head>
<body>
<article><p>A post about travel destinations worth visiting this year.</p></article>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Jane Writer", result.Author)
	})
}
