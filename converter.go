package pagecap

// Converter transforms HTML content into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
