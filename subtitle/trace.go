package subtitle

import "fmt"

// Trace accumulates human-readable step entries across strategies. It is
// owned by a single extraction call and is not safe for concurrent use.
type Trace struct {
	entries []string
}

// Addf appends a formatted entry.
func (t *Trace) Addf(format string, args ...any) {
	t.entries = append(t.entries, fmt.Sprintf(format, args...))
}

// Entries returns all entries in append order.
func (t *Trace) Entries() []string {
	return t.entries
}

// Last returns the final n entries, or all of them if fewer exist.
func (t *Trace) Last(n int) []string {
	if n <= 0 || len(t.entries) <= n {
		return t.entries
	}
	return t.entries[len(t.entries)-n:]
}
