package main

import (
	"fmt"

	"github.com/fwojciec/pagecap"
)

// Run executes the subs command. Total extraction failure surfaces the
// aggregate engine error, which carries every strategy failure plus the
// trace tail.
func (c *SubsCmd) Run(deps *Dependencies) error {
	lines, err := deps.Capture.ExtractSubtitles(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecap.ErrorMessage(err))
		return err
	}

	for _, line := range lines {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", formatTimestamp(line.Start), line.Text)
	}
	return nil
}

// formatTimestamp renders seconds as mm:ss.s.
func formatTimestamp(seconds float64) string {
	m := int(seconds) / 60
	s := seconds - float64(m*60)
	return fmt.Sprintf("%02d:%04.1f", m, s)
}
