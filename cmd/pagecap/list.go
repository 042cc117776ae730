package main

import (
	"fmt"

	"github.com/fwojciec/pagecap"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := pagecap.ClipFilter{Limit: c.Limit}
	if c.Platform != "" {
		filter.Platform = &c.Platform
	}

	clips, err := deps.Clips.FindClips(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecap.ErrorMessage(err))
		return err
	}

	if len(clips) == 0 {
		fmt.Fprintln(deps.Stdout, "No clips captured yet. Run 'pagecap capture <url>' to capture one.")
		return nil
	}

	for _, clip := range clips {
		title := clip.Title
		if title == "" {
			title = clip.URL
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  [%s]  %s\n",
			clip.ID, clip.CapturedAt.Format("2006-01-02"), clip.Platform, title)
	}
	return nil
}
