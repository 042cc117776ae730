package main

import (
	"fmt"

	"github.com/fwojciec/pagecap"
)

// Run executes the capture command.
func (c *CaptureCmd) Run(deps *Dependencies) error {
	if c.Frame {
		return c.runFrame(deps)
	}

	if len(c.URLs) == 1 {
		clip, err := deps.Capture.CaptureContent(deps.Ctx, c.URLs[0])
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagecap.ErrorMessage(err))
			return err
		}
		printClip(deps, clip)
		return nil
	}

	clips, err := deps.Capture.CaptureAll(deps.Ctx, c.URLs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagecap.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Captured %d of %d pages\n", len(clips), len(c.URLs))
	for _, clip := range clips {
		printClip(deps, clip)
	}
	return nil
}

// runFrame captures a video frame per URL and writes it to the output
// directory.
func (c *CaptureCmd) runFrame(deps *Dependencies) error {
	for _, u := range c.URLs {
		frame, err := deps.Capture.CaptureFrame(deps.Ctx, u)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagecap.ErrorMessage(err))
			return err
		}

		path, err := deps.Frames.Save(frame)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}

		title := frame.VideoTitle
		if title == "" {
			title = u
		}
		fmt.Fprintf(deps.Stdout, "Saved %s (%s at %.1fs)\n", path, title, frame.Timestamp)
	}
	return nil
}

func printClip(deps *Dependencies, clip *pagecap.Clip) {
	title := clip.Title
	if title == "" {
		title = clip.URL
	}
	fmt.Fprintf(deps.Stdout, "%s  [%s]  %s\n", clip.ID, clip.Platform, title)
}
