package main

import (
	"context"
	"io"

	"github.com/fwojciec/pagecap"
	"github.com/fwojciec/pagecap/capture"
	"github.com/fwojciec/pagecap/fs"
	"github.com/fwojciec/pagecap/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Clips   pagecap.ClipService
	Capture *capture.Service
	Frames  *fs.FrameStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Capture CaptureCmd `cmd:"" help:"Capture content or a video frame from URLs"`
	Subs    SubsCmd    `cmd:"" help:"Extract subtitles from a video page"`
	List    ListCmd    `cmd:"" help:"List captured clips"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a captured clip"`
}

// CaptureCmd is the "capture" subcommand.
type CaptureCmd struct {
	URLs        []string `arg:"" help:"Page URLs to capture"`
	Frame       bool     `short:"f" help:"Capture a video frame instead of content"`
	Out         string   `short:"o" default:"frames" help:"Output directory for video frames"`
	Concurrency int      `short:"c" default:"3" help:"Concurrent capture limit"`
}

// SubsCmd is the "subs" subcommand.
type SubsCmd struct {
	URL string `arg:"" help:"Video page URL"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Platform string `short:"p" help:"Filter by platform id"`
	Limit    int    `default:"20" help:"Maximum number of clips to show"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Clip ID"`
	Force bool   `help:"Confirm deletion"`
}
