package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagecap"
	"github.com/fwojciec/pagecap/capture"
	"github.com/fwojciec/pagecap/fs"
	"github.com/fwojciec/pagecap/htmltomarkdown"
	pagecaphttp "github.com/fwojciec/pagecap/http"
	"github.com/fwojciec/pagecap/platform"
	"github.com/fwojciec/pagecap/readability"
	"github.com/fwojciec/pagecap/rod"
	pagecapslog "github.com/fwojciec/pagecap/slog"
	"github.com/fwojciec/pagecap/sqlite"
	"github.com/fwojciec/pagecap/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// ClipService for end-to-end testing.
	ClipService pagecap.ClipService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagecap"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagecap --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGECAP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ClipService = sqlite.NewClipService(m.DB)
	deps.DB = m.DB
	deps.Clips = m.ClipService

	// Commands that drive a live page need the browser and the full
	// capture pipeline.
	if cmd == "capture" || cmd == "subs" {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

		opener, err := rod.NewOpener()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer opener.Close()

		fetcher := newFetcher(logger)
		limiter := capture.NewHostLimiter(1.0)

		registry := pagecap.NewRegistry(logger)
		registry.Register(platform.NewBilibili(logger, fetcher, limiter))
		registry.Register(platform.NewYouTube(logger, fetcher, limiter))
		registry.Register(platform.NewXHS())

		generic := platform.NewGeneric(
			htmltomarkdown.NewConverter(),
			trafilatura.NewExtractor(),
			readability.NewExtractor(),
		)

		deps.Capture = capture.NewService(registry, opener, m.ClipService,
			capture.WithLogger(logger),
			capture.WithFallback(generic),
			capture.WithLimiter(limiter),
			capture.WithConcurrency(cli.Capture.Concurrency),
		)

		if cmd == "capture" && cli.Capture.Frame {
			frames, err := fs.NewFrameStore(cli.Capture.Out)
			if err != nil {
				return fmt.Errorf("failed to create frame directory: %w", err)
			}
			deps.Frames = frames
		}
	}

	return kongCtx.Run(deps)
}

// newFetcher builds the subtitle fetch stack: direct credentialed fetches,
// a cross-origin proxy for known-blocked hosts when PAGECAP_PROXY is set,
// and request logging around the lot.
func newFetcher(logger *slog.Logger) pagecap.Fetcher {
	direct := pagecaphttp.NewFetcher()

	var fetcher pagecap.Fetcher = direct
	if endpoint := os.Getenv("PAGECAP_PROXY"); endpoint != "" {
		fetcher = pagecaphttp.NewRouter(direct, pagecaphttp.NewProxyClient(endpoint))
	}

	return pagecapslog.NewLoggingFetcher(fetcher, logger)
}

func defaultDBPath() string {
	if path := os.Getenv("PAGECAP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagecap.db"
	}
	dir := filepath.Join(home, ".pagecap")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pagecap.db")
}
