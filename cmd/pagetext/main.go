package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pagetext/pagetext"
	"github.com/pagetext/pagetext/batch"
	"github.com/pagetext/pagetext/fs"
	"github.com/pagetext/pagetext/rod"
	pageslog "github.com/pagetext/pagetext/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher used for page content. Set for end-to-end testing; when
	// nil, Run launches a browser fetcher.
	Fetcher pagetext.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL          string        `arg:"" optional:"" help:"Page URL to extract text from"`
	URLs         string        `name:"urls" short:"u" help:"Path to a newline-separated URL list"`
	Output       string        `short:"o" help:"Output file (default: stdout)"`
	Config       string        `short:"c" help:"Path to a JSON run configuration"`
	Selector     string        `short:"s" help:"CSS or XPath selector for the content root"`
	SelectorType string        `name:"selector-type" enum:"css,xpath," default:"" help:"Selector kind: css or xpath"`
	Timeout      time.Duration `short:"t" help:"Fetch timeout per page"`
	Stealth      bool          `help:"Evade headless-browser detection"`
	Verbose      bool          `short:"v" help:"Log fetch progress to stderr"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagetext"),
		kong.Description("Extract text from rendered web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if cli.URL == "" && cli.URLs == "" {
		return fmt.Errorf("either a URL argument or --urls is required")
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	cfg, err := loadConfig(cli, logger)
	if err != nil {
		return err
	}

	urls := []string{cli.URL}
	if cli.URLs != "" {
		if urls, err = fs.ReadURLList(cli.URLs); err != nil {
			return err
		}
		if len(urls) == 0 {
			return fmt.Errorf("URL list %q is empty", cli.URLs)
		}
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		opts := []rod.Option{rod.WithFetchTimeout(cfg.Timeout()), rod.WithLogger(logger)}
		if cli.Stealth {
			opts = append(opts, rod.WithStealth())
		}
		rodFetcher, err := rod.NewFetcher(opts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer rodFetcher.Close()
		fetcher = rodFetcher
	}
	fetcher = pageslog.NewLoggingFetcher(fetcher, logger)

	processor := &batch.Processor{Fetcher: fetcher, Config: cfg, Logger: logger}
	result, runErr := processor.Run(ctx, urls)

	// Write whatever was assembled, even on cancellation.
	if result.Document != "" {
		if cli.Output != "" {
			if err := fs.WriteDocument(cli.Output, result.Document); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(stdout, result.Document)
		}
	}

	if runErr != nil {
		return runErr
	}
	if result.Failed > 0 {
		fmt.Fprintf(stderr, "%d of %d URLs failed\n", result.Failed, len(urls))
	}
	return nil
}

// loadConfig merges the configuration file with flag overrides. Flags
// win over file values.
func loadConfig(cli *CLI, logger *slog.Logger) (*pagetext.Config, error) {
	cfg := &pagetext.Config{}
	if cli.Config != "" {
		loaded, err := fs.LoadConfig(cli.Config, logger)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cli.Selector != "" {
		cfg.Selector = cli.Selector
		cfg.Selectors = nil
	}
	if cli.SelectorType != "" {
		cfg.SelectorType = pagetext.SelectorKind(cli.SelectorType)
	}
	if cli.Timeout > 0 {
		cfg.TimeoutMS = int(cli.Timeout / time.Millisecond)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
