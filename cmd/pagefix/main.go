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
	// Fetcher used to re-fetch failed URLs. Set for end-to-end testing;
	// when nil, Run launches a browser fetcher.
	Fetcher pagetext.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Input   string        `arg:"" help:"Document to repair"`
	Output  string        `short:"o" help:"Output file (default: input with _fixed suffix)"`
	Config  string        `short:"c" help:"Path to a JSON run configuration"`
	Check   bool          `help:"Report error blocks without repairing"`
	Timeout time.Duration `short:"t" help:"Fetch timeout per page"`
	Stealth bool          `help:"Evade headless-browser detection"`
	Verbose bool          `short:"v" help:"Log repair progress to stderr"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagefix"),
		kong.Description("Repair failed entries in an extracted document"),
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

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	document, err := fs.ReadDocument(cli.Input)
	if err != nil {
		return err
	}

	markers := pagetext.ScanMarkers(document)

	if cli.Check {
		if len(markers) == 0 {
			fmt.Fprintln(stdout, "No error blocks found.")
			return nil
		}
		fmt.Fprintf(stdout, "Found %d error blocks:\n", len(markers))
		for _, marker := range markers {
			fmt.Fprintf(stdout, "  %s\n", marker.URL)
		}
		return nil
	}

	if len(markers) == 0 {
		fmt.Fprintln(stdout, "No error blocks found; nothing to repair.")
		return nil
	}

	cfg := &pagetext.Config{}
	if cli.Config != "" {
		if cfg, err = fs.LoadConfig(cli.Config, logger); err != nil {
			return err
		}
	}
	if cli.Timeout > 0 {
		cfg.TimeoutMS = int(cli.Timeout / time.Millisecond)
	}
	if err := cfg.Validate(); err != nil {
		return err
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

	result, repairErr := batch.Repair(ctx, document, cfg, fetcher, logger)

	output := cli.Output
	if output == "" {
		output = fs.RepairOutputPath(cli.Input)
	}
	if err := fs.WriteDocument(output, result.Document); err != nil {
		return err
	}

	if repairErr != nil {
		return repairErr
	}

	fmt.Fprintf(stdout, "Repaired %d of %d error blocks; wrote %s\n",
		result.Succeeded, len(markers), output)
	return nil
}
