package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/hfscrape/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database holding the run history. Opened only when a
	// database path is configured.
	DB *sqlite.DB

	// Now returns the current time. Used for run timestamps and the
	// dated log file name.
	Now func() time.Time

	// logFile is the open log destination when logging to a file.
	logFile io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Now: time.Now}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.logFile != nil {
		m.logFile.Close()
		m.logFile = nil
	}
	if m.DB != nil {
		err := m.DB.Close()
		m.DB = nil
		return err
	}
	return nil
}

// Run executes the CLI with the given arguments. No arguments runs a scrape
// with the default configuration; --runs and --records read the run history.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("hfscrape"),
		kong.Description("Scrape the Hugging Face model listing into a CSV table"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if err := cli.validate(); err != nil {
		return err
	}

	defer m.Close()

	if cli.history() {
		runs, err := m.openRunService(cli.DB, stderr)
		if err != nil {
			return err
		}
		deps := &Dependencies{Stdout: stdout, Stderr: stderr, Runs: runs}
		if cli.Runs {
			return (&RunsCmd{}).Run(ctx, deps)
		}
		return (&RecordsCmd{RunID: cli.Records, Repository: cli.Repository}).Run(ctx, deps)
	}

	deps, err := m.wire(cli, stdout, stderr)
	if err != nil {
		return err
	}
	defer deps.Fetcher.Close()

	cmd := &ScrapeCmd{
		BaseURL: cli.BaseURL,
		Origin:  cli.Origin,
		Out:     cli.Out,
	}
	return cmd.Run(ctx, deps)
}
