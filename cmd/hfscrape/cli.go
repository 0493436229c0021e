package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fwojciec/hfscrape"
	"github.com/fwojciec/hfscrape/crawl"
	"github.com/fwojciec/hfscrape/csv"
	"github.com/fwojciec/hfscrape/goquery"
	hfshttp "github.com/fwojciec/hfscrape/http"
	hfslog "github.com/fwojciec/hfscrape/slog"
	"github.com/fwojciec/hfscrape/sqlite"
)

// autoLogFile selects a log file named after the current date.
const autoLogFile = "auto"

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Now    func() time.Time

	Fetcher hfscrape.Fetcher
	Scraper *crawl.Scraper
	Table   hfscrape.TableWriter

	// Runs is nil when no run history database is configured.
	Runs hfscrape.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL     string        `name:"base-url" default:"https://huggingface.co/models" help:"First listing page to scrape"`
	Origin      string        `default:"https://huggingface.co" help:"Site root prepended to model addresses"`
	Out         string        `short:"o" default:"hugging_face_scraping.csv" help:"CSV output file (overwritten)"`
	MaxPages    int           `name:"max-pages" default:"3" help:"Maximum listing pages to visit (0 for every page, capped at 10000)"`
	BatchSize   int           `name:"batch-size" default:"50" help:"Listing pages per batch"`
	BatchDelay  time.Duration `name:"batch-delay" default:"0s" help:"Pause between listing batches"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent detail page fetches"`
	RPS         float64       `name:"rps" default:"0" help:"Requests per second per host (0 for unlimited)"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
	Retries     int           `default:"0" help:"Retry attempts per failed fetch"`
	UserAgent   string        `name:"user-agent" default:"hfscrape/1.0" help:"User-Agent request header"`
	Exclude     []string      `sep:"none" help:"CSS selectors of regions removed before extracting the description (repeatable)"`
	DB          string        `name:"db" env:"HFSCRAPE_DB" help:"SQLite database recording the run history"`
	Runs        bool          `help:"List recorded runs instead of scraping (requires --db)"`
	Records     string        `placeholder:"RUN-ID" help:"Print the records of a recorded run instead of scraping (requires --db)"`
	Repository  string        `help:"With --records, print only the records of this repository"`
	LogFile     string        `name:"log-file" help:"Log file path, or 'auto' for a file named after the current date"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
}

func (c *CLI) validate() error {
	if c.BaseURL == "" {
		return hfscrape.Errorf(hfscrape.EINVALID, "base URL required")
	}
	if c.Out == "" {
		return hfscrape.Errorf(hfscrape.EINVALID, "output path required")
	}
	if c.MaxPages < 0 {
		return hfscrape.Errorf(hfscrape.EINVALID, "max pages must not be negative")
	}
	if c.BatchSize < 1 {
		return hfscrape.Errorf(hfscrape.EINVALID, "batch size must be at least 1")
	}
	if c.Concurrency < 1 {
		return hfscrape.Errorf(hfscrape.EINVALID, "concurrency must be at least 1")
	}
	if c.RPS < 0 {
		return hfscrape.Errorf(hfscrape.EINVALID, "rps must not be negative")
	}
	if c.Retries < 0 {
		return hfscrape.Errorf(hfscrape.EINVALID, "retries must not be negative")
	}
	if c.Runs && c.Records != "" {
		return hfscrape.Errorf(hfscrape.EINVALID, "--runs and --records are mutually exclusive")
	}
	if c.history() && c.DB == "" {
		return hfscrape.Errorf(hfscrape.EINVALID, "--db is required to read the run history")
	}
	if c.Repository != "" && c.Records == "" {
		return hfscrape.Errorf(hfscrape.EINVALID, "--repository requires --records")
	}
	return nil
}

// history reports whether the run history is read instead of scraping.
func (c *CLI) history() bool {
	return c.Runs || c.Records != ""
}

// wire builds the dependencies for a scrape from the parsed flags.
func (m *Main) wire(cli *CLI, stdout, stderr io.Writer) (*Dependencies, error) {
	logger, err := m.newLogger(cli, stderr)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Now:    m.Now,
	}

	var fetcher hfscrape.Fetcher = hfshttp.NewFetcher(
		hfshttp.WithTimeout(cli.Timeout),
		hfshttp.WithUserAgent(cli.UserAgent),
	)
	if cli.Retries > 0 {
		fetcher = crawl.NewRetryFetcher(fetcher, crawl.DefaultRetryDelays(cli.Retries), logger)
	}
	deps.Fetcher = hfslog.NewLoggingFetcher(fetcher, logger)

	var opts []goquery.Option
	if len(cli.Exclude) > 0 {
		opts = append(opts, goquery.WithExclude(cli.Exclude...))
	}
	parser := goquery.NewParser(opts...)

	deps.Scraper = &crawl.Scraper{
		Fetcher:     deps.Fetcher,
		Listing:     parser,
		Details:     parser,
		Logger:      logger,
		Origin:      cli.Origin,
		MaxPages:    cli.MaxPages,
		BatchSize:   cli.BatchSize,
		BatchDelay:  cli.BatchDelay,
		Concurrency: cli.Concurrency,
	}
	if cli.RPS > 0 {
		deps.Scraper.RateLimiter = crawl.NewHostLimiter(cli.RPS)
	}

	deps.Table = hfslog.NewLoggingTableWriter(csv.NewWriter(cli.Out), cli.Out, logger)

	if cli.DB != "" {
		if deps.Runs, err = m.openRunService(cli.DB, stderr); err != nil {
			return nil, err
		}
	}

	return deps, nil
}

// openRunService opens the run history database at path.
func (m *Main) openRunService(path string, stderr io.Writer) (hfscrape.RunService, error) {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(stderr, "Hint: Set HFSCRAPE_DB to use a different database path\n")
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return sqlite.NewRunService(m.DB), nil
}

// newLogger creates a text logger on stderr or on the configured log file.
func (m *Main) newLogger(cli *CLI, stderr io.Writer) (*slog.Logger, error) {
	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}

	w := stderr
	if cli.LogFile != "" {
		path := cli.LogFile
		if path == autoLogFile {
			path = m.Now().Format(time.DateOnly) + ".log"
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		m.logFile = f
		w = f
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
