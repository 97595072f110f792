package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/crawl"
	"github.com/fwojciec/wikicrawl/fs"
	"github.com/fwojciec/wikicrawl/goquery"
	"github.com/fwojciec/wikicrawl/htmltomarkdown"
	wikihttp "github.com/fwojciec/wikicrawl/http"
	"github.com/fwojciec/wikicrawl/readability"
	"github.com/fwojciec/wikicrawl/rod"
	wikislog "github.com/fwojciec/wikicrawl/slog"
	"github.com/fwojciec/wikicrawl/sqlite"
	"github.com/fwojciec/wikicrawl/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher replaces the fetcher selected with --fetcher. Set before
	// calling Run(); used by end-to-end tests.
	Fetcher wikicrawl.Fetcher

	fetcher wikicrawl.Fetcher
	ledger  wikicrawl.Ledger
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases the fetcher and the ledger.
func (m *Main) Close() error {
	var errs []error
	if m.ledger != nil {
		errs = append(errs, m.ledger.Close())
		m.ledger = nil
	}
	if m.fetcher != nil {
		errs = append(errs, m.fetcher.Close())
		m.fetcher = nil
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wikicrawl"),
		kong.Description("Crawl wiki articles breadth-first into numbered text files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"start_url": DefaultStartURL},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if slices.ContainsFunc(args, isHelpFlag) {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg := cli.Config()
	if err := cfg.Validate(); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	writer := fs.NewWriter(cli.OutputDir, fs.WithSequenceWidth(fs.SequenceWidth(cli.MaxFiles)))
	if err := writer.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set OUTPUT_DIR to a writable directory")
		return err
	}
	deps.Writer = writer

	defer m.Close()

	var runs *sqlite.Ledger
	switch cli.LedgerBackend {
	case "sqlite":
		db := sqlite.NewDB(cli.LedgerPath())
		if err := db.Open(); err != nil {
			return wikicrawl.WrapError(wikicrawl.ECONFIG, err, "open ledger %q", cli.LedgerPath())
		}
		runs = sqlite.NewLedger(db)
		m.ledger = runs
	default:
		m.ledger = fs.NewLedger(cli.LedgerPath())
	}
	deps.Ledger = m.ledger

	m.fetcher = m.Fetcher
	if m.fetcher == nil {
		if m.fetcher, err = newFetcher(cli); err != nil {
			if cli.Fetcher == "rod" {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			}
			return err
		}
	}
	deps.Fetcher = m.fetcher
	if cli.Retries > 0 {
		var logf crawl.LogFunc
		if cli.Verbose {
			logf = func(format string, args ...any) { fmt.Fprintf(stderr, format+"\n", args...) }
		}
		deps.Fetcher = crawl.NewRetryFetcher(deps.Fetcher, crawl.BackoffDelays(cli.Retries), logf)
	}

	deps.Extractor = newExtractor(cli)
	deps.RateLimiter = crawl.NewDomainLimiter(cli.Rate)

	if deps.Logger != nil {
		deps.Fetcher = wikislog.NewLoggingFetcher(deps.Fetcher, deps.Logger)
		deps.Extractor = wikislog.NewLoggingExtractor(deps.Extractor, deps.Logger)
		deps.Writer = wikislog.NewLoggingWriter(deps.Writer, deps.Logger)
		deps.Ledger = wikislog.NewLoggingLedger(deps.Ledger, deps.Logger)
	}

	cmd := &CrawlCmd{
		Config:        cfg,
		DedupeContent: cli.DedupeContent,
	}
	err = cmd.Run(deps)

	if runs != nil && deps.Logger != nil {
		logRuns(context.WithoutCancel(ctx), runs, deps.Logger)
	}

	return err
}

// newFetcher creates the fetcher selected on the command line.
func newFetcher(cli *CLI) (wikicrawl.Fetcher, error) {
	if cli.Fetcher == "rod" {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}
	return wikihttp.NewFetcher(
		wikihttp.WithTimeout(cli.Timeout),
		wikihttp.WithUserAgent(cli.UserAgent),
	), nil
}

// newExtractor creates the extractor selected on the command line. The
// generic extractors flatten links so the written text carries no markup.
func newExtractor(cli *CLI) wikicrawl.Extractor {
	switch cli.Extractor {
	case "trafilatura":
		return goquery.NewGenericExtractor(trafilatura.NewExtractor(), htmltomarkdown.NewConverter(htmltomarkdown.WithPlainLinks()))
	case "readability":
		return goquery.NewGenericExtractor(readability.NewExtractor(), htmltomarkdown.NewConverter(htmltomarkdown.WithPlainLinks()))
	default:
		return goquery.NewMediaWikiExtractor()
	}
}

// logRuns logs the runs recorded in a SQLite ledger.
func logRuns(ctx context.Context, ledger *sqlite.Ledger, logger *slog.Logger) {
	runs, err := ledger.Runs(ctx)
	if err != nil {
		logger.Error("ledger runs", "err", err)
		return
	}
	for _, r := range runs {
		logger.Info("ledger run",
			"id", r.ID,
			"started_at", r.StartedAt,
			"updated_at", r.UpdatedAt,
			"visited", r.Visited,
			"current", r.ID == ledger.RunID(),
		)
	}
}

func isHelpFlag(arg string) bool {
	return arg == "--help" || arg == "-h" || arg == "help"
}
