package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fwojciec/wikicrawl"
	"github.com/fwojciec/wikicrawl/crawl"
)

// DefaultStartURL is the seed used when no start URLs are configured.
const DefaultStartURL = "https://tr.wikipedia.org/wiki/Recep_Tayyip_Erdo%C4%9Fan"

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	// Logger is set with --verbose.
	Logger *slog.Logger

	Fetcher     wikicrawl.Fetcher
	Extractor   wikicrawl.Extractor
	Writer      wikicrawl.Writer
	Ledger      wikicrawl.Ledger
	RateLimiter wikicrawl.DomainLimiter
}

// CLI defines the command-line interface structure for Kong.
// Every flag can also be set from the environment or a .env file.
type CLI struct {
	MaxFiles      int           `short:"n" default:"50" env:"MAX_FILES" help:"Maximum number of pages written across runs"`
	StartURLs     []string      `name:"start-urls" short:"s" sep:"," default:"${start_url}" env:"START_URLS" help:"Comma-separated seed URLs"`
	OutputDir     string        `short:"o" default:"output" env:"OUTPUT_DIR" type:"path" help:"Directory for the numbered text files"`
	Ledger        string        `env:"LEDGER_PATH" type:"path" help:"Ledger location (default: ledger.json or ledger.db in the output directory)"`
	LedgerBackend string        `default:"json" enum:"json,sqlite" env:"LEDGER_BACKEND" help:"Ledger storage (json, sqlite)"`
	Extractor     string        `short:"e" default:"mediawiki" enum:"mediawiki,trafilatura,readability" env:"EXTRACTOR" help:"Article extractor (mediawiki, trafilatura, readability)"`
	Fetcher       string        `short:"f" default:"http" enum:"http,rod" env:"FETCHER" help:"Page fetcher (http, rod)"`
	Timeout       time.Duration `short:"t" default:"30s" env:"FETCH_TIMEOUT" help:"Fetch timeout per page"`
	Rate          float64       `default:"1" env:"REQUESTS_PER_SECOND" help:"Requests per second per host (0 disables)"`
	Retries       int           `default:"0" env:"FETCH_RETRIES" help:"Retries per failed fetch"`
	UserAgent     string        `default:"wikicrawl/1.0" env:"USER_AGENT" help:"User-Agent header for the http fetcher"`
	DedupeContent bool          `env:"DEDUPE_CONTENT" help:"Skip pages whose text was already written in this run"`
	Verbose       bool          `short:"v" env:"VERBOSE" help:"Log every fetch, extraction, write and ledger flush to stderr"`
}

// Config returns the crawl parameters.
func (c *CLI) Config() crawl.Config {
	return crawl.Config{
		MaxFiles:  c.MaxFiles,
		StartURLs: c.StartURLs,
	}
}

// LedgerPath returns the configured ledger location, defaulting to a file in
// the output directory named after the backend.
func (c *CLI) LedgerPath() string {
	if c.Ledger != "" {
		return c.Ledger
	}
	if c.LedgerBackend == "sqlite" {
		return filepath.Join(c.OutputDir, "ledger.db")
	}
	return filepath.Join(c.OutputDir, "ledger.json")
}
