package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/webinsight-api/webinsight"
)

// Dependencies holds the services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config webinsight.Config
	Logger *slog.Logger

	Service            webinsight.InsightService
	AnalyzerConfigured bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Serve the HTTP API"`
	Scrape  ScrapeCmd  `cmd:"" help:"Scrape one or more URLs and print the results as JSON"`
	Analyze AnalyzeCmd `cmd:"" help:"Analyze a URL's content and print the result as JSON"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Bind address (overrides LISTEN_ADDR)"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string `arg:"" name:"url" help:"URLs to scrape"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent fetch limit"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL   string `arg:"" help:"URL to analyze"`
	Type  string `default:"analysis" enum:"summary,analysis,custom" help:"Analysis type"`
	Query string `short:"q" help:"Custom question to answer from the page content"`
}
