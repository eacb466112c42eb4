package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/webinsight-api/webinsight"
	"github.com/webinsight-api/webinsight/gemini"
	"github.com/webinsight-api/webinsight/goquery"
	"github.com/webinsight-api/webinsight/htmltomarkdown"
	wshttp "github.com/webinsight-api/webinsight/http"
	"github.com/webinsight-api/webinsight/insight"
	"github.com/webinsight-api/webinsight/perplexity"
	"github.com/webinsight-api/webinsight/ratelimit"
	wslog "github.com/webinsight-api/webinsight/slog"
)

// targetRPS paces outbound fetches per host.
const targetRPS = 1.0

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
	// Config is resolved from the environment before Run.
	Config webinsight.Config

	// Service is exposed for end-to-end testing.
	Service webinsight.InsightService
}

// NewMain returns a new instance of Main configured from the environment.
func NewMain() *Main {
	return &Main{Config: configFromEnv()}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Config: m.Config,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webinsight"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webinsight --help' to see available commands")
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

	// Wire the pipeline: fetcher -> extractor -> analyzer -> service.
	converter := htmltomarkdown.NewConverter()
	extractor := goquery.NewExtractor(converter)
	fetcher := wslog.NewLoggingFetcher(
		wshttp.NewFetcher(wshttp.WithTimeout(m.Config.ScrapeTimeout)),
		logger,
	)
	defer fetcher.Close()

	analyzer, err := newAnalyzer(ctx, m.Config, logger)
	if err != nil {
		return err
	}
	if analyzer != nil {
		analyzer = wslog.NewLoggingAnalyzer(analyzer, logger)
	}

	service := &insight.Service{
		Fetcher:          fetcher,
		Extractor:        extractor,
		Analyzer:         analyzer,
		Targets:          ratelimit.NewHostLimiter(targetRPS),
		Logger:           logger,
		MaxContentLength: m.Config.MaxContentLength,
	}
	m.Service = service

	deps.Service = service
	deps.AnalyzerConfigured = analyzer != nil

	return kongCtx.Run(deps)
}

// newAnalyzer selects the analysis backend from the configured keys.
// Perplexity wins when both are set; no keys means no analyzer.
func newAnalyzer(ctx context.Context, cfg webinsight.Config, logger *slog.Logger) (webinsight.Analyzer, error) {
	if cfg.PerplexityAPIKey != "" {
		return perplexity.NewAnalyzer(cfg.PerplexityAPIKey, cfg.MaxRetries, cfg.RetryDelay, logger), nil
	}

	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewAnalyzer(client, cfg.MaxRetries, cfg.RetryDelay, logger), nil
	}

	return nil, nil
}

// configFromEnv resolves process configuration. The environment is read
// only here; everything downstream takes explicit values.
func configFromEnv() webinsight.Config {
	cfg := webinsight.DefaultConfig()

	cfg.PerplexityAPIKey = os.Getenv("PERPLEXITY_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.BasicAuthUsername = os.Getenv("BASIC_AUTH_USERNAME")
	cfg.BasicAuthPassword = os.Getenv("BASIC_AUTH_PASSWORD")

	if keys := os.Getenv("WEBINSIGHT_API_KEYS"); keys != "" {
		for _, key := range strings.Split(keys, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.APIKeys = append(cfg.APIKeys, key)
			}
		}
	} else if key := os.Getenv("WEBINSIGHT_API_KEY"); key != "" {
		cfg.APIKeys = []string{key}
	}

	if v := os.Getenv("MAX_CONTENT_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxContentLength = n
		}
	}
	if v := os.Getenv("SCRAPE_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ScrapeTimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}

	return cfg
}
