package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	wshttp "github.com/webinsight-api/webinsight/http"
	"github.com/webinsight-api/webinsight/ratelimit"
)

// Inbound rate limit policies. Analysis is tighter because each request
// holds an LLM call open.
const (
	scrapeLimit  = 10
	analyzeLimit = 5
	limitWindow  = 60 * time.Second
)

const shutdownTimeout = 10 * time.Second

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := c.Addr
	if addr == "" {
		addr = deps.Config.ListenAddr
	}

	scrapeLimiter := ratelimit.NewSlidingWindow(scrapeLimit, limitWindow)
	defer scrapeLimiter.Close()
	analyzeLimiter := ratelimit.NewSlidingWindow(analyzeLimit, limitWindow)
	defer analyzeLimiter.Close()

	server := &wshttp.Server{
		Service: deps.Service,
		Auth: &wshttp.Auth{
			APIKeys:       deps.Config.APIKeys,
			BasicUsername: deps.Config.BasicAuthUsername,
			BasicPassword: deps.Config.BasicAuthPassword,
		},
		Logger:             deps.Logger,
		ScrapeLimiter:      scrapeLimiter,
		AnalyzeLimiter:     analyzeLimiter,
		AnalyzerConfigured: deps.AnalyzerConfigured,
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Handler(),
	}

	ctx, stop := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		deps.Logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	deps.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
