package webinsight

import "time"

// Configuration defaults. Values mirror the service's deployment defaults
// and can be overridden through Config.
const (
	DefaultMaxContentLength = 200000
	DefaultScrapeTimeout    = 30 * time.Second
	DefaultMaxRetries       = 3
	DefaultRetryDelay       = 2 * time.Second
)

// Config carries process configuration resolved at startup. It is passed
// explicitly into constructors; core logic never reads the environment.
type Config struct {
	// PerplexityAPIKey enables the Perplexity analysis backend.
	PerplexityAPIKey string

	// GeminiAPIKey enables the Gemini analysis backend. Used only when
	// no Perplexity key is configured.
	GeminiAPIKey string

	// APIKeys are accepted values for X-API-Key authentication.
	APIKeys []string

	// BasicAuthUsername and BasicAuthPassword enable HTTP Basic auth.
	BasicAuthUsername string
	BasicAuthPassword string

	// MaxContentLength caps raw HTML size before extraction.
	MaxContentLength int

	// ScrapeTimeout bounds each outbound page fetch.
	ScrapeTimeout time.Duration

	// MaxRetries and RetryDelay govern analysis-call retries.
	MaxRetries int
	RetryDelay time.Duration

	// ListenAddr is the HTTP server bind address.
	ListenAddr string
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		MaxContentLength: DefaultMaxContentLength,
		ScrapeTimeout:    DefaultScrapeTimeout,
		MaxRetries:       DefaultMaxRetries,
		RetryDelay:       DefaultRetryDelay,
		ListenAddr:       ":8080",
	}
}
