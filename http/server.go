package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/webinsight-api/webinsight"
)

// apiVersion is reported by the index and health endpoints.
const apiVersion = "1.0.0"

// maxRequestBody caps inbound JSON bodies.
const maxRequestBody = 1 << 20

// Limiter gates inbound requests and exposes its policy so rejections can
// tell the client what the limit was.
type Limiter interface {
	webinsight.Limiter
	Limit() int
	Window() time.Duration
}

// Server serves the JSON API. All fields must be set before Handler is
// called, except Auth and the limiters, which may be nil to disable
// authentication or gating.
type Server struct {
	Service webinsight.InsightService
	Auth    *Auth
	Logger  *slog.Logger

	// ScrapeLimiter gates POST /api/scrape, AnalyzeLimiter gates
	// POST /api/analyze. The analyze limit is tighter because analysis
	// holds an LLM call open.
	ScrapeLimiter  Limiter
	AnalyzeLimiter Limiter

	// AnalyzerConfigured is reported by the health endpoint.
	AnalyzerConfigured bool
}

// Handler returns the root handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/scrape", s.authenticated(s.limited(s.ScrapeLimiter, s.handleScrape)))
	mux.HandleFunc("POST /api/analyze", s.authenticated(s.limited(s.AnalyzeLimiter, s.handleAnalyze)))
	return s.requestID(mux)
}

// requestID tags every request with a UUID for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		s.logger().Info("request", "id", id, "method", r.Method, "path", r.URL.Path, "client", clientID(r))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Auth != nil {
			if err := s.Auth.Authorize(r); err != nil {
				s.writeError(w, r, err)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) limited(limiter Limiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if limiter != nil && !limiter.Allow(clientID(r)) {
			s.logger().Warn("rate limit exceeded", "client", clientID(r), "path", r.URL.Path)
			s.writeJSON(w, http.StatusTooManyRequests, &errorResponse{
				Error: errorBody{
					Code:    webinsight.ERATELIMIT,
					Message: "Rate limit exceeded. Please try again later.",
				},
				RateLimit: &rateLimitInfo{
					Limit:  limiter.Limit(),
					Window: int(limiter.Window().Seconds()),
					Unit:   "seconds",
				},
			})
			return
		}
		next(w, r)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"api":     "WebInsight API",
		"version": apiVersion,
		"endpoints": map[string]string{
			"/api/scrape":  "Scrape content from URL and provide a summary",
			"/api/analyze": "Scrape content from URL and provide detailed analysis",
			"/api/health":  "API health check",
		},
		"authentication": map[string]string{
			"api_key":    "Include X-API-Key header or api_key query parameter",
			"basic_auth": "Use HTTP Basic Authentication",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	analyzer := "not configured"
	if s.AnalyzerConfigured {
		analyzer = "configured"
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":      "OK",
		"api_version": apiVersion,
		"analyzer":    analyzer,
	})
}

type scrapeRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.URL == "" {
		s.writeError(w, r, webinsight.Errorf(webinsight.EINVALID, "URL is required"))
		return
	}

	result, err := s.Service.Scrape(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type analyzeRequest struct {
	URL         string `json:"url"`
	QueryType   string `json:"query_type"`
	CustomQuery string `json:"custom_query"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.URL == "" {
		s.writeError(w, r, webinsight.Errorf(webinsight.EINVALID, "URL is required"))
		return
	}

	result, err := s.Service.Analyze(r.Context(), req.URL, webinsight.QueryType(req.QueryType), req.CustomQuery)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func decodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return webinsight.Errorf(webinsight.EINVALID, "unable to read request body")
	}
	if len(body) == 0 {
		return webinsight.Errorf(webinsight.EINVALID, "JSON data is required")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return webinsight.Errorf(webinsight.EINVALID, "invalid JSON: %s", err)
	}
	return nil
}

type errorResponse struct {
	Error     errorBody      `json:"error"`
	RateLimit *rateLimitInfo `json:"rate_limit,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type rateLimitInfo struct {
	Limit  int    `json:"limit"`
	Window int    `json:"window"`
	Unit   string `json:"unit"`
}

// statusFromCode maps application error codes to HTTP statuses.
func statusFromCode(code string) int {
	switch code {
	case webinsight.EINVALID:
		return http.StatusBadRequest
	case webinsight.ENOTFOUND:
		return http.StatusNotFound
	case webinsight.ETIMEOUT:
		return http.StatusGatewayTimeout
	case webinsight.EUNAVAILABLE:
		return http.StatusBadGateway
	case webinsight.ERATELIMIT:
		return http.StatusTooManyRequests
	case webinsight.EUNAUTHORIZED:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := webinsight.ErrorCode(err)
	if code == webinsight.EINTERNAL {
		s.logger().Error("internal error", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	s.writeJSON(w, statusFromCode(code), &errorResponse{
		Error: errorBody{Code: code, Message: webinsight.ErrorMessage(err)},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger().Error("write response", "err", err)
	}
}

// clientID identifies the caller for rate limiting. The port is stripped so
// a client keeps one identity across connections.
func clientID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
