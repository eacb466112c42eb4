package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/webinsight-api/webinsight"
)

// Auth holds the server's accepted credentials. Requests may authenticate
// with an API key (X-API-Key header or api_key query parameter) or with
// HTTP Basic credentials. When no credentials are configured the server
// runs open and Authorize accepts every request.
type Auth struct {
	APIKeys       []string
	BasicUsername string
	BasicPassword string
}

// Enabled reports whether any credentials are configured.
func (a *Auth) Enabled() bool {
	return len(a.APIKeys) > 0 || a.BasicUsername != ""
}

// Authorize checks the request's credentials. It returns an EUNAUTHORIZED
// error when authentication is enabled and no presented credential matches.
func (a *Auth) Authorize(r *http.Request) error {
	if !a.Enabled() {
		return nil
	}

	if key := apiKeyFrom(r); key != "" {
		for _, want := range a.APIKeys {
			if equal(key, want) {
				return nil
			}
		}
	}

	if a.BasicUsername != "" {
		if user, pass, ok := r.BasicAuth(); ok {
			if equal(user, a.BasicUsername) && equal(pass, a.BasicPassword) {
				return nil
			}
		}
	}

	return webinsight.Errorf(webinsight.EUNAUTHORIZED, "valid API key or credentials required")
}

func apiKeyFrom(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	return r.URL.Query().Get("api_key")
}

// equal compares credentials in constant time.
func equal(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
