// Package httpx holds HTTP middleware and request helpers for the site.
package httpx

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/portfolio/internal/platform/requestctx"
)

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID reuses an incoming X-Request-ID or assigns a new UUID, echoes it
// on the response and stores it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request. A nil logger uses log.Default.
func RequestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Printf("%s %s %d %s request_id=%s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond), requestctx.RequestIDFromContext(r.Context()))
		})
	}
}

// IsHTTPS reports whether the request arrived over TLS, directly or through a
// proxy that sets X-Forwarded-Proto.
func IsHTTPS(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}

// LocalPath returns raw when it is a same-site absolute path.
func LocalPath(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "", false
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host != "" || parsed.Scheme != "" {
		return "", false
	}
	return raw, true
}

// LocalReferer returns the path and query of the Referer header when it points
// at the same host, or fallback otherwise.
func LocalReferer(r *http.Request, fallback string) string {
	if r == nil {
		return fallback
	}
	raw := strings.TrimSpace(r.Header.Get("Referer"))
	if raw == "" {
		return fallback
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fallback
	}
	if parsed.Host != "" && !strings.EqualFold(parsed.Host, r.Host) {
		return fallback
	}
	target := parsed.Path
	if parsed.RawQuery != "" {
		target += "?" + parsed.RawQuery
	}
	if local, ok := LocalPath(target); ok {
		return local
	}
	return fallback
}

// WithQuery appends the request's query string to target.
func WithQuery(target string, r *http.Request) string {
	if r == nil || r.URL == nil || r.URL.RawQuery == "" {
		return target
	}
	return target + "?" + r.URL.RawQuery
}
