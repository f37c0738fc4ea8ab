// Package requestutil holds request-scoped helpers shared by middleware and handlers.
package requestutil

import (
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HeaderRequestID is echoed back on every response.
const HeaderRequestID = "X-Request-ID"

var requestIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// newUUID is swapped in tests to exercise the fallback.
var newUUID = uuid.NewRandom

// SanitizeRequestID keeps a caller-supplied ID when it is short and URL-safe, otherwise mints one.
func SanitizeRequestID(incoming string) string {
	incoming = strings.TrimSpace(incoming)
	if requestIDPattern.MatchString(incoming) {
		return incoming
	}
	return NewRequestID()
}

// NewRequestID returns a random UUID, or a nanosecond timestamp when the RNG fails.
func NewRequestID() string {
	if id, err := newUUID(); err == nil {
		return id.String()
	}
	return "req-" + strconv.FormatInt(time.Now().UnixNano(), 36)
}

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection's remote host without its port.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
