package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving it from the
// instance when not explicitly configured. Used as the metrics and log label.
func normalizeProviderName(raw string, provider providers.GameProvider) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return strings.ToLower(raw)
	}
	if named, ok := provider.(interface{ Name() string }); ok && named.Name() != "" {
		return strings.ToLower(named.Name())
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
