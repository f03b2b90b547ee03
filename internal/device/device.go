// Package device turns raw User-Agent strings into the short device
// description stored on audit records. The raw string is kept as well; the
// parsed form is what the log viewer shows.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent renders a user agent as "<Browser> <major> on <OS>".
// Unknown or empty agents degrade to readable fallbacks, never an error.
func ParseUserAgent(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Unknown Device"
	}

	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		name = "Unknown Browser"
	}
	if idx := strings.Index(version, "."); idx > 0 {
		version = version[:idx]
	}

	os := ua.OS()
	if os == "" {
		os = ua.Platform()
	}
	if os == "" {
		os = "Unknown OS"
	}

	parts := []string{name}
	if version != "" {
		parts = append(parts, version)
	}
	parts = append(parts, "on", os)
	return strings.Join(parts, " ")
}
