package leadfilter

import (
	"net/url"
	"strings"
)

// Hostname extracts the host part of a website URL, without port.
// URLs lacking a scheme are read as http. Input that does not parse is
// returned trimmed but otherwise unchanged.
func Hostname(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "http://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return strings.ToLower(u.Hostname())
}
