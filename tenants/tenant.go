package tenants

import (
	"regexp"
	"strings"
)

const (
	// DefaultID is the tenant used when none is configured or the given one is malformed.
	DefaultID = "public"

	// HeaderName is the request header carrying the active tenant.
	HeaderName = "X-Tenant-ID"

	// ValidationHint describes the accepted tenant id format to end users.
	ValidationHint = "Use 2 to 64 characters: lowercase letters, digits, hyphen (-) or underscore (_)."
)

// IDPattern is the external tenant id format: lowercase, 2-64 characters,
// starting with a letter or digit.
var IDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}$`)

// Sanitize trims and lowercases value, returning fallback when the result is empty.
// It does not validate.
func Sanitize(value, fallback string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return fallback
	}
	return normalized
}

// IsValid reports whether value, once sanitized, matches IDPattern.
func IsValid(value string) bool {
	return IDPattern.MatchString(Sanitize(value, ""))
}

// Normalize returns the sanitized tenant id, or fallback when it is empty or
// malformed. A malformed fallback degrades to DefaultID so the result always
// matches IDPattern.
//
// Invalid input is coerced rather than rejected; callers that need to fail
// closed should check IsValid first.
func Normalize(value, fallback string) string {
	if normalized := Sanitize(value, ""); IDPattern.MatchString(normalized) {
		return normalized
	}
	if fallback = Sanitize(fallback, ""); IDPattern.MatchString(fallback) {
		return fallback
	}
	return DefaultID
}
