package session

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`^[a-z0-9_]{3,50}$`)

// NormalizeTag trims whitespace and strips one leading "@".
func NormalizeTag(tag string) string {
	return strings.TrimPrefix(strings.TrimSpace(tag), "@")
}

// ValidateTag reports whether the normalized tag matches the handle
// pattern. It is a pure function: the UI uses it for live feedback and the
// session manager uses it to gate identity operations, with identical
// accept/reject decisions in both call sites.
func ValidateTag(tag string) bool {
	return tagPattern.MatchString(NormalizeTag(tag))
}
