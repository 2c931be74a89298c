package slug

import (
	"regexp"
	"strconv"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// FromName builds a URL-safe slug. Empty results fall back to "product".
func FromName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "product"
	}
	return s
}

// Unique returns FromName(s), suffixed with -2, -3... until taken reports false.
func Unique(s string, taken func(string) bool) string {
	base := FromName(s)
	candidate := base
	for i := 2; taken(candidate); i++ {
		candidate = base + "-" + strconv.Itoa(i)
	}
	return candidate
}
