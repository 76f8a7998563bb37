package graph

import (
	"regexp"
	"strings"
)

// profileHref matches a single-segment, root-relative path with a trailing
// slash: "/name/".
var profileHref = regexp.MustCompile(`^/[^/]+/$`)

// IsProfileHref reports whether h is the link to a profile
func IsProfileHref(h string) bool {
	return profileHref.MatchString(h)
}

// Normalize strips every "/" from h
func Normalize(h string) string {
	return strings.ReplaceAll(h, "/", "")
}

// ExtractIdentifiers filters hrefs down to profile links and returns their
// identifiers, deduplicated in first-seen order.
func ExtractIdentifiers(hrefs []string) []string {
	seen := make(map[string]bool, len(hrefs))
	ids := make([]string, 0, len(hrefs))

	for _, h := range hrefs {
		if !IsProfileHref(h) {
			continue
		}
		id := Normalize(h)
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
