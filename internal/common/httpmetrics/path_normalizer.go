package httpmetrics

import (
	"regexp"
	"strings"
)

var uuidRegex = regexp.MustCompile(`(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

var knownRoots = map[string]bool{
	"":          true,
	"register":  true,
	"login":     true,
	"logout":    true,
	"dashboard": true,
	"toggle":    true,
	"delete":    true,
	"edit":      true,
	"health":    true,
	"metrics":   true,
}

// NormalizePath collapses identifiers and unknown routes so that metric
// label cardinality stays bounded.
func NormalizePath(path string) string {
	if path == "" || path == "/" {
		return "/"
	}

	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if !knownRoots[parts[0]] {
		return "/{other}"
	}

	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			if uuidRegex.MatchString(parts[i]) {
				parts[i] = "{id}"
			} else {
				parts[i] = "{param}"
			}
		}
	}

	return "/" + strings.Join(parts, "/")
}
