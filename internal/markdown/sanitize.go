package markdown

import "strings"

var safeURLPrefixes = []string{
	"http://",
	"https://",
	"mailto:",
	"ftp://",
	"ftps://",
}

// SanitizeURL returns url unchanged when it uses an allowed scheme or is a
// relative reference, and "#" otherwise.
func SanitizeURL(url string) string {
	trimmed := strings.TrimSpace(url)
	lower := strings.ToLower(trimmed)
	for _, prefix := range safeURLPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return url
		}
	}
	if isRelativeURL(trimmed) {
		return url
	}
	return "#"
}

func isRelativeURL(trimmed string) bool {
	if trimmed == "" {
		return true
	}
	switch trimmed[0] {
	case '/', '#', '?', '.':
		return true
	}
	return !strings.Contains(trimmed, ":") && !strings.Contains(trimmed, "//")
}
