package pipeline

import "strings"

// Classify maps a declared Content-Type header value to an analyzer variant.
// Matching is by substring containment in a fixed priority order; anything
// unrecognized falls through to the text variant, so classification never
// fails.
func Classify(contentType string) ContentKind {
	ct := strings.ToLower(contentType)

	switch {
	case strings.Contains(ct, "text/html"):
		return KindHTML
	case strings.Contains(ct, "application/json"):
		return KindJSON
	case strings.Contains(ct, "text/css"):
		return KindCSS
	case strings.Contains(ct, "javascript"):
		return KindJavaScript
	default:
		return KindText
	}
}
