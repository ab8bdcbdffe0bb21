// Package sanitize cleans user-supplied text before it is persisted.
// Event descriptions and discussion messages may carry basic formatting;
// every other string field is reduced to plain text.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy removes all HTML tags and attributes.
	strictPolicy = bluemonday.StrictPolicy()

	// ugcPolicy allows safe user-generated formatting (<p>, <b>, <i>, <em>,
	// <strong>, <a>, lists, <br>) and strips scripts and event handlers.
	ugcPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML and trims surrounding whitespace. Use for names,
// titles, addresses and other plain-text fields.
func Text(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}

// HTML sanitizes rich text, keeping safe formatting tags. Use for event
// descriptions and discussion message bodies.
func HTML(input string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(input))
}
