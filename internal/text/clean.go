// Package text provides cleanup and tag normalization helpers for poem content.
package text

import "strings"

// entityReplacer decodes the HTML entities that commonly survive in scraped
// poem fragments. Unknown entities pass through unchanged.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&#8217;", "'",
	"&#8216;", "'",
	"&#8220;", "\"",
	"&#8221;", "\"",
	"&#8212;", "—",
	"&#8211;", "–",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", "\"",
)

// Clean decodes common HTML entities and trims surrounding whitespace.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(entityReplacer.Replace(s))
}
