package text

import (
	"regexp"
	"strings"
	"unicode"
)

// tagSplitter matches a comma or semicolon with optional trailing space, or a
// run of two or more spaces.
var tagSplitter = regexp.MustCompile(`[,;]\s*|\s{2,}`)

// NormalizeTags splits free-form tag input on commas, semicolons, or runs of
// spaces, lowercases and deduplicates the candidates, and resolves each one
// against the known vocabulary: a case-insensitive match emits the known
// tag's canonical casing, anything else is emitted with its first letter
// capitalized. Order of first appearance is preserved.
func NormalizeTags(input string, knownTags []string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})
	for _, candidate := range tagSplitter.Split(input, -1) {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if candidate == "" {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}

		matched := false
		for _, known := range knownTags {
			if candidate == strings.ToLower(known) {
				out = append(out, known)
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, capitalize(candidate))
		}
	}
	return out
}

func capitalize(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
