package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeTitle lowercases a title and collapses its whitespace.
func NormalizeTitle(title string) string {
	title = strings.ToLower(title)
	title = strings.TrimSpace(title)
	return whitespaceRegex.ReplaceAllString(title, " ")
}

// ContainsTitle reports whether `label` contains `title`, ignoring case.
func ContainsTitle(label, title string) bool {
	return strings.Contains(strings.ToLower(label), strings.ToLower(title))
}

// TitleSimilarity scores how alike two titles are, from 0 to 1.
func TitleSimilarity(a, b string) float64 {
	a = NormalizeTitle(a)
	b = NormalizeTitle(b)
	if a == "" || b == "" {
		return 0
	}
	return matchr.JaroWinkler(a, b, false)
}
