package nav

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugPattern accepts lowercase alphanumeric segments with hyphens, separated
// by single slashes. The first segment must start with an alphanumeric.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*(/[a-z0-9-]+)*$`)

// ValidSlug reports whether s is a normalized slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// SuggestSlug folds s into the normalized slug grammar: accents are stripped,
// letters lowercased, runs of other characters collapsed into single hyphens
// and empty segments dropped. It returns "" when nothing usable remains.
func SuggestSlug(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	folded = cases.Lower(language.Und).String(folded)

	segments := make([]string, 0, strings.Count(folded, "/")+1)
	for _, seg := range strings.Split(folded, "/") {
		var b strings.Builder
		pendingDash := false
		for _, r := range seg {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				if pendingDash && b.Len() > 0 {
					b.WriteByte('-')
				}
				pendingDash = false
				b.WriteRune(r)
				continue
			}
			pendingDash = true
		}
		if b.Len() > 0 {
			segments = append(segments, b.String())
		}
	}

	out := strings.Join(segments, "/")
	if !ValidSlug(out) {
		return ""
	}
	return out
}
