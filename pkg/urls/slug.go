// ABOUTME: Slug derivation for item titles
// ABOUTME: Transliterates accented Latin characters and produces hyphenated ASCII slugs

package urls

import (
	"regexp"
	"strings"
)

// Accented-Latin source characters and their ASCII targets, index-aligned.
const (
	slugFrom = "àáâãäåāăąçćčďđèéêëēĕėęěìíîïĩīĭįñńňòóôõöøōŏőŕřśšşťùúûüũūŭůűýÿžźż"
	slugTo   = "aaaaaaaaacccddeeeeeeeeeiiiiiiiinnnooooooooorrssstuuuuuuuuuyyzzz"
)

var (
	slugTransliterate = func() *strings.Replacer {
		from := []rune(slugFrom)
		to := []rune(slugTo)
		pairs := make([]string, 0, len(from)*2)
		for i := range from {
			pairs = append(pairs, string(from[i]), string(to[i]))
		}
		return strings.NewReplacer(pairs...)
	}()

	slugWhitespace = regexp.MustCompile(`\s+`)
	slugInvalid    = regexp.MustCompile(`[^\w\-]+`)
	slugHyphenRun  = regexp.MustCompile(`\-\-+`)
)

// Slugify derives a URL slug from a title: lower-cased, accents
// transliterated to ASCII, whitespace runs replaced by hyphens, remaining
// non-word characters stripped, repeated hyphens collapsed and edge
// hyphens trimmed. The slug is informational only and never resolves
// identity.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugTransliterate.Replace(slug)
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = slugHyphenRun.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return slug
}
