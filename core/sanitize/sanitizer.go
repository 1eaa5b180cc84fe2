// ABOUTME: HTML sanitizer for admin-submitted item descriptions
// ABOUTME: Allow-list policy that keeps show-note markup and the embedded bracket directives

package sanitize

import "github.com/microcosm-cc/bluemonday"

// Sanitizer cleans rich-text descriptions before they are persisted.
// The embedded [meta ...] and [LANG] directives are plain text, not
// markup, so they pass through untouched.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds the description policy: common show-note elements
// and safe link/image attributes, everything else stripped. Script and
// style content and on* event attributes are removed by the allow list.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("style").OnElements("p", "span", "blockquote", "div")
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("target").OnElements("a")

	return &Sanitizer{policy: p}
}

// Sanitize returns the cleaned HTML. Empty input yields an empty string,
// and the same input always yields the same output.
func (s *Sanitizer) Sanitize(rawHTML string) string {
	if rawHTML == "" {
		return ""
	}
	return s.policy.Sanitize(rawHTML)
}
