// ABOUTME: HTML utilities for converting rich text to plain text
// ABOUTME: Strips tags and normalizes whitespace for description_text fields

package html

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// StripHTML removes markup from a string and normalizes whitespace.
// Script and style content is dropped entirely. On unparseable input the
// trimmed original is returned.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	doc.Find("script, style").Remove()
	text := doc.Text()

	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
