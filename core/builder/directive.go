// ABOUTME: Parsers for the ad-hoc micro-format embedded in item descriptions
// ABOUTME: Extracts the [meta ...] directive and [LANG]...[/LANG] content blocks

package builder

import (
	"regexp"
	"strings"
)

// DefaultMetadataType classifies items whose description carries no
// metadata directive.
const DefaultMetadataType = "geral"

var (
	directivePattern = regexp.MustCompile(`(?s)\[meta\s+type="([^"]+)"\s+tags="([^"]*)"(?:\s+date="([^"]*)")?\]\s*`)

	// typeScanPattern is the lightweight scan used for filtering items by
	// type without running the full directive parser.
	typeScanPattern = regexp.MustCompile(`\[meta\s+type="([^"]+)"`)

	langOpenPattern = regexp.MustCompile(`(?i)\[(PT|EN|ES|LA)\]`)
)

// Directive is the structured result of the metadata-directive pass.
type Directive struct {
	Type string
	Tags []string

	// Date is nil when the directive carried no (or an empty) date attribute
	Date *string
}

// ExtractDirective scans a description body for the leading
// [meta type="..." tags="..." date="..."] directive. On a match it returns
// the parsed directive and the body with the directive removed and
// trimmed. A body without a directive comes back unchanged with the
// default classification; malformed directives are left in place rather
// than rejected.
//
// Tags are comma-split and trimmed without empty filtering, so a trailing
// comma yields a trailing empty tag. That mirrors how stored descriptions
// have always been interpreted.
func ExtractDirective(body string) (Directive, string) {
	directive := Directive{
		Type: DefaultMetadataType,
		Tags: []string{},
	}

	loc := directivePattern.FindStringSubmatchIndex(body)
	if loc == nil {
		return directive, body
	}

	directive.Type = body[loc[2]:loc[3]]

	if rawTags := body[loc[4]:loc[5]]; rawTags != "" {
		parts := strings.Split(rawTags, ",")
		tags := make([]string, 0, len(parts))
		for _, t := range parts {
			tags = append(tags, strings.TrimSpace(t))
		}
		directive.Tags = tags
	}

	if loc[6] >= 0 {
		if date := body[loc[6]:loc[7]]; date != "" {
			directive.Date = &date
		}
	}

	remainder := strings.TrimSpace(body[:loc[0]] + body[loc[1]:])
	return directive, remainder
}

// Encode renders the directive in its canonical stored form. Splitting a
// description with ExtractDirective and prepending the encoded directive
// to the remainder parses back to the same directive.
func (d Directive) Encode() string {
	var b strings.Builder
	b.WriteString(`[meta type="`)
	b.WriteString(d.Type)
	b.WriteString(`" tags="`)
	b.WriteString(strings.Join(d.Tags, ","))
	b.WriteString(`"`)
	if d.Date != nil {
		b.WriteString(` date="`)
		b.WriteString(*d.Date)
		b.WriteString(`"`)
	}
	b.WriteString(`]`)
	return b.String()
}

// ExtractLanguageBlocks scans a directive-free body for non-overlapping
// [LANG]...[/LANG] spans and returns the trimmed inner HTML keyed by
// lower-case language code. Spans are matched case-insensitively and in
// order; a repeated language code keeps the last span. An opening tag with
// no matching close is skipped. The map is empty when no spans matched.
func ExtractLanguageBlocks(body string) map[string]string {
	blocks := make(map[string]string)

	offset := 0
	for offset < len(body) {
		loc := langOpenPattern.FindStringSubmatchIndex(body[offset:])
		if loc == nil {
			break
		}

		lang := strings.ToLower(body[offset+loc[2] : offset+loc[3]])
		after := offset + loc[1]

		closeTag := "[/" + lang + "]"
		closeIdx := strings.Index(strings.ToLower(body[after:]), closeTag)
		if closeIdx < 0 {
			offset = after
			continue
		}

		blocks[lang] = strings.TrimSpace(body[after : after+closeIdx])
		offset = after + closeIdx + len(closeTag)
	}

	return blocks
}

// ScanType returns the directive type of a description without running
// the full parser, for filtering purposes. Descriptions without a
// directive report the default type.
func ScanType(description string) string {
	m := typeScanPattern.FindStringSubmatch(description)
	if m == nil {
		return DefaultMetadataType
	}
	return m[1]
}
