package util

import "regexp"

// TemplatePlaceholder replaces every expression removed by StripTemplates.
const TemplatePlaceholder = "PLACEHOLDER"

var (
	jinjaVarPattern   = regexp.MustCompile(`\{\{[^}]*\}\}`)
	jinjaBlockPattern = regexp.MustCompile(`(?m)^[ \t]*\{%[^%]*%\}[ \t]*\n?`)
	jinjaComment      = regexp.MustCompile(`\{#[^#]*#\}`)
)

// StripTemplates makes a Jinja2-templated compose file parseable as plain
// YAML: block tags on their own line are dropped, comments removed and
// {{ var }} expressions replaced with TemplatePlaceholder.
func StripTemplates(content string) string {
	content = jinjaBlockPattern.ReplaceAllString(content, "")
	content = jinjaComment.ReplaceAllString(content, "")
	return jinjaVarPattern.ReplaceAllString(content, TemplatePlaceholder)
}
