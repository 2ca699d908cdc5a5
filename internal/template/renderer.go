package template

import "regexp"

// The template corpus uses two markup forms, preserved exactly for
// compatibility with existing template authors:
//
//	{{identifier}}                                  variable substitution
//	{{#if flag}}truthy{{else}}falsy{{/if}}          conditional block
//
// Conditionals are resolved in a single non-nested regex pass; nested
// {{#if}} blocks are not supported. This is a known limitation of the
// format, kept rather than papered over.
var (
	condPattern = regexp.MustCompile(`(?s)\{\{#if\s+([A-Za-z_][A-Za-z0-9_]*)\s*\}\}(.*?)(?:\{\{else\}\}(.*?))?\{\{/if\}\}`)
	varPattern  = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)
)

// Render substitutes variables and resolves conditional blocks in text.
// It is a pure function and never fails: unmatched {{placeholders}} are
// left verbatim so partially-parameterized templates render without error,
// and unknown flag names are treated as falsy.
//
// Conditionals are resolved before substitutions so flag blocks may carry
// placeholders of their own.
func Render(text string, vars map[string]string, flags map[string]bool) string {
	out := condPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := condPattern.FindStringSubmatch(m)
		if flags[sub[1]] {
			return sub[2]
		}
		return sub[3]
	})

	return varPattern.ReplaceAllStringFunc(out, func(m string) string {
		sub := varPattern.FindStringSubmatch(m)
		if v, ok := vars[sub[1]]; ok {
			return v
		}
		return m
	})
}
