// Package htmlsanitize strips unsafe HTML from admin-entered product
// copy (descriptions, detail bullets) before it is stored. The policy
// allows common formatting, lists, headings, tables, and safe links;
// scripts, event handlers, and javascript: URLs are removed.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Extra inline formatting used in product copy.
	p.AllowElements("u", "s", "sub", "sup", "mark")

	// Tables with layout attributes (spec sheets).
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")

	return p
}

// Sanitize returns s with disallowed HTML removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeAll sanitizes each string in a slice, in place semantics on a
// fresh slice. Nil input returns nil.
func SanitizeAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Sanitize(s)
	}
	return out
}
