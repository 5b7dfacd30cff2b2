// Package markup reads attributes out of the XML-like tags models emit.
//
// It is intentionally not an XML parser: only name="value" pairs with double
// quotes are understood and anything else in the tag is skipped. Malformed
// input never produces an error, it just yields fewer attributes.
package markup

import (
	"regexp"
	"strings"
)

var attrRe = regexp.MustCompile(`(?:^|[\s<])([A-Za-z_][-A-Za-z0-9_:.]*)\s*=\s*"([^"]*)"`)

// Attributes returns every double-quoted attribute in tag. When a name
// appears more than once the first value wins.
func Attributes(tag string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrRe.FindAllStringSubmatch(tag, -1) {
		name := strings.ToLower(m[1])
		if _, ok := attrs[name]; ok {
			continue
		}
		attrs[name] = m[2]
	}
	return attrs
}

// Attr looks up a single attribute by name. Missing and empty values both
// report false so callers can fall back to a default.
func Attr(tag, name string) (string, bool) {
	v, ok := Attributes(tag)[strings.ToLower(name)]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// AttrOr is Attr with a fallback value.
func AttrOr(tag, name, fallback string) string {
	if v, ok := Attr(tag, name); ok {
		return v
	}
	return fallback
}
