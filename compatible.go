package dtoverlay

import (
	"bytes"
	"regexp"
	"strings"
)

const compatibleProperty = "compatible"

var quotedString = regexp.MustCompile(`"((?:[^"\\\n]|\\.)*)"`)

// CompatibleList returns the strings of the root node's compatible
// property, in source order. Compatible properties of child nodes are
// ignored. It returns nil if the root node has no compatible property.
//
// If the property is assigned more than once, the last assignment wins,
// as it does when the source is compiled.
func CompatibleList(src string) []string {
	var list []string
	for _, tok := range tokenize(RootNodeText(src)) {
		stmt, ok := strings.CutSuffix(tok, ";")
		if !ok {
			continue
		}
		name, value, ok := strings.Cut(stmt, "=")
		if !ok || strings.TrimSpace(name) != compatibleProperty {
			continue
		}
		list = nil
		for _, m := range quotedString.FindAllStringSubmatch(value, -1) {
			list = append(list, m[1])
		}
	}
	return list
}

// ParsePlatformCompatible splits a NUL-separated compatible record, as
// exposed by firmware, into its strings. Empty records are dropped.
// Records are kept verbatim except for a trailing newline at the end of
// data, which hand-written files often carry.
func ParsePlatformCompatible(data []byte) []string {
	data = bytes.TrimRight(data, "\r\n")
	var list []string
	for _, rec := range bytes.Split(data, []byte{0}) {
		if len(rec) == 0 {
			continue
		}
		list = append(list, string(rec))
	}
	return list
}

// Intersect returns the first entry of overlay that also appears in
// platform. Matching is exact and case-sensitive.
func Intersect(overlay, platform []string) (string, bool) {
	if len(overlay) == 0 || len(platform) == 0 {
		return "", false
	}
	set := make(map[string]struct{}, len(platform))
	for _, p := range platform {
		set[p] = struct{}{}
	}
	for _, o := range overlay {
		if _, ok := set[o]; ok {
			return o, true
		}
	}
	return "", false
}
