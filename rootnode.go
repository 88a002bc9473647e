package dtoverlay

import (
	"regexp"
	"strings"
)

// rootNodeStart matches "/ {" at the start of the text or after whitespace
// or ';'. Path references such as "&{/}" do not match.
var rootNodeStart = regexp.MustCompile(`(?:^|[\s;])/\s*\{`)

// RootNodeText returns the statements found directly inside the root node
// of an overlay source. Comments are stripped first, and the bodies of all
// child nodes are dropped, whatever their depth.
//
// If src has no root node, the whole comment-free text is filtered instead.
// Unbalanced braces give an unspecified result but never fail.
func RootNodeText(src string) string {
	return depthZero(rootBody(StripComments(src)))
}

// rootBody returns the text between the braces of the first root node.
func rootBody(code string) string {
	loc := rootNodeStart.FindStringIndex(code)
	if loc == nil {
		return code
	}
	start := loc[1]
	if end, ok := closingBrace(code, start); ok {
		return code[start:end]
	}
	return code[start:]
}

// closingBrace returns the index of the '}' that closes the block whose
// body starts at start.
func closingBrace(s string, start int) (int, bool) {
	depth := 0
	var inString, escaped bool
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"' || ch == '\n':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}

// depthZero keeps only the tokens of body that sit at brace depth zero.
// A token that opens a node counts as inside it.
func depthZero(body string) string {
	var b strings.Builder
	depth := 0
	for _, tok := range tokenize(body) {
		if opensNode(tok) {
			depth++
		}
		if depth == 0 {
			b.WriteString(tok)
		}
		if closesNode(tok) {
			depth--
		}
	}
	return b.String()
}

// tokenize splits s after every '{', '}' or ';' found outside a string.
// A '}' followed by ';' ends a single token. Path references such as
// "&{/soc/i2c}" stay inside the token that contains them. Text after the
// last terminator is returned as a final token.
func tokenize(s string) []string {
	var tokens []string
	var inString, escaped bool
	start := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"' || ch == '\n':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			if i > 0 && s[i-1] == '&' {
				if j := strings.IndexByte(s[i:], '}'); j >= 0 {
					i += j
				}
				continue
			}
			tokens = append(tokens, s[start:i+1])
			start = i + 1
		case '}':
			if j := skipSpace(s, i+1); j < len(s) && s[j] == ';' {
				i = j
			}
			tokens = append(tokens, s[start:i+1])
			start = i + 1
		case ';':
			tokens = append(tokens, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

func opensNode(tok string) bool {
	return strings.HasSuffix(tok, "{")
}

// closesNode reports whether tok ends with '}' or "};".
func closesNode(tok string) bool {
	tok = strings.TrimRight(strings.TrimSuffix(tok, ";"), " \t\r\n")
	return strings.HasSuffix(tok, "}")
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\r' || s[i] == '\n') {
		i++
	}
	return i
}
