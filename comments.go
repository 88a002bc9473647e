package dtoverlay

import (
	"regexp"
	"strings"
)

const spdxPrefix = "SPDX-License-Identifier:"

// copyrightNotice matches "Copyright" followed by the end of the line,
// whitespace, ':', a digit, "(c)" or '©'.
var copyrightNotice = regexp.MustCompile(`(?i)^copyright(?:$|[\s:0-9(©])`)

// isLicenseLine reports whether a comment line is license boilerplate.
func isLicenseLine(text string) bool {
	return strings.HasPrefix(text, spdxPrefix) || copyrightNotice.MatchString(text)
}

// StripComments returns src with all // and /* */ comments removed.
// The result has the same number of lines as src.
func StripComments(src string) string {
	code, _ := scanComments(src)
	return strings.Join(code, "\n")
}

// CommentText returns only the comment text of src, one output line per
// input line. Lines without comments are empty. Comment markers and the
// leading '*' decoration of block comment lines are removed.
func CommentText(src string) string {
	_, comments := scanComments(src)
	for i, c := range comments {
		comments[i] = cleanComment(c)
	}
	return strings.Join(comments, "\n")
}

// Description returns the first non-empty comment line of src that is
// neither license boilerplate (an SPDX identifier or a copyright notice)
// nor a trailing comment after code.
// It returns "" if src has no such line.
func Description(src string) string {
	code, comments := scanComments(src)
	for i, c := range comments {
		if strings.TrimSpace(code[i]) != "" {
			continue
		}
		text := cleanComment(c)
		if text == "" || isLicenseLine(text) {
			continue
		}
		return text
	}
	return ""
}

// scanComments splits src into a code channel and a comment channel,
// each holding one entry per input line.
//
// Block comments may span lines and never merge with one another.
// Comment markers inside double-quoted strings are treated as code.
func scanComments(src string) (code, comments []string) {
	var c, m strings.Builder
	var inBlock, inString, escaped bool

	endLine := func() {
		code = append(code, c.String())
		comments = append(comments, m.String())
		c.Reset()
		m.Reset()
		// DTS strings never span lines.
		inString, escaped = false, false
	}

	for i := 0; i < len(src); i++ {
		ch := src[i]
		if ch == '\n' {
			endLine()
			continue
		}

		switch {
		case inBlock:
			if ch == '*' && i+1 < len(src) && src[i+1] == '/' {
				inBlock = false
				i++
				continue
			}
			m.WriteByte(ch)
		case inString:
			c.WriteByte(ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
		case ch == '"':
			inString = true
			c.WriteByte(ch)
		case ch == '/' && i+1 < len(src) && src[i+1] == '/':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src)
			} else {
				end += i
			}
			m.WriteString(src[i+2 : end])
			i = end - 1
		case ch == '/' && i+1 < len(src) && src[i+1] == '*':
			inBlock = true
			i++
		default:
			c.WriteByte(ch)
		}
	}
	endLine()

	return code, comments
}

// cleanComment trims whitespace and block comment decoration.
func cleanComment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "*")
	return strings.TrimSpace(s)
}
