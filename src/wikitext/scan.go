package wikitext

import (
	"regexp"
	"strings"
)

// replaceInnermost substitutes innermost open...close spans until none are
// left. fn receives the text between the delimiters and returns the
// replacement, or false to leave the span untouched. Replacing an inner span
// exposes the next enclosing one, so nested constructs resolve from the
// inside out in a single call.
func replaceInnermost(s, open, close string, fn func(inner string) (string, bool)) string {
	pos := 0
	for pos <= len(s) {
		c := strings.Index(s[pos:], close)
		if c < 0 {
			return s
		}
		c += pos

		o := strings.LastIndex(s[:c], open)
		if o < 0 {
			pos = c + 1
			continue
		}

		replacement, ok := fn(s[o+len(open) : c])
		if !ok {
			pos = c + 1
			continue
		}

		s = s[:o] + replacement + s[c+len(close):]
		pos = o
	}
	return s
}

// replaceUntilStable applies re repeatedly until the text stops changing
func replaceUntilStable(s string, re *regexp.Regexp, fn func(groups []string) string) string {
	for {
		next := replaceSubmatchFunc(s, re, fn)
		if next == s {
			return s
		}
		s = next
	}
}

// replaceSubmatchFunc is ReplaceAllStringFunc with access to capture groups
func replaceSubmatchFunc(s string, re *regexp.Regexp, fn func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		groups := make([]string, len(m)/2)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = s[m[2*i]:m[2*i+1]]
			}
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(fn(groups))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// trailingSpace returns the run of whitespace at the end of s
func trailingSpace(s string) string {
	trimmed := strings.TrimRight(s, " \t\r\n")
	return s[len(trimmed):]
}

// markedIDs returns the node indices referenced by placeholders in s
func markedIDs(s string) []int {
	var ids []int
	for {
		i := strings.Index(s, IncludeMark)
		if i < 0 {
			return ids
		}
		s = s[i+1:]
		j := strings.Index(s, EndMark)
		if j < 0 {
			return ids
		}
		if n, ok := atoi(s[:j]); ok {
			ids = append(ids, n)
		}
		s = s[j+1:]
	}
}

func atoi(s string) (int, bool) {
	if s == "" || len(s) > 9 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
