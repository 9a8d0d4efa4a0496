package style

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)

// parseNumber reads the numeric prefix of s the way CSS engines do:
// "12.5px" is 12.5 and "px" is not a number.
func parseNumber(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

var anyNumber = regexp.MustCompile(`[-+]?(\d+\.?\d*|\.\d+)`)

// firstNumber returns the first numeric token anywhere in s.
func firstNumber(s string) (float64, bool) {
	m := anyNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	return v, err == nil
}

// isLength reports whether tok is a CSS length such as "4px", "-2px" or "0".
func isLength(tok string) bool {
	if tok == "0" {
		return true
	}
	n := leadingNumber.FindString(tok)
	if n == "" {
		return false
	}
	switch tok[len(n):] {
	case "px", "em", "rem", "pt", "":
		return true
	}
	return false
}

// splitTopLevel splits s on sep, ignoring separators nested in parentheses.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

// fieldsTopLevel splits s on whitespace outside parentheses.
func fieldsTopLevel(s string) []string {
	var out []string
	for _, f := range splitTopLevel(strings.Join(strings.Fields(s), " "), ' ') {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
