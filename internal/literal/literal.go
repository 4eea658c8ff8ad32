// Package literal renders raw characters and strings as valid Java
// character and string literals.
package literal

import (
	"fmt"
	"strings"
	"unicode"

	"fortio.org/safecast"
)

// EscapeChar returns the shortest escape for r inside a literal delimited
// by delim ('\'' for char literals, '"' for string literals). The delimiter
// quote is escaped, the other quote kind is left bare. Control characters
// without a short form become \uXXXX escapes (a surrogate pair for
// supplementary code points).
func EscapeChar(r rune, delim byte) string {
	switch r {
	case '\b':
		return `\b`
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\f':
		return `\f`
	case '\r':
		return `\r`
	case '\\':
		return `\\`
	case '\'':
		if delim == '\'' {
			return `\'`
		}
		return "'"
	case '"':
		if delim == '"' {
			return `\"`
		}
		return `"`
	}
	if unicode.IsControl(r) || !unicode.IsPrint(r) {
		return unicodeEscape(r)
	}
	return string(r)
}

// unicodeEscape renders r as one \uXXXX escape, or two for code points
// beyond the basic multilingual plane (Java chars are UTF-16 code units).
func unicodeEscape(r rune) string {
	if r <= 0xffff {
		unit, err := safecast.Conv[uint16](r)
		if err != nil {
			unit = 0xfffd
		}
		return fmt.Sprintf(`\u%04x`, unit)
	}
	v := r - 0x10000
	hi := 0xd800 + (v >> 10)
	lo := 0xdc00 + (v & 0x3ff)
	return fmt.Sprintf(`\u%04x\u%04x`, hi, lo)
}

// QuoteString renders s as a double-quoted Java string literal. An embedded
// newline (except a trailing one) closes the current segment and reopens a
// new one on the next line, prefixed by indent and a concatenation
// operator, so multi-line input stays a valid, readable expression.
func QuoteString(s, indent string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	runes := []rune(s)
	for i, r := range runes {
		if r == '\n' && i+1 < len(runes) {
			b.WriteString("\\n\"\n")
			b.WriteString(indent)
			b.WriteString("+ \"")
			continue
		}
		b.WriteString(EscapeChar(r, '"'))
	}
	b.WriteByte('"')
	return b.String()
}

// QuoteChar renders r as a single-quoted Java character literal.
func QuoteChar(r rune) string {
	return "'" + EscapeChar(r, '\'') + "'"
}
