package ucquery

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// assigned holds all code points assigned in the Unicode version Go knows.
// It is nil if x/text does not carry tables for that version.
var assigned = rangetable.Assigned(unicode.Version)

func isAssigned(r rune) bool {
	if assigned != nil {
		return unicode.Is(assigned, r)
	}
	return unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z, unicode.C)
}

// IsPrintable reports whether s consists of graphic characters only. Control,
// format, private-use, surrogate and unassigned code points are not
// printable, and neither are separators other than the plain space.
func IsPrintable(s string) bool {
	for _, r := range s {
		switch {
		case !isAssigned(r):
			return false
		case unicode.Is(unicode.C, r):
			return false
		case unicode.Is(unicode.Zs, r) && r != ' ':
			return false
		case unicode.Is(unicode.Zl, r) || unicode.Is(unicode.Zp, r):
			return false
		}
	}
	return true
}

// Printify returns s unchanged if it is printable. Otherwise it returns s with
// every non-ASCII or non-printable code point escaped: \t, \n, \r, \\, \xNN,
// \uNNNN or \UNNNNNNNN.
func Printify(s string) string {
	if IsPrintable(s) {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r >= 0x20 && r < 0x7F:
			sb.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			fmt.Fprintf(&sb, `\U%08x`, r)
		}
	}
	return sb.String()
}
