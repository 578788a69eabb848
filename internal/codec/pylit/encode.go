package pylit

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EncodeStrings writes a list of strings in literal notation, e.g. ['Drama', "Ma'am"].
// The output decodes back to the same strings.
func EncodeStrings(items []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		Quote(&b, s)
	}
	b.WriteByte(']')
	return b.String()
}

// Quote writes s as a quoted string literal. Single quotes are preferred; double
// quotes are used when s contains a single quote and no double quote.
// Bytes that are not valid UTF-8 are written as is.
func Quote(b *strings.Builder, s string) {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	b.WriteByte(quote)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size == 1:
			// Invalid bytes pass through; the decoder copies unescaped bytes verbatim.
			b.WriteByte(s[i-1])
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteByte(quote)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(b, `\x%02x`, r)
		case !unicode.IsPrint(r) && r > 0x7f:
			if r > 0xffff {
				fmt.Fprintf(b, `\U%08x`, r)
			} else {
				fmt.Fprintf(b, `\u%04x`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
}
