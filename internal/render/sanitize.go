package render

import "strings"

// replacements maps common non-ASCII punctuation from upstream text
// (headlines, model output) onto ASCII equivalents the core fonts carry.
var replacements = map[rune]string{
	'‘': "'",
	'’': "'",
	'“': `"`,
	'”': `"`,
	'–': "-",
	'—': "-",
	'…': "...",
	' ': " ",
	'•': "-",
}

// SanitizeText reduces free-form text to the printable ASCII set before
// PDF layout. Known punctuation variants are mapped to ASCII, newlines
// survive for multi-line cells, everything else unprintable is dropped.
func SanitizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 0x20 && r <= 0x7e:
			b.WriteRune(r)
		case r == '\n':
			b.WriteRune(r)
		default:
			if repl, ok := replacements[r]; ok {
				b.WriteString(repl)
			}
		}
	}
	return strings.TrimSpace(b.String())
}
