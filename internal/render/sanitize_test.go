package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Apple reports record Q4 revenue of $94.9B",
			want: "Apple reports record Q4 revenue of $94.9B",
		},
		{
			name: "curly quotes mapped",
			in:   "Apple’s “best quarter ever”",
			want: `Apple's "best quarter ever"`,
		},
		{
			name: "dashes and ellipsis mapped",
			in:   "Revenue — up 6%…",
			want: "Revenue - up 6%...",
		},
		{
			name: "unknown runes dropped",
			in:   "Growth ↑ 10% \U0001F680",
			want: "Growth  10%",
		},
		{
			name: "newlines preserved",
			in:   "line one\nline two",
			want: "line one\nline two",
		},
		{
			name: "leading and trailing space trimmed",
			in:   "  padded  ",
			want: "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.in))
		})
	}
}
