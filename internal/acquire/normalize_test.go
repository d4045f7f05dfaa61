package acquire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf and tabs", "a\r\nb\tc", "a\nb c"},
		{"spaces", "Total    £1,000   ", "Total £1,000"},
		{"blank lines", "a\n\n\n\n\nb", "a\n\nb"},
		{"trim", "\n  hello  \n", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	s, cut := TruncateRunes("££££", 2)
	assert.Equal(t, "££", s)
	assert.True(t, cut)

	s, cut = TruncateRunes("abc", 3)
	assert.Equal(t, "abc", s)
	assert.False(t, cut)

	s, cut = TruncateRunes("abc", 0)
	assert.Equal(t, "abc", s)
	assert.False(t, cut)
}

func TestPageCollector_StopsWhenFull(t *testing.T) {
	c := pageCollector{maxChars: 5}
	c.add("abcd")
	assert.False(t, c.full())
	c.add("   ")
	c.add("efgh")
	assert.True(t, c.full())
	text, truncated := c.text()
	assert.Equal(t, "abcd\n", text)
	assert.True(t, truncated)
	assert.Equal(t, 3, c.pages)
}

func TestUnescapePDFString(t *testing.T) {
	assert.Equal(t, "(a)\nb", string(unescapePDFString([]byte(`\(a\)\nb`))))
	assert.Equal(t, []byte{0xA3, '5'}, unescapePDFString([]byte(`\2435`)))
}

func TestTextFromContentStream(t *testing.T) {
	stream := "BT\n/F1 12 Tf\n72 700 Td\n(Grand total \\24345,000) Tj\nT*\n[(Day ) -250 (3)] TJ\nET\n"
	got := textFromContentStream([]byte(stream))
	assert.Contains(t, got, "Grand total £45,000")
	assert.Contains(t, got, "Day 3")
}
