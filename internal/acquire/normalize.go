package acquire

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// Normalize collapses noisy whitespace in decoded page text.
// Conservative: keeps line breaks; collapses >2 newlines into a single blank line.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// TruncateRunes cuts s to at most max characters.
func TruncateRunes(s string, max int) (string, bool) {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s, false
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i], true
		}
		n++
	}
	return s, false
}

// pageCollector concatenates page text in page order, stopping once the
// accumulated length exceeds maxChars.
type pageCollector struct {
	maxChars int
	parts    []string
	chars    int
	pages    int
}

func (c *pageCollector) full() bool {
	return c.maxChars > 0 && c.chars > c.maxChars
}

func (c *pageCollector) add(page string) {
	c.pages++
	page = Normalize(page)
	if page == "" {
		return
	}
	if len(c.parts) > 0 {
		c.chars++ // newline separator
	}
	c.parts = append(c.parts, page)
	c.chars += utf8.RuneCountInString(page)
}

func (c *pageCollector) text() (string, bool) {
	return TruncateRunes(strings.Join(c.parts, "\n"), c.maxChars)
}
