package acquire

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

// pdfcpuText decodes up to lim.MaxUnits pages in-process. It only sees text
// drawn with literal-string show operators, so it is a fallback for hosts
// without poppler rather than a replacement.
func pdfcpuText(path string, lim Limits) (RawText, error) {
	f, err := os.Open(path)
	if err != nil {
		return RawText{}, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return RawText{}, fmt.Errorf("pdfcpu read: %w", err)
	}

	last := ctx.PageCount
	if lim.MaxUnits > 0 && last > lim.MaxUnits {
		last = lim.MaxUnits
	}
	col := pageCollector{maxChars: lim.MaxChars}
	for pageNr := 1; pageNr <= last; pageNr++ {
		if col.full() {
			break
		}
		col.add(pageContentText(ctx, pageNr))
	}
	text, truncated := col.text()
	return RawText{Text: text, Units: col.pages, Method: BackendPdfcpu, Truncated: truncated}, nil
}

// pageContentText returns "" for pages without extractable text.
func pageContentText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return textFromContentStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// textFromContentStream walks content-stream operators line by line.
func textFromContentStream(data []byte) string {
	var sb strings.Builder
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			writeStrings(&sb, line)
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			sb.WriteByte('\n')
			writeStrings(&sb, line)
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case bytes.Equal(line, []byte("T*")), bytes.Equal(line, []byte("ET")):
			sb.WriteByte('\n')
		}
	}
	return printable(sb.String())
}

// Simple fonts use WinAnsiEncoding, which is close enough to cp1252 that
// the pound sign (octal 243) survives.
var winAnsi = charmap.Windows1252.NewDecoder()

func writeStrings(sb *strings.Builder, line []byte) {
	for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
		raw := unescapePDFString(m[1])
		if text, err := winAnsi.Bytes(raw); err == nil {
			sb.Write(text)
		} else {
			sb.Write(raw)
		}
	}
}

// unescapePDFString handles basic PDF escape sequences.
func unescapePDFString(raw []byte) []byte {
	var sb bytes.Buffer
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(c)
		default:
			if c < '0' || c > '7' {
				sb.WriteByte(c)
				continue
			}
			// octal escape, up to three digits
			val := int(c - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.Bytes()
}

func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || unicode.IsPrint(r) {
			return r
		}
		if unicode.IsSpace(r) {
			return ' '
		}
		return -1
	}, s)
}
