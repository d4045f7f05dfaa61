package constants

import "strings"

// Document formats understood by the acquirer.
const (
	PDF   = "PDF"
	SHEET = "SHEET"
)

// SheetExtensions holds the extensions routed to the spreadsheet path.
// Everything else is treated as PDF-like text.
var SheetExtensions = map[string]struct{}{
	"xls":  {},
	"xlsx": {},
}

// ScanExtensions are the document types picked up when building a
// manifest from a directory.
var ScanExtensions = []string{"pdf", "xls", "xlsx"}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// IsSheetExt reports whether ext (with or without dot) is a spreadsheet extension.
func IsSheetExt(ext string) bool {
	_, ok := SheetExtensions[NormalizeExt(ext)]
	return ok
}

// IsLegacyXLS reports whether ext is the binary (BIFF) Excel format.
func IsLegacyXLS(ext string) bool {
	return NormalizeExt(ext) == "xls"
}

// MapExtToFormat maps a file extension to a document format.
// Unknown extensions fall through to PDF so they take the text path.
func MapExtToFormat(ext string) string {
	if IsSheetExt(ext) {
		return SHEET
	}
	return PDF
}
