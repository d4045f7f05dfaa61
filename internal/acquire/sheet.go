package acquire

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/production-feasibility/constants"
)

const methodExcelize = "excelize"

func (a *Acquirer) readSheet(ctx context.Context, path string, lim Limits) (RawText, error) {
	var warns []string
	if constants.IsLegacyXLS(filepath.Ext(path)) {
		hashHex, err := contentHash(path)
		if err != nil {
			return RawText{}, fmt.Errorf("hash %s: %w", filepath.Base(path), err)
		}
		out, w, cleanup, err := convertXLSToXLSX(ctx, a.runner, a.logger, a.cfg.XLSConverter, path, a.cfg.ArtifactCacheDir, hashHex)
		warns = append(warns, w...)
		if cleanup != nil {
			defer cleanup()
		}
		if err != nil {
			return RawText{Warnings: warns}, err
		}
		path = out
	}
	res, err := readFirstSheet(path, lim)
	res.Warnings = append(res.Warnings, warns...)
	return res, err
}

// readFirstSheet reads at most lim.MaxUnits rows of the first worksheet.
// Numeric cells keep their native value; date-formatted and text cells
// stay strings.
func readFirstSheet(path string, lim Limits) (RawText, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return RawText{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return RawText{}, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return RawText{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	res := RawText{Method: methodExcelize}
	var lines []string
	rowNr := 0
	for rows.Next() {
		rowNr++
		if lim.MaxUnits > 0 && rowNr > lim.MaxUnits {
			break
		}
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return RawText{}, fmt.Errorf("read row %d: %w", rowNr, err)
		}
		var row []Cell
		var parts []string
		for i, v := range cols {
			if strings.TrimSpace(v) == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(i+1, rowNr)
			if err != nil {
				continue
			}
			c := typedCell(f, sheet, axis, v)
			row = append(row, c)
			parts = append(parts, c.String())
		}
		res.Units = rowNr
		if len(row) == 0 {
			continue
		}
		res.Rows = append(res.Rows, row)
		lines = append(lines, strings.Join(parts, " "))
	}
	if err := rows.Error(); err != nil {
		return RawText{}, fmt.Errorf("iterate rows: %w", err)
	}

	res.Text, res.Truncated = TruncateRunes(strings.Join(lines, "\n"), lim.MaxChars)
	return res, nil
}

func typedCell(f *excelize.File, sheet, axis, raw string) Cell {
	typ, err := f.GetCellType(sheet, axis)
	if err != nil {
		return Cell{Raw: raw}
	}
	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || isDateFormatted(f, sheet, axis) {
			return Cell{Raw: raw}
		}
		return Cell{Raw: raw, Number: n, IsNumber: true}
	default:
		return Cell{Raw: raw}
	}
}

// isDateFormatted reports whether the cell's number format renders a date.
// Date serials would otherwise read as plausible amounts.
func isDateFormatted(f *excelize.File, sheet, axis string) bool {
	idx, err := f.GetCellStyle(sheet, axis)
	if err != nil || idx == 0 {
		return false
	}
	style, err := f.GetStyle(idx)
	if err != nil || style == nil {
		return false
	}
	if (style.NumFmt >= 14 && style.NumFmt <= 22) || (style.NumFmt >= 45 && style.NumFmt <= 47) {
		return true
	}
	if style.CustomNumFmt != nil {
		fmtStr := strings.ToLower(*style.CustomNumFmt)
		return strings.Contains(fmtStr, "yy") || strings.Contains(fmtStr, "dd") || strings.Contains(fmtStr, "mmm")
	}
	return false
}

// contentHash returns the hex-encoded SHA256 of the file.
func contentHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
