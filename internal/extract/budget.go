package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/production-feasibility/internal/acquire"
	"github.com/joseph-ayodele/production-feasibility/internal/entity"
)

// reGBP matches a pound amount with optional thousands separators and pence.
var reGBP = regexp.MustCompile(`£\s*([\d,]+(?:\.\d{2})?)`)

// Plausible ranges (exclusive). Currency strings may be smaller than bare
// numeric cells because the £ sign already marks them as money.
const (
	minCurrencyAmount = 1000
	minNumericCell    = 10000
	maxAmount         = 10000000
)

const sourcePDF = "pdf_extracted"

// CurrencyAmounts returns every £ amount in text that falls in range.
func CurrencyAmounts(text string) []float64 {
	var out []float64
	for _, m := range reGBP.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if v > minCurrencyAmount && v < maxAmount {
			out = append(out, v)
		}
	}
	return out
}

// CellAmounts pools numeric cells in the bare-number range with £ amounts
// found in string cells.
func CellAmounts(cells []acquire.Cell) []float64 {
	var out []float64
	for _, c := range cells {
		if c.IsNumber {
			if c.Number > minNumericCell && c.Number < maxAmount {
				out = append(out, c.Number)
			}
			continue
		}
		out = append(out, CurrencyAmounts(c.Raw)...)
	}
	return out
}

// BudgetFromText reduces a PDF-derived text to a budget block.
func BudgetFromText(text string) entity.BudgetData {
	return budgetFromAmounts(CurrencyAmounts(text), sourcePDF, "No amounts in PDF")
}

// BudgetFromCells reduces first-sheet cells to a budget block; source
// records the sheet format.
func BudgetFromCells(cells []acquire.Cell, source string) entity.BudgetData {
	return budgetFromAmounts(CellAmounts(cells), source, "No amounts in "+source)
}

// budgetFromAmounts takes the largest plausible figure as the grand total.
// A large line item can outrank a true total; there is no label matching.
func budgetFromAmounts(amounts []float64, source, note string) entity.BudgetData {
	if len(amounts) == 0 {
		return entity.BudgetData{Note: note}
	}
	total := amounts[0]
	for _, v := range amounts[1:] {
		if v > total {
			total = v
		}
	}
	total = math.Round(total*100) / 100
	return entity.BudgetData{
		TotalGBP:     &total,
		Source:       source,
		AmountsFound: len(amounts),
	}
}
