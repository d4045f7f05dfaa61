// Package export renders a ResultSet as an XLSX workbook for review.
package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/production-feasibility/internal/entity"
)

// SheetName is the single worksheet written.
const SheetName = "Projects"

// Headers in column order.
var Headers = []string{
	"Project",
	"Client",
	"Complete",
	"Error",
	"Script Chars",
	"Techniques",
	"Locations",
	"Est. Shots",
	"Children",
	"Animals",
	"Vehicles",
	"Budget (GBP)",
	"Budget Source",
	"Budget File",
	"Budget Note",
	"Shoot Days",
	"Call Times",
	"Schedule File",
}

// Service produces XLSX bytes for a ResultSet.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ResultsXLSX returns a workbook with one row per result, in order.
// Error-shaped records fill only the Project and Error columns.
func (s *Service) ResultsXLSX(results entity.ResultSet) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	gbpStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("£#,##0.00")})
	if err != nil {
		return nil, fmt.Errorf("gbp style: %w", err)
	}
	headStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}
	_ = f.SetRowStyle(SheetName, 1, 1, headStyle)

	row := 2
	for _, r := range results {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(SheetName, cell, v)
		}

		write(1, r.ProjectName)
		if r.Failed() {
			write(4, r.Error)
			row++
			continue
		}
		write(2, r.Client)
		write(3, r.Complete)

		if sf := r.ScriptFeatures; sf != nil {
			write(5, sf.TextLength)
			write(6, joinAny(sf.Techniques))
			write(7, joinAny(sf.Locations))
			if sf.EstimatedShots != nil {
				write(8, *sf.EstimatedShots)
			}
			write(9, sf.HasChildren)
			write(10, sf.HasAnimals)
			write(11, sf.HasVehicles)
		}

		if bd := r.BudgetData; bd != nil {
			if bd.TotalGBP != nil {
				write(12, *bd.TotalGBP)
				cell, _ := excelize.CoordinatesToCellName(12, row)
				_ = f.SetCellStyle(SheetName, cell, cell, gbpStyle)
			}
			write(13, bd.Source)
			write(14, bd.File)
			write(15, firstNonEmpty(bd.Error, bd.Note))
		}

		if sd := r.ScheduleData; sd != nil {
			if sd.ShootDays != nil {
				write(16, *sd.ShootDays)
			}
			write(17, sd.CallTimesFound)
			write(18, firstNonEmpty(sd.File, sd.Error))
		}
		row++
	}

	_ = f.SetColWidth(SheetName, "A", "A", 32) // project
	_ = f.SetColWidth(SheetName, "B", "B", 20) // client
	_ = f.SetColWidth(SheetName, "D", "D", 40) // error
	_ = f.SetColWidth(SheetName, "F", "G", 30) // techniques, locations
	_ = f.SetColWidth(SheetName, "L", "L", 16) // budget
	_ = f.SetColWidth(SheetName, "N", "O", 36) // budget file, note
	_ = f.SetColWidth(SheetName, "R", "R", 36) // schedule file
	_ = f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("results exported",
		"rows", len(results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func joinAny[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}

func strPtr(s string) *string { return &s }
