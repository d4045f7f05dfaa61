package batch

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joseph-ayodele/production-feasibility/internal/entity"
)

// Summary is the end-of-run report.
type Summary struct {
	Total      int
	Successful int
	Scripts    int
	Budgets    int
	Schedules  int

	BudgetRows   []SummaryRow
	ScheduleRows []SummaryRow
}

// SummaryRow pairs a project with its headline values; nil means unknown.
type SummaryRow struct {
	ProjectName string
	TotalGBP    *float64
	ShootDays   *int
}

// Summarize counts results by which headline values they carry.
func Summarize(results entity.ResultSet) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Failed() {
			continue
		}
		s.Successful++
		if r.HasScriptText() {
			s.Scripts++
		}
		row := SummaryRow{ProjectName: r.ProjectName}
		if r.HasBudget() {
			row.TotalGBP = r.BudgetData.TotalGBP
		}
		if r.HasSchedule() {
			row.ShootDays = r.ScheduleData.ShootDays
		}
		if row.TotalGBP != nil {
			s.Budgets++
			s.BudgetRows = append(s.BudgetRows, row)
		}
		if row.ShootDays != nil {
			s.Schedules++
			s.ScheduleRows = append(s.ScheduleRows, row)
		}
	}
	return s
}

var gbp = message.NewPrinter(language.BritishEnglish)

// FormatGBP renders an amount as £12,345.67.
func FormatGBP(v float64) string {
	return gbp.Sprintf("£%.2f", v)
}

// Print writes the human-readable summary.
func (s Summary) Print(w io.Writer) {
	_, _ = fmt.Fprintf(w, "\nSummary:\n")
	_, _ = fmt.Fprintf(w, "  Total: %d\n", s.Total)
	_, _ = fmt.Fprintf(w, "  Successful: %d\n", s.Successful)
	_, _ = fmt.Fprintf(w, "  Scripts: %d\n", s.Scripts)
	_, _ = fmt.Fprintf(w, "  Budgets: %d\n", s.Budgets)
	_, _ = fmt.Fprintf(w, "  Schedules: %d\n", s.Schedules)

	if len(s.BudgetRows) > 0 {
		_, _ = fmt.Fprintf(w, "\nBudgets extracted (%d):\n", len(s.BudgetRows))
		for _, r := range s.BudgetRows {
			_, _ = fmt.Fprintf(w, "  %s: %s (%s days)\n", r.ProjectName, FormatGBP(*r.TotalGBP), daysOrUnknown(r.ShootDays))
		}
	}
	if len(s.ScheduleRows) > 0 {
		_, _ = fmt.Fprintf(w, "\nSchedules extracted (%d):\n", len(s.ScheduleRows))
		for _, r := range s.ScheduleRows {
			budget := "?"
			if r.TotalGBP != nil {
				budget = FormatGBP(*r.TotalGBP)
			}
			_, _ = fmt.Fprintf(w, "  %s: %d days (%s)\n", r.ProjectName, *r.ShootDays, budget)
		}
	}
}

func daysOrUnknown(d *int) string {
	if d == nil {
		return "?"
	}
	return fmt.Sprint(*d)
}
