package extract

import (
	"context"

	"github.com/joseph-ayodele/production-feasibility/internal/acquire"
)

// TextAcquirer is Stage 1: file -> bounded text or typed cells.
type TextAcquirer interface {
	Acquire(ctx context.Context, path string, kind acquire.Kind, lim acquire.Limits) (acquire.RawText, error)
}

// Stager returns a local copy of path to read instead, or path itself.
type Stager interface {
	Stage(path string) string
}

// Limits holds per-role acquisition bounds.
type Limits struct {
	ScriptMaxPages   int
	BudgetMaxPages   int
	ScheduleMaxPages int
	BudgetMaxRows    int
	ScheduleMaxRows  int
	MaxChars         int
}

// DefaultLimits mirrors the configuration defaults.
func DefaultLimits() Limits {
	return Limits{
		ScriptMaxPages:   20,
		BudgetMaxPages:   15,
		ScheduleMaxPages: 20,
		BudgetMaxRows:    200,
		ScheduleMaxRows:  100,
		MaxChars:         50000,
	}
}

// diagnosticLen caps error strings stored in result blocks.
const diagnosticLen = 100
