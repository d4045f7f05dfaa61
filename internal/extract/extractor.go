// Package extract derives feature blocks from acquired document text:
// script features, budget totals and schedule signals.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/joseph-ayodele/production-feasibility/constants"
	"github.com/joseph-ayodele/production-feasibility/internal/acquire"
	"github.com/joseph-ayodele/production-feasibility/internal/common"
	"github.com/joseph-ayodele/production-feasibility/internal/entity"
)

// Extractor runs acquisition plus detection for one document per call.
// Acquisition failures are recorded in the block, never returned.
type Extractor struct {
	acq    TextAcquirer
	stager Stager
	limits Limits
	logger *slog.Logger
}

// NewExtractor builds an Extractor. stager may be nil.
func NewExtractor(acq TextAcquirer, stager Stager, limits Limits, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{acq: acq, stager: stager, limits: limits, logger: logger}
}

// Script acquires path as text and detects features. A read failure yields
// empty features (text_length 0).
func (e *Extractor) Script(ctx context.Context, path string) entity.ScriptFeatures {
	raw, err := e.read(ctx, path, e.limits.ScriptMaxPages, e.limits.ScriptMaxPages)
	if err != nil {
		e.logger.Warn("script unreadable", "project", common.ProjectFromContext(ctx), "file", filepath.Base(path), "error", err)
		return DetectScript("")
	}
	return DetectScript(raw.Text)
}

// Budget dispatches on extension: sheets are scanned cell by cell, anything
// else is treated as PDF-like text.
func (e *Extractor) Budget(ctx context.Context, path string) entity.BudgetData {
	kind := acquire.KindForPath(path)
	raw, err := e.read(ctx, path, e.limits.BudgetMaxPages, e.limits.BudgetMaxRows)

	var data entity.BudgetData
	switch {
	case err != nil:
		data = entity.BudgetData{Error: diagnostic(kind, err)}
	case kind == acquire.KindSheet:
		data = BudgetFromCells(raw.Cells(), constants.NormalizeExt(filepath.Ext(path)))
	default:
		data = BudgetFromText(raw.Text)
	}
	data.File = filepath.Base(path)
	return data
}

// Schedule acquires text (sheet cells are joined) and counts schedule signals.
func (e *Extractor) Schedule(ctx context.Context, path string) entity.ScheduleData {
	kind := acquire.KindForPath(path)
	raw, err := e.read(ctx, path, e.limits.ScheduleMaxPages, e.limits.ScheduleMaxRows)

	var data entity.ScheduleData
	if err != nil {
		data = entity.ScheduleData{Error: diagnostic(kind, err)}
	} else {
		data = ScheduleFromText(raw.Text)
	}
	data.File = filepath.Base(path)
	return data
}

func (e *Extractor) read(ctx context.Context, path string, maxPages, maxRows int) (acquire.RawText, error) {
	local := path
	if e.stager != nil {
		local = e.stager.Stage(path)
	}
	kind := acquire.KindForPath(path)
	lim := acquire.Limits{MaxUnits: maxPages, MaxChars: e.limits.MaxChars}
	if kind == acquire.KindSheet {
		lim.MaxUnits = maxRows
	}
	raw, err := e.acq.Acquire(ctx, local, kind, lim)
	if err != nil {
		return acquire.RawText{}, err
	}
	for _, w := range raw.Warnings {
		e.logger.Debug("acquisition warning", "file", filepath.Base(path), "warning", w)
	}
	return raw, nil
}

func diagnostic(kind acquire.Kind, err error) string {
	prefix := "pdf error"
	if kind == acquire.KindSheet {
		prefix = "read error"
	}
	return common.Truncate(fmt.Sprintf("%s: %v", prefix, err), diagnosticLen)
}
