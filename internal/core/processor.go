// Package core holds the Project Processor: it resolves each role binding
// of a manifest entry to files on disk and assembles the ProjectResult.
package core

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/production-feasibility/constants"
	"github.com/joseph-ayodele/production-feasibility/internal/common"
	"github.com/joseph-ayodele/production-feasibility/internal/entity"
)

// FeatureExtractor produces one feature block from one document.
type FeatureExtractor interface {
	Script(ctx context.Context, path string) entity.ScriptFeatures
	Budget(ctx context.Context, path string) entity.BudgetData
	Schedule(ctx context.Context, path string) entity.ScheduleData
}

// Processor turns one manifest entry into one ProjectResult.
type Processor struct {
	logger    *slog.Logger
	extractor FeatureExtractor
	exists    func(path string) bool
}

// ProcessorOption customizes a Processor.
type ProcessorOption func(*Processor)

// WithExistsFunc replaces the on-disk existence check.
func WithExistsFunc(fn func(string) bool) ProcessorOption {
	return func(p *Processor) {
		if fn != nil {
			p.exists = fn
		}
	}
}

func NewProcessor(logger *slog.Logger, extractor FeatureExtractor, opts ...ProcessorOption) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Processor{logger: logger, extractor: extractor, exists: fileExists}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Process decodes raw and extracts every bound role. A malformed entry is
// returned as an error; per-file failures stay inside their blocks.
func (p *Processor) Process(ctx context.Context, raw json.RawMessage) (entity.ProjectResult, error) {
	entry, err := entity.DecodeProjectEntry(raw)
	if err != nil {
		return entity.ProjectResult{ProjectName: entity.ProjectNameOf(raw)}, err
	}
	ctx = common.WithProject(ctx, entry.ProjectName)

	// Unbound or unreadable roles keep a nil block, serialized as {}.
	result := entity.ProjectResult{
		ProjectName: entry.ProjectName,
		Client:      entry.Client,
		Complete:    entry.Complete,
	}

	p.processScript(ctx, entry, &result)
	p.processBudget(ctx, entry, &result)
	p.processSchedule(ctx, entry, &result)
	return result, nil
}

func (p *Processor) processScript(ctx context.Context, entry entity.ProjectManifestEntry, result *entity.ProjectResult) {
	b := entry.Binding(constants.RoleScript)
	switch b.Kind {
	case entity.BindingSingle:
		ref, _ := b.Single()
		if !p.exists(ref.Path) {
			p.skipMissing(ctx, constants.RoleScript, ref.Path)
			return
		}
		f := p.extractor.Script(ctx, ref.Path)
		result.ScriptFeatures = &f
		p.logger.Info("script extracted",
			"project", entry.ProjectName,
			"file", filepath.Base(ref.Path),
			"chars", f.TextLength,
			"techniques", f.Techniques,
		)
	case entity.BindingMultiple:
		p.logger.Warn("script bound to a list; ignoring",
			"project", entry.ProjectName, "entries", len(b.Refs))
	}
}

func (p *Processor) processBudget(ctx context.Context, entry entity.ProjectManifestEntry, result *entity.ProjectResult) {
	for _, ref := range p.candidates(ctx, entry.Binding(constants.RoleBudget), constants.RoleBudget) {
		data := p.extractor.Budget(ctx, ref.Path)
		result.BudgetData = &data
		p.logBlock(entry.ProjectName, "budget", data.Error, "file", data.File, "total_gbp", deref(data.TotalGBP), "note", data.Note)
		if data.TotalGBP != nil {
			return
		}
	}
}

func (p *Processor) processSchedule(ctx context.Context, entry entity.ProjectManifestEntry, result *entity.ProjectResult) {
	for _, ref := range p.candidates(ctx, entry.Binding(constants.RoleSchedule), constants.RoleSchedule) {
		data := p.extractor.Schedule(ctx, ref.Path)
		result.ScheduleData = &data
		p.logBlock(entry.ProjectName, "schedule", data.Error, "file", data.File, "shoot_days", deref(data.ShootDays))
		if data.ShootDays != nil {
			return
		}
	}
}

// candidates lists the refs to try in order. Missing files are skipped;
// schedule lists additionally require the manifest's exists flag.
func (p *Processor) candidates(ctx context.Context, b entity.FileBinding, role constants.Role) []entity.FileRef {
	var out []entity.FileRef
	switch b.Kind {
	case entity.BindingSingle:
		ref, _ := b.Single()
		if p.exists(ref.Path) {
			out = append(out, ref)
		} else {
			p.skipMissing(ctx, role, ref.Path)
		}
	case entity.BindingMultiple:
		for _, ref := range b.Refs {
			if role == constants.RoleSchedule && !ref.Flagged() {
				continue
			}
			if !p.exists(ref.Path) {
				p.skipMissing(ctx, role, ref.Path)
				continue
			}
			out = append(out, ref)
		}
	}
	return out
}

func (p *Processor) skipMissing(ctx context.Context, role constants.Role, path string) {
	p.logger.Debug("file not found, skipping",
		"project", common.ProjectFromContext(ctx), "role", string(role), "path", path)
}

func (p *Processor) logBlock(project, role, errMsg string, attrs ...any) {
	attrs = append([]any{"project", project}, attrs...)
	if errMsg != "" {
		p.logger.Warn(role+" extraction degraded", append(attrs, "error", errMsg)...)
		return
	}
	p.logger.Info(role+" extracted", attrs...)
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// deref renders an optional headline value for logging; nil logs as null.
func deref[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
