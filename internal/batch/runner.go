// Package batch runs the Project Processor over every manifest entry in
// order, isolating per-project failures and checkpointing progress.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/production-feasibility/internal/common"
	"github.com/joseph-ayodele/production-feasibility/internal/entity"
)

// ProjectProcessor turns one raw manifest entry into a result.
type ProjectProcessor interface {
	Process(ctx context.Context, raw json.RawMessage) (entity.ProjectResult, error)
}

// Config controls output locations and checkpoint cadence.
type Config struct {
	OutputDir       string
	CheckpointEvery int // successful projects between checkpoints; <=0 disables
	CheckpointFile  string
	FinalFile       string
}

// Stats counts what happened during one run.
type Stats struct {
	RunID       uuid.UUID
	Total       int
	Processed   int
	Failed      int
	Checkpoints int
	Aborted     bool
	Duration    time.Duration
}

// Runner executes a batch sequentially.
type Runner struct {
	cfg    Config
	proc   ProjectProcessor
	logger *slog.Logger
}

func NewRunner(cfg Config, proc ProjectProcessor, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.CheckpointFile == "" {
		cfg.CheckpointFile = "training_data_checkpoint.json"
	}
	if cfg.FinalFile == "" {
		cfg.FinalFile = "training_data_complete.json"
	}
	return &Runner{cfg: cfg, proc: proc, logger: logger}
}

// CheckpointPath is where periodic snapshots go.
func (r *Runner) CheckpointPath() string {
	return filepath.Join(r.cfg.OutputDir, r.cfg.CheckpointFile)
}

// FinalPath is where the complete ResultSet goes.
func (r *Runner) FinalPath() string {
	return filepath.Join(r.cfg.OutputDir, r.cfg.FinalFile)
}

// Run processes projects in manifest order and returns one record per
// entry. The final file is written on every exit path; a cancelled ctx
// stops before the next project and is reported in the returned error.
func (r *Runner) Run(ctx context.Context, projects []json.RawMessage) (results entity.ResultSet, stats Stats, err error) {
	start := time.Now()
	stats = Stats{RunID: uuid.New(), Total: len(projects)}
	ctx = common.WithRunID(ctx, stats.RunID)
	logger := r.logger.With("run_id", stats.RunID.String())

	results = make(entity.ResultSet, 0, len(projects))
	logger.Info("batch started", "projects", len(projects), "output_dir", r.cfg.OutputDir)

	defer func() {
		stats.Duration = time.Since(start)
		if werr := WriteResults(r.FinalPath(), results); werr != nil {
			logger.Error("final write failed", "path", r.FinalPath(), "error", werr)
			if err == nil {
				err = werr
			}
			return
		}
		logger.Info("batch complete",
			"total", stats.Total,
			"processed", stats.Processed,
			"failed", stats.Failed,
			"checkpoints", stats.Checkpoints,
			"aborted", stats.Aborted,
			"duration_ms", stats.Duration.Milliseconds(),
			"output", r.FinalPath(),
		)
	}()

	succeeded := 0
	for i, raw := range projects {
		if cerr := ctx.Err(); cerr != nil {
			stats.Aborted = true
			logger.Warn("batch aborted", "remaining", len(projects)-i, "error", cerr)
			return results, stats, fmt.Errorf("batch aborted after %d of %d projects: %w", i, len(projects), cerr)
		}

		name := entity.ProjectNameOf(raw)
		logger.Info("project started", "index", i+1, "total", len(projects), "project", name)

		res, perr := r.processOne(ctx, raw)
		if perr != nil {
			res = entity.NewErrorResult(name, perr)
			stats.Failed++
			logger.Error("project failed", "index", i+1, "project", name, "error", perr)
			results = append(results, res)
			continue
		}

		results = append(results, res)
		stats.Processed++
		succeeded++

		if r.cfg.CheckpointEvery > 0 && succeeded%r.cfg.CheckpointEvery == 0 {
			if werr := WriteResults(r.CheckpointPath(), results); werr != nil {
				logger.Warn("checkpoint write failed", "path", r.CheckpointPath(), "error", werr)
				continue
			}
			stats.Checkpoints++
			logger.Info("checkpoint written", "path", r.CheckpointPath(), "results", len(results))
		}
	}
	return results, stats, nil
}

// processOne converts a panic inside the processor into an error so one
// bad project cannot end the batch.
func (r *Runner) processOne(ctx context.Context, raw json.RawMessage) (res entity.ProjectResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return r.proc.Process(ctx, raw)
}
