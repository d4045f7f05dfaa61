package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/production-feasibility/internal/batch"
	"github.com/joseph-ayodele/production-feasibility/internal/common"
	"github.com/joseph-ayodele/production-feasibility/internal/core"
	"github.com/joseph-ayodele/production-feasibility/internal/entity"
	"github.com/joseph-ayodele/production-feasibility/internal/export"
	"github.com/joseph-ayodele/production-feasibility/internal/extract"
	"github.com/joseph-ayodele/production-feasibility/internal/manifest"
	"github.com/joseph-ayodele/production-feasibility/internal/staging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process every project in a manifest",
	Long:  "Processes projects in manifest order, checkpointing every N successful projects and writing the complete result set at the end.",
	Args:  cobra.NoArgs,
	RunE:  runBatch,
}

var (
	runManifestFile    string
	runOutDir          string
	runCheckpointEvery int
	runRewriteFrom     string
	runRewriteTo       string
	runXLSXFile        string
	runNoStage         bool
)

func init() {
	runCmd.Flags().StringVarP(&runManifestFile, "manifest", "m", "", "Path to manifest JSON or YAML file (required)")
	runCmd.Flags().StringVarP(&runOutDir, "out-dir", "o", "", "Output directory (overrides OUTPUT_DIR)")
	runCmd.Flags().IntVar(&runCheckpointEvery, "checkpoint-every", 0, "Checkpoint after every N successful projects (overrides CHECKPOINT_EVERY)")
	runCmd.Flags().StringVar(&runRewriteFrom, "rewrite-from", "", "Path prefix to replace in manifest paths (overrides REWRITE_FROM)")
	runCmd.Flags().StringVar(&runRewriteTo, "rewrite-to", "", "Replacement path prefix (overrides REWRITE_TO)")
	runCmd.Flags().StringVar(&runXLSXFile, "xlsx", "", "Also write an XLSX summary workbook to this path")
	runCmd.Flags().BoolVar(&runNoStage, "no-stage", false, "Read documents in place instead of staging local copies")

	if err := runCmd.MarkFlagRequired("manifest"); err != nil {
		panic(fmt.Sprintf("failed to mark manifest flag as required: %v", err))
	}

	rootCmd.AddCommand(runCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	if runOutDir != "" {
		cfg.Batch.OutputDir = runOutDir
	}
	if runCheckpointEvery > 0 {
		cfg.Batch.CheckpointEvery = runCheckpointEvery
	}
	if runRewriteFrom != "" {
		cfg.Batch.RewriteFrom = runRewriteFrom
		cfg.Batch.RewriteTo = runRewriteTo
	}
	if runNoStage {
		cfg.Extract.StageFiles = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, logCloser := common.NewLogger(cfg.Log, os.Stdout)
	defer closeQuietly(logCloser)

	acq, err := newAcquirer(cfg, logger)
	if err != nil {
		return err
	}

	m, err := manifest.Load(runManifestFile)
	if err != nil {
		return err
	}
	logger.Info("manifest loaded", "path", m.Path, "projects", len(m.Projects))
	if cfg.Batch.RewriteFrom != "" {
		if m, err = m.Rewrite(cfg.Batch.RewriteFrom, cfg.Batch.RewriteTo); err != nil {
			return err
		}
		logger.Info("rewrote manifest paths", "from", cfg.Batch.RewriteFrom, "to", cfg.Batch.RewriteTo)
	}

	var stager extract.Stager
	if cfg.Extract.StageFiles {
		area, err := staging.New(logger)
		if err != nil {
			logger.Warn("staging unavailable, reading documents in place", "error", err)
		} else {
			defer func() {
				if cerr := area.Close(); cerr != nil {
					logger.Warn("staging cleanup failed", "dir", area.Dir(), "error", cerr)
				}
			}()
			stager = area
		}
	}

	extractor := extract.NewExtractor(acq, stager, limitsFrom(cfg), logger)
	processor := core.NewProcessor(logger, extractor)
	runner := batch.NewRunner(batch.Config{
		OutputDir:       cfg.Batch.OutputDir,
		CheckpointEvery: cfg.Batch.CheckpointEvery,
		CheckpointFile:  cfg.Batch.CheckpointFile,
		FinalFile:       cfg.Batch.FinalFile,
	}, processor, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, stats, runErr := runner.Run(ctx, m.Projects)

	out := cmd.OutOrStdout()
	batch.Summarize(results).Print(out)
	_, _ = fmt.Fprintf(out, "\nResults: %s\n", runner.FinalPath())
	if stats.Checkpoints > 0 {
		_, _ = fmt.Fprintf(out, "Checkpoint: %s\n", runner.CheckpointPath())
	}

	if runXLSXFile != "" {
		if err := writeXLSX(runXLSXFile, results, logger); err != nil {
			logger.Error("xlsx export failed", "path", runXLSXFile, "error", err)
			if runErr == nil {
				runErr = err
			}
		} else {
			_, _ = fmt.Fprintf(out, "Workbook: %s\n", runXLSXFile)
		}
	}
	return runErr
}

func writeXLSX(path string, results entity.ResultSet, logger *slog.Logger) error {
	b, err := export.NewService(logger).ResultsXLSX(results)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
