// Command feasibility-extract turns a manifest of production documents
// (scripts, budgets, schedules) into a flat set of per-project features.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/production-feasibility/internal/acquire"
	"github.com/joseph-ayodele/production-feasibility/internal/common"
	"github.com/joseph-ayodele/production-feasibility/internal/extract"
)

var rootCmd = &cobra.Command{
	Use:           "feasibility-extract",
	Short:         "Extract feasibility features from production documents",
	Long:          "Reads a project manifest, extracts script techniques, budget totals and schedule signals from each project's documents, and writes the results as JSON.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	logLevel   string
	logFormat  string
	pdfBackend string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: json|text (overrides LOG_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&pdfBackend, "pdf-backend", "", "PDF decoder: auto|pdftotext|pdfcpu (overrides PDF_BACKEND)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
}

// printError prints to stderr, falling back to stdout if stderr fails.
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

// loadConfig reads env configuration and applies global flag overrides.
func loadConfig() *common.Config {
	cfg := common.LoadConfig()
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if pdfBackend != "" {
		cfg.Extract.PDFBackend = pdfBackend
	}
	return cfg
}

// newAcquirer builds the acquirer and performs the startup decoder check.
func newAcquirer(cfg *common.Config, logger *slog.Logger) (*acquire.Acquirer, error) {
	acq := acquire.NewAcquirer(acquire.Config{
		PDFBackend:       cfg.Extract.PDFBackend,
		Pdftotext:        cfg.Extract.Pdftotext,
		PDFTimeout:       cfg.Extract.PDFTimeout,
		XLSConverter:     cfg.Extract.XLSConverter,
		ArtifactCacheDir: cfg.Extract.ArtifactCacheDir,
	}, logger)
	if err := acq.CheckBackend(); err != nil {
		return nil, err
	}
	logger.Info("pdf backend selected", "backend", acq.Backend())
	return acq, nil
}

func limitsFrom(cfg *common.Config) extract.Limits {
	return extract.Limits{
		ScriptMaxPages:   cfg.Extract.ScriptMaxPages,
		BudgetMaxPages:   cfg.Extract.BudgetMaxPages,
		ScheduleMaxPages: cfg.Extract.ScheduleMaxPages,
		BudgetMaxRows:    cfg.Extract.BudgetMaxRows,
		ScheduleMaxRows:  cfg.Extract.ScheduleMaxRows,
		MaxChars:         cfg.Extract.MaxChars,
	}
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}
