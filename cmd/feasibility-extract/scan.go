package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/production-feasibility/internal/common"
	"github.com/joseph-ayodele/production-feasibility/internal/ingest"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Build a manifest from a directory of project folders",
	Long:  "Treats each subdirectory of --root as a project and binds its PDFs and spreadsheets to the script, budget and schedule roles by filename. Writes JSON, or YAML when --out ends in .yaml/.yml.",
	Args:  cobra.NoArgs,
	RunE:  runScan,
}

var (
	scanRoot       string
	scanOutputFile string
	scanClient     string
	scanExts       []string
	scanAll        bool
)

func init() {
	scanCmd.Flags().StringVar(&scanRoot, "root", "", "Directory containing one folder per project (required)")
	scanCmd.Flags().StringVarP(&scanOutputFile, "out", "o", "", "Write the manifest here instead of stdout")
	scanCmd.Flags().StringVar(&scanClient, "client", "", "Client name recorded on every project")
	scanCmd.Flags().StringSliceVar(&scanExts, "ext", nil, "File extensions to include (default pdf,xls,xlsx)")
	scanCmd.Flags().BoolVar(&scanAll, "all", false, "Include hidden files and folders")

	if err := scanCmd.MarkFlagRequired("root"); err != nil {
		panic(fmt.Sprintf("failed to mark root flag as required: %v", err))
	}

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	logger, logCloser := common.NewLogger(cfg.Log, os.Stderr)
	defer closeQuietly(logCloser)

	m, stats, err := ingest.ScanDirectory(cmd.Context(), scanRoot, ingest.Options{
		IncludeExts: scanExts,
		SkipHidden:  !scanAll,
		Client:      scanClient,
	}, logger)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return common.NewAppError(common.CodeOutput, "encode manifest", err)
	}
	if ext := strings.ToLower(filepath.Ext(scanOutputFile)); ext == ".yaml" || ext == ".yml" {
		if b, err = jsonToYAML(b); err != nil {
			return common.NewAppError(common.CodeOutput, "encode yaml manifest", err)
		}
	} else {
		b = append(b, '\n')
	}

	if scanOutputFile == "" {
		_, err = cmd.OutOrStdout().Write(b)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(scanOutputFile), 0o755); err != nil {
		return common.NewAppError(common.CodeOutput, "create output dir", err)
	}
	if err := os.WriteFile(scanOutputFile, b, 0o644); err != nil {
		return common.NewAppError(common.CodeOutput, "write manifest", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Manifest: %s (%d projects, %d documents matched, %d unmatched)\n",
		scanOutputFile, stats.Projects, stats.Matched, stats.Unmatched)
	return nil
}

func jsonToYAML(b []byte) ([]byte, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}
