package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/production-feasibility/constants"
	"github.com/joseph-ayodele/production-feasibility/internal/common"
	"github.com/joseph-ayodele/production-feasibility/internal/extract"
)

var fileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Run one extractor on one document",
	Long:  "Extracts a single feature block (script, budget or schedule) from one document and prints it as JSON. Useful for checking a decoder or a heuristic against a specific file.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFile,
}

var fileRole string

func init() {
	fileCmd.Flags().StringVarP(&fileRole, "role", "r", "", "Document role: script|budget|schedule (required)")

	if err := fileCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}

	rootCmd.AddCommand(fileCmd)
}

func runFile(cmd *cobra.Command, args []string) error {
	role, ok := constants.ParseRole(fileRole)
	if !ok {
		return common.NewAppError(common.CodeConfig, fmt.Sprintf("unknown role %q", fileRole), common.ErrInvalidInput)
	}
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return common.WrapError(err, "failed to stat document")
	}

	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	// stdout carries the JSON block
	logger, logCloser := common.NewLogger(cfg.Log, os.Stderr)
	defer closeQuietly(logCloser)

	acq, err := newAcquirer(cfg, logger)
	if err != nil {
		return err
	}
	ex := extract.NewExtractor(acq, nil, limitsFrom(cfg), logger)

	var block any
	switch role {
	case constants.RoleScript:
		block = ex.Script(cmd.Context(), path)
	case constants.RoleBudget:
		block = ex.Budget(cmd.Context(), path)
	case constants.RoleSchedule:
		block = ex.Schedule(cmd.Context(), path)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(block)
}
