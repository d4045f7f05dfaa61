package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/production-feasibility/internal/common"
	"github.com/joseph-ayodele/production-feasibility/internal/manifest"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite path prefixes in a manifest",
	Long:  "Replaces a path prefix (for example a cloud-sync folder) with another in every \"path\" value of the manifest, at any depth, and prints or writes the result.",
	Args:  cobra.NoArgs,
	RunE:  runRewrite,
}

var (
	rewriteManifestFile string
	rewriteFrom         string
	rewriteTo           string
	rewriteOutputFile   string
)

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteManifestFile, "manifest", "m", "", "Path to manifest JSON or YAML file (required)")
	rewriteCmd.Flags().StringVar(&rewriteFrom, "from", "", "Prefix to replace (required)")
	rewriteCmd.Flags().StringVar(&rewriteTo, "to", "", "Replacement prefix (required)")
	rewriteCmd.Flags().StringVarP(&rewriteOutputFile, "out", "o", "", "Write the rewritten manifest here instead of stdout")

	for _, name := range []string{"manifest", "from", "to"} {
		if err := rewriteCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, _ []string) error {
	m, err := manifest.Load(rewriteManifestFile)
	if err != nil {
		return err
	}
	rewritten, err := m.Rewrite(rewriteFrom, rewriteTo)
	if err != nil {
		return err
	}
	b, err := rewritten.JSON()
	if err != nil {
		return err
	}

	if rewriteOutputFile == "" {
		_, err = cmd.OutOrStdout().Write(b)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(rewriteOutputFile), 0o755); err != nil {
		return common.NewAppError(common.CodeOutput, "create output dir", err)
	}
	if err := os.WriteFile(rewriteOutputFile, b, 0o644); err != nil {
		return common.NewAppError(common.CodeOutput, "write manifest", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rewritten manifest: %s (%d projects)\n", rewriteOutputFile, len(rewritten.Projects))
	return nil
}
