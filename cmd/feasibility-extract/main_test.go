package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/production-feasibility/internal/batch"
	"github.com/joseph-ayodele/production-feasibility/internal/common"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeManifest(t *testing.T, dir string, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	p := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(p, b, 0o644))
	return p
}

func TestRewriteCommand(t *testing.T) {
	dir := t.TempDir()
	p := writeManifest(t, dir, map[string]any{
		"projects": []any{
			map[string]any{"project_name": "A", "files": map[string]any{"script": map[string]any{"path": "/cloud/A/script.pdf"}}},
		},
	})
	outFile := filepath.Join(dir, "out", "local.json")

	out, err := execute(t, "rewrite", "--manifest", p, "--from", "/cloud", "--to", "/local", "--out", outFile)
	require.NoError(t, err)
	assert.Contains(t, out, "1 projects")

	b, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"/local/A/script.pdf"`)
	assert.NotContains(t, string(b), "/cloud/")
}

func TestRunCommand_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	p := writeManifest(t, dir, map[string]any{
		"projects": []any{
			map[string]any{"project_name": "One", "files": map[string]any{"budget": map[string]any{"path": filepath.Join(dir, "missing.pdf")}}},
			map[string]any{"project_name": "NoFiles"},
			map[string]any{"project_name": "Three", "files": map[string]any{}},
		},
	})
	outDir := filepath.Join(dir, "results")
	xlsx := filepath.Join(dir, "results.xlsx")

	out, err := execute(t, "run", "--manifest", p, "--out-dir", outDir, "--pdf-backend", "pdfcpu", "--no-stage", "--xlsx", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 3")
	assert.Contains(t, out, "Successful: 2")

	results, err := batch.ReadResults(filepath.Join(outDir, "training_data_complete.json"))
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[1].Failed())
	assert.FileExists(t, xlsx)
}

func TestRunCommand_MissingManifestIsFatal(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "run", "--manifest", filepath.Join(dir, "nope.json"), "--out-dir", dir, "--xlsx", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrManifest)
	assert.NoFileExists(t, filepath.Join(dir, "training_data_complete.json"))
}

func TestFileCommand_UnknownRole(t *testing.T) {
	_, err := execute(t, "file", "--role", "poster", "main.go")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestScanThenRun(t *testing.T) {
	root := t.TempDir()
	proj := filepath.Join(root, "Coffee Spot")
	require.NoError(t, os.MkdirAll(proj, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(proj, "Shooting Script v3.pdf"), []byte("%PDF-1.4 stub"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(proj, "notes.txt"), []byte("ignored"), 0o644))

	manifestPath := filepath.Join(root, "out", "manifest.yaml")
	out, err := execute(t, "scan", "--root", root, "--out", manifestPath, "--client", "Acme")
	require.NoError(t, err)
	assert.Contains(t, out, "1 projects")

	data, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Shooting Script v3.pdf")
	assert.Contains(t, string(data), "client: Acme")
}
