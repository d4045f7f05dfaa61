package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, "auto", cfg.Extract.PDFBackend)
	assert.Equal(t, 30*time.Second, cfg.Extract.PDFTimeout)
	assert.Equal(t, 20, cfg.Extract.ScriptMaxPages)
	assert.Equal(t, 15, cfg.Extract.BudgetMaxPages)
	assert.Equal(t, 50000, cfg.Extract.MaxChars)
	assert.Equal(t, 200, cfg.Extract.BudgetMaxRows)
	assert.Equal(t, 100, cfg.Extract.ScheduleMaxRows)
	assert.True(t, cfg.Extract.StageFiles)
	assert.Equal(t, 5, cfg.Batch.CheckpointEvery)
	assert.Equal(t, "training_data_complete.json", cfg.Batch.FinalFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PDF_BACKEND", "PDFCPU")
	t.Setenv("PDF_TIMEOUT", "5s")
	t.Setenv("CHECKPOINT_EVERY", "10")
	t.Setenv("STAGE_FILES", "false")
	t.Setenv("SCRIPT_MAX_PAGES", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, "pdfcpu", cfg.Extract.PDFBackend)
	assert.Equal(t, 5*time.Second, cfg.Extract.PDFTimeout)
	assert.Equal(t, 10, cfg.Batch.CheckpointEvery)
	assert.False(t, cfg.Extract.StageFiles)
	assert.Equal(t, 20, cfg.Extract.ScriptMaxPages, "unparsable values fall back to the default")
}

func TestConfig_Validate(t *testing.T) {
	cfg := LoadConfig()
	cfg.Extract.PDFBackend = "ghostscript"
	cfg.Batch.CheckpointEvery = 0
	cfg.Batch.RewriteFrom = "/cloud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, CodeConfig, appErr.Code)
	assert.Contains(t, err.Error(), "PDFBackend")
	assert.Contains(t, err.Error(), "CheckpointEvery")
	assert.Contains(t, err.Error(), "RewriteTo")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	// £ is two bytes; never split it
	assert.Equal(t, "a", Truncate("a£", 2))
	assert.Equal(t, "a£", Truncate("a£b", 3))
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ctx"))
	err := WrapError(ErrManifest, "load")
	assert.ErrorIs(t, err, ErrManifest)
	assert.Equal(t, "load: invalid manifest", err.Error())
}
