// Package acquire turns source documents into bounded plain text or typed
// cell values. PDFs are decoded with pdftotext (or pdfcpu when the binary is
// unavailable); spreadsheets with excelize, first sheet only.
package acquire

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/production-feasibility/constants"
	"github.com/joseph-ayodele/production-feasibility/internal/common"
)

// Kind selects the decoding path.
type Kind int

const (
	KindPDF Kind = iota
	KindSheet
)

func (k Kind) String() string {
	if k == KindSheet {
		return constants.SHEET
	}
	return constants.PDF
}

// KindForPath dispatches on extension: .xls/.xlsx are sheets, everything
// else takes the text path.
func KindForPath(path string) Kind {
	if constants.MapExtToFormat(filepath.Ext(path)) == constants.SHEET {
		return KindSheet
	}
	return KindPDF
}

// PDF backends.
const (
	BackendAuto      = "auto"
	BackendPdftotext = "pdftotext"
	BackendPdfcpu    = "pdfcpu"
)

// Limits bounds one acquisition. MaxUnits is pages for PDFs and rows for sheets.
type Limits struct {
	MaxUnits int
	MaxChars int
}

// Cell is one non-empty spreadsheet cell in its native form.
type Cell struct {
	Raw      string
	Number   float64
	IsNumber bool
}

func (c Cell) String() string {
	if c.IsNumber {
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	}
	return c.Raw
}

// RawText is the ephemeral output of one acquisition.
type RawText struct {
	Text      string
	Rows      [][]Cell // sheets only; row-major, empty cells dropped
	Units     int      // pages or rows read
	Method    string   // "pdftotext" | "pdfcpu" | "excelize"
	Truncated bool
	Duration  time.Duration
	Warnings  []string
}

// Cells flattens Rows in row-major order.
func (r RawText) Cells() []Cell {
	var out []Cell
	for _, row := range r.Rows {
		out = append(out, row...)
	}
	return out
}

// Config configures the acquirer.
type Config struct {
	PDFBackend       string        // auto | pdftotext | pdfcpu
	Pdftotext        string        // binary name or absolute path; if empty -> "pdftotext"
	PDFTimeout       time.Duration // per-document wall clock for external decoders
	XLSConverter     string        // "" | libreoffice | soffice | ssconvert
	ArtifactCacheDir string        // converted .xls artifacts, keyed by content hash
}

// Acquirer decodes documents. It is safe for sequential use.
type Acquirer struct {
	cfg      Config
	runner   Runner
	lookPath func(string) (string, error)
	logger   *slog.Logger
}

// Option customizes an Acquirer.
type Option func(*Acquirer)

// WithRunner replaces the external command runner.
func WithRunner(r Runner) Option {
	return func(a *Acquirer) {
		if r != nil {
			a.runner = r
		}
	}
}

// WithLookPath replaces binary discovery.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(a *Acquirer) {
		if fn != nil {
			a.lookPath = fn
		}
	}
}

func NewAcquirer(cfg Config, logger *slog.Logger, opts ...Option) *Acquirer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.PDFBackend == "" {
		cfg.PDFBackend = BackendAuto
	}
	if cfg.PDFTimeout <= 0 {
		cfg.PDFTimeout = 30 * time.Second
	}
	a := &Acquirer{cfg: cfg, runner: execRunner{}, lookPath: exec.LookPath, logger: logger}
	for _, o := range opts {
		o(a)
	}
	return a
}

// CheckBackend verifies at startup that the configured PDF decoder exists.
// Only an explicit pdftotext backend can fail; auto degrades to pdfcpu.
func (a *Acquirer) CheckBackend() error {
	switch a.cfg.PDFBackend {
	case BackendPdftotext:
		if _, err := a.lookPath(a.cfg.Pdftotext); err != nil {
			return common.NewAppError(common.CodeDecoder,
				fmt.Sprintf("%s not found in PATH", a.cfg.Pdftotext),
				fmt.Errorf("%w: %v", common.ErrDecoderUnavailable, err))
		}
	case BackendAuto, BackendPdfcpu:
	default:
		return common.NewAppError(common.CodeConfig, "unknown PDF backend "+a.cfg.PDFBackend, common.ErrInvalidInput)
	}
	return nil
}

// Backend resolves the PDF backend that will be used.
func (a *Acquirer) Backend() string {
	if a.cfg.PDFBackend != BackendAuto {
		return a.cfg.PDFBackend
	}
	if _, err := a.lookPath(a.cfg.Pdftotext); err == nil {
		return BackendPdftotext
	}
	return BackendPdfcpu
}

// Acquire decodes path. Decode failures come back as an error with an
// empty RawText; they are never fatal and the caller records the reason.
func (a *Acquirer) Acquire(ctx context.Context, path string, kind Kind, lim Limits) (RawText, error) {
	start := time.Now()
	a.logger.Debug("acquiring document", "path", path, "kind", kind.String(), "max_units", lim.MaxUnits, "max_chars", lim.MaxChars)

	var (
		res RawText
		err error
	)
	switch kind {
	case KindSheet:
		res, err = a.readSheet(ctx, path, lim)
	default:
		res, err = a.readPDF(ctx, path, lim)
	}
	if err != nil {
		a.logger.Warn("acquisition failed", "path", path, "kind", kind.String(), "error", err)
		return RawText{Duration: time.Since(start), Warnings: res.Warnings}, err
	}
	res.Duration = time.Since(start)
	a.logger.Debug("acquired document",
		"path", path,
		"method", res.Method,
		"units", res.Units,
		"chars", len(res.Text),
		"truncated", res.Truncated,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (a *Acquirer) readPDF(ctx context.Context, path string, lim Limits) (RawText, error) {
	switch a.Backend() {
	case BackendPdfcpu:
		return pdfcpuText(path, lim)
	default:
		res, err := a.pdftotext(ctx, path, lim)
		if err == nil || a.cfg.PDFBackend != BackendAuto || ctx.Err() != nil {
			return res, err
		}
		a.logger.Warn("pdftotext failed, falling back to pdfcpu", "path", path, "error", err)
		res, err2 := pdfcpuText(path, lim)
		if err2 != nil {
			return res, fmt.Errorf("pdftotext: %v; pdfcpu: %w", err, err2)
		}
		res.Warnings = append(res.Warnings, "pdftotext: "+err.Error())
		return res, nil
	}
}

func (a *Acquirer) pdftotext(ctx context.Context, path string, lim Limits) (RawText, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.PDFTimeout)
	defer cancel()

	args := []string{"-enc", "UTF-8"}
	if lim.MaxUnits > 0 {
		args = append(args, "-f", "1", "-l", strconv.Itoa(lim.MaxUnits))
	}
	args = append(args, path, "-")

	// pdftotext -enc UTF-8 -f 1 -l <n> <path> -
	out, errb, err := a.runner.Run(ctx, a.cfg.Pdftotext, a.logger, args...)
	if err != nil {
		warn := strings.TrimSpace(string(errb))
		return RawText{Warnings: nonEmpty(warn)}, fmt.Errorf("pdftotext: %w", err)
	}

	// A form-feed \f terminates every page.
	pages := strings.Split(string(out), "\f")
	if n := len(pages); n > 0 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	col := pageCollector{maxChars: lim.MaxChars}
	for i, p := range pages {
		if lim.MaxUnits > 0 && i >= lim.MaxUnits {
			break
		}
		if col.full() {
			break
		}
		col.add(p)
	}
	text, truncated := col.text()
	return RawText{Text: text, Units: col.pages, Method: BackendPdftotext, Truncated: truncated}, nil
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
