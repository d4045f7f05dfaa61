package acquire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/production-feasibility/internal/common"
)

// convertXLSToXLSX converts a legacy BIFF workbook to XLSX with an external converter.
// If cacheDir and hashHex are non-empty, it will persist (and reuse) the result at
//
//	{cacheDir}/{hashHex}.xlsx
//
// Returns (outPath, warnings, cleanup, err).
// - When caching is used (file exists or was created), cleanup is nil.
// - When caching is not used, a temp directory is created and cleanup removes it.
func convertXLSToXLSX(
	ctx context.Context,
	r Runner,
	logger *slog.Logger,
	converter string,
	in string,
	cacheDir string,
	hashHex string,
) (string, []string, func(), error) {
	if cacheDir != "" && hashHex != "" {
		cached := filepath.Join(cacheDir, hashHex+".xlsx")
		if st, err := os.Stat(cached); err == nil && !st.IsDir() {
			logger.Debug("using cached xls->xlsx", "cache", cached)
			return cached, nil, nil, nil
		}
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			return "", nil, nil, err
		}
	}

	tmpDir, err := os.MkdirTemp("", "pf-xls-*")
	if err != nil {
		return "", nil, nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	var out string
	switch converter {
	case "libreoffice", "soffice":
		// soffice --headless --convert-to xlsx --outdir <tmp> <in>
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		out = filepath.Join(tmpDir, base+".xlsx")
		if _, errb, err2 := r.Run(ctx, "soffice", logger, "--headless", "--convert-to", "xlsx", "--outdir", tmpDir, in); err2 != nil {
			return "", []string{string(errb)}, cleanup, fmt.Errorf("soffice convert failed: %w", err2)
		}
	case "ssconvert":
		out = filepath.Join(tmpDir, "book.xlsx")
		if _, errb, err2 := r.Run(ctx, "ssconvert", logger, in, out); err2 != nil {
			return "", []string{string(errb)}, cleanup, fmt.Errorf("ssconvert failed: %w", err2)
		}
	default:
		return "", nil, cleanup, fmt.Errorf("%w: .xls needs XLS_CONVERTER set to one of: libreoffice | soffice | ssconvert", common.ErrUnsupportedFormat)
	}

	if _, statErr := os.Stat(out); statErr != nil {
		return "", nil, cleanup, fmt.Errorf("xls conversion produced no output: %v", statErr)
	}

	if cacheDir == "" || hashHex == "" {
		return out, nil, cleanup, nil
	}

	cached := filepath.Join(cacheDir, hashHex+".xlsx")
	if err := os.Rename(out, cached); err != nil {
		// rename fails across devices; copy instead
		if err := copyFile(out, cached); err != nil {
			cleanup()
			return "", nil, nil, err
		}
	}
	cleanup()
	logger.Debug("cached xls->xlsx", "cache", cached)
	return cached, nil, nil, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	outF, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(outF, in); err != nil {
		_ = outF.Close()
		return err
	}
	return outF.Close()
}
