// Package staging copies cloud-synced source files into a private local
// directory before they are decoded, so readers never contend with a sync
// client holding a lock on the original.
package staging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Area is a scoped staging directory. Create it at batch start with New and
// release it with Close; a nil *Area stages nothing.
type Area struct {
	dir    string
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	staged int
}

// New creates the staging directory under the system temp dir.
func New(logger *slog.Logger) (*Area, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dir, err := os.MkdirTemp("", "production_data_")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	logger.Info("staging area created", "dir", dir)
	return &Area{dir: dir, logger: logger}, nil
}

// Dir returns the staging directory.
func (a *Area) Dir() string {
	if a == nil {
		return ""
	}
	return a.dir
}

// Stage copies path into the area and returns the local copy. Any failure
// falls back silently to the original path.
func (a *Area) Stage(path string) string {
	if a == nil {
		return path
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return path
	}

	dst := filepath.Join(a.dir, stagedName(path))
	if err := copyPreservingTimes(path, dst); err != nil {
		a.logger.Warn("staging copy failed, reading original", "path", path, "error", err)
		_ = os.Remove(dst)
		return path
	}
	a.staged++
	a.logger.Debug("staged file", "path", path, "staged", dst)
	return dst
}

// Staged returns how many files were copied.
func (a *Area) Staged() int {
	if a == nil {
		return 0
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.staged
}

// Close removes the staging directory. It is idempotent.
func (a *Area) Close() error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	if err := os.RemoveAll(a.dir); err != nil {
		a.logger.Error("failed to remove staging dir", "dir", a.dir, "error", err)
		return err
	}
	a.logger.Info("staging area removed", "dir", a.dir, "files_staged", a.staged)
	return nil
}

// stagedName keeps the basename (extension dispatch depends on it) and
// prefixes a short path hash so same-named files from different projects
// do not collide.
func stagedName(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:4]) + "-" + filepath.Base(path)
}

func copyPreservingTimes(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", src)
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
