// Package ingest builds a manifest from a directory tree: each immediate
// subdirectory of the root is one project, and documents are bound to roles
// by filename keywords.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph-ayodele/production-feasibility/constants"
	"github.com/joseph-ayodele/production-feasibility/internal/entity"
)

// Manifest is the serialized shape consumed by the run command.
type Manifest struct {
	Projects []entity.ProjectManifestEntry `json:"projects" yaml:"projects"`
}

type DirStats struct {
	Projects  uint32
	Scanned   uint32
	Matched   uint32
	Unmatched uint32
	Failed    uint32
}

// Options tune a scan.
type Options struct {
	IncludeExts []string // defaults to pdf, xls, xlsx
	SkipHidden  bool
	Client      string // copied onto every entry
}

// ScanDirectory walks every project folder under root. Unreadable paths
// are counted and skipped; only a missing or unreadable root is an error.
func ScanDirectory(ctx context.Context, root string, opts Options, logger *slog.Logger) (Manifest, DirStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(root) == "" {
		return Manifest{}, DirStats{}, errors.New("root path is required")
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return Manifest{}, DirStats{}, fmt.Errorf("read root: %w", err)
	}

	exts := extSet(opts.IncludeExts)
	var stats DirStats
	out := Manifest{Projects: []entity.ProjectManifestEntry{}}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return out, stats, err
		}
		if !e.IsDir() || (opts.SkipHidden && IsHidden(e.Name())) {
			continue
		}
		project := scanProject(filepath.Join(root, e.Name()), exts, opts.SkipHidden, &stats, logger)
		project.ProjectName = e.Name()
		project.Client = opts.Client
		out.Projects = append(out.Projects, project)
		stats.Projects++
	}

	logger.Info("directory scanned",
		"root", root,
		"projects", stats.Projects,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"unmatched", stats.Unmatched,
		"failed", stats.Failed,
	)
	return out, stats, nil
}

func scanProject(dir string, exts map[string]struct{}, skipHidden bool, stats *DirStats, logger *slog.Logger) entity.ProjectManifestEntry {
	byRole := map[constants.Role][]entity.FileRef{}
	exists := true

	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			stats.Failed++
			logger.Warn("scan failed", "path", path, "error", walkErr)
			return nil // continue walking
		}
		if skipHidden && path != dir && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		if _, ok := exts[constants.NormalizeExt(filepath.Ext(path))]; !ok {
			return nil
		}
		role, ok := ClassifyFile(filepath.Base(path))
		if !ok {
			stats.Unmatched++
			return nil
		}
		stats.Matched++
		byRole[role] = append(byRole[role], entity.FileRef{Path: path, Exists: &exists})
		return nil
	})

	entry := entity.ProjectManifestEntry{Files: map[constants.Role]entity.FileBinding{}}
	for role, refs := range byRole {
		sort.Slice(refs, func(i, j int) bool { return refs[i].Path < refs[j].Path })
		if len(refs) == 1 {
			entry.Files[role] = entity.FileBinding{Kind: entity.BindingSingle, Refs: refs}
			continue
		}
		entry.Files[role] = entity.FileBinding{Kind: entity.BindingMultiple, Refs: refs}
	}
	// A script list is not processed, so keep only the first script.
	if b, ok := entry.Files[constants.RoleScript]; ok && b.Kind == entity.BindingMultiple {
		entry.Files[constants.RoleScript] = entity.FileBinding{Kind: entity.BindingSingle, Refs: b.Refs[:1]}
	}
	entry.Complete = len(entry.Files) == len(constants.Roles)
	return entry
}

func extSet(include []string) map[string]struct{} {
	exts := map[string]struct{}{}
	if len(include) == 0 {
		include = constants.ScanExtensions
	}
	for _, e := range include {
		if e = constants.NormalizeExt(e); e != "" {
			exts[e] = struct{}{}
		}
	}
	return exts
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
