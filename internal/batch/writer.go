package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/production-feasibility/internal/common"
	"github.com/joseph-ayodele/production-feasibility/internal/entity"
)

// WriteResults writes results as pretty JSON to path. The file is written
// to a temp sibling and renamed so readers never see a partial snapshot.
func WriteResults(path string, results entity.ResultSet) error {
	if results == nil {
		results = entity.ResultSet{}
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return common.NewAppError(common.CodeOutput, "create output dir "+dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return common.NewAppError(common.CodeOutput, "create temp file", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		_ = tmp.Close()
		return common.NewAppError(common.CodeOutput, "encode results", err)
	}
	if err := tmp.Close(); err != nil {
		return common.NewAppError(common.CodeOutput, "close temp file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return common.NewAppError(common.CodeOutput, fmt.Sprintf("rename to %s", path), err)
	}
	return nil
}

// ReadResults loads a checkpoint or final results file.
func ReadResults(path string) (entity.ResultSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(err, "read results")
	}
	var out entity.ResultSet
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, common.WrapError(err, "decode "+path)
	}
	return out, nil
}
