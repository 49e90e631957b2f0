package core

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mosegui/lookout/internal/contract"
)

// ListSourceFiles walks the target directory recursively and returns the
// absolute paths of all source files with the configured extension, skipping
// cache/build artifacts and user excludes.
func ListSourceFiles(cfg *contract.Config) ([]string, error) {
	var files []string
	err := filepath.WalkDir(cfg.TargetDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if contract.ShouldIgnore(path+"/", cfg.Excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, cfg.Extension) {
			return nil
		}
		if contract.ShouldIgnore(path, cfg.Excludes) {
			return nil
		}
		files = append(files, filepath.Clean(path))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
