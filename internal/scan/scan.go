// Package scan discovers eligible source files and fans the parser
// capability across them on a bounded worker pool.
package scan

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/mkoster/codeatlas/internal/config"
	"github.com/mkoster/codeatlas/internal/lang"
)

// IgnoreFileName holds extra gitignore-style skip patterns at the
// project root.
const IgnoreFileName = ".atlasignore"

// FileInfo is a discovered source file.
type FileInfo struct {
	Path    string // absolute path
	RelPath string // slash-normalized, relative to the project root
}

// Discover walks projectRoot once and returns every file whose extension
// is on the analyzer allow-list, skipping the fixed ignore-set of
// directory names plus any .atlasignore patterns.
func Discover(ctx context.Context, projectRoot string) ([]FileInfo, error) {
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, err
	}

	var ign *gitignore.GitIgnore
	if g, err := gitignore.CompileIgnoreFile(filepath.Join(projectRoot, IgnoreFileName)); err == nil {
		ign = g
	}

	var files []FileInfo
	err = filepath.Walk(projectRoot, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return filepath.SkipDir
		}

		rel, _ := filepath.Rel(projectRoot, path)
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if rel != "." && (config.IgnoreDirs[info.Name()] || (ign != nil && ign.MatchesPath(rel))) {
				return filepath.SkipDir
			}
			return nil
		}
		if ign != nil && ign.MatchesPath(rel) {
			return nil
		}
		if lang.Supported(strings.ToLower(filepath.Ext(path))) {
			files = append(files, FileInfo{Path: path, RelPath: rel})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
