package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-park/pausable/pkg/plugin"
)

// getAllPathPatterns expands every directory pattern to itself and its sub
// directories, skipping the directories the go tool ignores. Other patterns, like
// "./..." or import paths, are left to the loader.
func getAllPathPatterns(patterns []string) ([]string, error) {
	var list []string
	for _, v := range patterns {
		if fi, err := os.Stat(v); err != nil || !fi.IsDir() {
			list = append(list, v)
			continue
		}
		err := filepath.WalkDir(v, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != v && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			switch path = filepath.Clean(path); {
			case filepath.IsAbs(path), path == ".":
				list = append(list, path)
			default:
				list = append(list, "."+string(filepath.Separator)+path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", v, err)
		}
	}
	if len(list) == 0 {
		return nil, errors.New("no package patterns to load")
	}
	return list, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
		name == "testdata" || name == "vendor"
}

func outputName(c plugin.Component, suffix string) string {
	return filepath.Join(filepath.Dir(c.Filename()), strings.ToLower(c.Name())+suffix)
}

func filterEmptyStr(ss ...string) []string {
	arr := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.TrimSpace(s); len(s) > 0 {
			arr = append(arr, s)
		}
	}
	return arr
}
