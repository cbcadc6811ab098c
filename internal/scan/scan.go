// Package scan selects candidate VCF files from a directory.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions accepted as VCF input, compared case-insensitively.
var Extensions = []string{".vcf", ".vcf.gz"}

// IsVCFName reports whether name ends in .vcf or .vcf.gz.
func IsVCFName(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Dir returns the regular files under root whose names match IsVCFName,
// sorted by path. When recursive is false only root itself is listed.
// Symlinks are followed for the file check, not for directory descent.
func Dir(root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var paths []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsVCFName(info.Name()) {
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				return nil
			}
		} else if !info.Mode().IsRegular() {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}
