// Package files holds the filesystem operations of the report filler:
// template duplication, output directory handling and input discovery.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Copy duplicates the file at src to dst, creating dst's directory as
// needed. Each report day starts from a fresh copy of the template.
func Copy(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	return out.Sync()
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// Newest returns the most recently modified regular file in dir whose
// name carries one of the given extensions (case-insensitive, with dot).
// Lets a flag point at a directory instead of a specific input file.
func Newest(dir string, exts ...string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	type candidate struct {
		path string
		mod  int64
	}
	var found []candidate
	for _, entry := range entries {
		if entry.IsDir() || !hasExt(entry.Name(), exts) {
			continue
		}
		// Temp lock files Excel leaves behind.
		if strings.HasPrefix(entry.Name(), "~$") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{
			path: filepath.Join(dir, entry.Name()),
			mod:  info.ModTime().UnixNano(),
		})
	}
	if len(found) == 0 {
		return "", fmt.Errorf("no %s file found in %s", strings.Join(exts, "/"), dir)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].mod > found[j].mod })
	return found[0].path, nil
}

func hasExt(name string, exts []string) bool {
	got := strings.ToLower(filepath.Ext(name))
	for _, want := range exts {
		if got == strings.ToLower(want) {
			return true
		}
	}
	return false
}
