package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileEntry describes one regular file found during a directory scan.
// Ext is the lowercase extension including the leading dot.
type FileEntry struct {
	Path string
	Ext  string
	Size int64
}

// Name returns the base name of the file.
func (e FileEntry) Name() string {
	return filepath.Base(e.Path)
}

// Stem returns the base name without its extension.
func (e FileEntry) Stem() string {
	name := filepath.Base(e.Path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Directory lists the regular files directly under dir, sorted by name so
// repeated scans of an unmodified directory produce the same order.
// It does not recurse into subdirectories.
func Directory(dir string) ([]FileEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	entries := make([]FileEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, FileEntry{
			Path: filepath.Join(dir, de.Name()),
			Ext:  strings.ToLower(filepath.Ext(de.Name())),
			Size: info.Size(),
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
