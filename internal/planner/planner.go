// Package planner builds an ordered, collision-free mapping from source
// paths to destination paths. Build is a pure function of its inputs and
// never touches the filesystem; ReadExisting is the one read-only helper
// that seeds it with on-disk state.
package planner

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hamedyaghoobian/smartname/internal/scan"
)

// Op is one planned rename or move. NoOp marks a destination equal to the
// source, recorded but never applied.
type Op struct {
	Source   string
	Dest     string
	Category string
	NoOp     bool
}

// Plan is the ordered set of operations for one batch. Destinations within
// a plan are pairwise distinct.
type Plan struct {
	Ops []Op
}

// Options selects how destinations are computed.
type Options struct {
	// Dir is the target directory all sources live in.
	Dir string
	// Organize nests destinations under a per-file category folder.
	Organize bool
	// RenameInFolders applies suggested names inside category folders;
	// without it organized files keep their original names.
	RenameInFolders bool
}

// Existing tracks committed destination names per folder. It is seeded from
// disk and owned by one Build call; names allocated during planning are
// added so later entries see them.
type Existing map[string]map[string]struct{}

// ReadExisting lists the current names in dir and each of the given
// subfolders. Only the target directory itself is required; an unreadable
// subfolder degrades to an empty set so the rest of the batch can proceed.
func ReadExisting(dir string, subdirs []string) (Existing, error) {
	ex := Existing{}

	add := func(folder string, required bool) error {
		names := map[string]struct{}{}
		entries, err := os.ReadDir(folder)
		if err != nil {
			if required {
				return fmt.Errorf("failed to read directory %s: %w", folder, err)
			}
			if !os.IsNotExist(err) {
				slog.Warn("Cannot read category folder, treating as empty", "folder", folder, "err", err)
			}
			ex[folder] = names
			return nil
		}
		for _, e := range entries {
			names[e.Name()] = struct{}{}
		}
		ex[folder] = names
		return nil
	}

	if err := add(dir, true); err != nil {
		return nil, err
	}
	for _, sub := range subdirs {
		if err := add(filepath.Join(dir, sub), false); err != nil {
			return nil, err
		}
	}
	return ex, nil
}

// Build computes the plan for entries in scan order. names maps source path
// to the suggested sanitized stem; entries missing from names keep their
// original stem (used when organizing without renaming, or when naming
// failed and the move should still happen). categories maps source path to
// its label and is consulted only when organizing.
func Build(entries []scan.FileEntry, names map[string]string, categories map[string]string, existing Existing, opts Options) Plan {
	plan := Plan{Ops: make([]Op, 0, len(entries))}

	for _, entry := range entries {
		folder := opts.Dir
		category := ""
		if opts.Organize {
			category = categories[entry.Path]
			folder = filepath.Join(opts.Dir, category)
		}

		stem, ok := names[entry.Path]
		if !ok {
			stem = entry.Stem()
		}
		ext := filepath.Ext(entry.Path)

		used := existing[folder]
		if used == nil {
			used = map[string]struct{}{}
			existing[folder] = used
		}

		candidate := stem + ext
		dest := filepath.Join(folder, candidate)
		if dest == entry.Path {
			plan.Ops = append(plan.Ops, Op{Source: entry.Path, Dest: dest, Category: category, NoOp: true})
			continue
		}

		name := allocName(stem, ext, used)
		used[name] = struct{}{}

		plan.Ops = append(plan.Ops, Op{
			Source:   entry.Path,
			Dest:     filepath.Join(folder, name),
			Category: category,
		})
	}

	return plan
}

// allocName finds the first free name, appending _1, _2, ... before the
// extension until unique within the folder's committed set.
func allocName(stem, ext string, used map[string]struct{}) string {
	name := stem + ext
	if _, ok := used[name]; !ok {
		return name
	}
	for n := 1; ; n++ {
		cand := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if _, ok := used[cand]; !ok {
			return cand
		}
	}
}
