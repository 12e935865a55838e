// Package batch drives the per-file pipeline: scan, extract, suggest,
// classify, plan, then preview or apply. Every failure is file-scoped; one
// file's extraction or model failure never aborts the batch.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hamedyaghoobian/smartname/internal/classify"
	"github.com/hamedyaghoobian/smartname/internal/extract"
	"github.com/hamedyaghoobian/smartname/internal/naming"
	"github.com/hamedyaghoobian/smartname/internal/planner"
	"github.com/hamedyaghoobian/smartname/internal/scan"
)

// State is the per-file pipeline position. Terminal states are StateApplied
// and StateSkipped; dry-run stops every file at StatePlanned.
type State int

const (
	StateScanned State = iota
	StateExtracted
	StateSuggested
	StatePlanned
	StateApplied
	StateSkipped
)

func (s State) String() string {
	switch s {
	case StateScanned:
		return "scanned"
	case StateExtracted:
		return "extracted"
	case StateSuggested:
		return "suggested"
	case StatePlanned:
		return "planned"
	case StateApplied:
		return "applied"
	case StateSkipped:
		return "skipped"
	}
	return "unknown"
}

// ApplyKind discriminates filesystem failures during apply.
type ApplyKind int

const (
	PermissionDenied ApplyKind = iota
	NotFound
	Unknown
)

func (k ApplyKind) String() string {
	switch k {
	case PermissionDenied:
		return "permission denied"
	case NotFound:
		return "not found"
	}
	return "unknown"
}

// ApplyError is a file-scoped failure while performing a planned operation.
type ApplyError struct {
	Kind ApplyKind
	Path string
	Err  error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("apply %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

func applyErr(path string, err error) *ApplyError {
	kind := Unknown
	switch {
	case errors.Is(err, os.ErrPermission):
		kind = PermissionDenied
	case errors.Is(err, os.ErrNotExist):
		kind = NotFound
	}
	return &ApplyError{Kind: kind, Path: path, Err: err}
}

// Result is the outcome for one file.
type Result struct {
	Entry    scan.FileEntry
	State    State
	Name     string
	Category string
	Op       planner.Op
	Err      error
}

// Options configures one batch run.
type Options struct {
	Dir             string
	Execute         bool
	Organize        bool
	RenameInFolders bool
	ReportPath      string
}

// Orchestrator wires the pipeline stages together. Classifier may be nil
// when organization is disabled.
type Orchestrator struct {
	Registry   *extract.Registry
	Engine     *naming.Engine
	Classifier *classify.Classifier
	Options    Options
}

// Summary aggregates the end-of-run counts and per-file results.
type Summary struct {
	Planned int
	Applied int
	Skipped int
	NoOps   int
	Results []Result
}

// Run executes one batch over the target directory. The returned error is
// non-nil only for whole-batch failures (inaccessible directory); per-file
// failures are recorded in the summary.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	entries, err := scan.Directory(o.Options.Dir)
	if err != nil {
		return nil, err
	}

	supported := make([]scan.FileEntry, 0, len(entries))
	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		if extract.Supported(e.Ext) {
			supported = append(supported, e)
		} else {
			results = append(results, Result{
				Entry: e,
				State: StateSkipped,
				Err:   &extract.Error{Kind: extract.Unsupported, Path: e.Path},
			})
		}
	}

	o.printBanner(len(supported))

	names := map[string]string{}
	categories := map[string]string{}
	analyzed := make([]scan.FileEntry, 0, len(supported))

	for _, entry := range supported {
		if ctx.Err() != nil {
			slog.Warn("Interrupted, stopping before next file", "remaining", len(supported)-len(analyzed))
			break
		}

		result := o.analyze(ctx, entry)
		if result.State == StateSkipped {
			slog.Error("Skipping file", "path", entry.Path, "err", result.Err)
			results = append(results, result)
			continue
		}

		if result.Name != "" {
			names[entry.Path] = result.Name
		}
		if o.Options.Organize {
			categories[entry.Path] = result.Category
		}
		analyzed = append(analyzed, entry)
		results = append(results, result)
	}

	plan, err := o.buildPlan(analyzed, names, categories)
	if err != nil {
		return nil, err
	}

	bySource := map[string]planner.Op{}
	for _, op := range plan.Ops {
		bySource[op.Source] = op
	}
	for i := range results {
		if op, ok := bySource[results[i].Entry.Path]; ok {
			results[i].Op = op
			results[i].State = StatePlanned
		}
	}

	summary := &Summary{Results: results}
	for _, r := range results {
		switch {
		case r.State == StateSkipped:
			summary.Skipped++
		case r.Op.NoOp:
			summary.NoOps++
		case r.State == StatePlanned:
			summary.Planned++
		}
	}

	if o.Options.Execute {
		o.apply(ctx, summary)
	}
	o.printSummary(summary)

	if o.Options.ReportPath != "" {
		if err := WriteReport(o.Options.ReportPath, summary, o.Options); err != nil {
			slog.Error("Failed to write report", "path", o.Options.ReportPath, "err", err)
		}
	}

	return summary, nil
}

// analyze runs extraction, optional classification, and naming for one file.
func (o *Orchestrator) analyze(ctx context.Context, entry scan.FileEntry) Result {
	result := Result{Entry: entry, State: StateScanned}

	sample, err := o.Registry.Extract(ctx, entry)
	if err != nil {
		result.State = StateSkipped
		result.Err = err
		return result
	}
	result.State = StateExtracted

	// A document that yields no text gives the model nothing to work with.
	// Keep the original name and the default category instead of asking.
	if sample.Kind == extract.KindText && strings.TrimSpace(sample.Text) == "" {
		slog.Warn("No text content, keeping original name", "path", entry.Path)
		if o.Options.Organize {
			result.Category = o.Classifier.Default
		}
		return result
	}

	if o.Options.Organize {
		label, err := o.Classifier.Classify(ctx, sample)
		if err != nil {
			slog.Warn("Classification failed, using default label", "path", entry.Path, "label", o.Classifier.Default, "err", err)
			label = o.Classifier.Default
		}
		result.Category = label
		slog.Info("Categorized", "file", entry.Name(), "category", label)
	}

	wantName := !o.Options.Organize || o.Options.RenameInFolders
	if wantName {
		name, err := o.Engine.SuggestName(ctx, sample, entry.Path)
		if err != nil {
			if o.Options.Organize {
				// The move still happens under the original name.
				slog.Warn("Naming failed, keeping original name", "path", entry.Path, "err", err)
				result.State = StateExtracted
				return result
			}
			result.State = StateSkipped
			result.Err = err
			return result
		}
		result.Name = name
		result.State = StateSuggested
		slog.Info("Suggested", "file", entry.Name(), "name", name+entry.Ext, "fallback_sample", sample.Fallback)
	}

	return result
}

func (o *Orchestrator) buildPlan(entries []scan.FileEntry, names, categories map[string]string) (planner.Plan, error) {
	var subdirs []string
	if o.Options.Organize {
		seen := map[string]struct{}{}
		for _, c := range categories {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				subdirs = append(subdirs, c)
			}
		}
		sort.Strings(subdirs)
	}

	existing, err := planner.ReadExisting(o.Options.Dir, subdirs)
	if err != nil {
		return planner.Plan{}, err
	}

	return planner.Build(entries, names, categories, existing, planner.Options{
		Dir:             o.Options.Dir,
		Organize:        o.Options.Organize,
		RenameInFolders: o.Options.RenameInFolders,
	}), nil
}

// apply performs planned operations in plan order. Each failure is recorded
// and the remaining entries continue; a rename is atomic per file, so an
// interrupt mid-batch leaves only fully applied entries, with the rest
// still planned.
func (o *Orchestrator) apply(ctx context.Context, summary *Summary) {
	for i := range summary.Results {
		r := &summary.Results[i]
		if r.State != StatePlanned || r.Op.NoOp {
			continue
		}

		if ctx.Err() != nil {
			slog.Warn("Interrupted, leaving remaining operations planned", "path", r.Op.Source)
			return
		}

		if o.Options.Organize {
			if err := os.MkdirAll(filepath.Dir(r.Op.Dest), 0755); err != nil {
				r.State = StateSkipped
				r.Err = applyErr(r.Op.Dest, err)
				summary.Planned--
				summary.Skipped++
				continue
			}
		}

		if err := os.Rename(r.Op.Source, r.Op.Dest); err != nil {
			r.State = StateSkipped
			r.Err = applyErr(r.Op.Source, err)
			summary.Planned--
			summary.Skipped++
			continue
		}

		r.State = StateApplied
		summary.Planned--
		summary.Applied++
	}
}
