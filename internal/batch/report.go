package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func (o *Orchestrator) printBanner(count int) {
	fmt.Printf("Found %d files to process\n", count)
	fmt.Printf("Model: %s\n", o.Engine.Model)
	fmt.Printf("Case style: %s\n", o.Engine.Casing)
	if o.Options.Organize {
		fmt.Printf("Rename in folders: %v\n", o.Options.RenameInFolders)
	}
	if o.Options.Execute {
		fmt.Println("Mode: EXECUTE")
	} else {
		fmt.Println("Mode: DRY RUN")
	}
}

func (o *Orchestrator) printSummary(summary *Summary) {
	fmt.Println()
	fmt.Println("============================================================")
	if o.Options.Organize {
		fmt.Println("ORGANIZATION SUMMARY")
	} else {
		fmt.Println("RENAME SUMMARY")
	}
	fmt.Println("============================================================")

	for _, r := range summary.Results {
		switch {
		case r.State == StateSkipped:
			fmt.Printf("\n%s\n  skipped: %v\n", r.Entry.Name(), r.Err)
		case r.Op.NoOp:
			fmt.Printf("\n%s\n  unchanged\n", r.Entry.Name())
		case r.State == StateApplied:
			fmt.Printf("\n%s\n  -> %s  [applied]\n", r.Entry.Name(), o.relDest(r))
		case r.State == StatePlanned:
			fmt.Printf("\n%s\n  -> %s\n", r.Entry.Name(), o.relDest(r))
		}
	}

	fmt.Println()
	if o.Options.Execute {
		fmt.Printf("Applied: %d  Skipped: %d  Unchanged: %d\n", summary.Applied, summary.Skipped, summary.NoOps)
	} else {
		fmt.Printf("Planned: %d  Skipped: %d  Unchanged: %d\n", summary.Planned, summary.Skipped, summary.NoOps)
		fmt.Println()
		fmt.Println("This was a DRY RUN. Use --execute to actually rename files.")
	}
}

func (o *Orchestrator) relDest(r Result) string {
	if rel, err := filepath.Rel(o.Options.Dir, r.Op.Dest); err == nil {
		return rel
	}
	return r.Op.Dest
}

// Report is the YAML shape of an end-of-run summary.
type Report struct {
	Directory string        `yaml:"directory"`
	Mode      string        `yaml:"mode"`
	Applied   int           `yaml:"applied"`
	Planned   int           `yaml:"planned"`
	Skipped   int           `yaml:"skipped"`
	Unchanged int           `yaml:"unchanged"`
	Entries   []ReportEntry `yaml:"entries"`
}

// ReportEntry is one file's outcome in the report.
type ReportEntry struct {
	Source   string `yaml:"source"`
	Dest     string `yaml:"dest,omitempty"`
	Category string `yaml:"category,omitempty"`
	Status   string `yaml:"status"`
	Error    string `yaml:"error,omitempty"`
}

// WriteReport renders the summary as YAML to path.
func WriteReport(path string, summary *Summary, opts Options) error {
	mode := "dry-run"
	if opts.Execute {
		mode = "execute"
	}

	report := Report{
		Directory: opts.Dir,
		Mode:      mode,
		Applied:   summary.Applied,
		Planned:   summary.Planned,
		Skipped:   summary.Skipped,
		Unchanged: summary.NoOps,
		Entries:   make([]ReportEntry, 0, len(summary.Results)),
	}

	for _, r := range summary.Results {
		entry := ReportEntry{
			Source:   r.Entry.Path,
			Category: r.Category,
			Status:   r.State.String(),
		}
		if !r.Op.NoOp && r.Op.Dest != "" {
			entry.Dest = r.Op.Dest
		}
		if r.Op.NoOp {
			entry.Status = "unchanged"
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		report.Entries = append(report.Entries, entry)
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
