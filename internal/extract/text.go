package extract

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/hamedyaghoobian/smartname/internal/scan"
)

// truncateText keeps the first max bytes of s, cut at a rune boundary.
func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	// Back up to a valid rune boundary.
	for len(cut) > 0 && cut[len(cut)-1]&0xC0 == 0x80 {
		cut = cut[:len(cut)-1]
	}
	return cut
}

func (r *Registry) extractText(entry scan.FileEntry) (Sample, error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return Sample{}, &Error{Kind: Corrupt, Path: entry.Path, Err: err}
	}
	return Sample{
		Kind:         KindText,
		Text:         truncateText(string(data), r.cfg.MaxTextBytes),
		SourceFormat: entry.Ext,
	}, nil
}

// notebook is the subset of the Jupyter format we care about.
type notebook struct {
	Cells []struct {
		CellType string   `json:"cell_type"`
		Source   []string `json:"source"`
	} `json:"cells"`
}

// extractNotebook concatenates the source of all cells, treating the
// notebook as structured text rather than raw JSON.
func (r *Registry) extractNotebook(entry scan.FileEntry) (Sample, error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return Sample{}, &Error{Kind: Corrupt, Path: entry.Path, Err: err}
	}

	var nb notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return Sample{}, &Error{Kind: Corrupt, Path: entry.Path, Err: err}
	}

	var sb strings.Builder
	for _, cell := range nb.Cells {
		for _, line := range cell.Source {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	return Sample{
		Kind:         KindText,
		Text:         truncateText(sb.String(), r.cfg.MaxTextBytes),
		SourceFormat: entry.Ext,
	}, nil
}
