// Package extract turns files into bounded content samples suitable for a
// vision or text model. Dispatch is by lowercase extension; each strategy
// converges on the same Sample contract regardless of how it got the content.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hamedyaghoobian/smartname/internal/scan"
)

// Kind tags the payload variant carried by a Sample.
type Kind int

const (
	// KindImage is the raw bytes of an image file.
	KindImage Kind = iota
	// KindRenderedPage is a raster render of a document's first page.
	KindRenderedPage
	// KindText is extracted text, bounded by the registry's text budget.
	KindText
	// KindVideoFrame is a single frame grabbed from a video.
	KindVideoFrame
)

// Sample is the normalized output of every extraction strategy. Exactly one
// of Image or Text is populated depending on Kind. Fallback is true when a
// lighter-weight primary extraction failed and a heavier path was taken,
// e.g. a scanned PDF routed to page rendering.
type Sample struct {
	Kind         Kind
	Image        []byte
	Text         string
	SourceFormat string
	Fallback     bool
}

// ErrKind discriminates extraction failures.
type ErrKind int

const (
	// Unsupported means no strategy exists for the file's extension.
	Unsupported ErrKind = iota
	// ToolMissing means an external utility the strategy needs is absent
	// or failed to run.
	ToolMissing
	// Corrupt means the file could not be parsed by its format's reader.
	Corrupt
)

func (k ErrKind) String() string {
	switch k {
	case Unsupported:
		return "unsupported"
	case ToolMissing:
		return "tool missing"
	case Corrupt:
		return "corrupt"
	}
	return "unknown"
}

// Error is a file-scoped extraction failure.
type Error struct {
	Kind ErrKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("extract %s: %s", e.Path, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an extraction Error of the given kind.
func IsKind(err error, kind ErrKind) bool {
	var ee *Error
	return errors.As(err, &ee) && ee.Kind == kind
}

type strategy int

const (
	stratImage strategy = iota + 1
	stratPDF
	stratDocx
	stratPptx
	stratVideo
	stratText
	stratNotebook
)

var strategies = map[string]strategy{
	".png":  stratImage,
	".jpg":  stratImage,
	".jpeg": stratImage,
	".gif":  stratImage,
	".bmp":  stratImage,
	".webp": stratImage,

	".pdf": stratPDF,

	".docx": stratDocx,
	".pptx": stratPptx,

	".mov":  stratVideo,
	".mp4":  stratVideo,
	".avi":  stratVideo,
	".mkv":  stratVideo,
	".webm": stratVideo,

	".txt":  stratText,
	".md":   stratText,
	".py":   stratText,
	".js":   stratText,
	".json": stratText,

	".ipynb": stratNotebook,
}

// Supported reports whether ext (lowercase, with dot) has an extraction strategy.
func Supported(ext string) bool {
	_, ok := strategies[ext]
	return ok
}

// Config holds the tunable extraction parameters.
type Config struct {
	// DPI controls rasterization of document pages.
	DPI int
	// TextThreshold is the minimum extracted character count below which a
	// PDF is treated as scanned and routed to page rendering. The length
	// check is the only validation; short-but-valid text is an accepted risk.
	TextThreshold int
	// MaxTextBytes bounds text payloads handed to the model.
	MaxTextBytes int
	// OfficeRender enables the soffice visual path for office documents.
	OfficeRender bool
}

const (
	defaultDPI           = 150
	defaultTextThreshold = 100
	defaultMaxTextBytes  = 2000
)

// Registry maps file extensions to extraction strategies.
type Registry struct {
	cfg   Config
	tools Toolset
}

// NewRegistry builds a Registry with the given config, applying defaults for
// zero values, and detects which external tools are available.
func NewRegistry(cfg Config) *Registry {
	if cfg.DPI <= 0 {
		cfg.DPI = defaultDPI
	}
	if cfg.TextThreshold <= 0 {
		cfg.TextThreshold = defaultTextThreshold
	}
	if cfg.MaxTextBytes <= 0 {
		cfg.MaxTextBytes = defaultMaxTextBytes
	}
	return &Registry{cfg: cfg, tools: DetectTools()}
}

// Extract produces a content sample for entry, or a typed extraction Error.
func (r *Registry) Extract(ctx context.Context, entry scan.FileEntry) (Sample, error) {
	strat, ok := strategies[entry.Ext]
	if !ok {
		return Sample{}, &Error{Kind: Unsupported, Path: entry.Path}
	}

	switch strat {
	case stratImage:
		return r.extractImage(entry)
	case stratPDF:
		return r.extractPDF(entry)
	case stratDocx:
		return r.extractOffice(ctx, entry, officeDocx)
	case stratPptx:
		return r.extractOffice(ctx, entry, officePptx)
	case stratVideo:
		return r.extractVideoFrame(ctx, entry)
	case stratText:
		return r.extractText(entry)
	case stratNotebook:
		return r.extractNotebook(entry)
	}
	return Sample{}, &Error{Kind: Unsupported, Path: entry.Path}
}

func (r *Registry) extractImage(entry scan.FileEntry) (Sample, error) {
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return Sample{}, &Error{Kind: Corrupt, Path: entry.Path, Err: err}
	}
	return Sample{
		Kind:         KindImage,
		Image:        data,
		SourceFormat: entry.Ext,
	}, nil
}
