package extract

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"unicode/utf8"

	"github.com/gen2brain/go-fitz"
	"github.com/hamedyaghoobian/smartname/internal/scan"
)

var errNoPages = errors.New("document has no pages")

// extractPDF tries page-1 text first and falls back to rendering page 1 as
// an image when the text is shorter than the scanned-document threshold.
func (r *Registry) extractPDF(entry scan.FileEntry) (Sample, error) {
	doc, err := fitz.New(entry.Path)
	if err != nil {
		return Sample{}, &Error{Kind: Corrupt, Path: entry.Path, Err: err}
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return Sample{}, &Error{Kind: Corrupt, Path: entry.Path, Err: errNoPages}
	}

	text, err := doc.Text(0)
	if err == nil && hasEnoughText(text, r.cfg.TextThreshold) {
		return Sample{
			Kind:         KindText,
			Text:         truncateText(text, r.cfg.MaxTextBytes),
			SourceFormat: entry.Ext,
		}, nil
	}

	// Likely a scanned document: render instead.
	img, err := renderPage(doc, 0, r.cfg.DPI)
	if err != nil {
		return Sample{}, &Error{Kind: Corrupt, Path: entry.Path, Err: err}
	}
	return Sample{
		Kind:         KindRenderedPage,
		Image:        img,
		SourceFormat: entry.Ext,
		Fallback:     true,
	}, nil
}

// hasEnoughText reports whether the extracted text clears the
// scanned-document threshold, counted in characters rather than bytes.
func hasEnoughText(text string, threshold int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= threshold
}

// renderPage rasterizes one page to PNG bytes at the given resolution.
func renderPage(doc *fitz.Document, page, dpi int) ([]byte, error) {
	img, err := doc.ImageDPI(page, float64(dpi))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
