package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"
	"github.com/hamedyaghoobian/smartname/internal/scan"
)

type officeFormat int

const (
	officeDocx officeFormat = iota
	officePptx
)

// maxSlides limits how many pptx slides contribute text.
const maxSlides = 5

// sofficeTimeout bounds the document-to-PDF conversion subprocess.
const sofficeTimeout = 30 * time.Second

// extractOffice pulls text out of an OOXML document. When the visual path is
// enabled and soffice is available it instead converts the document to PDF
// and renders the first page, which gives the model layout as well as words.
func (r *Registry) extractOffice(ctx context.Context, entry scan.FileEntry, format officeFormat) (Sample, error) {
	if r.cfg.OfficeRender && r.tools.Soffice != "" {
		img, err := r.renderOfficePage(ctx, entry)
		if err == nil {
			return Sample{
				Kind:         KindRenderedPage,
				Image:        img,
				SourceFormat: entry.Ext,
			}, nil
		}
		slog.Warn("Office render failed, falling back to text extraction", "path", entry.Path, "err", err)
	}

	var text string
	var err error
	switch format {
	case officeDocx:
		text, err = docxText(entry.Path)
	case officePptx:
		text, err = pptxText(entry.Path)
	}
	if err != nil {
		return Sample{}, &Error{Kind: Corrupt, Path: entry.Path, Err: err}
	}

	return Sample{
		Kind:         KindText,
		Text:         truncateText(text, r.cfg.MaxTextBytes),
		SourceFormat: entry.Ext,
		Fallback:     r.cfg.OfficeRender && r.tools.Soffice != "",
	}, nil
}

// docxText concatenates the paragraph text of word/document.xml.
func docxText(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("failed to open document.xml: %w", err)
			}
			defer rc.Close()
			return runsText(rc, "t", "p")
		}
	}
	return "", fmt.Errorf("no word/document.xml in archive")
}

// pptxText concatenates the text runs of the first slides in order.
func pptxText(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pptx archive: %w", err)
	}
	defer zr.Close()

	var texts []string
	for i := 1; i <= maxSlides; i++ {
		name := fmt.Sprintf("ppt/slides/slide%d.xml", i)
		var found *zip.File
		for _, f := range zr.File {
			if f.Name == name {
				found = f
				break
			}
		}
		if found == nil {
			break
		}
		rc, err := found.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", name, err)
		}
		text, err := runsText(rc, "t", "p")
		rc.Close()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) != "" {
			texts = append(texts, strings.TrimSpace(text))
		}
	}

	if len(texts) == 0 {
		return "", nil
	}
	return strings.Join(texts, "\n"), nil
}

// runsText walks an OOXML part collecting character data inside elements
// named textElem, inserting newlines at paragraph (paraElem) boundaries.
// Both docx (w:t / w:p) and pptx (a:t / a:p) share this shape.
func runsText(r io.Reader, textElem, paraElem string) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == textElem {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Local == textElem {
				inText = false
			}
			if t.Name.Local == paraElem {
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

// renderOfficePage converts the document to PDF with soffice and renders the
// first page of the result.
func (r *Registry) renderOfficePage(ctx context.Context, entry scan.FileEntry) ([]byte, error) {
	dir, err := tempDir()
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, sofficeTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.tools.Soffice,
		"--headless", "--convert-to", "pdf",
		"--outdir", dir, entry.Path,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("soffice conversion failed: %w: %s", err, string(out))
	}

	pdfPath := filepath.Join(dir, entry.Stem()+".pdf")
	defer os.Remove(pdfPath)

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open converted pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, errNoPages
	}
	return renderPage(doc, 0, r.cfg.DPI)
}
