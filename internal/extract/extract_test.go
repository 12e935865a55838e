package extract

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hamedyaghoobian/smartname/internal/scan"
)

func writeFile(t *testing.T, dir, name, content string) scan.FileEntry {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return scan.FileEntry{Path: path, Ext: strings.ToLower(filepath.Ext(name)), Size: int64(len(content))}
}

func TestSupported(t *testing.T) {
	for _, ext := range []string{".png", ".jpg", ".pdf", ".docx", ".pptx", ".mp4", ".txt", ".ipynb"} {
		if !Supported(ext) {
			t.Errorf("Expected %s to be supported", ext)
		}
	}
	for _, ext := range []string{".exe", ".zip", "", ".tar"} {
		if Supported(ext) {
			t.Errorf("Expected %s to be unsupported", ext)
		}
	}
}

func TestExtractUnsupported(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "data.bin", "binary")

	r := NewRegistry(Config{})
	_, err := r.Extract(context.Background(), entry)
	if !IsKind(err, Unsupported) {
		t.Errorf("Expected Unsupported error, got %v", err)
	}
}

func TestExtractText(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "notes.txt", "meeting notes about the quarterly budget")

	r := NewRegistry(Config{})
	sample, err := r.Extract(context.Background(), entry)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if sample.Kind != KindText {
		t.Errorf("Expected KindText, got %v", sample.Kind)
	}
	if sample.Text != "meeting notes about the quarterly budget" {
		t.Errorf("Unexpected text: %q", sample.Text)
	}
	if sample.Fallback {
		t.Error("Expected Fallback=false for plain text")
	}
	if sample.SourceFormat != ".txt" {
		t.Errorf("Expected .txt source format, got %s", sample.SourceFormat)
	}
}

func TestExtractTextBounded(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "big.txt", strings.Repeat("x", 5000))

	r := NewRegistry(Config{MaxTextBytes: 100})
	sample, err := r.Extract(context.Background(), entry)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(sample.Text) != 100 {
		t.Errorf("Expected 100 bytes, got %d", len(sample.Text))
	}
}

func TestTruncateTextRuneBoundary(t *testing.T) {
	// 3-byte runes; a 4-byte budget must not split one.
	s := "日本語"
	got := truncateText(s, 4)
	if got != "日" {
		t.Errorf("Expected %q, got %q", "日", got)
	}
	if got := truncateText("short", 100); got != "short" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
}

func TestHasEnoughTextCountsCharacters(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		threshold int
		expected  bool
	}{
		{
			name:      "ascii at threshold",
			text:      strings.Repeat("a", 10),
			threshold: 10,
			expected:  true,
		},
		{
			name:      "multibyte runes count once each",
			text:      strings.Repeat("日", 10),
			threshold: 10,
			expected:  true,
		},
		{
			name:      "multibyte below threshold despite byte length",
			text:      strings.Repeat("日", 9),
			threshold: 10,
			expected:  false,
		},
		{
			name:      "surrounding whitespace ignored",
			text:      "   ab   ",
			threshold: 3,
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasEnoughText(tt.text, tt.threshold); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestExtractNotebook(t *testing.T) {
	dir := t.TempDir()
	nb := `{"cells":[
		{"cell_type":"markdown","source":["# Analysis\n"]},
		{"cell_type":"code","source":["import pandas as pd\n","df = pd.read_csv('data.csv')\n"]}
	]}`
	entry := writeFile(t, dir, "analysis.ipynb", nb)

	r := NewRegistry(Config{})
	sample, err := r.Extract(context.Background(), entry)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if sample.Kind != KindText {
		t.Errorf("Expected KindText, got %v", sample.Kind)
	}
	if !strings.Contains(sample.Text, "# Analysis") || !strings.Contains(sample.Text, "import pandas") {
		t.Errorf("Expected concatenated cell sources, got %q", sample.Text)
	}
}

func TestExtractNotebookCorrupt(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "broken.ipynb", "{not json")

	r := NewRegistry(Config{})
	_, err := r.Extract(context.Background(), entry)
	if !IsKind(err, Corrupt) {
		t.Errorf("Expected Corrupt error, got %v", err)
	}
}

func writeZip(t *testing.T, dir, name string, parts map[string]string) scan.FileEntry {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for partName, content := range parts {
		w, err := zw.Create(partName)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return scan.FileEntry{Path: path, Ext: strings.ToLower(filepath.Ext(name))}
}

func TestExtractDocx(t *testing.T) {
	dir := t.TempDir()
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Project Proposal</w:t></w:r></w:p>
    <w:p><w:r><w:t>Budget for </w:t></w:r><w:r><w:t>next year</w:t></w:r></w:p>
  </w:body>
</w:document>`
	entry := writeZip(t, dir, "proposal.docx", map[string]string{"word/document.xml": doc})

	r := NewRegistry(Config{})
	sample, err := r.Extract(context.Background(), entry)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if sample.Kind != KindText {
		t.Errorf("Expected KindText, got %v", sample.Kind)
	}
	if !strings.Contains(sample.Text, "Project Proposal") {
		t.Errorf("Missing paragraph text: %q", sample.Text)
	}
	if !strings.Contains(sample.Text, "Budget for next year") {
		t.Errorf("Expected adjacent runs joined, got %q", sample.Text)
	}
}

func TestExtractPptx(t *testing.T) {
	dir := t.TempDir()
	slide := func(text string) string {
		return `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"
       xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:txBody><a:p><a:r><a:t>` + text + `</a:t></a:r></a:p></p:txBody>
</p:sld>`
	}
	entry := writeZip(t, dir, "deck.pptx", map[string]string{
		"ppt/slides/slide1.xml": slide("Roadmap 2025"),
		"ppt/slides/slide2.xml": slide("Milestones"),
		"ppt/slides/slide7.xml": slide("Should be ignored"),
	})

	r := NewRegistry(Config{})
	sample, err := r.Extract(context.Background(), entry)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(sample.Text, "Roadmap 2025") || !strings.Contains(sample.Text, "Milestones") {
		t.Errorf("Expected slide texts, got %q", sample.Text)
	}
	if strings.Contains(sample.Text, "Should be ignored") {
		t.Errorf("Expected slides past the gap to be ignored, got %q", sample.Text)
	}
}

func TestExtractDocxCorrupt(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "broken.docx", "not a zip archive")

	r := NewRegistry(Config{})
	_, err := r.Extract(context.Background(), entry)
	if !IsKind(err, Corrupt) {
		t.Errorf("Expected Corrupt error, got %v", err)
	}
}

func TestExtractImage(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "photo.png", "\x89PNG fake bytes")

	r := NewRegistry(Config{})
	sample, err := r.Extract(context.Background(), entry)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if sample.Kind != KindImage {
		t.Errorf("Expected KindImage, got %v", sample.Kind)
	}
	if string(sample.Image) != "\x89PNG fake bytes" {
		t.Error("Expected raw image bytes passed through")
	}
	if sample.Fallback {
		t.Error("Expected Fallback=false for images")
	}
}

func TestExtractVideoWithoutFFmpeg(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "clip.mp4", "fake video")

	r := NewRegistry(Config{})
	r.tools.FFmpeg = ""

	_, err := r.Extract(context.Background(), entry)
	if !IsKind(err, ToolMissing) {
		t.Errorf("Expected ToolMissing error, got %v", err)
	}
}
