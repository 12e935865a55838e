package naming

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hamedyaghoobian/smartname/internal/extract"
	"github.com/hamedyaghoobian/smartname/internal/providers"
)

// fakeProvider returns a canned response and records the last request.
type fakeProvider struct {
	response string
	err      error
	lastReq  providers.Request
}

func (f *fakeProvider) Generate(_ context.Context, req providers.Request) (string, error) {
	f.lastReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newEngine(p providers.Provider) *Engine {
	return &Engine{
		Provider:  p,
		Model:     "llava:latest",
		Casing:    Snake,
		MaxLength: 100,
	}
}

func TestSuggestName(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{
			name:     "plain suggestion",
			response: "Quarterly Sales Report",
			expected: "quarterly_sales_report",
		},
		{
			name:     "quoted with model-added extension",
			response: "\"Quarterly Sales Report.pdf\"",
			expected: "quarterly_sales_report",
		},
		{
			name:     "surrounding whitespace and backticks",
			response: "  `meeting_notes_april`  ",
			expected: "meeting_notes_april",
		},
		{
			name:     "illegal characters removed",
			response: "budget/2024: draft?",
			expected: "budget2024_draft",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{response: tt.response}
			engine := newEngine(provider)

			sample := extract.Sample{Kind: extract.KindText, Text: "body", SourceFormat: ".txt"}
			got, err := engine.SuggestName(context.Background(), sample, "/tmp/file.txt")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSuggestNameEmptyResponse(t *testing.T) {
	engine := newEngine(&fakeProvider{response: "   "})

	sample := extract.Sample{Kind: extract.KindText, Text: "body", SourceFormat: ".txt"}
	_, err := engine.SuggestName(context.Background(), sample, "/tmp/file.txt")
	if !IsKind(err, EmptyResponse) {
		t.Errorf("Expected EmptyResponse error, got %v", err)
	}
}

func TestSuggestNameProviderFailure(t *testing.T) {
	engine := newEngine(&fakeProvider{err: errors.New("connection refused")})

	sample := extract.Sample{Kind: extract.KindText, Text: "body", SourceFormat: ".txt"}
	_, err := engine.SuggestName(context.Background(), sample, "/tmp/file.txt")
	if !IsKind(err, ModelUnavailable) {
		t.Errorf("Expected ModelUnavailable error, got %v", err)
	}
}

func TestSuggestNameFallsBackWhenUnusable(t *testing.T) {
	engine := newEngine(&fakeProvider{response: "???!!!"})

	sample := extract.Sample{Kind: extract.KindText, Text: "body", SourceFormat: ".txt"}
	got, err := engine.SuggestName(context.Background(), sample, "/tmp/file.txt")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "unnamed_") {
		t.Errorf("Expected fallback name, got %q", got)
	}
}

func TestSuggestNamePayloadRouting(t *testing.T) {
	provider := &fakeProvider{response: "sunset over the bay"}
	engine := newEngine(provider)

	img := extract.Sample{Kind: extract.KindImage, Image: []byte{0x89, 0x50}, SourceFormat: ".png"}
	if _, err := engine.SuggestName(context.Background(), img, "/tmp/a.png"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(provider.lastReq.Images) != 1 {
		t.Errorf("Expected image payload for image sample, got %d images", len(provider.lastReq.Images))
	}

	text := extract.Sample{Kind: extract.KindText, Text: "hello world", SourceFormat: ".md"}
	if _, err := engine.SuggestName(context.Background(), text, "/tmp/a.md"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(provider.lastReq.Images) != 0 {
		t.Errorf("Expected no image payload for text sample, got %d images", len(provider.lastReq.Images))
	}
	if !strings.Contains(provider.lastReq.Prompt, "hello world") {
		t.Error("Expected text sample content embedded in prompt")
	}
}
