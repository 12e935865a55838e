// Package naming turns content samples into filesystem-safe, casing-styled
// filename stems via a generative model provider.
package naming

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hamedyaghoobian/smartname/internal/extract"
	"github.com/hamedyaghoobian/smartname/internal/providers"
)

// ErrKind discriminates naming failures.
type ErrKind int

const (
	// ModelUnavailable means the provider call failed or timed out.
	ModelUnavailable ErrKind = iota
	// EmptyResponse means the provider returned no usable text.
	EmptyResponse
)

func (k ErrKind) String() string {
	if k == EmptyResponse {
		return "empty response"
	}
	return "model unavailable"
}

// Error is a file-scoped naming failure.
type Error struct {
	Kind ErrKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("naming: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("naming: %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a naming Error of the given kind.
func IsKind(err error, kind ErrKind) bool {
	var ne *Error
	return errors.As(err, &ne) && ne.Kind == kind
}

// Engine asks the model for a name suggestion and normalizes it into a
// sanitized filename stem.
type Engine struct {
	Provider    providers.Provider
	Model       string
	Temperature float64
	Casing      Style
	MaxLength   int
	// Timeout bounds each model call; zero means no deadline.
	Timeout time.Duration
}

// SuggestName returns a sanitized stem for the file at sourcePath based on
// its content sample. The returned stem never contains characters outside
// the allow-list and never exceeds MaxLength.
func (e *Engine) SuggestName(ctx context.Context, sample extract.Sample, sourcePath string) (string, error) {
	req := providers.Request{
		Model:       e.Model,
		Temperature: e.Temperature,
		Prompt:      buildNamePrompt(sample),
	}
	if sample.Kind != extract.KindText {
		req.Images = [][]byte{sample.Image}
	}

	raw, err := e.generate(ctx, req)
	if err != nil {
		return "", err
	}

	styled := Apply(e.Casing, Tokenize(StripExtension(raw)))
	name := Sanitize(styled, e.Casing, e.MaxLength)
	if name == "" {
		name = FallbackName(sourcePath)
	}
	return name, nil
}

func (e *Engine) generate(ctx context.Context, req providers.Request) (string, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	raw, err := e.Provider.Generate(ctx, req)
	if err != nil {
		return "", &Error{Kind: ModelUnavailable, Err: err}
	}

	raw = strings.Trim(strings.TrimSpace(raw), "\"'`")
	if raw == "" {
		return "", &Error{Kind: EmptyResponse}
	}
	return raw, nil
}

const nameDirectives = "suggest a concise, descriptive filename " +
	"(5-8 words max, use underscores instead of spaces). " +
	"Only respond with the filename, nothing else."

// buildNamePrompt parameterizes the fixed instruction template by sample kind.
func buildNamePrompt(sample extract.Sample) string {
	switch sample.Kind {
	case extract.KindImage:
		return "Analyze this image and " + nameDirectives +
			" Focus on the main subject or content."
	case extract.KindRenderedPage:
		return fmt.Sprintf("This is the first page of a %s document. Analyze it and %s Focus on the document's topic or title.",
			formatLabel(sample.SourceFormat), nameDirectives)
	case extract.KindVideoFrame:
		return "This is a frame from a video. Analyze it and " + nameDirectives
	default:
		return fmt.Sprintf("This is the content of a %s file:\n\n%s\n\nBased on the content, %s",
			sample.SourceFormat, sample.Text, nameDirectives)
	}
}

func formatLabel(ext string) string {
	switch ext {
	case ".pdf":
		return "PDF"
	case ".docx":
		return "Word"
	case ".pptx":
		return "PowerPoint"
	}
	return strings.TrimPrefix(ext, ".")
}
