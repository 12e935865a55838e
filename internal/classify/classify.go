// Package classify assigns one label from a closed set to a content sample.
// The closed-world check guards against free-text drift from the model: any
// answer that cannot be matched to an allowed label becomes the default.
package classify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hamedyaghoobian/smartname/internal/extract"
	"github.com/hamedyaghoobian/smartname/internal/providers"
)

// DefaultLabels are the built-in organization categories.
var DefaultLabels = []string{
	"books",
	"photos",
	"figures",
	"documents",
	"presentations",
	"screenshots",
	"art",
	"code",
	"other",
}

// DefaultLabel is the closed-world fallback when the model's answer matches
// no allowed label.
const DefaultLabel = "other"

// Classifier picks one category label for a content sample.
type Classifier struct {
	Provider    providers.Provider
	Model       string
	Temperature float64
	Labels      []string
	Default     string
	Timeout     time.Duration
}

// New returns a Classifier over the given label set; nil labels use the
// built-in set. The default label is the last label if the set does not
// contain DefaultLabel.
func New(provider providers.Provider, model string, labels []string) *Classifier {
	if len(labels) == 0 {
		labels = DefaultLabels
	}
	def := DefaultLabel
	if !contains(labels, def) {
		def = labels[len(labels)-1]
	}
	return &Classifier{
		Provider: provider,
		Model:    model,
		Labels:   labels,
		Default:  def,
	}
}

// Classify returns a label from the allowed set. Provider failures are
// returned as errors; callers treat them as file-scoped and may fall back
// to the default label.
func (c *Classifier) Classify(ctx context.Context, sample extract.Sample) (string, error) {
	req := providers.Request{
		Model:       c.Model,
		Temperature: c.Temperature,
		Prompt:      c.buildPrompt(sample),
	}
	if sample.Kind != extract.KindText {
		req.Images = [][]byte{sample.Image}
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	raw, err := c.Provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to classify: %w", err)
	}

	return c.match(raw), nil
}

// match maps a raw model answer onto the allowed label set.
func (c *Classifier) match(raw string) string {
	answer := strings.ToLower(strings.Trim(strings.TrimSpace(raw), "\"'`.,!?;:"))

	for _, label := range c.Labels {
		if answer == strings.ToLower(label) {
			return label
		}
	}

	// Salvage near misses like "art." or "a photo" before giving up.
	for _, label := range c.Labels {
		l := strings.ToLower(label)
		if strings.HasPrefix(answer, l) || strings.Contains(answer, l) {
			return label
		}
	}

	return c.Default
}

func (c *Classifier) buildPrompt(sample extract.Sample) string {
	labelList := strings.Join(c.Labels, ", ")
	instruction := fmt.Sprintf("categorize it into ONE of these categories: %s.\nRespond with ONLY the category name, nothing else.", labelList)

	switch sample.Kind {
	case extract.KindImage:
		return "Analyze this image and " + instruction
	case extract.KindRenderedPage:
		return "Analyze this document page and " + instruction
	case extract.KindVideoFrame:
		return "Analyze this video frame and categorize the video into ONE of these categories: " + labelList +
			".\nRespond with ONLY the category name, nothing else."
	default:
		return fmt.Sprintf("This is the content of a %s file:\n\n%s\n\nAnalyze it and %s",
			sample.SourceFormat, sample.Text, instruction)
	}
}

func contains(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
