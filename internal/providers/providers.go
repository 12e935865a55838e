package providers

import (
	"context"
)

// Request represents a single generation request to an LLM provider.
// Images are raw image payloads for vision-capable models; each provider
// encodes them the way its wire format requires.
type Request struct {
	Model       string
	Temperature float64
	Prompt      string
	Images      [][]byte
}

// Provider defines the interface for an LLM provider
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}
