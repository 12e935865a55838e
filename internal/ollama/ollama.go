package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/hamedyaghoobian/smartname/internal/providers"
)

// Ollama is a provider for Ollama
type Ollama struct {
	baseURL string
}

// New returns a new Ollama provider. An empty baseURL falls back to the
// OLLAMA_URL environment variable, then to the default local address.
func New(baseURL string) *Ollama {
	if baseURL == "" {
		baseURL = os.Getenv("OLLAMA_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &Ollama{baseURL: baseURL}
}

// Generate sends the prompt (and any images, base64-encoded) to the Ollama
// generate endpoint and returns the model's response text.
func (o *Ollama) Generate(ctx context.Context, req providers.Request) (string, error) {
	url := o.baseURL + "/api/generate"

	body := map[string]interface{}{
		"model":  req.Model,
		"prompt": req.Prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": req.Temperature,
		},
	}
	if len(req.Images) > 0 {
		encoded := make([]string, 0, len(req.Images))
		for _, img := range req.Images {
			encoded = append(encoded, base64.StdEncoding.EncodeToString(img))
		}
		body["images"] = encoded
	}

	requestBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(respBody))
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return response.Response, nil
}
