package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/hamedyaghoobian/smartname/internal/extract"
	"github.com/hamedyaghoobian/smartname/internal/gemini"
	"github.com/hamedyaghoobian/smartname/internal/naming"
	"github.com/hamedyaghoobian/smartname/internal/ollama"
	"github.com/hamedyaghoobian/smartname/internal/openai"
	"github.com/hamedyaghoobian/smartname/internal/providers"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// pipelineFlags is the flag surface shared by run and organize.
type pipelineFlags struct {
	provider      string
	model         string
	url           string
	caseStyle     string
	dpi           int
	textThreshold int
	textBudget    int
	maxLength     int
	timeout       time.Duration
	temperature   float64
	officeRender  bool
	execute       bool
	report        string
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.provider, "provider", "", "LLM provider: ollama, openai, or gemini (default ollama, or SMARTNAME_PROVIDER)")
	cmd.Flags().StringVar(&f.model, "model", "", "Model to use (default per provider, or SMARTNAME_MODEL)")
	cmd.Flags().StringVar(&f.url, "url", "", "Ollama server URL (default http://localhost:11434, or OLLAMA_URL)")
	cmd.Flags().StringVar(&f.caseStyle, "case", "snake", "Casing style: snake, kebab, camel, pascal, lower, title")
	cmd.Flags().IntVar(&f.dpi, "dpi", 150, "DPI for document page rendering")
	cmd.Flags().IntVar(&f.textThreshold, "text-threshold", 100, "Minimum extracted characters before a PDF is treated as scanned")
	cmd.Flags().IntVar(&f.textBudget, "text-budget", 2000, "Maximum text bytes sent to the model per file")
	cmd.Flags().IntVar(&f.maxLength, "max-length", 100, "Maximum generated filename length")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 2*time.Minute, "Per-file model call timeout (0 disables)")
	cmd.Flags().Float64Var(&f.temperature, "temperature", 0.1, "Model sampling temperature")
	cmd.Flags().BoolVar(&f.officeRender, "office-render", false, "Render office documents visually via soffice when available")
	cmd.Flags().BoolVar(&f.execute, "execute", false, "Actually rename/move files (default is dry-run)")
	cmd.Flags().StringVar(&f.report, "report", "", "Write the run summary as YAML to this file")
}

// resolve applies environment defaults and validates the flag values,
// returning the configured provider, registry, and naming engine.
func (f *pipelineFlags) resolve() (providers.Provider, *extract.Registry, *naming.Engine, error) {
	if f.provider == "" {
		f.provider = os.Getenv("SMARTNAME_PROVIDER")
	}
	if f.provider == "" {
		f.provider = "ollama"
	}
	if f.model == "" {
		f.model = os.Getenv("SMARTNAME_MODEL")
	}
	if f.model == "" {
		f.model = defaultModel(f.provider)
	}

	style, err := naming.ParseStyle(f.caseStyle)
	if err != nil {
		return nil, nil, nil, err
	}

	var provider providers.Provider
	switch f.provider {
	case "ollama":
		provider = ollama.New(f.url)
	case "openai":
		provider = openai.New()
	case "gemini":
		provider = gemini.New()
	default:
		return nil, nil, nil, fmt.Errorf("unsupported provider: %s", f.provider)
	}

	registry := extract.NewRegistry(extract.Config{
		DPI:           f.dpi,
		TextThreshold: f.textThreshold,
		MaxTextBytes:  f.textBudget,
		OfficeRender:  f.officeRender,
	})

	engine := &naming.Engine{
		Provider:    provider,
		Model:       f.model,
		Temperature: f.temperature,
		Casing:      style,
		MaxLength:   f.maxLength,
		Timeout:     f.timeout,
	}

	return provider, registry, engine, nil
}

func defaultModel(provider string) string {
	switch provider {
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-1.5-flash"
	default:
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "llava:latest"
	}
}

// targetDir validates the required directory argument. An inaccessible or
// nonexistent directory is the only whole-run fatal error.
func targetDir(args []string) (string, error) {
	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("cannot access directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}
	return dir, nil
}

// loadCategoriesFile reads a YAML file holding the category label list,
// either as a top-level sequence or under a "categories" key.
func loadCategoriesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}

	var wrapped struct {
		Categories []string `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &wrapped); err == nil && len(wrapped.Categories) > 0 {
		return wrapped.Categories, nil
	}

	var plain []string
	if err := yaml.Unmarshal(data, &plain); err != nil {
		return nil, fmt.Errorf("failed to parse categories file: %w", err)
	}
	if len(plain) == 0 {
		return nil, fmt.Errorf("categories file %s contains no labels", path)
	}
	return plain, nil
}
