package naming

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "splits on whitespace underscores and hyphens",
			input:    "large_language models-rule",
			expected: []string{"large", "language", "models", "rule"},
		},
		{
			name:     "discards empty tokens",
			input:    "a__b  c--d",
			expected: []string{"a", "b", "c", "d"},
		},
		{
			name:     "discards tokens with no allowed characters",
			input:    "report !!! 2024",
			expected: []string{"report", "2024"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "only separators",
			input:    "_-_ -",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Tokenize(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestApplyAllStyles(t *testing.T) {
	tokens := []string{"large", "language", "models"}

	tests := []struct {
		style    Style
		expected string
	}{
		{Snake, "large_language_models"},
		{Kebab, "large-language-models"},
		{Camel, "largeLanguageModels"},
		{Pascal, "LargeLanguageModels"},
		{Lower, "large language models"},
		{Title, "Large Language Models"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			result := Apply(tt.style, tokens)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestApplyNormalizesCase(t *testing.T) {
	tests := []struct {
		name     string
		style    Style
		tokens   []string
		expected string
	}{
		{
			name:     "title lowercases token tails",
			style:    Title,
			tokens:   []string{"QUARTERLY", "review"},
			expected: "Quarterly Review",
		},
		{
			name:     "lower flattens everything",
			style:    Lower,
			tokens:   []string{"QUARTERLY", "Review"},
			expected: "quarterly review",
		},
		{
			name:     "camel lowercases the whole first token",
			style:    Camel,
			tokens:   []string{"LARGE", "LANGUAGE", "models"},
			expected: "largeLANGUAGEModels",
		},
		{
			name:     "snake lowercases token tails",
			style:    Snake,
			tokens:   []string{"Quarterly", "REVIEW"},
			expected: "quarterly_review",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply(tt.style, tt.tokens); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	inputs := [][]string{
		{"Quarterly", "REVIEW", "2024"},
		{"one"},
		{"mixedCase", "Tokens", "here"},
	}

	// Camel is excluded: its first token is fully lowercased, so a
	// multi-word camel name loses its boundaries on a second pass.
	styles := []Style{Snake, Kebab, Pascal, Lower, Title}

	for _, style := range styles {
		for _, tokens := range inputs {
			once := Apply(style, tokens)
			twice := Apply(style, Tokenize(once))
			if once != twice {
				t.Errorf("style %s not idempotent: %q != %q", style, once, twice)
			}
		}
	}
}

func TestApplyNumericTokens(t *testing.T) {
	tokens := []string{"report", "2024", "q3"}

	if got := Apply(Title, tokens); got != "Report 2024 Q3" {
		t.Errorf("Expected %q, got %q", "Report 2024 Q3", got)
	}
	if got := Apply(Pascal, tokens); got != "Report2024Q3" {
		t.Errorf("Expected %q, got %q", "Report2024Q3", got)
	}
	if got := Apply(Snake, tokens); got != "report_2024_q3" {
		t.Errorf("Expected %q, got %q", "report_2024_q3", got)
	}
}

func TestCapitalizeUnicode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"été", "Été"},
		{"über", "Über"},
		{"iOS", "Ios"},
		{"x", "X"},
	}

	for _, tt := range tests {
		if got := capitalize(tt.input); got != tt.expected {
			t.Errorf("capitalize(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}

	if got := capitalizeFirst("iOS"); got != "IOS" {
		t.Errorf("capitalizeFirst(%q): expected %q, got %q", "iOS", "IOS", got)
	}
}

func TestParseStyle(t *testing.T) {
	if _, err := ParseStyle("snake"); err != nil {
		t.Errorf("Unexpected error for valid style: %v", err)
	}
	if _, err := ParseStyle("shouting"); err == nil {
		t.Error("Expected error for unknown style")
	}
}
