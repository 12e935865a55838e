package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Style is one of the supported filename casing styles.
type Style string

const (
	Snake  Style = "snake"
	Kebab  Style = "kebab"
	Camel  Style = "camel"
	Pascal Style = "pascal"
	Lower  Style = "lower"
	Title  Style = "title"
)

// Styles lists every supported casing style, for CLI help text.
var Styles = []Style{Snake, Kebab, Camel, Pascal, Lower, Title}

// ParseStyle validates a user-supplied style name.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case Snake, Kebab, Camel, Pascal, Lower, Title:
		return Style(s), nil
	}
	return "", fmt.Errorf("unknown casing style %q (valid: snake, kebab, camel, pascal, lower, title)", s)
}

// Separator returns the join string the style uses between tokens.
func (s Style) Separator() string {
	switch s {
	case Snake:
		return "_"
	case Kebab:
		return "-"
	case Lower, Title:
		return " "
	}
	return ""
}

// Tokenize splits a raw suggestion into word tokens on whitespace,
// underscores, and hyphens. Empty tokens and tokens with no allowed
// characters at all are discarded.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '_' || r == '-'
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.IndexFunc(f, isAllowed) < 0 {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Apply renders tokens in the given style. Purely numeric tokens are kept
// verbatim. Title fully normalizes each token (first code point upper, rest
// lower); camel and pascal touch only the first code point of each token
// after the initial one, since a concatenated name re-tokenizes as a single
// token and full lowering would discard the word boundaries.
func Apply(style Style, tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}

	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if isNumeric(tok) {
			out[i] = tok
			continue
		}
		switch style {
		case Snake, Kebab, Lower:
			out[i] = strings.ToLower(tok)
		case Title:
			out[i] = capitalize(tok)
		case Pascal:
			out[i] = capitalizeFirst(tok)
		case Camel:
			if i == 0 {
				out[i] = strings.ToLower(tok)
			} else {
				out[i] = capitalizeFirst(tok)
			}
		default:
			out[i] = strings.ToLower(tok)
		}
	}

	return strings.Join(out, style.Separator())
}

// capitalize uppercases the first code point and lowercases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// capitalizeFirst uppercases the first code point and leaves the rest
// untouched, preserving interior capitals in the concatenated styles.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
