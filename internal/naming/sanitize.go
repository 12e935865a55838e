package naming

import (
	"crypto/md5"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// isAllowed is the filename character allow-list: letters, digits, space,
// underscore, hyphen. Everything else is stripped by Sanitize.
func isAllowed(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-'
}

// Sanitize makes a styled name safe as a single path segment: strips
// disallowed characters, collapses repeated separators of the active style,
// trims leading/trailing separators, and enforces maxLen by cutting at a
// token boundary rather than mid-word. The result may be empty; callers
// fall back to FallbackName.
func Sanitize(name string, style Style, maxLen int) string {
	var sb strings.Builder
	for _, r := range name {
		if isAllowed(r) {
			sb.WriteRune(r)
		}
	}
	name = sb.String()

	sep := style.Separator()
	if sep != "" {
		double := sep + sep
		for strings.Contains(name, double) {
			name = strings.ReplaceAll(name, double, sep)
		}
	}
	name = strings.Trim(name, " _-")

	if maxLen > 0 && len(name) > maxLen {
		if sep != "" && strings.Contains(name[:maxLen], sep) {
			idx := strings.LastIndex(name[:maxLen], sep)
			name = name[:idx]
		} else {
			cut := name[:maxLen]
			// Back up to a rune boundary.
			for len(cut) > 0 && cut[len(cut)-1]&0xC0 == 0x80 {
				cut = cut[:len(cut)-1]
			}
			name = cut
		}
		name = strings.Trim(name, " _-")
	}

	return name
}

// FallbackName builds the constant placeholder used when a suggestion
// reduces to nothing usable: a fixed stem plus a short hash of the original
// path so two unnameable files never collide on the same fallback.
func FallbackName(path string) string {
	return "unnamed_" + ShortHash(path)
}

// ShortHash returns the first 8 hex characters of the md5 of s.
func ShortHash(s string) string {
	sum := md5.Sum([]byte(s))
	return fmt.Sprintf("%x", sum)[:8]
}

// StripExtension removes a trailing file extension the model may have added
// despite the instruction not to.
func StripExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return name
	}
	switch strings.ToLower(ext) {
	case ".txt", ".pdf", ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp",
		".mov", ".mp4", ".avi", ".mkv", ".webm",
		".ipynb", ".py", ".js", ".json", ".md", ".docx", ".pptx":
		return strings.TrimSuffix(name, ext)
	}
	return name
}
