package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateOutputBase validates the base filename images are written to.
// The extension is appended per format, so the base must not end in a
// separator and must not contain control characters.
//
// Validation rules:
//   - Base cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator, "." or "..")
func ValidateOutputBase(base string) error {
	if strings.TrimSpace(base) == "" {
		return New(ErrCodeInvalidPath, "output name cannot be empty")
	}

	const maxPathLength = 500
	if len(base) > maxPathLength {
		return New(ErrCodeInvalidPath, "output name too long (max %d characters)", maxPathLength)
	}

	for _, r := range base {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output name contains invalid characters")
		}
	}

	if strings.HasSuffix(base, "/") || strings.HasSuffix(base, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output name must be a file, not a directory: %q", base)
	}

	switch filepath.Base(base) {
	case ".", "..":
		return New(ErrCodeInvalidPath, "output name must be a file, not a directory: %q", base)
	}

	return nil
}

// ValidateOneOf returns an INVALID_INPUT error unless value is a key of allowed.
// what names the option in the message, e.g. "format" or "engine".
func ValidateOneOf(what, value string, allowed map[string]bool) error {
	if allowed[value] {
		return nil
	}
	return New(ErrCodeInvalidInput, "invalid %s: %q", what, value)
}
