package errors

import (
	"strings"
	"unicode"
)

// ValidateURL validates an absolute image URL.
// It ensures the URL has a fetchable scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeAssetUnsupportedURL, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeAssetUnsupportedURL, "URL must use http or https scheme")
	}

	for _, r := range rawURL {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeAssetUnsupportedURL, "URL contains invalid characters")
		}
	}

	return nil
}

// ValidateConversionID validates a stored conversion identifier.
// IDs are used as file names and database keys, so the rules are strict:
//   - Not empty, at most 64 characters
//   - Only letters, digits and '-'
func ValidateConversionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "conversion id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "conversion id too long (max 64 characters)")
	}
	for _, r := range id {
		if r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return New(ErrCodeInvalidInput, "conversion id contains invalid characters: %q", r)
		}
	}
	return nil
}
