package errors

import (
	"strings"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid https", "https://example.com/a.png", false},
		{"valid http", "http://example.com/a.png?x=1", false},

		{"empty", "", true},
		{"data uri", "data:image/png;base64,AAAA", true},
		{"blob", "blob:https://example.com/123", true},
		{"relative", "/images/a.png", true},
		{"ftp", "ftp://example.com/a.png", true},
		{"space", "https://example.com/a b.png", true},
		{"newline", "https://example.com/a\n.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeAssetUnsupportedURL) {
				t.Errorf("ValidateURL(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeAssetUnsupportedURL)
			}
		})
	}
}

func TestValidateConversionID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "3f1c2a9e-8d4b-4c1e-9a0f-1b2c3d4e5f60", false},
		{"simple", "abc123", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"path traversal", "../etc", true},
		{"slash", "a/b", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConversionID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConversionID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
