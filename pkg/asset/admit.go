package asset

import (
	"strings"

	ferrors "github.com/matzehuels/framecast/pkg/errors"
)

// Admit normalizes raw into a fetchable absolute URL. Protocol-relative
// URLs are upgraded to https; root-relative and data URLs are rejected
// with ASSET_UNSUPPORTED_URL.
func Admit(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	switch {
	case u == "":
		return "", ferrors.New(ferrors.ErrCodeAssetUnsupportedURL, "empty image URL")
	case strings.HasPrefix(u, "data:"):
		return "", ferrors.New(ferrors.ErrCodeAssetUnsupportedURL, "data URLs are not supported")
	case strings.HasPrefix(u, "//"):
		u = "https:" + u
	case strings.HasPrefix(u, "/"):
		return "", ferrors.New(ferrors.ErrCodeAssetUnsupportedURL, "relative URL %q cannot be fetched", u)
	}
	if err := ferrors.ValidateURL(u); err != nil {
		return "", err
	}
	return u, nil
}
