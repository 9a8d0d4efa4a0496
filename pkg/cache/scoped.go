package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments, or
// a CLI and a server, can share one backend without colliding.
//
// Example usage:
//
//	// Keys for the staging server
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// AssetKey generates a prefixed key for image caching.
func (k *ScopedKeyer) AssetKey(url string) string {
	return k.prefix + k.inner.AssetKey(url)
}

// DocumentKey generates a prefixed key for document caching.
func (k *ScopedKeyer) DocumentKey(inputHash string, opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(inputHash, opts)
}
