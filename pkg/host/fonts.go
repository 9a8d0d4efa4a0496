package host

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	ferrors "github.com/matzehuels/framecast/pkg/errors"
	"github.com/matzehuels/framecast/pkg/style"
)

// FontCache remembers the outcome of each [Host.LoadTypography] call. It is
// safe for concurrent use.
type FontCache struct {
	host   Host
	logger *log.Logger

	mu     sync.Mutex
	loaded map[style.Font]error
}

// NewFontCache returns a cache over h. logger may be nil.
func NewFontCache(h Host, logger *log.Logger) *FontCache {
	return &FontCache{host: h, logger: logger, loaded: make(map[style.Font]error)}
}

// Load returns font once it is available. When it cannot be loaded the
// default font is loaded instead and returned along with a
// FONT_UNAVAILABLE error.
func (c *FontCache) Load(ctx context.Context, font style.Font) (style.Font, error) {
	err := c.load(ctx, font)
	if err == nil {
		return font, nil
	}
	if c.logger != nil {
		c.logger.Warn("font unavailable, using default", "family", font.Family, "style", font.Style)
	}
	if font != style.DefaultFont {
		if derr := c.load(ctx, style.DefaultFont); derr != nil {
			return style.DefaultFont, derr
		}
	}
	return style.DefaultFont, err
}

func (c *FontCache) load(ctx context.Context, font style.Font) error {
	c.mu.Lock()
	err, ok := c.loaded[font]
	c.mu.Unlock()
	if ok {
		return err
	}

	if err = c.host.LoadTypography(ctx, font); err != nil {
		if ctx.Err() != nil {
			return err
		}
		err = ferrors.Wrap(ferrors.ErrCodeFontUnavailable, err, "load %s %s", font.Family, font.Style)
	}
	c.mu.Lock()
	c.loaded[font] = err
	c.mu.Unlock()
	return err
}

// Loaded returns the fonts that loaded successfully.
func (c *FontCache) Loaded() []style.Font {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []style.Font
	for f, err := range c.loaded {
		if err == nil {
			out = append(out, f)
		}
	}
	return out
}
