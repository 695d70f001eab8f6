package converter

import (
	"fmt"
	"net/url"
)

// Options holds conversion options shared by every Convert call of a
// Converter instance.
type Options struct {
	// Absolute emits absolute URLs for links and images, resolved against
	// BaseURI (or the active window's base URI when BaseURI is empty).
	Absolute bool `yaml:"absolute"`

	// BaseURI overrides the base URI derived from the active document.
	BaseURI string `yaml:"baseURI"`

	// Inline emits inline-style links and images instead of
	// reference-style ones.
	Inline bool `yaml:"inline"`

	// MaxDepth aborts a conversion whose element nesting exceeds this
	// bound. Zero means unbounded, matching the recursive traversal's
	// documented behavior.
	MaxDepth int `yaml:"maxDepth,omitempty"`
}

// Validate checks that option values are usable.
func (o Options) Validate() error {
	if o.MaxDepth < 0 {
		return fmt.Errorf("maxDepth must be >= 0, got %d", o.MaxDepth)
	}
	if o.BaseURI != "" {
		if _, err := url.Parse(o.BaseURI); err != nil {
			return fmt.Errorf("invalid baseURI %q: %w", o.BaseURI, err)
		}
	}
	return nil
}
