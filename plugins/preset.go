// Package plugins provides the default per-tag plugin set for the
// conversion engine. Every plugin here is a consumer of the engine's
// lifecycle contract; none of them is required by the core itself.
package plugins

import "github.com/mkowalczyk/htmldown/converter"

// Default returns the standard preset covering common document markup.
// Later entries win over earlier ones on tag-name conflicts, so callers can
// append overrides to the slice before registering.
func Default() converter.Preset {
	return converter.Preset{
		Name: "default",
		Plugins: []converter.Plugin{
			DefaultSuppress(),
			&Paragraph{},
			&Heading{},
			&Blockquote{},
			&HorizontalRule{},
			&Preformatted{},
			NewEmphasis("**", "b", "strong"),
			NewEmphasis("_", "i", "em"),
			&Code{},
			&LineBreak{},
			&Anchor{},
			&Image{},
			&List{},
			&ListItem{},
			&Frame{},
		},
	}
}
