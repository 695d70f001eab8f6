package converter

import (
	"fmt"
	"strings"
)

// Registry maps tag names to their single active plugin. Each Converter
// owns one; it is configured at startup and only read during conversions.
type Registry struct {
	byTag map[string]Plugin
	order []Plugin
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byTag: make(map[string]Plugin)}
}

// Register maps each of the plugin's declared tag names to it, overwriting
// any existing mapping for those names only. A plugin previously registered
// under other names stays active for them. Registering the same plugin
// twice is idempotent.
func (r *Registry) Register(p Plugin) error {
	names := p.TagNames()
	if len(names) == 0 {
		return fmt.Errorf("%w: %T", ErrMissingTagNames, p)
	}

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return fmt.Errorf("%w: %T declares an empty tag name", ErrMissingTagNames, p)
		}
		r.byTag[name] = p
	}

	if !r.contains(p) {
		r.order = append(r.order, p)
	}
	return nil
}

// RegisterPreset registers the preset's plugins in declared order, so later
// entries win over earlier ones on tag-name conflicts.
func (r *Registry) RegisterPreset(preset Preset) error {
	for _, p := range preset.Plugins {
		if err := r.Register(p); err != nil {
			return fmt.Errorf("preset %q: %w", preset.Name, err)
		}
	}
	return nil
}

// Get returns the active plugin for a tag name, case-insensitively.
func (r *Registry) Get(tagName string) (Plugin, bool) {
	p, ok := r.byTag[strings.ToLower(tagName)]
	return p, ok
}

// All returns the distinct registered plugins in first-registration order.
// BeforeAll and AfterAll hooks run in this order.
func (r *Registry) All() []Plugin {
	return r.order
}

func (r *Registry) contains(p Plugin) bool {
	for _, existing := range r.order {
		if existing == p {
			return true
		}
	}
	return false
}
