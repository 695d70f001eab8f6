package converter

// Scratch is a per-element key/value map. The engine creates a fresh one
// immediately before visiting an element and discards it when the visit
// completes; it is the only channel from a plugin's Before hook to its
// After hook for the same element instance.
type Scratch map[string]any

// Plugin is the per-tag handler contract the engine dispatches through.
//
// Before and After are always called in matching pairs for every matched
// element, regardless of Transform's return value and even when visiting
// the element's children fails; the engine guarantees the pairing. After
// must therefore be able to restore any state Before saved into the
// Scratch without assuming children were visited.
type Plugin interface {
	// TagNames returns the non-empty, stable set of tag names this plugin
	// handles. Names are matched case-insensitively.
	TagNames() []string

	// BeforeAll runs once per conversion before traversal, in registry
	// order, independent of how many elements match.
	BeforeAll(s *State) error

	// Before runs when a matching element is entered.
	Before(s *State, sc Scratch) error

	// Transform runs after Before. Returning descend=false means the
	// plugin fully owns the subtree: the engine does not auto-descend,
	// and the plugin may drive recursion itself via State.Visit.
	Transform(s *State, sc Scratch) (descend bool, err error)

	// After runs when the element's visit completes.
	After(s *State, sc Scratch) error

	// AfterAll runs once per conversion after traversal, in registry
	// order.
	AfterAll(s *State) error
}

// Hooks is an embeddable no-op implementation of the five lifecycle hooks.
// Concrete plugins embed it and override only what they need; TagNames is
// intentionally left to the embedding type.
type Hooks struct{}

func (Hooks) BeforeAll(*State) error                  { return nil }
func (Hooks) Before(*State, Scratch) error            { return nil }
func (Hooks) Transform(*State, Scratch) (bool, error) { return true, nil }
func (Hooks) After(*State, Scratch) error             { return nil }
func (Hooks) AfterAll(*State) error                   { return nil }

// Preset is a named, ordered collection of plugins registered together.
// Later entries win over earlier ones on tag-name conflicts.
type Preset struct {
	Name    string
	Plugins []Plugin
}
