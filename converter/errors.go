package converter

import "errors"

// Sentinel errors for converter configuration and traversal.
var (
	// ErrServiceConfigured indicates that Use was called twice for the same
	// service name. Service wiring happens once at startup; re-registering
	// is a configuration bug, reported immediately.
	ErrServiceConfigured = errors.New("service already configured")

	// ErrNoWindowService indicates that Convert was called on string input
	// without a window service configured via Use.
	ErrNoWindowService = errors.New("no window service configured")

	// ErrMissingTagNames indicates a plugin whose TagNames returned an
	// empty set.
	ErrMissingTagNames = errors.New("plugin declares no tag names")

	// ErrMaxDepth indicates that the document nesting exceeded
	// Options.MaxDepth.
	ErrMaxDepth = errors.New("maximum element nesting depth exceeded")
)
