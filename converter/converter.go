// Package converter implements the HTML to Markdown conversion core: a
// depth-first visitor over a DOM tree that dispatches per-tag behavior
// through a pluggable handler registry while maintaining a single mutable
// output state per conversion.
package converter

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

// WindowServiceName is the service name the engine resolves its DOM
// provider under.
const WindowServiceName = "window"

// Window is a document handle produced by a window service. The core never
// constructs one from raw HTML itself.
type Window struct {
	Document *html.Node
	BaseURI  string
}

// Service is a named external collaborator configured via Use.
type Service interface {
	ServiceName() string
}

// WindowService is the DOM provider contract: obtain a window for an HTML
// document and release it afterwards.
type WindowService interface {
	Service
	Open(htmlText string) (*Window, error)
	Close(w *Window) error
}

// Converter walks DOM trees and renders Markdown through its plugin
// registry. Configure it once at startup (Register, RegisterPreset, Use);
// conversions only read that configuration, so concurrent Convert calls are
// safe once registration has finished.
type Converter struct {
	opts     Options
	registry *Registry
	services map[string]Service
}

// New creates a Converter with the given options and an empty registry.
func New(opts Options) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Converter{
		opts:     opts,
		registry: NewRegistry(),
		services: make(map[string]Service),
	}, nil
}

// Register adds a single plugin to the converter's registry.
func (c *Converter) Register(p Plugin) error {
	return c.registry.Register(p)
}

// RegisterPreset adds an ordered collection of plugins to the converter's
// registry.
func (c *Converter) RegisterPreset(preset Preset) error {
	return c.registry.RegisterPreset(preset)
}

// Registry exposes the converter's plugin registry.
func (c *Converter) Registry() *Registry {
	return c.registry
}

// Use configures a named external service. Re-registering an already
// configured name is a fatal configuration error, reported immediately.
func (c *Converter) Use(svc Service) error {
	name := svc.ServiceName()
	if _, ok := c.services[name]; ok {
		return fmt.Errorf("%w: %q", ErrServiceConfigured, name)
	}
	c.services[name] = svc
	return nil
}

// Convert parses an HTML document through the configured window service and
// returns its Markdown rendition. Empty input yields the empty string
// without a traversal.
func (c *Converter) Convert(htmlText string) (string, error) {
	if htmlText == "" {
		return "", nil
	}

	ws, err := c.windowService()
	if err != nil {
		return "", err
	}
	w, err := ws.Open(htmlText)
	if err != nil {
		return "", fmt.Errorf("window service failed to open document: %w", err)
	}
	defer ws.Close(w) //nolint:errcheck

	return c.run(w.Document, w)
}

// ConvertElement converts a DOM subtree directly, using node as the
// traversal root. A nil node yields the empty string.
func (c *Converter) ConvertElement(node *html.Node) (string, error) {
	if node == nil {
		return "", nil
	}
	return c.run(node, nil)
}

func (c *Converter) windowService() (WindowService, error) {
	svc, ok := c.services[WindowServiceName]
	if !ok {
		return nil, ErrNoWindowService
	}
	ws, ok := svc.(WindowService)
	if !ok {
		return nil, fmt.Errorf("%w: service %q does not provide windows", ErrNoWindowService, WindowServiceName)
	}
	return ws, nil
}

func (c *Converter) run(root *html.Node, w *Window) (string, error) {
	s := &State{conv: c, window: w, opts: c.opts}

	for _, p := range c.registry.All() {
		if err := p.BeforeAll(s); err != nil {
			return "", fmt.Errorf("plugin %T beforeAll: %w", p, err)
		}
	}

	if err := s.Visit(root); err != nil {
		return "", err
	}

	for _, p := range c.registry.All() {
		if err := p.AfterAll(s); err != nil {
			return "", fmt.Errorf("plugin %T afterAll: %w", p, err)
		}
	}

	return s.result(), nil
}

// Visit walks a node depth-first under the current output state. Plugins
// whose Transform returned false may call it to drive recursion themselves.
func (s *State) Visit(n *html.Node) error {
	if n == nil {
		return nil
	}

	switch n.Type {
	case html.ElementNode:
		return s.visitElement(n)
	case html.TextNode:
		s.writeText(n.Data)
		return nil
	case html.DocumentNode:
		return s.visitChildren(n)
	default:
		// Comments, doctypes and raw nodes contribute nothing.
		return nil
	}
}

func (s *State) visitChildren(n *html.Node) error {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := s.Visit(child); err != nil {
			return err
		}
	}
	return nil
}

func (s *State) visitElement(n *html.Node) error {
	if !elementVisible(n) {
		return nil
	}

	if max := s.opts.MaxDepth; max > 0 && s.depth >= max {
		return fmt.Errorf("%w (%d)", ErrMaxDepth, max)
	}
	s.depth++
	defer func() { s.depth-- }()

	prevNode, prevTag := s.node, s.tagName
	tag := strings.ToLower(dom.NodeName(n))
	s.node, s.tagName = n, tag
	defer func() { s.node, s.tagName = prevNode, prevTag }()

	plugin, matched := s.conv.registry.Get(tag)
	if !matched {
		return s.visitChildren(n)
	}

	scratch := Scratch{}
	if err := plugin.Before(s, scratch); err != nil {
		return fmt.Errorf("plugin %T before <%s>: %w", plugin, tag, err)
	}

	// After runs unconditionally once Before has run, even when Transform
	// or a descendant visit fails.
	descend, transformErr := plugin.Transform(s, scratch)

	var walkErr error
	if transformErr == nil && descend {
		walkErr = s.visitChildren(n)
	}

	s.node, s.tagName = n, tag
	afterErr := plugin.After(s, scratch)

	switch {
	case transformErr != nil:
		return fmt.Errorf("plugin %T transform <%s>: %w", plugin, tag, transformErr)
	case walkErr != nil:
		return walkErr
	case afterErr != nil:
		return fmt.Errorf("plugin %T after <%s>: %w", plugin, tag, afterErr)
	}
	return nil
}

// elementVisible applies the simplified visibility check: only the
// element's own inline style (and hidden attribute) is inspected, not
// inherited ancestor visibility.
func elementVisible(n *html.Node) bool {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, "hidden") {
			return false
		}
	}

	style := dom.GetAttributeOr(n, "style", "")
	if style == "" {
		return true
	}
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.ToLower(strings.TrimSpace(value))
		if name == "display" && value == "none" {
			return false
		}
		if name == "visibility" && value == "hidden" {
			return false
		}
	}
	return true
}
