package plugins

import (
	"fmt"

	"github.com/JohannesKaufmann/dom"

	"github.com/mkowalczyk/htmldown/converter"
)

// Suppress drops matched elements and their entire subtrees.
type Suppress struct {
	converter.Hooks
	tags []string
}

// NewSuppress creates a suppression plugin for the given tags.
func NewSuppress(tags ...string) *Suppress {
	return &Suppress{tags: tags}
}

// DefaultSuppress suppresses document plumbing and form controls that have
// no Markdown rendition.
func DefaultSuppress() *Suppress {
	return NewSuppress(
		"head", "title", "meta", "link", "base", "script", "style",
		"noscript", "template", "select", "option", "textarea", "button",
		"object", "applet", "area", "map", "canvas",
	)
}

func (p *Suppress) TagNames() []string {
	return p.tags
}

func (*Suppress) Transform(*converter.State, converter.Scratch) (bool, error) {
	return false, nil
}

// FrameResolverName is the service name the Frame plugin resolves nested
// documents through.
const FrameResolverName = "frames"

// FrameResolver loads a frame's content document as a nested window.
type FrameResolver interface {
	converter.Service
	Resolve(src string) (*converter.Window, error)
	Release(w *converter.Window) error
}

// Frame converts frame and iframe content by swapping the state's window to
// the frame's document and driving the traversal itself. Without a frame
// resolver service the element is skipped entirely.
type Frame struct{ converter.Hooks }

func (*Frame) TagNames() []string {
	return []string{"frame", "iframe"}
}

func (*Frame) Before(s *converter.State, sc converter.Scratch) error {
	sc["window"] = s.Window()
	return nil
}

func (*Frame) Transform(s *converter.State, _ converter.Scratch) (bool, error) {
	src := dom.GetAttributeOr(s.Node(), "src", "")
	if src == "" {
		return false, nil
	}

	svc, ok := s.Service(FrameResolverName)
	if !ok {
		return false, nil
	}
	resolver, ok := svc.(FrameResolver)
	if !ok {
		return false, nil
	}

	w, err := resolver.Resolve(src)
	if err != nil {
		return false, fmt.Errorf("resolve frame %q: %w", src, err)
	}
	defer resolver.Release(w) //nolint:errcheck

	s.SetWindow(w)
	return false, s.Visit(w.Document)
}

func (*Frame) After(s *converter.State, sc converter.Scratch) error {
	if w, ok := sc["window"].(*converter.Window); ok {
		s.SetWindow(w)
	} else {
		s.SetWindow(nil)
	}
	return nil
}
