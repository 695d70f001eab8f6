package converter

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var whitespaceRun = regexp.MustCompile(`[ \t\r\n\f]+`)

// State is the mutable output state of a single conversion. Exactly one
// State is live per Convert call; the engine threads it by pointer through
// the whole traversal and plugins mutate it in place.
//
// Line breaks are queued in pending rather than written eagerly, so the
// indentation prefix in effect when content is actually written is the one
// applied after each break. Plugins that grow the prefix (lists,
// blockquotes, preformatted blocks) change it before writing the affected
// content and restore the prior value from their Scratch on exit.
type State struct {
	conv   *Converter
	window *Window
	opts   Options

	buf     strings.Builder
	pending int // queued line breaks, capped at 2

	node    *html.Node
	tagName string

	left           string
	atNoWhiteSpace bool
	inPre          bool
	inCode         bool

	depth int
	stash Scratch
}

// Write appends text under whitespace-collapsing rules: runs of whitespace
// collapse to a single space, and leading whitespace is dropped entirely at
// the start of a visual line or right after a plugin emitted syntax markup.
func (s *State) Write(text string) {
	if text == "" {
		return
	}
	text = whitespaceRun.ReplaceAllString(text, " ")
	if s.atLineStart() || s.atNoWhiteSpace {
		text = strings.TrimLeft(text, " ")
	}
	if text == "" {
		return
	}
	s.flushBreaks()
	s.buf.WriteString(text)
	s.atNoWhiteSpace = false
}

// WriteRaw appends text verbatim. The current indentation prefix is applied
// after every newline the text introduces. Used for Markdown syntax tokens
// and preformatted content.
func (s *State) WriteRaw(text string) {
	if text == "" {
		return
	}
	s.flushBreaks()
	if s.left != "" {
		text = strings.ReplaceAll(text, "\n", "\n"+s.left)
	}
	s.buf.WriteString(text)
	s.atNoWhiteSpace = false
}

// WriteCode appends text verbatim with backticks escaped, for inline code
// content.
func (s *State) WriteCode(text string) {
	s.WriteRaw(strings.ReplaceAll(text, "`", "\\`"))
}

// EnsureParagraphBreak guarantees the buffer ends with exactly one blank
// line before subsequent output. Idempotent: a break already pending is not
// widened, and nothing happens at the very start of the document.
func (s *State) EnsureParagraphBreak() {
	if s.buf.Len() == 0 {
		return
	}
	s.pending = 2
}

// BreakLine queues a single line break; the indentation prefix follows it
// when the next content is written.
func (s *State) BreakLine() {
	if s.buf.Len() == 0 {
		return
	}
	if s.pending < 1 {
		s.pending = 1
	}
}

func (s *State) flushBreaks() {
	if s.buf.Len() == 0 {
		// First line of the document still gets the prefix.
		s.pending = 0
		s.buf.WriteString(s.left)
		return
	}
	for ; s.pending > 0; s.pending-- {
		s.buf.WriteString("\n")
		s.buf.WriteString(s.left)
	}
}

// atLineStart reports whether the next write starts a visual line.
func (s *State) atLineStart() bool {
	return s.pending > 0 || s.buf.Len() == 0
}

// AtParagraph reports whether the buffer currently ends at a paragraph
// boundary.
func (s *State) AtParagraph() bool {
	return s.pending >= 2 || s.buf.Len() == 0
}

// SetNoWhiteSpace suppresses collapsible leading whitespace on the next
// write. Plugins call it right after emitting syntax markup such as "**".
func (s *State) SetNoWhiteSpace() {
	s.atNoWhiteSpace = true
}

// Node returns the DOM element currently being visited, or nil outside an
// element visit.
func (s *State) Node() *html.Node {
	return s.node
}

// TagName returns the lower-cased tag name of the current element, or the
// empty string outside an element visit.
func (s *State) TagName() string {
	return s.tagName
}

// Left returns the indentation prefix applied after every line break.
func (s *State) Left() string {
	return s.left
}

// SetLeft replaces the indentation prefix. Callers save the prior value in
// their Scratch and restore it on exit.
func (s *State) SetLeft(left string) {
	s.left = left
}

// Preformatted reports whether text nodes are currently written verbatim.
func (s *State) Preformatted() bool {
	return s.inPre
}

// SetPreformatted toggles verbatim text-node writes.
func (s *State) SetPreformatted(on bool) {
	s.inPre = on
}

// Code reports whether text nodes are currently written with backticks
// escaped.
func (s *State) Code() bool {
	return s.inCode
}

// SetCode toggles backtick-escaped text-node writes.
func (s *State) SetCode(on bool) {
	s.inCode = on
}

// Window returns the window owning the document under traversal, or nil
// when converting a detached element.
func (s *State) Window() *Window {
	return s.window
}

// SetWindow swaps the active window for a nested-document context (for
// example a frame's content window). The owning plugin restores the prior
// window from its Scratch on exit.
func (s *State) SetWindow(w *Window) {
	s.window = w
}

// Options returns the options of the owning conversion.
func (s *State) Options() Options {
	return s.opts
}

// BaseURI returns the explicit base URI option, falling back to the active
// window's base URI.
func (s *State) BaseURI() string {
	if s.opts.BaseURI != "" {
		return s.opts.BaseURI
	}
	if s.window != nil {
		return s.window.BaseURI
	}
	return ""
}

// Service returns a service configured on the owning converter.
func (s *State) Service(name string) (Service, bool) {
	svc, ok := s.conv.services[name]
	return svc, ok
}

// Stash returns a scratch map scoped to the whole conversion, for plugins
// that accumulate data across elements (reference link definitions, for
// example). It is never shared across conversions.
func (s *State) Stash() Scratch {
	if s.stash == nil {
		s.stash = Scratch{}
	}
	return s.stash
}

func (s *State) result() string {
	// Pending breaks are never flushed, which drops trailing blank lines.
	// Leading whitespace only survives collapsing inside preformatted
	// blocks, where it is significant, so only newlines are trimmed on the
	// left.
	return strings.TrimLeft(strings.TrimRight(s.buf.String(), " \t\n"), "\n")
}

func (s *State) writeText(text string) {
	switch {
	case s.inPre:
		s.WriteRaw(text)
	case s.inCode:
		s.WriteCode(text)
	default:
		s.Write(text)
	}
}
