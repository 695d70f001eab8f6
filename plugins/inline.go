package plugins

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/dom"

	"github.com/mkowalczyk/htmldown/converter"
)

// Emphasis wraps matched elements in a fixed syntax token, such as "**" for
// bold or "_" for italics.
type Emphasis struct {
	converter.Hooks
	tags  []string
	token string
}

// NewEmphasis creates an emphasis plugin emitting token around the given
// tags.
func NewEmphasis(token string, tags ...string) *Emphasis {
	return &Emphasis{token: token, tags: tags}
}

func (e *Emphasis) TagNames() []string {
	return e.tags
}

func (e *Emphasis) Before(s *converter.State, _ converter.Scratch) error {
	s.WriteRaw(e.token)
	s.SetNoWhiteSpace()
	return nil
}

func (e *Emphasis) After(s *converter.State, _ converter.Scratch) error {
	s.WriteRaw(e.token)
	return nil
}

// Code renders inline code spans with backtick-escaped content. Inside a
// preformatted block it stands down and lets the block handle the text.
type Code struct{ converter.Hooks }

func (*Code) TagNames() []string {
	return []string{"code", "samp", "kbd", "var", "tt"}
}

func (*Code) Before(s *converter.State, sc converter.Scratch) error {
	if s.Preformatted() || s.Code() {
		sc["skip"] = true
		return nil
	}
	s.WriteRaw("`")
	s.SetCode(true)
	s.SetNoWhiteSpace()
	return nil
}

func (*Code) After(s *converter.State, sc converter.Scratch) error {
	if skip, _ := sc["skip"].(bool); skip {
		return nil
	}
	s.SetCode(false)
	s.WriteRaw("`")
	return nil
}

// LineBreak renders br as a Markdown hard break.
type LineBreak struct{ converter.Hooks }

func (*LineBreak) TagNames() []string {
	return []string{"br"}
}

func (*LineBreak) Before(s *converter.State, _ converter.Scratch) error {
	s.WriteRaw("  ")
	s.BreakLine()
	return nil
}

func (*LineBreak) Transform(*converter.State, converter.Scratch) (bool, error) {
	return false, nil
}

// Anchor renders links, inline or reference-style per Options.Inline, with
// URL resolution per Options.Absolute. Reference definitions accumulate in
// the conversion stash and are flushed once by AfterAll.
type Anchor struct{ converter.Hooks }

func (*Anchor) TagNames() []string {
	return []string{"a"}
}

func (*Anchor) BeforeAll(s *converter.State) error {
	s.Stash()[linkRefsKey] = []string(nil)
	return nil
}

func (*Anchor) Before(s *converter.State, sc converter.Scratch) error {
	href := strings.TrimSpace(dom.GetAttributeOr(s.Node(), "href", ""))
	if href == "" {
		sc["skip"] = true
		return nil
	}
	sc["href"] = href
	s.WriteRaw("[")
	s.SetNoWhiteSpace()
	return nil
}

func (*Anchor) After(s *converter.State, sc converter.Scratch) error {
	if skip, _ := sc["skip"].(bool); skip {
		return nil
	}
	href := resolveURL(s, sc["href"].(string))
	if s.Options().Inline {
		s.WriteRaw("](" + href + ")")
		return nil
	}
	s.WriteRaw(fmt.Sprintf("][%d]", addLinkRef(s, href)))
	return nil
}

func (*Anchor) AfterAll(s *converter.State) error {
	flushLinkRefs(s)
	return nil
}

// Image renders img elements under the same URL policy as Anchor. Images
// have no children, so Transform never descends.
type Image struct{ converter.Hooks }

func (*Image) TagNames() []string {
	return []string{"img"}
}

func (*Image) Before(s *converter.State, _ converter.Scratch) error {
	src := strings.TrimSpace(dom.GetAttributeOr(s.Node(), "src", ""))
	if src == "" {
		return nil
	}
	alt := dom.GetAttributeOr(s.Node(), "alt", "")
	src = resolveURL(s, src)
	if s.Options().Inline {
		s.WriteRaw(fmt.Sprintf("![%s](%s)", alt, src))
		return nil
	}
	s.WriteRaw(fmt.Sprintf("![%s][%d]", alt, addLinkRef(s, src)))
	return nil
}

func (*Image) Transform(*converter.State, converter.Scratch) (bool, error) {
	return false, nil
}

func (*Image) AfterAll(s *converter.State) error {
	flushLinkRefs(s)
	return nil
}

const linkRefsKey = "htmldown.linkRefs"

func addLinkRef(s *converter.State, target string) int {
	refs, _ := s.Stash()[linkRefsKey].([]string)
	refs = append(refs, target)
	s.Stash()[linkRefsKey] = refs
	return len(refs)
}

// flushLinkRefs writes the accumulated reference definitions and clears
// them, so whichever plugin's AfterAll runs first does the flushing.
func flushLinkRefs(s *converter.State) {
	refs, _ := s.Stash()[linkRefsKey].([]string)
	if len(refs) == 0 {
		return
	}
	delete(s.Stash(), linkRefsKey)

	s.EnsureParagraphBreak()
	for i, target := range refs {
		if i > 0 {
			s.BreakLine()
		}
		s.WriteRaw(fmt.Sprintf("[%d]: %s", i+1, target))
	}
}

func resolveURL(s *converter.State, ref string) string {
	if !s.Options().Absolute {
		return ref
	}
	base := s.BaseURI()
	if base == "" {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
