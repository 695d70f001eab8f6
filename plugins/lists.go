package plugins

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/mkowalczyk/htmldown/converter"
)

// List separates top-level lists from surrounding prose. Nested lists sit
// inside their parent item without an extra blank line.
type List struct{ converter.Hooks }

func (*List) TagNames() []string {
	return []string{"ol", "ul"}
}

func (*List) Before(s *converter.State, _ converter.Scratch) error {
	if parentTag(s.Node()) != "li" {
		s.EnsureParagraphBreak()
	}
	return nil
}

func (*List) After(s *converter.State, _ converter.Scratch) error {
	if parentTag(s.Node()) != "li" {
		s.EnsureParagraphBreak()
	}
	return nil
}

// ListItem renders li markers and indents item content so continuation
// lines and nested blocks stay inside the item.
type ListItem struct{ converter.Hooks }

func (*ListItem) TagNames() []string {
	return []string{"li"}
}

func (*ListItem) Before(s *converter.State, sc converter.Scratch) error {
	s.BreakLine()

	marker := "- "
	if parentTag(s.Node()) == "ol" {
		marker = fmt.Sprintf("%d. ", itemIndex(s.Node()))
	}
	s.WriteRaw(marker)

	saveLeft(s, sc)
	s.SetLeft(s.Left() + "    ")
	s.SetNoWhiteSpace()
	return nil
}

func (*ListItem) After(s *converter.State, sc converter.Scratch) error {
	restoreLeft(s, sc)
	// Queue the break here so inter-item whitespace text collapses to
	// nothing instead of a trailing space on the item line.
	s.BreakLine()
	return nil
}

// itemIndex returns the 1-based ordinal of an item among its li siblings.
// Counting the DOM keeps the plugin stateless across items.
func itemIndex(n *html.Node) int {
	index := 1
	for sib := n.PrevSibling; sib != nil; sib = sib.PrevSibling {
		if sib.Type == html.ElementNode && strings.EqualFold(sib.Data, "li") {
			index++
		}
	}
	return index
}

func parentTag(n *html.Node) string {
	if n == nil {
		return ""
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return strings.ToLower(p.Data)
		}
	}
	return ""
}
