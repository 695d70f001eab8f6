package plugins

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/mkowalczyk/htmldown/converter"
)

const savedLeftKey = "left"

func saveLeft(s *converter.State, sc converter.Scratch) {
	sc[savedLeftKey] = s.Left()
}

func restoreLeft(s *converter.State, sc converter.Scratch) {
	if left, ok := sc[savedLeftKey].(string); ok {
		s.SetLeft(left)
	}
}

// Paragraph separates block containers with blank lines.
type Paragraph struct{ converter.Hooks }

func (*Paragraph) TagNames() []string {
	return []string{"p", "div", "address", "article", "section", "header", "footer", "main"}
}

func (*Paragraph) Before(s *converter.State, _ converter.Scratch) error {
	s.EnsureParagraphBreak()
	return nil
}

func (*Paragraph) After(s *converter.State, _ converter.Scratch) error {
	s.EnsureParagraphBreak()
	return nil
}

// Heading renders h1-h6 as ATX headings.
type Heading struct{ converter.Hooks }

func (*Heading) TagNames() []string {
	return []string{"h1", "h2", "h3", "h4", "h5", "h6"}
}

func (*Heading) Before(s *converter.State, _ converter.Scratch) error {
	s.EnsureParagraphBreak()
	level := int(s.TagName()[1] - '0')
	s.WriteRaw(strings.Repeat("#", level) + " ")
	s.SetNoWhiteSpace()
	return nil
}

func (*Heading) After(s *converter.State, _ converter.Scratch) error {
	s.EnsureParagraphBreak()
	return nil
}

// Blockquote prefixes nested content lines with "> ".
type Blockquote struct{ converter.Hooks }

func (*Blockquote) TagNames() []string {
	return []string{"blockquote"}
}

func (*Blockquote) Before(s *converter.State, sc converter.Scratch) error {
	s.EnsureParagraphBreak()
	saveLeft(s, sc)
	s.SetLeft(s.Left() + "> ")
	return nil
}

func (*Blockquote) After(s *converter.State, sc converter.Scratch) error {
	restoreLeft(s, sc)
	s.EnsureParagraphBreak()
	return nil
}

// HorizontalRule renders hr as a thematic break.
type HorizontalRule struct{ converter.Hooks }

func (*HorizontalRule) TagNames() []string {
	return []string{"hr"}
}

func (*HorizontalRule) Before(s *converter.State, _ converter.Scratch) error {
	s.EnsureParagraphBreak()
	s.WriteRaw("* * *")
	s.EnsureParagraphBreak()
	return nil
}

func (*HorizontalRule) Transform(*converter.State, converter.Scratch) (bool, error) {
	return false, nil
}

// Preformatted renders pre blocks verbatim: fenced when a language class is
// present on the block or a nested code element, 4-space indented otherwise.
type Preformatted struct{ converter.Hooks }

func (*Preformatted) TagNames() []string {
	return []string{"pre"}
}

func (*Preformatted) Before(s *converter.State, sc converter.Scratch) error {
	s.EnsureParagraphBreak()
	saveLeft(s, sc)

	if lang := codeLanguage(s.Node()); lang != "" {
		sc["fenced"] = true
		s.WriteRaw("```" + lang)
		s.BreakLine()
	} else {
		s.SetLeft(s.Left() + "    ")
	}

	s.SetPreformatted(true)
	return nil
}

func (*Preformatted) After(s *converter.State, sc converter.Scratch) error {
	s.SetPreformatted(false)
	restoreLeft(s, sc)
	if fenced, _ := sc["fenced"].(bool); fenced {
		s.BreakLine()
		s.WriteRaw("```")
	}
	s.EnsureParagraphBreak()
	return nil
}

var languageClassRe = regexp.MustCompile(`(?i)(?:^|\s)(?:language|lang)-([a-zA-Z0-9_+#-]+)`)

func codeLanguage(n *html.Node) string {
	if n == nil {
		return ""
	}
	class := goquery.NewDocumentFromNode(n).Find("code").First().AttrOr("class", "")
	if lang := languageFromClass(class); lang != "" {
		return lang
	}
	return languageFromClass(dom.GetAttributeOr(n, "class", ""))
}

func languageFromClass(class string) string {
	match := languageClassRe.FindStringSubmatch(class)
	if len(match) < 2 {
		return ""
	}
	return strings.ToLower(match[1])
}
