package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteCollapsesWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "runs of spaces", input: "Hello    World", want: "Hello World"},
		{name: "tabs and newlines", input: "Hello\t\n World", want: "Hello World"},
		{name: "leading whitespace at line start", input: "   Hello", want: "Hello"},
		{name: "whitespace only at line start", input: " \n\t ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{}
			s.Write(tt.input)
			assert.Equal(t, tt.want, s.result())
		})
	}
}

func TestWriteCollapseIsIdempotent(t *testing.T) {
	collapsed := "already collapsed text"

	s := &State{}
	s.Write(collapsed)
	once := s.result()

	s2 := &State{}
	s2.Write(once)
	assert.Equal(t, once, s2.result())
}

func TestWritePreservesInterWordSpace(t *testing.T) {
	s := &State{}
	s.Write("Hello ")
	s.WriteRaw("**")
	s.SetNoWhiteSpace()
	s.Write(" World")
	s.WriteRaw("**")
	assert.Equal(t, "Hello **World**", s.result())
}

func TestEnsureParagraphBreakIdempotent(t *testing.T) {
	s := &State{}
	s.Write("a")
	s.EnsureParagraphBreak()
	s.EnsureParagraphBreak()
	s.EnsureParagraphBreak()
	s.Write("b")
	assert.Equal(t, "a\n\nb", s.result())
}

func TestEnsureParagraphBreakAtStart(t *testing.T) {
	s := &State{}
	s.EnsureParagraphBreak()
	s.Write("a")
	assert.Equal(t, "a", s.result())
}

func TestEnsureParagraphBreakAfterBreakLine(t *testing.T) {
	s := &State{}
	s.Write("a")
	s.BreakLine()
	s.EnsureParagraphBreak()
	s.Write("b")
	assert.Equal(t, "a\n\nb", s.result())
}

func TestBreakLineAppliesPrefix(t *testing.T) {
	s := &State{}
	s.SetLeft("> ")
	s.Write("quoted")
	s.BreakLine()
	s.Write("more")
	assert.Equal(t, "> quoted\n> more", s.result())
}

func TestWriteRawAppliesPrefixToEmbeddedNewlines(t *testing.T) {
	s := &State{}
	s.SetLeft("    ")
	s.WriteRaw("x = 1\ny = 2")
	assert.Equal(t, "    x = 1\n    y = 2", s.result())
}

func TestWriteCodeEscapesBackticks(t *testing.T) {
	s := &State{}
	s.WriteCode("a `b` c")
	assert.Equal(t, "a \\`b\\` c", s.result())
}

func TestPreformattedTextBypassesEscaping(t *testing.T) {
	s := &State{}
	s.SetPreformatted(true)
	s.writeText("keep `ticks`  and   spaces")
	assert.Equal(t, "keep `ticks`  and   spaces", s.result())
}

func TestCodeTextEscapes(t *testing.T) {
	s := &State{}
	s.SetCode(true)
	s.writeText("a`b")
	assert.Equal(t, "a\\`b", s.result())
}

func TestAtParagraphTracksBoundary(t *testing.T) {
	s := &State{}
	assert.True(t, s.AtParagraph(), "empty buffer counts as a boundary")

	s.Write("text")
	assert.False(t, s.AtParagraph())

	s.EnsureParagraphBreak()
	assert.True(t, s.AtParagraph())
}

func TestResultTrimsTrailingBreaks(t *testing.T) {
	s := &State{}
	s.Write("text")
	s.EnsureParagraphBreak()
	assert.Equal(t, "text", s.result())
}

func TestStashScopedToState(t *testing.T) {
	s := &State{}
	s.Stash()["k"] = 1
	assert.Equal(t, 1, s.Stash()["k"])

	other := &State{}
	assert.NotContains(t, other.Stash(), "k")
}
