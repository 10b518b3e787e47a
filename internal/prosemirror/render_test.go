package prosemirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_BasicTree(t *testing.T) {
	doc := Doc(
		Heading(2, Text("Body")),
		Paragraph(Text("Hello "), Text("bold", Mark{Type: MarkStrong})),
		CodeBlock("go", "x := 1"),
	)

	out := Render(doc)
	assert.Contains(t, out, "doc\n")
	assert.Contains(t, out, "heading[2]")
	assert.Contains(t, out, `text "Body"`)
	assert.Contains(t, out, `text<strong> "bold"`)
	assert.Contains(t, out, "codeBlock[go]")
}

func TestRender_LinkShowsTarget(t *testing.T) {
	out := Render(Doc(Paragraph(Text("Go", LinkMark("https://go.dev")))))
	assert.Contains(t, out, "link→https://go.dev")
}

func TestRender_ImageShowsSource(t *testing.T) {
	out := Render(Doc(Image("https://x.com/a.png", "alt")))
	assert.Contains(t, out, "image[https://x.com/a.png]")
	// The caption paragraph is noise in a preview.
	assert.NotContains(t, out, `"alt"`)
}

func TestRender_NilSafe(t *testing.T) {
	assert.Empty(t, Render(nil))
}
