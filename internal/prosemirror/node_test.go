package prosemirror

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, n *Node) string {
	t.Helper()
	raw, err := json.Marshal(n)
	require.NoError(t, err)
	return string(raw)
}

func TestNodeJSON_TextNode(t *testing.T) {
	assert.JSONEq(t, `{"type":"text","text":"hi"}`, marshal(t, Text("hi")))
}

func TestNodeJSON_TextWithMarks(t *testing.T) {
	got := marshal(t, Text("go", Mark{Type: MarkStrong}, LinkMark("https://go.dev")))
	assert.JSONEq(t, `{
		"type": "text",
		"text": "go",
		"marks": [
			{"type": "strong"},
			{"type": "link", "attrs": {"href": "https://go.dev"}}
		]
	}`, got)
}

func TestNodeJSON_EmptyParagraphOmitsContent(t *testing.T) {
	assert.JSONEq(t, `{"type":"paragraph"}`, marshal(t, Paragraph()))
}

func TestNodeJSON_Heading(t *testing.T) {
	got := marshal(t, Heading(2, Text("Body")))
	assert.JSONEq(t, `{
		"type": "heading",
		"attrs": {"level": 2},
		"content": [{"type": "text", "text": "Body"}]
	}`, got)
}

func TestNodeJSON_CodeBlockWithoutLanguage(t *testing.T) {
	got := marshal(t, CodeBlock("", "x := 1"))
	assert.JSONEq(t, `{
		"type": "codeBlock",
		"content": [{"type": "text", "text": "x := 1"}]
	}`, got)
}

func TestNodeJSON_OrderedListCarriesOrder(t *testing.T) {
	got := marshal(t, OrderedList(ListItem(Paragraph(Text("a")))))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "ordered_list", decoded["type"])
	assert.Equal(t, float64(1), decoded["attrs"].(map[string]any)["order"])
}

func TestDoc_EmptyGetsPlaceholderParagraph(t *testing.T) {
	doc := Doc()
	require.Len(t, doc.Content, 1)
	assert.Equal(t, TypeParagraph, doc.Content[0].Type)
}

func TestImage_CaptionFromAlt(t *testing.T) {
	img := Image("https://x.com/a.png", "a chart")
	assert.Equal(t, "a chart", img.Attrs["alt"])
	require.Len(t, img.Content, 1)
	assert.Equal(t, "a chart", img.PlainText())

	noCaption := Image("https://x.com/b.png", "")
	assert.Empty(t, noCaption.Content)
}

func TestPlainText_WalksTree(t *testing.T) {
	doc := Doc(
		Heading(1, Text("Title")),
		Paragraph(Text("a "), Text("b", Mark{Type: MarkStrong})),
	)
	assert.Equal(t, "Titlea b", doc.PlainText())
}
