package prosemirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDoc_AcceptsWellFormedDocument(t *testing.T) {
	doc := Doc(
		Heading(1, Text("Title")),
		Paragraph(Text("hello "), Text("world", Mark{Type: MarkStrong})),
		BulletList(ListItem(Paragraph(Text("item")))),
		CodeBlock("go", "x := 1"),
		Blockquote(Paragraph(Text("quoted"))),
		HorizontalRule(),
		Image("https://x.com/a.png", "alt"),
	)
	assert.NoError(t, ValidateDoc(doc))
}

func TestValidateDoc_RejectsNonDocRoot(t *testing.T) {
	err := ValidateDoc(Paragraph(Text("hi")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root node")
}

func TestValidateDoc_RejectsNil(t *testing.T) {
	assert.Error(t, ValidateDoc(nil))
}

func TestValidateDoc_RejectsUnknownNodeType(t *testing.T) {
	doc := Doc(&Node{Type: "marquee"})
	assert.Error(t, ValidateDoc(doc))
}

func TestValidateDoc_RejectsTextWithoutText(t *testing.T) {
	doc := Doc(Paragraph(&Node{Type: TypeText}))
	assert.Error(t, ValidateDoc(doc))
}

func TestValidateDoc_RejectsLocalImageSrc(t *testing.T) {
	doc := Doc(&Node{
		Type:  TypeImage,
		Attrs: map[string]any{"src": "./local.png"},
	})
	assert.Error(t, ValidateDoc(doc))
}

func TestValidateDoc_RejectsHeadingWithoutLevel(t *testing.T) {
	doc := Doc(&Node{Type: TypeHeading})
	assert.Error(t, ValidateDoc(doc))
}
