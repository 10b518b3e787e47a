package prosemirror

// Node is a single node in a ProseMirror document tree. Container nodes
// (doc, paragraph, lists, blockquote) carry Content; text nodes carry Text
// plus optional Marks and are always leaves.
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Mark is an inline attribute attached to a text node.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Node type strings as Substack's editor expects them on the wire.
const (
	TypeDoc            = "doc"
	TypeParagraph      = "paragraph"
	TypeHeading        = "heading"
	TypeBulletList     = "bullet_list"
	TypeOrderedList    = "ordered_list"
	TypeListItem       = "list_item"
	TypeCodeBlock      = "codeBlock"
	TypeBlockquote     = "blockquote"
	TypeHorizontalRule = "horizontal_rule"
	TypeImage          = "captionedImage"
	TypeText           = "text"
)

// Mark type strings.
const (
	MarkStrong = "strong"
	MarkEm     = "em"
	MarkCode   = "code"
	MarkLink   = "link"
)

// Doc wraps top-level block nodes into a document root. An empty document
// still carries one empty paragraph so the editor has a cursor target.
func Doc(content ...*Node) *Node {
	if len(content) == 0 {
		content = []*Node{Paragraph()}
	}
	return &Node{Type: TypeDoc, Content: content}
}

// Paragraph builds a paragraph node. Paragraphs with no children are legal
// and serialize without a content key.
func Paragraph(content ...*Node) *Node {
	return &Node{Type: TypeParagraph, Content: content}
}

// Heading builds a heading node of the given level.
func Heading(level int, content ...*Node) *Node {
	return &Node{
		Type:    TypeHeading,
		Attrs:   map[string]any{"level": level},
		Content: content,
	}
}

// Text builds a leaf text node with the given marks.
func Text(text string, marks ...Mark) *Node {
	return &Node{Type: TypeText, Text: text, Marks: marks}
}

// CodeBlock builds a code block holding raw text. The language attribute is
// omitted when empty.
func CodeBlock(language, code string) *Node {
	n := &Node{Type: TypeCodeBlock}
	if language != "" {
		n.Attrs = map[string]any{"language": language}
	}
	if code != "" {
		n.Content = []*Node{Text(code)}
	}
	return n
}

// Blockquote wraps block nodes in a quote.
func Blockquote(content ...*Node) *Node {
	return &Node{Type: TypeBlockquote, Content: content}
}

// HorizontalRule builds a thematic break.
func HorizontalRule() *Node {
	return &Node{Type: TypeHorizontalRule}
}

// BulletList wraps items, each already a list_item node.
func BulletList(items ...*Node) *Node {
	return &Node{Type: TypeBulletList, Content: items}
}

// OrderedList wraps items, numbering from 1.
func OrderedList(items ...*Node) *Node {
	return &Node{
		Type:    TypeOrderedList,
		Attrs:   map[string]any{"order": 1},
		Content: items,
	}
}

// ListItem wraps block content as a list entry.
func ListItem(content ...*Node) *Node {
	return &Node{Type: TypeListItem, Content: content}
}

// Image builds a captioned image node. The alt text doubles as the caption
// paragraph when present.
func Image(src, alt string) *Node {
	n := &Node{
		Type:  TypeImage,
		Attrs: map[string]any{"src": src, "alt": alt},
	}
	if alt != "" {
		n.Content = []*Node{Paragraph(Text(alt))}
	}
	return n
}

// LinkMark builds a link mark pointing at href.
func LinkMark(href string) Mark {
	return Mark{Type: MarkLink, Attrs: map[string]any{"href": href}}
}

// PlainText concatenates the text of all leaf nodes under n in document
// order, ignoring marks and attributes.
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}
	if n.Type == TypeText {
		return n.Text
	}
	var out string
	for _, c := range n.Content {
		out += c.PlainText()
	}
	return out
}
