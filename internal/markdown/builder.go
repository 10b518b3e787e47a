package markdown

import (
	"fmt"
	"strings"

	"mdpub/internal/prosemirror"
)

// BuildDoc converts the filtered block sequence into a ProseMirror doc node.
// Local images are omitted from the output; one warning per skipped image is
// returned for the caller to display.
func BuildDoc(blocks []RawBlock) (*prosemirror.Node, []string) {
	var content []*prosemirror.Node
	var warnings []string

	for _, b := range blocks {
		switch b.Kind {
		case BlockHeading:
			content = append(content, prosemirror.Heading(b.Level, inlineNodes(b.Text())...))

		case BlockBoldLabel:
			// Template section labels read as subheadings.
			content = append(content, prosemirror.Heading(3, inlineNodes(b.Text())...))

		case BlockParagraph:
			text := b.Text()
			if label, ok := MatchBoldLabel(text); ok {
				content = append(content, prosemirror.Heading(3, inlineNodes(label)...))
				continue
			}
			content = append(content, prosemirror.Paragraph(inlineNodes(text)...))

		case BlockBulletList:
			content = append(content, prosemirror.BulletList(listItems(b.Items)...))

		case BlockOrderedList:
			content = append(content, prosemirror.OrderedList(listItems(b.Items)...))

		case BlockCodeBlock:
			// Code is literal; it never goes through the inline tokenizer.
			content = append(content, prosemirror.CodeBlock(b.Language, strings.Join(b.Lines, "\n")))

		case BlockBlockquote:
			content = append(content, prosemirror.Blockquote(
				prosemirror.Paragraph(inlineNodes(b.Text())...),
			))

		case BlockHorizontalRule:
			content = append(content, prosemirror.HorizontalRule())

		case BlockImage:
			if b.Local {
				warnings = append(warnings, fmt.Sprintf("skipping local image: %s", b.Src))
				continue
			}
			content = append(content, prosemirror.Image(b.Src, b.Alt))
		}
	}

	return prosemirror.Doc(content...), warnings
}

// inlineNodes tokenizes a line and converts the spans to text nodes.
func inlineNodes(text string) []*prosemirror.Node {
	spans := TokenizeInline(text)
	nodes := make([]*prosemirror.Node, 0, len(spans))
	for _, sp := range spans {
		nodes = append(nodes, prosemirror.Text(sp.Text, spanMarks(sp)...))
	}
	return nodes
}

func spanMarks(sp InlineSpan) []prosemirror.Mark {
	if sp.Code {
		return []prosemirror.Mark{{Type: prosemirror.MarkCode}}
	}
	var marks []prosemirror.Mark
	if sp.Bold {
		marks = append(marks, prosemirror.Mark{Type: prosemirror.MarkStrong})
	}
	if sp.Italic {
		marks = append(marks, prosemirror.Mark{Type: prosemirror.MarkEm})
	}
	if sp.Href != "" {
		marks = append(marks, prosemirror.LinkMark(sp.Href))
	}
	return marks
}

func listItems(items []string) []*prosemirror.Node {
	nodes := make([]*prosemirror.Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, prosemirror.ListItem(
			prosemirror.Paragraph(inlineNodes(item)...),
		))
	}
	return nodes
}
