package prosemirror

import (
	"fmt"
	"strings"
)

// Render produces an indented, human-inspectable text form of the node tree.
// It is used by preview mode and exists purely for eyeballing a conversion
// before anything is sent anywhere.
func Render(n *Node) string {
	var sb strings.Builder
	renderNode(&sb, n, 0)
	return sb.String()
}

func renderNode(sb *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)

	switch n.Type {
	case TypeText:
		label := "text"
		if len(n.Marks) > 0 {
			names := make([]string, 0, len(n.Marks))
			for _, m := range n.Marks {
				if m.Type == MarkLink {
					names = append(names, fmt.Sprintf("link→%v", m.Attrs["href"]))
					continue
				}
				names = append(names, m.Type)
			}
			label = "text<" + strings.Join(names, ",") + ">"
		}
		fmt.Fprintf(sb, "%s%s %q\n", indent, label, n.Text)
		return
	case TypeHeading:
		fmt.Fprintf(sb, "%sheading[%v]\n", indent, n.Attrs["level"])
	case TypeCodeBlock:
		lang := ""
		if n.Attrs != nil {
			lang, _ = n.Attrs["language"].(string)
		}
		fmt.Fprintf(sb, "%scodeBlock[%s]\n", indent, lang)
	case TypeImage:
		fmt.Fprintf(sb, "%simage[%v]\n", indent, n.Attrs["src"])
		// The caption paragraph just repeats the alt text.
		return
	default:
		fmt.Fprintf(sb, "%s%s\n", indent, n.Type)
	}

	for _, c := range n.Content {
		renderNode(sb, c, depth+1)
	}
}
