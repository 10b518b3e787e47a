package markdown

import (
	"regexp"
	"strings"
)

// Block kinds emitted by the classifier.
const (
	BlockHeading        = "heading"
	BlockParagraph      = "paragraph"
	BlockBulletList     = "bulletList"
	BlockOrderedList    = "orderedList"
	BlockCodeBlock      = "codeBlock"
	BlockBlockquote     = "blockquote"
	BlockHorizontalRule = "horizontalRule"
	BlockImage          = "image"
	BlockBoldLabel      = "boldLabel"
)

// RawBlock is a classified unit of markdown source. Contiguous lines that
// match the same pattern are merged into one block. Blocks are immutable
// once emitted by the classifier.
type RawBlock struct {
	Kind     string
	Level    int      // heading level, 1-3
	Language string   // code fence language token, may be empty
	Lines    []string // raw text lines belonging to the block
	Items    []string // list item text, one entry per item
	Alt      string   // image alt text
	Src      string   // image source URL
	Local    bool     // image src is not http(s); the builder skips it
}

// Text joins the block's lines into a single logical line, the way
// consecutive paragraph lines read as one paragraph.
func (b RawBlock) Text() string {
	return strings.Join(b.Lines, " ")
}

var (
	orderedItemRe = regexp.MustCompile(`^\d+\.\s+(.*)$`)
	imageRe       = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)$`)
	boldLabelRe   = regexp.MustCompile(`^\*\*(.+?):\*\*\s*$`)
)

// MatchBoldLabel reports whether the trimmed line is a standalone bold
// label ("**Label:**") and returns the label without markup or colon.
func MatchBoldLabel(line string) (string, bool) {
	m := boldLabelRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ClassifyBlocks runs the line state machine over the source and returns the
// ordered block sequence. Rules are checked in a fixed priority order:
// heading, code fence, bullet list, ordered list, blockquote, horizontal
// rule, image, bold label, blank, paragraph. While a code fence is open,
// every line is captured verbatim; an unterminated fence closes at end of
// input.
func ClassifyBlocks(lines []string) []RawBlock {
	var blocks []RawBlock
	var open *RawBlock
	var fence *RawBlock

	closeOpen := func() {
		if open != nil {
			blocks = append(blocks, *open)
			open = nil
		}
	}
	emit := func(b RawBlock) {
		closeOpen()
		blocks = append(blocks, b)
	}
	accumulate := func(kind string, add func(b *RawBlock)) {
		if open == nil || open.Kind != kind {
			closeOpen()
			open = &RawBlock{Kind: kind}
		}
		add(open)
	}

	for _, raw := range lines {
		line := strings.TrimRight(raw, "\r\n")
		trimmed := strings.TrimSpace(line)

		if fence != nil {
			if strings.HasPrefix(trimmed, "```") {
				blocks = append(blocks, *fence)
				fence = nil
				continue
			}
			fence.Lines = append(fence.Lines, line)
			continue
		}

		if level, text, ok := matchHeading(trimmed); ok {
			emit(RawBlock{Kind: BlockHeading, Level: level, Lines: []string{text}})
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			closeOpen()
			fence = &RawBlock{
				Kind:     BlockCodeBlock,
				Language: strings.TrimSpace(trimmed[3:]),
			}
			continue
		}

		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			accumulate(BlockBulletList, func(b *RawBlock) {
				b.Items = append(b.Items, trimmed[2:])
			})
			continue
		}

		if m := orderedItemRe.FindStringSubmatch(trimmed); m != nil {
			accumulate(BlockOrderedList, func(b *RawBlock) {
				b.Items = append(b.Items, m[1])
			})
			continue
		}

		if strings.HasPrefix(trimmed, "> ") {
			accumulate(BlockBlockquote, func(b *RawBlock) {
				b.Lines = append(b.Lines, trimmed[2:])
			})
			continue
		}

		if trimmed == "---" || trimmed == "***" || trimmed == "___" {
			emit(RawBlock{Kind: BlockHorizontalRule})
			continue
		}

		if m := imageRe.FindStringSubmatch(trimmed); m != nil {
			src := m[2]
			emit(RawBlock{
				Kind:  BlockImage,
				Alt:   m[1],
				Src:   src,
				Local: !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://"),
			})
			continue
		}

		if label, ok := MatchBoldLabel(trimmed); ok {
			emit(RawBlock{Kind: BlockBoldLabel, Lines: []string{label}})
			continue
		}

		if trimmed == "" {
			closeOpen()
			continue
		}

		accumulate(BlockParagraph, func(b *RawBlock) {
			b.Lines = append(b.Lines, trimmed)
		})
	}

	closeOpen()
	if fence != nil {
		blocks = append(blocks, *fence)
	}
	return blocks
}

// matchHeading matches 1-3 leading '#' followed by a space. Deeper headings
// are not part of the post template and fall through to paragraph handling.
func matchHeading(trimmed string) (level int, text string, ok bool) {
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level < 1 || level > 3 || level >= len(trimmed) || trimmed[level] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(trimmed[level+1:]), true
}
