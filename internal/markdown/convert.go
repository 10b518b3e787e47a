package markdown

import (
	"errors"
	"strings"

	"mdpub/internal/prosemirror"
)

// ErrEmptySource is returned when the input holds no content at all.
var ErrEmptySource = errors.New("source document is empty")

// Result is the output of a full conversion run. Title and Subtitle are the
// candidates extracted from the headings; Meta holds front matter defaults.
// Warnings are display-only and never abort the conversion.
type Result struct {
	Meta     Meta
	Title    string
	Subtitle string
	Body     *prosemirror.Node
	Warnings []string
}

// Convert runs the whole pipeline on raw markdown: front matter, block
// classification, section splitting and filtering, node building. Content
// anomalies (unterminated markup, local images) degrade gracefully; only a
// structurally empty input is an error.
func Convert(source []byte) (*Result, error) {
	if strings.TrimSpace(string(source)) == "" {
		return nil, ErrEmptySource
	}

	meta, body := ParseFrontMatter(source)
	blocks := ClassifyBlocks(strings.Split(string(body), "\n"))
	outline := BuildOutline(SplitSections(blocks))
	doc, warnings := BuildDoc(outline.Blocks)

	return &Result{
		Meta:     meta,
		Title:    outline.Title,
		Subtitle: outline.Subtitle,
		Body:     doc,
		Warnings: warnings,
	}, nil
}
