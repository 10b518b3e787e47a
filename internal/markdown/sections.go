package markdown

import "strings"

// Section is a contiguous run of blocks under one level-1 or level-2
// heading. Content before the first heading lands in an implicit unnamed
// section. The introducing heading block, when present, is Blocks[0].
type Section struct {
	Name   string
	Blocks []RawBlock
}

// Template sections that never reach the published body.
var excludedSections = map[string]bool{
	"status":              true,
	"hashtags":            true,
	"notes":               true,
	"verdict":             true,
	"linkedin assessment": true,
}

// hookSection names the section whose first paragraph becomes the subtitle.
const hookSection = "hook"

// SplitSections partitions the block stream into sections. Level-3 headings
// do not open a new section; they stay inside the current one.
func SplitSections(blocks []RawBlock) []Section {
	sections := []Section{{}}
	for _, b := range blocks {
		if b.Kind == BlockHeading && b.Level <= 2 {
			sections = append(sections, Section{
				Name:   b.Text(),
				Blocks: []RawBlock{b},
			})
			continue
		}
		cur := &sections[len(sections)-1]
		cur.Blocks = append(cur.Blocks, b)
	}
	if len(sections[0].Blocks) == 0 {
		sections = sections[1:]
	}
	return sections
}

// Outline is the filtered view of a post: candidate title and subtitle plus
// the body blocks that survive template filtering, in document order.
type Outline struct {
	Title    string
	Subtitle string
	Blocks   []RawBlock
}

// BuildOutline applies the post template to the section list. The first
// level-1 heading becomes the candidate title and is dropped from the body.
// The Hook section's first paragraph becomes the candidate subtitle and the
// whole section is dropped. Excluded sections are dropped entirely; any
// other name, known or not, is included with its heading.
func BuildOutline(sections []Section) Outline {
	var o Outline

	titleSection := -1
	for i, sec := range sections {
		if len(sec.Blocks) > 0 && sec.Blocks[0].Kind == BlockHeading && sec.Blocks[0].Level == 1 {
			o.Title = sec.Blocks[0].Text()
			titleSection = i
			break
		}
	}

	for i, sec := range sections {
		name := strings.ToLower(strings.TrimSpace(sec.Name))
		if excludedSections[name] {
			continue
		}
		hook := name == hookSection

		for j, b := range sec.Blocks {
			introducing := j == 0 && b.Kind == BlockHeading && b.Level <= 2
			if introducing {
				if i == titleSection {
					continue
				}
				if hook {
					continue
				}
				o.Blocks = append(o.Blocks, b)
				continue
			}
			if hook {
				if o.Subtitle == "" && b.Kind == BlockParagraph {
					o.Subtitle = b.Text()
				}
				continue
			}
			o.Blocks = append(o.Blocks, b)
		}
	}

	return o
}
