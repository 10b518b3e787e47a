package markdown

import (
	"bytes"

	"github.com/adrg/frontmatter"
)

// Meta is the optional YAML front matter a post may carry. Every field is a
// default: explicit overrides win, and missing fields fall back to values
// extracted from the headings.
type Meta struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Audience string `yaml:"audience"`
}

// ParseFrontMatter strips front matter from the source and returns the
// parsed metadata plus the remaining markdown body. Sources without front
// matter pass through unchanged. A leading "---" can also open a horizontal
// rule followed by body text; anything between the delimiters that does not
// unmarshal as metadata is treated as plain markdown, not as an error.
func ParseFrontMatter(source []byte) (Meta, []byte) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Meta{}, source
	}
	return meta, body
}
