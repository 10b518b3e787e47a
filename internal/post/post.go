package post

import (
	"errors"
	"fmt"
	"strings"

	"mdpub/internal/markdown"
	"mdpub/internal/prosemirror"
)

// Audience is the publication visibility setting.
type Audience string

const (
	AudienceEveryone Audience = "everyone"
	AudiencePaid     Audience = "paid"
)

// ParseAudience validates an audience string, defaulting empty to everyone.
func ParseAudience(s string) (Audience, error) {
	switch Audience(strings.ToLower(strings.TrimSpace(s))) {
	case "", AudienceEveryone:
		return AudienceEveryone, nil
	case AudiencePaid:
		return AudiencePaid, nil
	default:
		return "", fmt.Errorf("invalid audience %q (want everyone or paid)", s)
	}
}

// ErrMissingTitle is returned when neither a # heading, front matter, nor
// an explicit override yields a non-empty title.
var ErrMissingTitle = errors.New("no title found: add a # heading or pass an explicit title")

// Options are the explicit conversion parameters. Overrides always win over
// values extracted from the document.
type Options struct {
	Title    string
	Subtitle string
	Audience Audience
}

// Document is the final payload handed to the transport layer.
type Document struct {
	Title    string
	Subtitle string
	Audience Audience
	Body     *prosemirror.Node
}

// Compose converts markdown source into a publishable Document. Returned
// warnings (one per skipped local image) are for display; they never fail
// the conversion. Precedence for title and subtitle: explicit option, then
// front matter, then extraction from the headings.
func Compose(source []byte, opts Options) (*Document, []string, error) {
	res, err := markdown.Convert(source)
	if err != nil {
		return nil, nil, err
	}

	title := firstNonEmpty(opts.Title, res.Meta.Title, res.Title)
	if strings.TrimSpace(title) == "" {
		return nil, res.Warnings, ErrMissingTitle
	}

	audience := opts.Audience
	if audience == "" {
		audience, err = ParseAudience(res.Meta.Audience)
		if err != nil {
			return nil, res.Warnings, err
		}
	}

	return &Document{
		Title:    title,
		Subtitle: firstNonEmpty(opts.Subtitle, res.Meta.Subtitle, res.Subtitle),
		Audience: audience,
		Body:     res.Body,
	}, res.Warnings, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
