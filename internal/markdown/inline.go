package markdown

import "strings"

// InlineSpan is a fragment of a line with its inline marks resolved.
// Spans are produced in document order; their concatenated Text equals the
// source line with markup syntax stripped. A non-empty Href means the span
// is a link. Code spans are literal and carry no other marks.
type InlineSpan struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
	Href   string
}

// TokenizeInline scans a single line and returns its inline spans.
// Recognized syntax: `code`, [label](url), **bold**, *italic* / _italic_,
// and ***text*** as bold+italic. Unterminated markup degrades to literal
// text. Empty emphasis ("**  **" and friends) produces empty spans which
// are dropped.
func TokenizeInline(line string) []InlineSpan {
	spans := tokenize(line, InlineSpan{})
	out := spans[:0]
	for _, sp := range spans {
		if sp.Text == "" {
			continue
		}
		out = append(out, sp)
	}
	return out
}

// tokenize scans s, inheriting the emphasis marks of base so that nested
// emphasis composes ("**a *b* c**" yields bold, bold+italic, bold spans).
func tokenize(s string, base InlineSpan) []InlineSpan {
	var spans []InlineSpan
	var plain strings.Builder

	flush := func() {
		if plain.Len() == 0 {
			return
		}
		sp := base
		sp.Text = plain.String()
		spans = append(spans, sp)
		plain.Reset()
	}

	i := 0
	for i < len(s) {
		c := s[i]

		// Inline code is exclusive: contents are never rescanned and
		// inherited emphasis does not apply.
		if c == '`' {
			if j := strings.IndexByte(s[i+1:], '`'); j >= 0 {
				flush()
				spans = append(spans, InlineSpan{Text: s[i+1 : i+1+j], Code: true})
				i += j + 2
				continue
			}
			plain.WriteByte(c)
			i++
			continue
		}

		if c == '[' {
			if label, url, n, ok := matchLink(s[i:]); ok {
				flush()
				sp := base
				sp.Text = label
				sp.Href = url
				spans = append(spans, sp)
				i += n
				continue
			}
			plain.WriteByte(c)
			i++
			continue
		}

		// Emphasis requires at least one character between the markers;
		// bare marker runs like "****" stay literal.
		if strings.HasPrefix(s[i:], "***") {
			if j := strings.Index(s[i+3:], "***"); j > 0 {
				flush()
				inner := base
				inner.Bold = true
				inner.Italic = true
				spans = append(spans, tokenize(s[i+3:i+3+j], inner)...)
				i += j + 6
				continue
			}
		}

		if strings.HasPrefix(s[i:], "**") {
			if j := strings.Index(s[i+2:], "**"); j > 0 {
				flush()
				inner := base
				inner.Bold = true
				spans = append(spans, tokenize(s[i+2:i+2+j], inner)...)
				i += j + 4
				continue
			}
		}

		if c == '*' || c == '_' {
			if j := strings.IndexByte(s[i+1:], c); j > 0 {
				flush()
				inner := base
				inner.Italic = true
				spans = append(spans, tokenize(s[i+1:i+1+j], inner)...)
				i += j + 2
				continue
			}
		}

		plain.WriteByte(c)
		i++
	}

	flush()
	return spans
}

// matchLink matches [label](url) at the start of s. Both label and url must
// be non-empty; the url is taken verbatim.
func matchLink(s string) (label, url string, length int, ok bool) {
	end := strings.IndexByte(s, ']')
	if end <= 1 || end+1 >= len(s) || s[end+1] != '(' {
		return "", "", 0, false
	}
	closeParen := strings.IndexByte(s[end+2:], ')')
	if closeParen <= 0 {
		return "", "", 0, false
	}
	label = s[1:end]
	url = s[end+2 : end+2+closeParen]
	return label, url, end + 2 + closeParen + 1, true
}
