// Package doccomment parses structured `/** ... */` doc-comment blocks in the
// dox tag convention (`@param {type} name description`, `@returns {type}
// description`) into a normalized record and formats that record as markdown
// text. Parsing is best effort: malformed tag syntax yields a ParseError so
// the caller can fall back to the raw block text.
package doccomment

import (
	"fmt"
	"regexp"
	"strings"
)

// Tag is one tagged entry of a doc comment, in source order.
type Tag struct {
	// Kind is the tag name without the leading @, e.g. "param" or "returns".
	Kind string
	// Name is the parameter name for @param tags, empty otherwise.
	Name string
	// Type is the brace-delimited type annotation, if any.
	Type string
	// Text is the free-form description, with continuation lines folded in.
	Text string
}

// DocComment is the normalized form of a structured doc-comment block.
type DocComment struct {
	Description string
	Tags        []Tag
}

// ParseError describes a malformed doc-comment block.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("doc comment: %s", e.Reason)
	}
	return fmt.Sprintf("doc comment line %d: %s: %q", e.Line, e.Reason, e.Text)
}

var (
	gutterRe  = regexp.MustCompile(`^\s*\*\s?`)
	paramRe   = regexp.MustCompile(`^@param\s+\{([^}]*)\}\s+(\S+)\s*(.*)$`)
	returnsRe = regexp.MustCompile(`^@returns?\s+\{([^}]*)\}\s*(.*)$`)
	genericRe = regexp.MustCompile(`^@([A-Za-z][\w-]*)\s*(.*)$`)
)

// IsDocBlock reports whether raw looks like a structured doc-comment block,
// i.e. opens with `/**`. Plain `/* ... */` blocks are ordinary comments.
func IsDocBlock(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "/**")
}

// Parse parses the raw text of a multi-line comment block, delimiters
// included, into a DocComment. Blocks that do not open with `/**` or that
// contain a malformed tag line fail with a ParseError.
func Parse(raw string) (*DocComment, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "/**") {
		return nil, &ParseError{Reason: "not a structured doc-comment block"}
	}
	body := strings.TrimPrefix(trimmed, "/**")
	if idx := strings.LastIndex(body, "*/"); idx >= 0 {
		body = body[:idx]
	}

	dc := &DocComment{}
	var desc []string
	var cur *Tag

	for i, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(gutterRe.ReplaceAllString(line, ""), " \t")

		if !strings.HasPrefix(line, "@") {
			switch {
			case cur == nil:
				desc = append(desc, line)
			case line == "":
				// A blank line ends the running tag description.
				cur = nil
			default:
				cur.Text = strings.TrimSpace(cur.Text + " " + strings.TrimSpace(line))
			}
			continue
		}

		tag, err := parseTag(line)
		if err != nil {
			err.Line = i + 1
			return nil, err
		}
		dc.Tags = append(dc.Tags, tag)
		cur = &dc.Tags[len(dc.Tags)-1]
	}

	dc.Description = strings.TrimSpace(strings.Join(desc, "\n"))
	return dc, nil
}

func parseTag(line string) (Tag, *ParseError) {
	switch {
	case strings.HasPrefix(line, "@param"):
		m := paramRe.FindStringSubmatch(line)
		if m == nil {
			return Tag{}, &ParseError{Text: line, Reason: "malformed @param tag, want @param {type} name"}
		}
		return Tag{Kind: "param", Type: m[1], Name: m[2], Text: m[3]}, nil
	case strings.HasPrefix(line, "@return"):
		m := returnsRe.FindStringSubmatch(line)
		if m == nil {
			return Tag{}, &ParseError{Text: line, Reason: "malformed @returns tag, want @returns {type}"}
		}
		return Tag{Kind: "returns", Type: m[1], Text: m[2]}, nil
	default:
		m := genericRe.FindStringSubmatch(line)
		if m == nil {
			return Tag{}, &ParseError{Text: line, Reason: "malformed tag"}
		}
		return Tag{Kind: m[1], Text: m[2]}, nil
	}
}

// Format renders a DocComment as markdown text: the description followed by
// one list item per tag.
func Format(dc *DocComment) string {
	var b strings.Builder
	if dc.Description != "" {
		b.WriteString(dc.Description)
		b.WriteString("\n")
	}
	if len(dc.Tags) > 0 {
		if dc.Description != "" {
			b.WriteString("\n")
		}
		for _, t := range dc.Tags {
			b.WriteString("- **")
			b.WriteString(t.Kind)
			b.WriteString("**")
			if t.Name != "" {
				b.WriteString(" `" + t.Name + "`")
			}
			if t.Type != "" {
				b.WriteString(" `{" + t.Type + "}`")
			}
			if t.Text != "" {
				b.WriteString(": " + t.Text)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Render parses and formats a raw block in one step.
func Render(raw string) (string, error) {
	dc, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return Format(dc), nil
}
