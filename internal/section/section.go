// Package section implements the line-oriented state machine that splits a
// source file into an ordered sequence of comment/code sections.
package section

import (
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/sidedoc/internal/doccomment"
	"git.home.luguber.info/inful/sidedoc/internal/language"
)

// Section captures one piece of documentation and the code that follows it.
// DocText and CodeText are the raw newline-joined accumulations; DocHTML and
// CodeHTML are filled in later by the rendering and highlighting stages.
type Section struct {
	DocText  string
	CodeText string
	DocHTML  string
	CodeHTML string
}

// parseState is the transient per-file state of the line machine.
type parseState struct {
	sections []*Section
	doc      strings.Builder
	code     strings.Builder
	// inMulti is true while inside an open multi-line comment block; buf then
	// holds the block's raw text including the delimiter lines.
	inMulti bool
	buf     strings.Builder
}

// flush pushes the current section and starts a blank one, but only when code
// has actually accumulated; sections whose doc and code are both blank are
// dropped silently.
func (p *parseState) flush() {
	if p.code.Len() == 0 {
		return
	}
	if strings.TrimSpace(p.code.String()) != "" || strings.TrimSpace(p.doc.String()) != "" {
		p.push()
		return
	}
	p.doc.Reset()
	p.code.Reset()
}

// push unconditionally appends the current accumulator as a section.
func (p *parseState) push() {
	p.sections = append(p.sections, &Section{
		DocText:  p.doc.String(),
		CodeText: p.code.String(),
	})
	p.doc.Reset()
	p.code.Reset()
}

// closeMulti ends the open multi-line block. The buffer is parsed as a
// structured doc comment when possible; otherwise its raw text is kept
// verbatim. A parse failure never aborts the file.
func (p *parseState) closeMulti() {
	raw := p.buf.String()
	if rendered, err := doccomment.Render(raw); err == nil {
		p.doc.WriteString(rendered)
	} else {
		if doccomment.IsDocBlock(raw) {
			slog.Warn("doc-comment parse failed, keeping raw block text", "error", err)
		}
		p.doc.WriteString(raw)
	}
	p.buf.Reset()
	p.inMulti = false
}

// Parse splits fileText into sections according to the language's lexical
// rules. It always returns at least one section; the final accumulator is
// appended even when empty.
//
// A multi-line block still open at end of input is discarded together with
// every line absorbed into it. That mirrors long-standing generator behavior
// and is covered by a regression test; do not "fix" it here without changing
// the test.
func Parse(fileText string, rules *language.Rules) []*Section {
	var lines []string
	if fileText != "" {
		lines = strings.Split(strings.TrimSuffix(fileText, "\n"), "\n")
	}

	p := &parseState{}
	for _, line := range lines {
		switch {
		case p.inMulti:
			if rules.MultiEnd.MatchString(line) {
				p.buf.WriteString(line)
				p.buf.WriteString("\n")
				p.closeMulti()
			} else if rules.Ignore == nil || !rules.Ignore.MatchString(line) {
				p.buf.WriteString(line)
				p.buf.WriteString("\n")
			}

		// A line that both opens and closes a block (`/* x */`) is not a
		// multi-line start; it falls through to the code branch below.
		case rules.Multiline() && rules.MultiStart.MatchString(line) && !rules.MultiEnd.MatchString(line):
			p.flush()
			p.inMulti = true
			p.buf.WriteString(line)
			p.buf.WriteString("\n")

		case rules.Comment.MatchString(line) && (rules.Ignore == nil || !rules.Ignore.MatchString(line)):
			p.flush()
			p.doc.WriteString(rules.Comment.ReplaceAllString(line, ""))
			p.doc.WriteString("\n")

		case rules.Ignore == nil || !rules.Ignore.MatchString(line):
			p.code.WriteString(line)
			p.code.WriteString("\n")
		}
	}

	p.push()
	return p.sections
}
