// Package highlight adapts an external syntax highlighter (pygmentize) to the
// section model. All code blocks of a file are joined with the language's
// divider comment, highlighted in a single process invocation, and the output
// is split back per section on the divider's highlighted form.
package highlight

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/sidedoc/internal/errors"
	"git.home.luguber.info/inful/sidedoc/internal/language"
	"git.home.luguber.info/inful/sidedoc/internal/section"
)

// Pygments wraps highlighted code in these markers; they are stripped from
// the joined output and re-applied around each per-section fragment.
const (
	wrapperStart = `<div class="highlight"><pre>`
	wrapperEnd   = `</pre></div>`
)

// Runner invokes the external highlighter once per file.
type Runner struct {
	// Binary is the highlighter executable, typically "pygmentize".
	Binary string
	// TabSize is passed through to the highlighter's formatter options.
	TabSize int
}

// Highlight fills in CodeHTML for every section. The external process is
// started once; failure to start it or to write its stdin is fatal to the
// run, while stderr output and a non-zero exit are logged and tolerated.
func (r *Runner) Highlight(ctx context.Context, rules *language.Rules, sections []*section.Section) error {
	if len(sections) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, r.Binary,
		"-l", rules.Name,
		"-f", "html",
		"-O", fmt.Sprintf("encoding=utf-8,tabsize=%d", r.TabSize),
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return errors.HighlighterUnavailable(r.Binary, err)
	}
	if err := cmd.Start(); err != nil {
		return errors.HighlighterUnavailable(r.Binary, err)
	}

	if _, err := io.WriteString(stdin, joinInput(rules, sections)); err != nil {
		stdin.Close()
		_ = cmd.Wait()
		return errors.HighlighterInput(r.Binary, err)
	}
	if err := stdin.Close(); err != nil {
		_ = cmd.Wait()
		return errors.HighlighterInput(r.Binary, err)
	}

	if err := cmd.Wait(); err != nil {
		slog.Warn("highlighter exited abnormally", "binary", r.Binary, "error", err)
	}
	if stderr.Len() > 0 {
		slog.Warn("highlighter stderr", "binary", r.Binary, "output", strings.TrimSpace(stderr.String()))
	}

	splitOutput(rules, stdout.String(), sections)
	return nil
}

// joinInput concatenates the code texts of all sections with the language's
// divider comment between them.
func joinInput(rules *language.Rules, sections []*section.Section) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString(rules.DividerText)
		}
		b.WriteString(s.CodeText)
	}
	return b.String()
}

// splitOutput distributes the highlighter's joined output back onto the
// sections. When a divider cannot be found the remaining output goes to the
// current section and later sections get empty fragments.
func splitOutput(rules *language.Rules, out string, sections []*section.Section) {
	out = strings.ReplaceAll(out, wrapperStart, "")
	out = strings.ReplaceAll(out, wrapperEnd, "")

	for _, s := range sections {
		var fragment string
		if loc := rules.DividerHTML.FindStringIndex(out); loc != nil {
			fragment, out = out[:loc[0]], out[loc[1]:]
		} else {
			fragment, out = out, ""
		}
		s.CodeHTML = wrapperStart + fragment + wrapperEnd
	}
}
