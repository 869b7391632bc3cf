// Package generate drives the documentation pipeline: it maintains a FIFO
// queue of pending paths, expands directories, and processes one file at a
// time to completion (read, parse, highlight, render, write) before starting
// the next.
package generate

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sidedoc/internal/config"
	sderrors "git.home.luguber.info/inful/sidedoc/internal/errors"
	"git.home.luguber.info/inful/sidedoc/internal/highlight"
	"git.home.luguber.info/inful/sidedoc/internal/language"
	"git.home.luguber.info/inful/sidedoc/internal/render"
	"git.home.luguber.info/inful/sidedoc/internal/section"
)

// Generator handles documentation generation for a configured source tree.
type Generator struct {
	cfg    *config.Config
	runner *highlight.Runner
	// queue holds pending paths relative to the source root, FIFO by enqueue
	// time. Directory expansion enqueues children in listing order.
	queue []string
	// running guards against overlapping processing chains. The model is
	// single-threaded; this is re-entrancy protection, not a lock.
	running bool
}

// New creates a Generator for the given configuration.
func New(cfg *config.Config) *Generator {
	return &Generator{
		cfg: cfg,
		runner: &highlight.Runner{
			Binary:  cfg.Highlighter.Binary,
			TabSize: cfg.Highlighter.TabSize,
		},
	}
}

// Run processes the given paths (files or directories, relative to the
// source root) strictly serially. An empty list means the whole source root.
// The first fatal error aborts the run.
func (g *Generator) Run(ctx context.Context, paths []string) error {
	if g.running {
		return sderrors.New(sderrors.CategoryInternal, sderrors.SeverityFatal, "generator is already running")
	}
	g.running = true
	defer func() { g.running = false }()

	if len(paths) == 0 {
		paths = []string{"."}
	}
	g.queue = append(g.queue, paths...)

	if err := g.ensureStylesheet(); err != nil {
		return err
	}

	for len(g.queue) > 0 {
		rel := g.queue[0]
		g.queue = g.queue[1:]

		abs := filepath.Join(g.cfg.Source, rel)
		info, err := os.Stat(abs)
		if err != nil {
			return sderrors.ReadFailed(abs, err)
		}

		if info.IsDir() {
			if err := g.expandDir(rel, abs); err != nil {
				return err
			}
			continue
		}

		if !language.Supported(abs) {
			slog.Debug("skipping file without language rules", "path", rel)
			continue
		}
		if err := g.processFile(ctx, rel); err != nil {
			return err
		}
	}
	return nil
}

// expandDir enqueues a directory's children in listing order. Hidden entries
// (VCS metadata and the like) are not traversed.
func (g *Generator) expandDir(rel, abs string) error {
	entries, err := os.ReadDir(abs)
	if err != nil {
		return sderrors.ReadFailed(abs, err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		g.queue = append(g.queue, filepath.Join(rel, e.Name()))
	}
	return nil
}

// processFile runs the full pipeline for a single source file.
func (g *Generator) processFile(ctx context.Context, rel string) error {
	abs := filepath.Join(g.cfg.Source, rel)

	rules, err := language.ForFile(abs)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return sderrors.ReadFailed(abs, err)
	}

	sections := section.Parse(string(data), rules)
	if err := g.runner.Highlight(ctx, rules, sections); err != nil {
		return err
	}

	var page bytes.Buffer
	if err := render.Page(&page, filepath.Base(rel), AssetPrefix(rel), sections); err != nil {
		return err
	}

	outPath := OutputPath(g.cfg.Output, rel)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return sderrors.WriteFailed(outPath, err)
	}
	if err := os.WriteFile(outPath, page.Bytes(), 0o644); err != nil {
		return sderrors.WriteFailed(outPath, err)
	}

	slog.Info("generated page", "source", rel, "output", outPath, "sections", len(sections))
	return nil
}

// ensureStylesheet copies the shared stylesheet into the output root if it is
// not already present.
func (g *Generator) ensureStylesheet() error {
	dst := filepath.Join(g.cfg.Output, render.StylesheetName)
	if _, err := os.Stat(dst); err == nil {
		return nil
	}

	css := render.Stylesheet()
	if g.cfg.Stylesheet != "" {
		override, err := os.ReadFile(g.cfg.Stylesheet)
		if err != nil {
			return sderrors.ReadFailed(g.cfg.Stylesheet, err)
		}
		css = override
	}

	if err := os.MkdirAll(g.cfg.Output, 0o755); err != nil {
		return sderrors.WriteFailed(g.cfg.Output, err)
	}
	if err := os.WriteFile(dst, css, 0o644); err != nil {
		return sderrors.WriteFailed(dst, err)
	}
	slog.Debug("copied stylesheet", "path", dst)
	return nil
}
