package generate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sidedoc/internal/config"
	sderrors "git.home.luguber.info/inful/sidedoc/internal/errors"
)

// testConfig uses cat as the highlighter so the pipeline runs without
// pygments installed.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Source: t.TempDir(),
		Output: t.TempDir(),
		Highlighter: config.HighlighterConfig{
			Binary:  "cat",
			TabSize: 4,
		},
	}
}

func writeSource(t *testing.T, cfg *config.Config, rel, content string) {
	t.Helper()
	path := filepath.Join(cfg.Source, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRun_GeneratesMirroredTree(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "main.js", "// entry\nrun();\n")
	writeSource(t, cfg, filepath.Join("lib", "util.js"), "// helper\nhelp();\n")

	require.NoError(t, New(cfg).Run(context.Background(), nil))

	require.FileExists(t, filepath.Join(cfg.Output, "main.js.html"))
	require.FileExists(t, filepath.Join(cfg.Output, "lib", "util.js.html"))
	require.FileExists(t, filepath.Join(cfg.Output, "sidedoc.css"))

	page, err := os.ReadFile(filepath.Join(cfg.Output, "lib", "util.js.html"))
	require.NoError(t, err)
	require.Contains(t, string(page), "<p>helper</p>")
	require.Contains(t, string(page), `href="../sidedoc.css"`)
}

func TestRun_SkipsUnsupportedFilesSilently(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "notes.txt", "not source code\n")
	writeSource(t, cfg, "app.js", "// fine\nx();\n")

	require.NoError(t, New(cfg).Run(context.Background(), nil))

	require.NoFileExists(t, filepath.Join(cfg.Output, "notes.txt.html"))
	require.FileExists(t, filepath.Join(cfg.Output, "app.js.html"))
}

func TestRun_ExplicitPathList(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "a.js", "a();\n")
	writeSource(t, cfg, "b.js", "b();\n")

	require.NoError(t, New(cfg).Run(context.Background(), []string{"a.js"}))

	require.FileExists(t, filepath.Join(cfg.Output, "a.js.html"))
	require.NoFileExists(t, filepath.Join(cfg.Output, "b.js.html"))
}

func TestRun_MissingPathIsFatal(t *testing.T) {
	cfg := testConfig(t)

	err := New(cfg).Run(context.Background(), []string{"nope.js"})
	require.Error(t, err)
	require.True(t, sderrors.IsCategory(err, sderrors.CategoryFileSystem))
}

func TestRun_ExistingStylesheetNotOverwritten(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "a.js", "a();\n")
	custom := []byte("/* custom */\n")
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Output, "sidedoc.css"), custom, 0o644))

	require.NoError(t, New(cfg).Run(context.Background(), nil))

	got, err := os.ReadFile(filepath.Join(cfg.Output, "sidedoc.css"))
	require.NoError(t, err)
	require.Equal(t, custom, got)
}

func TestRun_StylesheetOverrideFromConfig(t *testing.T) {
	cfg := testConfig(t)
	override := filepath.Join(t.TempDir(), "theme.css")
	require.NoError(t, os.WriteFile(override, []byte("body{}\n"), 0o644))
	cfg.Stylesheet = override
	writeSource(t, cfg, "a.js", "a();\n")

	require.NoError(t, New(cfg).Run(context.Background(), nil))

	got, err := os.ReadFile(filepath.Join(cfg.Output, "sidedoc.css"))
	require.NoError(t, err)
	require.Equal(t, "body{}\n", string(got))
}

func TestRun_HiddenEntriesNotTraversed(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, filepath.Join(".git", "junk.js"), "x();\n")
	writeSource(t, cfg, "a.js", "a();\n")

	require.NoError(t, New(cfg).Run(context.Background(), nil))

	require.NoFileExists(t, filepath.Join(cfg.Output, ".git", "junk.js.html"))
	require.FileExists(t, filepath.Join(cfg.Output, "a.js.html"))
}

func TestRun_IdempotentOutput(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "a.js", "// doc\na();\n")

	require.NoError(t, New(cfg).Run(context.Background(), nil))
	first, err := os.ReadFile(filepath.Join(cfg.Output, "a.js.html"))
	require.NoError(t, err)

	require.NoError(t, New(cfg).Run(context.Background(), nil))
	second, err := os.ReadFile(filepath.Join(cfg.Output, "a.js.html"))
	require.NoError(t, err)

	require.Equal(t, first, second)
}
