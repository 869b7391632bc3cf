package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	sderrors "git.home.luguber.info/inful/sidedoc/internal/errors"
	"git.home.luguber.info/inful/sidedoc/internal/language"
)

func TestDefault_Values(t *testing.T) {
	cfg := Default()
	require.Equal(t, ".", cfg.Source)
	require.Equal(t, "docs", cfg.Output)
	require.Equal(t, "pygmentize", cfg.Highlighter.Binary)
	require.Equal(t, 4, cfg.Highlighter.TabSize)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_YamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sidedoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source: ./src
output: ./public
highlighter:
  binary: pygmentize3
  tab_size: 8
languages:
  ".coffee":
    name: coffeescript
    symbol: "#"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "./src", cfg.Source)
	require.Equal(t, "./public", cfg.Output)
	require.Equal(t, "pygmentize3", cfg.Highlighter.Binary)
	require.Equal(t, 8, cfg.Highlighter.TabSize)

	require.NoError(t, cfg.RegisterLanguages())
	rules, err := language.ForFile("app.coffee")
	require.NoError(t, err)
	require.Equal(t, "coffeescript", rules.Name)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SIDEDOC_OUTPUT", "/tmp/elsewhere")
	t.Setenv("SIDEDOC_HIGHLIGHTER", "chroma")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/tmp/elsewhere", cfg.Output)
	require.Equal(t, "chroma", cfg.Highlighter.Binary)
}

func TestLoad_FileEnvExpansion(t *testing.T) {
	t.Setenv("DOCS_OUT", "expanded-out")
	path := filepath.Join(t.TempDir(), "sidedoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: ${DOCS_OUT}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "expanded-out", cfg.Output)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.True(t, sderrors.IsCategory(err, sderrors.CategoryConfig))
}

func TestLoad_InvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: [unclosed\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, sderrors.IsCategory(err, sderrors.CategoryConfig))
}

func TestLoad_RejectsNegativeTabSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sidedoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("highlighter:\n  tab_size: -1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestRegisterLanguages_InvalidSpec(t *testing.T) {
	cfg := Default()
	cfg.Languages = map[string]language.Spec{
		".bad": {Name: "broken"}, // missing comment symbol
	}
	require.Error(t, cfg.RegisterLanguages())
}
