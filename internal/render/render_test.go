package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sidedoc/internal/section"
)

func TestMarkdown_BasicFormatting(t *testing.T) {
	html, err := Markdown("A *literate* paragraph.\n")
	require.NoError(t, err)
	require.Contains(t, html, "<p>")
	require.Contains(t, html, "<em>literate</em>")
}

func TestMarkdown_ListRendering(t *testing.T) {
	html, err := Markdown("- **param** `a` `{number}`: left operand\n")
	require.NoError(t, err)
	require.Contains(t, html, "<li>")
	require.Contains(t, html, "<strong>param</strong>")
	require.Contains(t, html, "<code>a</code>")
}

func TestPage_ContainsSectionsAndAnchors(t *testing.T) {
	sections := []*section.Section{
		{DocText: "hello\n", CodeHTML: `<div class="highlight"><pre>var x;</pre></div>`},
		{DocText: "world\n", CodeHTML: `<div class="highlight"><pre>var y;</pre></div>`},
	}

	var buf bytes.Buffer
	err := Page(&buf, "app.js", "../", sections)
	require.NoError(t, err)

	html := buf.String()
	require.Contains(t, html, "<title>app.js</title>")
	require.Contains(t, html, `href="../sidedoc.css"`)
	require.Contains(t, html, `id="section-1"`)
	require.Contains(t, html, `id="section-2"`)
	require.Contains(t, html, "<p>hello</p>")
	require.Contains(t, html, "var y;")
}

func TestPage_CodeHTMLNotEscaped(t *testing.T) {
	sections := []*section.Section{
		{CodeHTML: `<span class="k">function</span>`},
	}

	var buf bytes.Buffer
	require.NoError(t, Page(&buf, "x.js", "", sections))
	require.Contains(t, buf.String(), `<span class="k">function</span>`)
	require.NotContains(t, buf.String(), "&lt;span")
}

func TestPage_DeterministicOutput(t *testing.T) {
	sections := func() []*section.Section {
		return []*section.Section{
			{DocText: "doc\n", CodeHTML: "<pre>code</pre>"},
		}
	}

	var first, second bytes.Buffer
	require.NoError(t, Page(&first, "a.js", "", sections()))
	require.NoError(t, Page(&second, "a.js", "", sections()))
	require.Equal(t, first.Bytes(), second.Bytes())
}

func TestPage_BlankDocTextLeftUnrendered(t *testing.T) {
	sections := []*section.Section{{DocText: "  \n"}}

	var buf bytes.Buffer
	require.NoError(t, Page(&buf, "a.js", "", sections))
	require.Empty(t, sections[0].DocHTML)
}

func TestStylesheet_NonEmpty(t *testing.T) {
	require.NotEmpty(t, Stylesheet())
}
