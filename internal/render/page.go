// Package render turns parsed sections into the final HTML page: comment
// text through goldmark, the page itself through a fixed embedded template.
package render

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"sync"

	"git.home.luguber.info/inful/sidedoc/internal/errors"
	"git.home.luguber.info/inful/sidedoc/internal/section"
)

//go:embed assets
var assets embed.FS

// StylesheetName is the shared stylesheet filename copied into the output root.
const StylesheetName = "sidedoc.css"

// Stylesheet returns the built-in stylesheet contents.
func Stylesheet() []byte {
	data, err := assets.ReadFile("assets/" + StylesheetName)
	if err != nil {
		panic(err)
	}
	return data
}

// PageSection is one section prepared for template execution. Doc and code
// HTML are pre-rendered and trusted.
type PageSection struct {
	Index    int
	DocHTML  template.HTML
	CodeHTML template.HTML
}

// PageData is the input to the page template.
type PageData struct {
	Title string
	// AssetPrefix is the relative path prefix from the page to the output
	// root, e.g. "../../" for a page two directories deep.
	AssetPrefix string
	Sections    []PageSection
}

// The page template is compiled lazily, process-wide, exactly once.
var (
	pageOnce sync.Once
	pageTmpl *template.Template
	pageErr  error
)

func pageTemplate() (*template.Template, error) {
	pageOnce.Do(func() {
		src, err := assets.ReadFile("assets/page.html.tmpl")
		if err != nil {
			pageErr = err
			return
		}
		pageTmpl, pageErr = template.New("page").Parse(string(src))
	})
	return pageTmpl, pageErr
}

// Page fills any missing DocHTML from DocText, then writes the complete HTML
// page for one source file. Output is deterministic: the same sections always
// produce the same bytes.
func Page(w io.Writer, title, assetPrefix string, sections []*section.Section) error {
	tmpl, err := pageTemplate()
	if err != nil {
		return errors.RenderFailed("page template", err)
	}

	data := PageData{Title: title, AssetPrefix: assetPrefix}
	for i, s := range sections {
		if s.DocHTML == "" && strings.TrimSpace(s.DocText) != "" {
			html, err := Markdown(s.DocText)
			if err != nil {
				return errors.RenderFailed("comment markdown", err)
			}
			s.DocHTML = html
		}
		data.Sections = append(data.Sections, PageSection{
			Index:    i + 1,
			DocHTML:  template.HTML(s.DocHTML),
			CodeHTML: template.HTML(s.CodeHTML),
		})
	}

	if err := tmpl.Execute(w, data); err != nil {
		return errors.RenderFailed("page template execute", err)
	}
	return nil
}
