package render

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// Markdown converts accumulated comment text to HTML.
func Markdown(docText string) (string, error) {
	md := goldmark.New()
	var buf bytes.Buffer
	if err := md.Convert([]byte(docText), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
