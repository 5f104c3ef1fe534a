package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; border-radius: 6px; }
h2 { border-bottom: 1px solid #d0d7de; padding-bottom: .3rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// HTMLWriter renders all records into one standalone HTML page. The body
// is the Markdown report converted with goldmark.
type HTMLWriter struct {
	Path  string
	Title string
	md    goldmark.Markdown
	files FileWriter
}

// NewHTMLWriter returns a writer for path.
func NewHTMLWriter(path string) *HTMLWriter {
	return &HTMLWriter{
		Path:  path,
		Title: "Optimization report",
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render writes the page. An empty record list writes nothing.
func (w *HTMLWriter) Render(records []Record) error {
	if len(records) == 0 {
		return nil
	}
	doc, err := w.Build(records)
	if err != nil {
		return err
	}
	return w.files.Write(doc, w.Path)
}

// Build returns the HTML document for records.
func (w *HTMLWriter) Build(records []Record) (string, error) {
	var body bytes.Buffer
	if err := w.md.Convert([]byte(BuildMarkdown(w.Title, records)), &body); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{w.Title, template.HTML(body.String())})
	if err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return out.String(), nil
}
