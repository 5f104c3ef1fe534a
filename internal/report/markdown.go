package report

import (
	"fmt"
	"strings"
)

// MarkdownWriter renders all records into one Markdown document.
type MarkdownWriter struct {
	Path  string
	Title string
	files FileWriter
}

// NewMarkdownWriter returns a writer for path.
func NewMarkdownWriter(path string) *MarkdownWriter {
	return &MarkdownWriter{Path: path, Title: "Optimization report"}
}

// Render writes the report. An empty record list writes nothing.
func (w *MarkdownWriter) Render(records []Record) error {
	if len(records) == 0 {
		return nil
	}
	return w.files.Write(BuildMarkdown(w.Title, records), w.Path)
}

// BuildMarkdown produces the report body: a table of contents followed by
// one section per record with the original and optimized code.
func BuildMarkdown(title string, records []Record) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", title)
	for i, r := range records {
		fmt.Fprintf(&sb, "%d. [%s](#%s)\n", i+1, r.FileName, anchor(r.FileName))
	}
	sb.WriteString("\n")

	for _, r := range records {
		lang := Language(r.FileName)
		fmt.Fprintf(&sb, "## %s\n\n", r.FileName)
		sb.WriteString("### Before\n\n")
		writeFenced(&sb, lang, r.Before)
		sb.WriteString("### After\n\n")
		writeFenced(&sb, lang, r.After)
	}
	return sb.String()
}

// writeFenced emits a code block whose fence is longer than any backtick
// run inside code.
func writeFenced(sb *strings.Builder, lang, code string) {
	fence := strings.Repeat("`", max(3, longestRun(code, '`')+1))
	sb.WriteString(fence)
	sb.WriteString(lang)
	sb.WriteString("\n")
	sb.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(fence)
	sb.WriteString("\n\n")
}

func longestRun(s string, c rune) int {
	longest, run := 0, 0
	for _, r := range s {
		if r == c {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

// anchor mirrors the heading IDs generated by common Markdown renderers:
// lower case, spaces, dashes and underscores to dashes, other punctuation
// dropped.
func anchor(heading string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(heading) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			sb.WriteRune('-')
		}
	}
	return sb.String()
}
