// Package report holds the output sinks: the single-file writer and the
// aggregated Markdown and HTML reports.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrWrite wraps every I/O failure raised by a sink.
var ErrWrite = errors.New("write error")

// Record is one file's before/after pair kept for aggregated reports.
type Record struct {
	Before   string
	After    string
	FileName string
}

// Renderer persists an aggregated artifact built from records.
type Renderer interface {
	Render(records []Record) error
}

// FileWriter writes a single payload to a single path.
type FileWriter struct{}

// Write stores content at path, creating parent directories and replacing
// any existing file.
func (FileWriter) Write(content, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}

var languages = map[string]string{
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".jsx":  "jsx",
	".ts":   "typescript",
	".tsx":  "tsx",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".cs":   "csharp",
	".rb":   "ruby",
	".rs":   "rust",
	".php":  "php",
	".sh":   "bash",
	".kt":   "kotlin",
	".sql":  "sql",
}

// Language guesses a fenced-code language tag from a file name. Unknown
// extensions map to "".
func Language(fileName string) string {
	return languages[strings.ToLower(filepath.Ext(fileName))]
}
