// Package transform wraps a chat-completion backend with the prompt used to
// optimize source files and keeps the token accounting for a run.
package transform

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/LiboWorks/llm-optimizer/internal/backend"
)

const systemPrompt = `You are an expert software engineer. Optimize the code you are given for
performance, readability and maintainability without changing its behaviour.
Reply with the complete optimized file only: no explanations and no Markdown
code fences.`

// Client sends files to an LLM backend. A run constructs one Client and
// passes it to every call so that token totals cover the whole run. Calls
// are expected to be sequential.
type Client struct {
	backend backend.LLMBackend
	logger  *slog.Logger
	out     io.Writer
	render  func(string) (string, error)

	usage  map[string]backend.Usage
	totals backend.Usage
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for failed transforms.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithOutput sets where the usage summary is written (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(c *Client) {
		c.out = w
	}
}

// WithRenderer sets a Markdown renderer applied to the usage summary.
func WithRenderer(render func(string) (string, error)) Option {
	return func(c *Client) {
		c.render = render
	}
}

// NewClient creates a Client over b.
func NewClient(b backend.LLMBackend, opts ...Option) *Client {
	c := &Client{
		backend: b,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		out:     os.Stdout,
		usage:   make(map[string]backend.Usage),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run asks the model to optimize content. It never returns an error: any
// backend failure or empty reply becomes a Failure result so the caller
// can move on to the next file. Usage of successful calls is recorded when
// trackUsage is set.
func (c *Client) Run(ctx context.Context, fileName, content, model string, temperature float64, trackUsage bool) Result {
	completion, err := c.backend.Complete(ctx, backend.Request{
		Model:       model,
		System:      systemPrompt,
		Prompt:      buildPrompt(fileName, content),
		Temperature: temperature,
	})
	if err != nil {
		c.logger.Error("unable to process file", "file", fileName, "backend", c.backend.Name(), "error", err)
		return Failure(err)
	}

	text := StripFence(completion.Text)
	if text == "" {
		c.logger.Error("unable to process file", "file", fileName, "error", ErrEmptyReply)
		return Failure(ErrEmptyReply)
	}

	if trackUsage {
		c.usage[fileName] = c.usage[fileName].Add(completion.Usage)
		c.totals = c.totals.Add(completion.Usage)
	}
	return Success(text)
}

// Usage returns the recorded usage for one file.
func (c *Client) Usage(fileName string) backend.Usage {
	return c.usage[fileName]
}

// TotalUsage returns the usage accumulated over every tracked call.
func (c *Client) TotalUsage() backend.Usage {
	return c.totals
}

// LogTotalTokenUsage writes a usage table with one row per file in
// fileNames followed by the run total. Files that were never tracked show
// zero usage.
func (c *Client) LogTotalTokenUsage(fileNames []string) {
	summary := UsageMarkdown(fileNames, c.usage, c.totals)
	if c.render != nil {
		if rendered, err := c.render(summary); err == nil {
			summary = rendered
		} else {
			c.logger.Warn("render usage summary", "error", err)
		}
	}
	fmt.Fprint(c.out, summary)
}

// UsageMarkdown formats usage as a Markdown table. A file named more than
// once gets a single row, since usage is keyed by name.
func UsageMarkdown(fileNames []string, perFile map[string]backend.Usage, totals backend.Usage) string {
	var b strings.Builder
	b.WriteString("## Token usage\n\n")
	b.WriteString("| File | Prompt | Completion | Total |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	seen := make(map[string]bool, len(fileNames))
	for _, name := range fileNames {
		if seen[name] {
			continue
		}
		seen[name] = true
		u := perFile[name]
		fmt.Fprintf(&b, "| %s | %d | %d | %d |\n", escapeCell(name), u.PromptTokens, u.CompletionTokens, u.TotalTokens)
	}
	fmt.Fprintf(&b, "| **Total** | %d | %d | %d |\n", totals.PromptTokens, totals.CompletionTokens, totals.TotalTokens)
	return b.String()
}

func buildPrompt(fileName, content string) string {
	return fmt.Sprintf("File: %s\n\n%s", fileName, content)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
