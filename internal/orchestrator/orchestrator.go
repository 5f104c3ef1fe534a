// Package orchestrator drives one run: every requested file is sent to the
// transformer in input order and each successful result is routed to the
// enabled sinks.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/LiboWorks/llm-optimizer/internal/args"
	"github.com/LiboWorks/llm-optimizer/internal/report"
	"github.com/LiboWorks/llm-optimizer/internal/transform"
)

// Transformer is the part of transform.Client used by a run.
type Transformer interface {
	Run(ctx context.Context, fileName, content, model string, temperature float64, trackUsage bool) transform.Result
	LogTotalTokenUsage(fileNames []string)
}

// FileSink writes one transformed file.
type FileSink interface {
	Write(content, path string) error
}

// Summary counts what happened to the files of a run.
type Summary struct {
	Processed   int
	Failed      int
	Written     int
	WriteErrors int
	Records     int
}

// Orchestrator holds the collaborators of a run. The transformer is created
// once by the caller and shared by every file.
type Orchestrator struct {
	transformer Transformer
	files       FileSink
	markdown    report.Renderer
	html        report.Renderer
	logger      *slog.Logger
	out         io.Writer
	readFile    func(string) ([]byte, error)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithFileSink replaces the default report.FileWriter.
func WithFileSink(s FileSink) Option {
	return func(o *Orchestrator) { o.files = s }
}

// WithMarkdown sets the Markdown report renderer.
func WithMarkdown(r report.Renderer) Option {
	return func(o *Orchestrator) { o.markdown = r }
}

// WithHTML sets the HTML report renderer.
func WithHTML(r report.Renderer) Option {
	return func(o *Orchestrator) { o.html = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithProgress sets where progress lines go (default os.Stdout).
func WithProgress(w io.Writer) Option {
	return func(o *Orchestrator) { o.out = w }
}

// New creates an Orchestrator around t.
func New(t Transformer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		transformer: t,
		files:       report.FileWriter{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		out:         os.Stdout,
		readFile:    os.ReadFile,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run processes cfg.FileNames sequentially. Per-file problems (unreadable
// file, failed transform, failed write) are logged and counted; they never
// stop the batch and are not returned. Report renderers are invoked at
// most once, after the loop, and their errors are logged the same way.
func (o *Orchestrator) Run(ctx context.Context, cfg args.RunConfig) Summary {
	var (
		sum     Summary
		records []report.Record
	)

	for i, name := range cfg.FileNames {
		data, err := o.readFile(filepath.Clean(name))
		if err != nil {
			o.logger.Error("read file", "file", name, "error", err)
			sum.Failed++
			continue
		}
		content := string(data)

		fmt.Fprintf(o.out, "\nOptimizing %s...\n\n", name)

		result := o.transformer.Run(ctx, name, content, cfg.Model, cfg.Temperature, cfg.TokenUsage)
		if !result.OK() {
			o.logger.Debug("skipping file", "file", name, "error", result.Err())
			sum.Failed++
			continue
		}
		sum.Processed++

		if cfg.Markdown || cfg.HTML {
			records = append(records, report.Record{
				Before:   content,
				After:    result.Text(),
				FileName: name,
			})
		}

		if cfg.Output && i < len(cfg.OutputFiles) {
			target := cfg.OutputFiles[i]
			fmt.Fprintf(o.out, "Writing to %s\n", target)
			if err := o.files.Write(result.Text(), target); err != nil {
				o.logger.Error("write output", "file", name, "target", target, "error", err)
				sum.WriteErrors++
				continue
			}
			sum.Written++
		}
	}
	sum.Records = len(records)

	if cfg.TokenUsage {
		o.transformer.LogTotalTokenUsage(cfg.FileNames)
	}

	if cfg.Markdown {
		o.render("markdown", o.markdown, records)
	}
	if cfg.HTML {
		o.render("html", o.html, records)
	}

	o.logger.Debug("run complete",
		"processed", sum.Processed,
		"failed", sum.Failed,
		"written", sum.Written,
		"write_errors", sum.WriteErrors,
	)
	return sum
}

func (o *Orchestrator) render(kind string, r report.Renderer, records []report.Record) {
	if r == nil {
		o.logger.Warn("report requested but no renderer configured", "kind", kind)
		return
	}
	if err := r.Render(records); err != nil {
		o.logger.Error("write report", "kind", kind, "error", err)
	}
}
