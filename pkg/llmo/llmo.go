// Package llmo provides a public API for llm-optimizer.
//
// Execute runs the full command-line flow (help and version handling,
// .options.toml, flag resolution, the per-file loop). Run processes an
// already resolved configuration, which is useful when embedding the tool:
//
//	cfg := llmo.NewRunConfig([]string{"main.go"},
//	    llmo.WithModel("llama3-70b-8192"),
//	    llmo.WithOutput("main.optimized.go"),
//	    llmo.WithMarkdown("report.md"),
//	)
//	summary, err := llmo.Run(ctx, cfg)
package llmo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/LiboWorks/llm-optimizer/internal/args"
	"github.com/LiboWorks/llm-optimizer/internal/backend"
	"github.com/LiboWorks/llm-optimizer/internal/config"
	"github.com/LiboWorks/llm-optimizer/internal/logging"
	"github.com/LiboWorks/llm-optimizer/internal/orchestrator"
	"github.com/LiboWorks/llm-optimizer/internal/presentation/tui"
	"github.com/LiboWorks/llm-optimizer/internal/report"
	"github.com/LiboWorks/llm-optimizer/internal/transform"
)

// RunConfig is the resolved configuration of one run.
type RunConfig = args.RunConfig

// Summary counts the outcome of a run.
type Summary = orchestrator.Summary

// Env is consulted for API key fallbacks and the config path.
type Env = args.Env

// IO bundles the streams and environment used by Execute.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
	Getenv Env
	// Backend replaces the provider selected by the configuration. Used by
	// tests to avoid network calls.
	Backend backend.LLMBackend
}

func (s IO) withDefaults() IO {
	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}
	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}
	if s.Getenv == nil {
		s.Getenv = os.Getenv
	}
	return s
}

// Execute runs the command line argv (without the program name). --help and
// --version are answered before anything else is resolved. Any returned
// error is a fatal configuration error; per-file failures are only logged.
func Execute(ctx context.Context, argv []string, streams IO) error {
	streams = streams.withDefaults()
	p := args.Scan(argv)

	if p.Version() {
		fmt.Fprintf(streams.Stdout, "%s version %s\n", Name, Version)
		return nil
	}
	if p.Help() {
		fmt.Fprint(streams.Stdout, args.Usage)
		return nil
	}

	defaults, err := loadDefaults(streams.Getenv)
	if err != nil {
		return err
	}

	cfg, err := p.Resolve(defaults, streams.Getenv)
	if err != nil {
		return err
	}

	verbose := cfg.Verbose || config.GetEnvBool(streams.Getenv, config.EnvVerbose, false)
	logger := logging.NewWithWriter(streams.Stderr, logging.Level(verbose))

	_, err = run(ctx, cfg, streams, logger)
	return err
}

// Run processes cfg with the provider it names, writing progress to stdout
// and logs to stderr.
func Run(ctx context.Context, cfg RunConfig) (Summary, error) {
	streams := IO{}.withDefaults()
	return run(ctx, cfg, streams, logging.New(logging.Level(cfg.Verbose)))
}

func run(ctx context.Context, cfg RunConfig, streams IO, logger *slog.Logger) (Summary, error) {
	if len(cfg.FileNames) == 0 {
		return Summary{}, args.ErrNoFilesSpecified
	}
	cfg = withRunDefaults(cfg)

	b := streams.Backend
	if b == nil {
		registry, err := backend.NewRegistryFor(cfg.APIKey, cfg.Provider, cfg.BaseURL, cfg.Model)
		if err != nil {
			return Summary{}, err
		}
		defer registry.Close()
		b, _ = registry.GetLLM("")
	}

	client := transform.NewClient(b,
		transform.WithLogger(logger),
		transform.WithOutput(streams.Stdout),
		transform.WithRenderer(tui.NewRenderer(streams.Stdout)),
	)

	o := orchestrator.New(client,
		orchestrator.WithLogger(logger),
		orchestrator.WithProgress(streams.Stdout),
		orchestrator.WithMarkdown(report.NewMarkdownWriter(cfg.MarkdownFile)),
		orchestrator.WithHTML(report.NewHTMLWriter(cfg.HTMLFile)),
	)

	logger.Debug("starting run",
		"files", len(cfg.FileNames),
		"model", cfg.Model,
		"provider", b.Name(),
		"temperature", cfg.Temperature,
	)
	return o.Run(ctx, cfg), nil
}

// loadDefaults reads the options document. The conventional .options.toml
// is optional; a path given through LLMO_CONFIG must exist.
func loadDefaults(getenv Env) (config.Options, error) {
	load, path := config.LoadOptional, config.DefaultConfigFile
	if custom := config.GetEnv(getenv, config.EnvConfigPath, ""); custom != "" {
		load, path = config.Load, custom
	}

	values, err := load(path)
	if err != nil {
		return config.Options{}, err
	}
	return config.Decode(values)
}
