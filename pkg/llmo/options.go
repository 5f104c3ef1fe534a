package llmo

import (
	"github.com/LiboWorks/llm-optimizer/internal/args"
	"github.com/LiboWorks/llm-optimizer/internal/config"
)

// Version information for llm-optimizer.
const (
	// Name is printed by --version.
	Name = "llm-optimizer"

	// Version is the current version of llm-optimizer.
	Version = "0.1.0"
)

// Option is a functional option for building a RunConfig.
type Option func(*RunConfig)

// WithModel sets the model identifier.
func WithModel(model string) Option {
	return func(c *RunConfig) {
		c.Model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *RunConfig) {
		c.Temperature = t
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *RunConfig) {
		c.APIKey = key
	}
}

// WithProvider selects the backend ("groq" or "openai") and its default
// endpoint.
func WithProvider(provider string) Option {
	return func(c *RunConfig) {
		c.Provider = provider
		c.BaseURL = config.BaseURLFor(provider)
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *RunConfig) {
		c.BaseURL = url
	}
}

// WithOutput enables output and sets the paths paired with the input files.
func WithOutput(paths ...string) Option {
	return func(c *RunConfig) {
		c.Output = true
		c.OutputFiles = paths
	}
}

// WithMarkdown enables the Markdown report, optionally at a custom path.
func WithMarkdown(path string) Option {
	return func(c *RunConfig) {
		c.Markdown = true
		if path != "" {
			c.MarkdownFile = path
		}
	}
}

// WithHTML enables the HTML report, optionally at a custom path.
func WithHTML(path string) Option {
	return func(c *RunConfig) {
		c.HTML = true
		if path != "" {
			c.HTMLFile = path
		}
	}
}

// WithTokenUsage enables the end-of-run usage summary.
func WithTokenUsage() Option {
	return func(c *RunConfig) {
		c.TokenUsage = true
	}
}

// WithVerbose enables debug logging.
func WithVerbose() Option {
	return func(c *RunConfig) {
		c.Verbose = true
	}
}

// DefaultRunConfig returns the configuration used when nothing is set.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Model:        args.DefaultModel,
		Temperature:  args.DefaultTemperature,
		Provider:     config.DefaultProvider,
		BaseURL:      config.DefaultGroqBaseURL,
		MarkdownFile: config.DefaultMarkdownFile,
		HTMLFile:     config.DefaultHTMLFile,
	}
}

// NewRunConfig applies opts to the defaults for fileNames.
//
// Example:
//
//	cfg := llmo.NewRunConfig([]string{"a.py", "b.py"},
//	    llmo.WithOutput("a.opt.py"),
//	    llmo.WithTokenUsage(),
//	)
func NewRunConfig(fileNames []string, opts ...Option) RunConfig {
	c := DefaultRunConfig()
	c.FileNames = fileNames
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// withRunDefaults fills fields a hand-built RunConfig may leave empty.
func withRunDefaults(c RunConfig) RunConfig {
	d := DefaultRunConfig()
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.Provider == "" {
		c.Provider = d.Provider
	}
	if c.BaseURL == "" {
		c.BaseURL = config.BaseURLFor(c.Provider)
	}
	if c.MarkdownFile == "" {
		c.MarkdownFile = d.MarkdownFile
	}
	if c.HTMLFile == "" {
		c.HTMLFile = d.HTMLFile
	}
	return c
}
