package args

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/LiboWorks/llm-optimizer/internal/config"
)

// Defaults used when neither a flag nor the options document set a value.
const (
	DefaultModel       = "llama3-8b-8192"
	DefaultTemperature = 0.2
	MinTemperature     = 0.0
	MaxTemperature     = 2.0
)

var (
	ErrNoFilesSpecified   = errors.New("please provide a file name as an argument")
	ErrMissingAPIKey      = errors.New("missing API key")
	ErrInvalidTemperature = errors.New("invalid temperature")
	ErrUnknownFlag        = errors.New("unknown flag")
)

// RunConfig is the fully resolved set of options governing one invocation.
// It is built once by Resolve and treated as read-only afterwards.
type RunConfig struct {
	FileNames    []string
	Model        string
	Temperature  float64
	APIKey       string
	Provider     string
	BaseURL      string
	Output       bool
	OutputFiles  []string
	Markdown     bool
	MarkdownFile string
	HTML         bool
	HTMLFile     string
	TokenUsage   bool
	Verbose      bool
}

// Env looks up an environment variable. os.Getenv satisfies it.
type Env func(key string) string

// Resolve turns args and the options document into a RunConfig. Callers
// are expected to have handled Help and Version before calling it.
func Resolve(args []string, defaults config.Options, env Env) (RunConfig, error) {
	p := Scan(args)
	return p.Resolve(defaults, env)
}

// Resolve applies every resolver in order and fails on the first error.
func (p *Parsed) Resolve(defaults config.Options, env Env) (RunConfig, error) {
	if len(p.Unknown) > 0 {
		return RunConfig{}, fmt.Errorf("%w: %s", ErrUnknownFlag, strings.Join(p.Unknown, ", "))
	}

	fileNames, err := p.FileNames()
	if err != nil {
		return RunConfig{}, err
	}
	temperature, err := p.Temperature(defaults)
	if err != nil {
		return RunConfig{}, err
	}
	apiKey, err := p.APIKey(defaults, env)
	if err != nil {
		return RunConfig{}, err
	}
	output, outputFiles := p.Output(defaults)
	provider := p.Provider(defaults)

	return RunConfig{
		FileNames:    fileNames,
		Model:        p.Model(defaults),
		Temperature:  temperature,
		APIKey:       apiKey,
		Provider:     provider,
		BaseURL:      p.BaseURL(defaults, provider),
		Output:       output,
		OutputFiles:  outputFiles,
		Markdown:     p.Markdown(defaults),
		MarkdownFile: firstNonEmpty(defaults.MarkdownFile, config.DefaultMarkdownFile),
		HTML:         p.HTML(defaults),
		HTMLFile:     firstNonEmpty(defaults.HTMLFile, config.DefaultHTMLFile),
		TokenUsage:   p.TokenUsage(defaults),
		Verbose:      p.Has(FlagVerbose) || defaults.Verbose,
	}, nil
}

// Help reports whether usage text was requested.
func (p *Parsed) Help() bool { return p.Has(FlagHelp) }

// Version reports whether the version was requested.
func (p *Parsed) Version() bool { return p.Has(FlagVersion) }

// FileNames returns the positional arguments preceding the first flag.
func (p *Parsed) FileNames() ([]string, error) {
	if len(p.Positionals) == 0 {
		return nil, ErrNoFilesSpecified
	}
	return append([]string(nil), p.Positionals...), nil
}

// Model returns the --model value, else the document default, else
// DefaultModel.
func (p *Parsed) Model(defaults config.Options) string {
	if v, ok := p.Value(FlagModel); ok {
		return v
	}
	return firstNonEmpty(defaults.Model, DefaultModel)
}

// Temperature parses --temperature, falling back to the document and then
// DefaultTemperature. The value must lie in [MinTemperature, MaxTemperature];
// NaN is rejected.
func (p *Parsed) Temperature(defaults config.Options) (float64, error) {
	var t float64
	switch v, ok := p.Value(FlagTemperature); {
	case ok:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidTemperature, v)
		}
		t = parsed
	case p.Has(FlagTemperature):
		return 0, fmt.Errorf("%w: %s requires a value", ErrInvalidTemperature, FlagTemperature)
	case defaults.Temperature != nil:
		t = *defaults.Temperature
	default:
		t = DefaultTemperature
	}

	if math.IsNaN(t) || t < MinTemperature || t > MaxTemperature {
		return 0, fmt.Errorf("%w: %g is outside [%g, %g]", ErrInvalidTemperature, t, MinTemperature, MaxTemperature)
	}
	return t, nil
}

// APIKey returns --apiKey, else the document value, else GROQ_API_KEY or
// OPENAI_API_KEY from env.
func (p *Parsed) APIKey(defaults config.Options, env Env) (string, error) {
	if v, ok := p.Value(FlagAPIKey); ok && v != "" {
		return v, nil
	}
	if defaults.APIKey != "" {
		return defaults.APIKey, nil
	}
	if env != nil {
		for _, key := range []string{config.EnvGroqAPIKey, config.EnvOpenAIAPIKey} {
			if v := env(key); v != "" {
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("%w: pass %s, set apiKey in %s or export %s",
		ErrMissingAPIKey, FlagAPIKey, config.DefaultConfigFile, config.EnvGroqAPIKey)
}

// Output reports whether output is enabled and the per-file output paths.
// Paths given after the flag win over the document's outputFiles.
func (p *Parsed) Output(defaults config.Options) (bool, []string) {
	if !p.Has(FlagOutput) && !defaults.Output {
		return false, nil
	}
	if files := p.Values(FlagOutput); len(files) > 0 {
		return true, append([]string(nil), files...)
	}
	return true, append([]string(nil), defaults.OutputFiles...)
}

// Markdown reports whether the aggregated Markdown report is enabled.
func (p *Parsed) Markdown(defaults config.Options) bool {
	return p.Has(FlagMarkdown) || defaults.Markdown
}

// HTML reports whether the aggregated HTML report is enabled.
func (p *Parsed) HTML(defaults config.Options) bool {
	return p.Has(FlagHTML) || defaults.HTML
}

// TokenUsage reports whether the end-of-run usage summary is enabled.
func (p *Parsed) TokenUsage(defaults config.Options) bool {
	return p.Has(FlagTokenUsage) || defaults.TokenUsage
}

// Provider returns the backend name, "groq" unless overridden.
func (p *Parsed) Provider(defaults config.Options) string {
	if v, ok := p.Value(FlagProvider); ok {
		return v
	}
	return firstNonEmpty(defaults.Provider, config.DefaultProvider)
}

// BaseURL returns the API endpoint for provider.
func (p *Parsed) BaseURL(defaults config.Options, provider string) string {
	if v, ok := p.Value(FlagBaseURL); ok {
		return v
	}
	return firstNonEmpty(defaults.BaseURL, config.BaseURLFor(provider))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
