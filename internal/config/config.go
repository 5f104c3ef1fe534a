// Package config provides configuration management for llm-optimizer.
// It loads the persisted options document, exposes it as a plain mapping
// and offers a typed view plus environment helpers.
package config

import (
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// Default values
const (
	DefaultConfigFile   = ".options.toml"
	DefaultProvider     = "groq"
	DefaultGroqBaseURL  = "https://api.groq.com/openai/v1"
	DefaultOpenAIURL    = "https://api.openai.com/v1"
	DefaultMarkdownFile = "optimized.md"
	DefaultHTMLFile     = "optimized.html"
)

// Environment variables consulted by the CLI.
const (
	EnvGroqAPIKey   = "GROQ_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvConfigPath   = "LLMO_CONFIG"
	EnvVerbose      = "LLMO_VERBOSE"
)

// Options is the typed view of a configuration document. Keys follow the
// logical flag names so that any flag can be given a default in the file.
type Options struct {
	Model        string   `mapstructure:"model"`
	Temperature  *float64 `mapstructure:"temperature"`
	APIKey       string   `mapstructure:"apiKey"`
	Provider     string   `mapstructure:"provider"`
	BaseURL      string   `mapstructure:"baseURL"`
	Output       bool     `mapstructure:"output"`
	OutputFiles  []string `mapstructure:"outputFiles"`
	Markdown     bool     `mapstructure:"markdown"`
	MarkdownFile string   `mapstructure:"markdownFile"`
	HTML         bool     `mapstructure:"html"`
	HTMLFile     string   `mapstructure:"htmlFile"`
	TokenUsage   bool     `mapstructure:"tokenUsage"`
	Verbose      bool     `mapstructure:"verbose"`
}

// Decode converts a raw mapping into Options. Weak typing is enabled so
// "0.5" and 0.5 are both accepted for temperature; unknown keys are ignored.
func Decode(values map[string]any) (Options, error) {
	var opts Options
	if len(values) == 0 {
		return opts, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return opts, err
	}
	if err := dec.Decode(values); err != nil {
		return Options{}, wrapParse("options", err)
	}
	return opts, nil
}

// BaseURLFor returns the default endpoint for a provider name.
func BaseURLFor(provider string) string {
	switch provider {
	case "openai":
		return DefaultOpenAIURL
	default:
		return DefaultGroqBaseURL
	}
}

// Helper functions for environment variable parsing. getenv is usually
// os.Getenv; tests pass a map lookup.

// GetEnv returns the environment value for key or defaultValue if unset.
func GetEnv(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool parses a boolean environment variable.
func GetEnvBool(getenv func(string) string, key string, defaultValue bool) bool {
	if value := getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
