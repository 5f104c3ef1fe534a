package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/LiboWorks/llm-optimizer/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, ".options.toml", `
model = "llama3-70b-8192"
temperature = 0.5
apiKey = "gsk_test"
markdown = true
outputFiles = ["a.out.py", "b.out.py"]
`)

	values, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if values["model"] != "llama3-70b-8192" {
		t.Errorf("expected model 'llama3-70b-8192', got %v", values["model"])
	}
	if values["temperature"] != 0.5 {
		t.Errorf("expected temperature 0.5, got %v", values["temperature"])
	}
	if values["markdown"] != true {
		t.Errorf("expected markdown true, got %v", values["markdown"])
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "options.yaml", "model: gpt-4o\ntemperature: 1\n")

	values, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if values["model"] != "gpt-4o" {
		t.Errorf("expected model 'gpt-4o', got %v", values["model"])
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, "options.yml", "")

	values, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if values == nil || len(values) != 0 {
		t.Errorf("expected empty mapping, got %v", values)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestLoadParseError(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"broken toml", ".options.toml", "model = \"unterminated\n"},
		{"yaml scalar", "options.yaml", "just a string\n"},
		{"yaml list", "options.yaml", "- a\n- b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := config.Load(path)
			if !errors.Is(err, config.ErrConfigParse) {
				t.Errorf("expected ErrConfigParse, got %v", err)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	values, err := config.LoadOptional(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadOptional() error = %v", err)
	}
	if len(values) != 0 {
		t.Errorf("expected empty mapping, got %v", values)
	}

	path := writeFile(t, ".options.toml", "model = [")
	if _, err := config.LoadOptional(path); !errors.Is(err, config.ErrConfigParse) {
		t.Errorf("expected ErrConfigParse for broken document, got %v", err)
	}
}

func TestDecode(t *testing.T) {
	opts, err := config.Decode(map[string]any{
		"model":       "llama3",
		"temperature": "0.7",
		"apiKey":      "key",
		"html":        true,
		"outputFiles": []any{"x.go"},
		"unknown":     42,
	})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if opts.Model != "llama3" {
		t.Errorf("expected model 'llama3', got %q", opts.Model)
	}
	if opts.Temperature == nil || *opts.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", opts.Temperature)
	}
	if opts.APIKey != "key" {
		t.Errorf("expected apiKey 'key', got %q", opts.APIKey)
	}
	if !opts.HTML {
		t.Error("expected HTML to be true")
	}
	if len(opts.OutputFiles) != 1 || opts.OutputFiles[0] != "x.go" {
		t.Errorf("unexpected outputFiles: %v", opts.OutputFiles)
	}
}

func TestDecodeEmpty(t *testing.T) {
	opts, err := config.Decode(nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if opts.Temperature != nil {
		t.Error("expected no temperature default")
	}
}

func TestDecodeBadType(t *testing.T) {
	_, err := config.Decode(map[string]any{"temperature": "warm"})
	if !errors.Is(err, config.ErrConfigParse) {
		t.Errorf("expected ErrConfigParse, got %v", err)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv(config.EnvVerbose, "1")
	t.Setenv(config.EnvConfigPath, "custom.toml")

	if !config.GetEnvBool(os.Getenv, config.EnvVerbose, false) {
		t.Error("expected verbose to be true")
	}
	if got := config.GetEnv(os.Getenv, config.EnvConfigPath, config.DefaultConfigFile); got != "custom.toml" {
		t.Errorf("expected config path 'custom.toml', got %q", got)
	}
	if got := config.GetEnv(os.Getenv, "LLMO_DOES_NOT_EXIST", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
	if config.GetEnvBool(func(string) string { return "maybe" }, config.EnvVerbose, false) {
		t.Error("expected unparsable value to fall back to default")
	}
}

func TestBaseURLFor(t *testing.T) {
	if got := config.BaseURLFor("openai"); got != config.DefaultOpenAIURL {
		t.Errorf("expected %q, got %q", config.DefaultOpenAIURL, got)
	}
	if got := config.BaseURLFor(""); got != config.DefaultGroqBaseURL {
		t.Errorf("expected %q, got %q", config.DefaultGroqBaseURL, got)
	}
}
