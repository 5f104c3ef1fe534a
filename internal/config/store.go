package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigNotFound is returned when the options document does not exist.
	ErrConfigNotFound = errors.New("config not found")
	// ErrConfigParse is returned when the document is not a key/value mapping.
	ErrConfigParse = errors.New("config parse error")
)

// Load reads the options document at path and returns it as a mapping of
// option name to value. Option semantics are not validated here.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	values := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, wrapParse(path, err)
		}
	default:
		if err := toml.Unmarshal(data, &values); err != nil {
			return nil, wrapParse(path, err)
		}
	}

	// An empty YAML document decodes to a nil map.
	if values == nil {
		values = make(map[string]any)
	}
	return values, nil
}

// LoadOptional behaves like Load but treats a missing document as empty.
func LoadOptional(path string) (map[string]any, error) {
	values, err := Load(path)
	if errors.Is(err, ErrConfigNotFound) {
		return map[string]any{}, nil
	}
	return values, err
}

func wrapParse(source string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrConfigParse, source, err)
}
