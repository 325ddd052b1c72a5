package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotFound   = errors.New("config file not found")
	ErrParse      = errors.New("config file is malformed")
	ErrKeyMissing = errors.New("config key missing")
)

// APIKeyField is the required key in the credentials file.
const APIKeyField = "API_KEY"

// File mirrors the credentials file. Only API_KEY is required.
type File struct {
	APIKey   string `json:"API_KEY" yaml:"API_KEY"`
	Model    string `json:"MODEL,omitempty" yaml:"MODEL,omitempty"`
	BaseURL  string `json:"BASE_URL,omitempty" yaml:"BASE_URL,omitempty"`
	Provider string `json:"PROVIDER,omitempty" yaml:"PROVIDER,omitempty"`
}

// LoadFile reads the credentials file at path. Files ending in .yaml or .yml
// are decoded as YAML, everything else as JSON.
func LoadFile(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return File{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return File{}, fmt.Errorf("read %s: %w", path, err)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &raw)
	default:
		err = json.Unmarshal(b, &raw)
	}
	if err != nil {
		return File{}, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	key, ok := raw[APIKeyField]
	if !ok || key == nil {
		return File{}, fmt.Errorf("%w: %s in %s", ErrKeyMissing, APIKeyField, path)
	}
	apiKey, ok := key.(string)
	if !ok {
		return File{}, fmt.Errorf("%w: %s: %s must be a string", ErrParse, path, APIKeyField)
	}

	return File{
		APIKey:   apiKey,
		Model:    stringField(raw, "MODEL"),
		BaseURL:  stringField(raw, "BASE_URL"),
		Provider: stringField(raw, "PROVIDER"),
	}, nil
}

// Apply copies file values onto cfg; empty optional fields leave cfg untouched.
func (f File) Apply(cfg Config) Config {
	cfg.APIKey = f.APIKey
	if f.Model != "" {
		cfg.Model = f.Model
	}
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.Provider != "" {
		cfg.Provider = f.Provider
	}
	return cfg
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return strings.TrimSpace(s)
}
