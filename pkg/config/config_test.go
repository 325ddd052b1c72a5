package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileFromJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"API_KEY": "sk-test"}`)

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", f.APIKey)
}

func TestLoadFileOptionalFields(t *testing.T) {
	path := writeFile(t, "config.json", `{"API_KEY":"k","MODEL":" gpt-4o ","PROVIDER":"anthropic","BASE_URL":"http://localhost:1234/v1"}`)

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, File{APIKey: "k", Model: "gpt-4o", Provider: "anthropic", BaseURL: "http://localhost:1234/v1"}, f)
}

func TestLoadFileFromYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "API_KEY: sk-yaml\nMODEL: gpt-4o-mini\n")

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-yaml", f.APIKey)
	assert.Equal(t, "gpt-4o-mini", f.Model)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "config.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadFileMalformed(t *testing.T) {
	cases := map[string]string{
		"config.json": `{"API_KEY": `,
		"array.json":  `["API_KEY"]`,
		"typed.json":  `{"API_KEY": 42}`,
		"config.yml":  "API_KEY: [unterminated\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, name, content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestLoadFileKeyMissing(t *testing.T) {
	path := writeFile(t, "config.json", `{"OPENAI_API_KEY": "sk-test"}`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyMissing)
	assert.Contains(t, err.Error(), APIKeyField)
}

func TestApplyKeepsDefaultsForEmptyFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "from-env"

	cfg = File{APIKey: "k"}.Apply(cfg)
	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, "from-env", cfg.Model)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
}

func TestNormalizeAppliesProviderDefaults(t *testing.T) {
	cfg := Normalize(Config{Provider: " Anthropic ", MaxTurns: -1})
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, DefaultAnthropicModel, cfg.Model)
	assert.Equal(t, 1, cfg.MaxTurns)
	assert.Equal(t, 5, cfg.SearchResults)
	assert.EqualValues(t, 1024, cfg.MaxTokens)

	cfg = Normalize(Config{})
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, DefaultOpenAIModel, cfg.Model)
}
