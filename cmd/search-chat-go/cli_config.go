package main

import (
	"flag"
	"io"
	"strings"

	configpkg "github.com/minhyannv/search-chat-go/pkg/config"
)

// parseCLIConfig builds the runtime config from flags, environment and the
// credentials file. Precedence, lowest first: defaults, file, env, flags.
func parseCLIConfig(args []string, getenv func(string) string, stderr io.Writer) (configpkg.Config, error) {
	defaults := configpkg.DefaultConfig()

	fs := flag.NewFlagSet("search-chat-go", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", configpkg.DefaultPath, "Credentials file holding API_KEY (.json, .yaml or .yml)")
	provider := fs.String("provider", "", "Model provider: openai or anthropic (overrides config and env)")
	maxTurns := fs.Int("max_turns", defaults.MaxTurns, "Max tool-call turns per answer")
	verbose := fs.Bool("verbose", defaults.Verbose, "Verbose diagnostic logging to stderr")
	if err := fs.Parse(args); err != nil {
		return configpkg.Config{}, err
	}

	file, err := configpkg.LoadFile(*configPath)
	if err != nil {
		return configpkg.Config{}, err
	}
	cfg := file.Apply(defaults)

	if v := strings.TrimSpace(getenv("SEARCH_CHAT_PROVIDER")); v != "" {
		cfg.Provider = v
	}
	if v := strings.TrimSpace(getenv("SEARCH_CHAT_MODEL")); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(getenv("SEARCH_CHAT_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}

	if strings.TrimSpace(*provider) != "" {
		cfg.Provider = *provider
	}
	cfg.MaxTurns = *maxTurns
	cfg.Verbose = *verbose
	return configpkg.Normalize(cfg), nil
}
