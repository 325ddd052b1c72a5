package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	configpkg "github.com/minhyannv/search-chat-go/pkg/config"
	loggerpkg "github.com/minhyannv/search-chat-go/pkg/logger"
	"github.com/minhyannv/search-chat-go/pkg/memory"
	"github.com/minhyannv/search-chat-go/pkg/tools"
)

// ErrMaxTurns is returned when the model keeps calling tools past the turn limit.
var ErrMaxTurns = errors.New("max turns reached before assistant produced a final response")

// backend runs the model/tool iteration for one user input.
type backend interface {
	run(ctx context.Context, systemPrompt string, history []memory.Turn, input string) (string, error)
}

// AgentLoop answers user input with a hosted chat model that may call tools.
type AgentLoop struct {
	backend      backend
	SystemPrompt string

	logger  loggerpkg.Logger
	verbose bool
}

// New initializes an AgentLoop for the configured provider.
func New(cfg configpkg.Config, opts ...AgentOption) (*AgentLoop, error) {
	cfg = configpkg.Normalize(cfg)
	deps := agentDeps{logger: loggerpkg.NopLogger{}, maxRetries: -1}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}

	loggerpkg.Debug(cfg.Verbose, deps.logger, "agent_loop init", map[string]any{
		"provider":  cfg.Provider,
		"model":     cfg.Model,
		"base_url":  cfg.BaseURL,
		"max_turns": cfg.MaxTurns,
	})
	if cfg.APIKey == "" {
		return nil, errors.New("APIKey is not set")
	}

	registry := deps.tools
	if registry == nil {
		registry = tools.New(tools.Context{
			SearchResults: cfg.SearchResults,
			Verbose:       cfg.Verbose,
			Logger:        deps.logger,
		})
	}

	a := &AgentLoop{
		SystemPrompt: BuildSystemPrompt(time.Now(), registry.Names()),
		logger:       deps.logger,
		verbose:      cfg.Verbose,
	}

	switch cfg.Provider {
	case configpkg.ProviderOpenAI:
		a.backend = newOpenAIBackend(cfg, registry, deps.maxRetries, a.debug)
	case configpkg.ProviderAnthropic:
		a.backend = newAnthropicBackend(cfg, registry, deps.maxRetries, a.debug)
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}

	loggerpkg.Debug(cfg.Verbose, deps.logger, "tools registered", map[string]any{
		"tools": registry.Names(),
	})
	return a, nil
}

// Respond produces the assistant's answer to input given the prior turns.
// history is read only; recording the exchange is the caller's job.
func (a *AgentLoop) Respond(ctx context.Context, input string, history []memory.Turn) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.New("user input is required")
	}

	start := time.Now()
	a.debug("respond start", map[string]any{"history_turns": len(history), "input_bytes": len(input)})
	output, err := a.backend.run(ctx, a.SystemPrompt, history, input)
	if err != nil {
		a.debug("respond failed", map[string]any{"error": err.Error(), "duration_ms": time.Since(start).Milliseconds()})
		return "", err
	}
	a.debug("respond done", map[string]any{"output_bytes": len(output), "duration_ms": time.Since(start).Milliseconds()})
	return output, nil
}

func (a *AgentLoop) debug(msg string, obj any) {
	loggerpkg.Debug(a.verbose, a.logger, msg, obj)
}
