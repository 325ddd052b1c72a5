package agent

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	configpkg "github.com/minhyannv/search-chat-go/pkg/config"
	"github.com/minhyannv/search-chat-go/pkg/memory"
	"github.com/minhyannv/search-chat-go/pkg/tools"
)

type anthropicBackend struct {
	client      anthropic.Client
	model       string
	temperature float64
	maxTokens   int64
	maxTurns    int
	tools       *tools.Registry
	debug       func(msg string, obj any)
}

func newAnthropicBackend(cfg configpkg.Config, registry *tools.Registry, maxRetries int, debug func(string, any)) *anthropicBackend {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if maxRetries >= 0 {
		opts = append(opts, option.WithMaxRetries(maxRetries))
	}
	return &anthropicBackend{
		client:      anthropic.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		maxTurns:    cfg.MaxTurns,
		tools:       registry,
		debug:       debug,
	}
}

func toAnthropicMessages(history []memory.Turn, input string) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, t := range history {
		switch t.Role {
		case memory.RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(t.Text)))
		default:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(t.Text)))
		}
	}
	return append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(input)))
}

func (b *anthropicBackend) run(ctx context.Context, systemPrompt string, history []memory.Turn, input string) (string, error) {
	messages := toAnthropicMessages(history, input)
	definitions := b.tools.AnthropicDefinitions()

	for turn := 0; turn < b.maxTurns; turn++ {
		b.debug("anthropic request", map[string]any{"turn": turn + 1, "max_turns": b.maxTurns, "messages": len(messages)})
		msg, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:       anthropic.Model(b.model),
			MaxTokens:   b.maxTokens,
			System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
			Messages:    messages,
			Tools:       definitions,
			Temperature: anthropic.Float(b.temperature),
		})
		if err != nil {
			return "", err
		}
		messages = append(messages, msg.ToParam())

		var text []string
		var results []anthropic.ContentBlockParamUnion
		for _, block := range msg.Content {
			switch block.Type {
			case "text":
				if t := block.AsText().Text; t != "" {
					text = append(text, t)
				}
			case "tool_use":
				use := block.AsToolUse()
				output, err := b.tools.Execute(ctx, use.Name, string(use.Input))
				if err != nil {
					return "", err
				}
				results = append(results, anthropic.NewToolResultBlock(use.ID, output, false))
			}
		}

		if len(results) == 0 {
			return strings.Join(text, "\n"), nil
		}
		b.debug("anthropic tool calls", map[string]any{"turn": turn + 1, "count": len(results)})
		messages = append(messages, anthropic.NewUserMessage(results...))
	}
	return "", ErrMaxTurns
}
