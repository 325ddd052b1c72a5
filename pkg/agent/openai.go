package agent

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	configpkg "github.com/minhyannv/search-chat-go/pkg/config"
	"github.com/minhyannv/search-chat-go/pkg/memory"
	"github.com/minhyannv/search-chat-go/pkg/tools"
)

type openaiBackend struct {
	client      openai.Client
	model       string
	temperature float64
	maxTurns    int
	tools       *tools.Registry
	debug       func(msg string, obj any)
}

func newOpenAIBackend(cfg configpkg.Config, registry *tools.Registry, maxRetries int, debug func(string, any)) *openaiBackend {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if maxRetries >= 0 {
		opts = append(opts, option.WithMaxRetries(maxRetries))
	}
	return &openaiBackend{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTurns:    cfg.MaxTurns,
		tools:       registry,
		debug:       debug,
	}
}

func toOpenAIMessages(systemPrompt string, history []memory.Turn, input string) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	out = append(out, openai.SystemMessage(systemPrompt))
	for _, t := range history {
		switch t.Role {
		case memory.RoleAssistant:
			out = append(out, openai.AssistantMessage(t.Text))
		default:
			out = append(out, openai.UserMessage(t.Text))
		}
	}
	return append(out, openai.UserMessage(input))
}

func (b *openaiBackend) run(ctx context.Context, systemPrompt string, history []memory.Turn, input string) (string, error) {
	messages := toOpenAIMessages(systemPrompt, history, input)
	definitions := b.tools.OpenAIDefinitions()

	for turn := 0; turn < b.maxTurns; turn++ {
		b.debug("openai request", map[string]any{"turn": turn + 1, "max_turns": b.maxTurns, "messages": len(messages)})
		completion, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:       openai.ChatModel(b.model),
			Messages:    messages,
			Tools:       definitions,
			Temperature: openai.Float(b.temperature),
		})
		if err != nil {
			return "", err
		}
		if len(completion.Choices) == 0 {
			return "", errors.New("empty completion choices")
		}

		message := completion.Choices[0].Message
		if len(message.ToolCalls) == 0 {
			return message.Content, nil
		}

		// The assistant tool-call turn must precede its tool responses.
		messages = append(messages, message.ToParam())
		b.debug("openai tool calls", map[string]any{"turn": turn + 1, "count": len(message.ToolCalls)})
		for _, call := range message.ToolCalls {
			output, err := b.tools.Execute(ctx, call.Function.Name, call.Function.Arguments)
			if err != nil {
				return "", err
			}
			messages = append(messages, openai.ToolMessage(output, call.ID))
		}
	}
	return "", ErrMaxTurns
}
