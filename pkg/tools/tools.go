package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"

	loggerpkg "github.com/minhyannv/search-chat-go/pkg/logger"
	"github.com/minhyannv/search-chat-go/pkg/search"
)

// ErrUnknownTool is returned when the model calls a tool that is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// Searcher runs a web search.
type Searcher interface {
	Search(ctx context.Context, query string, count int) ([]search.Result, error)
}

// Encyclopedia looks up article summaries.
type Encyclopedia interface {
	Summary(ctx context.Context, title string) (search.Summary, error)
}

type tool interface {
	name() string
	description() string
	schema() map[string]any
	execute(ctx context.Context, argText string) (string, error)
}

// Context carries the dependencies shared by all tools.
type Context struct {
	SearchResults int
	Searcher      Searcher
	Encyclopedia  Encyclopedia
	Verbose       bool
	Logger        loggerpkg.Logger
}

func (c Context) debug(msg string, obj any) {
	loggerpkg.Debug(c.Verbose, c.Logger, msg, obj)
}

// Registry holds registered tools and handles execution.
type Registry struct {
	registry map[string]tool
	order    []string
	ctx      Context
}

type toolResponse struct {
	OK   bool   `json:"ok"`
	Tool string `json:"tool,omitempty"`
	Data any    `json:"data,omitempty"`
	Err  string `json:"error,omitempty"`
}

// New builds a registry with the built-in tools: web search, Wikipedia and
// calculator. Nil dependencies fall back to the public endpoints.
func New(ctx Context) *Registry {
	if ctx.Logger == nil {
		ctx.Logger = loggerpkg.NopLogger{}
	}
	if ctx.Searcher == nil {
		ctx.Searcher = search.NewDuckDuckGo()
	}
	if ctx.Encyclopedia == nil {
		ctx.Encyclopedia = search.NewWikipedia()
	}
	if ctx.SearchResults <= 0 {
		ctx.SearchResults = 5
	}
	r := &Registry{
		registry: make(map[string]tool),
		ctx:      ctx,
	}

	r.register(&searchTool{ctx: ctx})
	r.register(&wikipediaTool{ctx: ctx})
	r.register(&calculatorTool{ctx: ctx})
	return r
}

func (r *Registry) register(t tool) {
	r.registry[t.name()] = t
	r.order = append(r.order, t.name())
	r.ctx.debug("tool registered", map[string]any{"tool": t.name()})
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// OpenAIDefinitions returns the tools in the OpenAI chat completions format.
func (r *Registry) OpenAIDefinitions() []openai.ChatCompletionToolParam {
	params := make([]openai.ChatCompletionToolParam, 0, len(r.order))
	for _, name := range r.order {
		t := r.registry[name]
		params = append(params, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.name(),
				Description: openai.String(t.description()),
				Parameters:  openai.FunctionParameters(t.schema()),
			},
		})
	}
	return params
}

// AnthropicDefinitions returns the tools in the Anthropic messages format.
func (r *Registry) AnthropicDefinitions() []anthropic.ToolUnionParam {
	params := make([]anthropic.ToolUnionParam, 0, len(r.order))
	for _, name := range r.order {
		t := r.registry[name]
		s := t.schema()
		required, _ := s["required"].([]string)
		params = append(params, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.name(),
				Description: anthropic.String(t.description()),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: s["properties"],
					Required:   required,
				},
			},
		})
	}
	return params
}

// Execute runs the named tool with JSON arguments and returns a JSON envelope
// for the model. Tool failures are reported inside the envelope; the returned
// error is reserved for cancellation and envelope encoding.
func (r *Registry) Execute(ctx context.Context, name, argText string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	t, ok := r.registry[name]
	if !ok {
		loggerpkg.Warn(r.ctx.Logger, "model requested unknown tool", map[string]any{"tool": name})
		return marshalToolResponse(name, nil, fmt.Errorf("%w: %s", ErrUnknownTool, name))
	}
	r.ctx.debug("tool call", map[string]any{"tool": name, "arguments": argText})
	return t.execute(ctx, argText)
}

func marshalToolResponse(toolName string, data any, err error) (string, error) {
	resp := toolResponse{
		OK:   err == nil,
		Tool: toolName,
		Data: data,
	}
	if err != nil {
		resp.Err = err.Error()
	}
	payload, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		return "", marshalErr
	}
	return string(payload), nil
}

func decodeArgs(argText string, v any) error {
	if argText == "" {
		argText = "{}"
	}
	if err := json.Unmarshal([]byte(argText), v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
