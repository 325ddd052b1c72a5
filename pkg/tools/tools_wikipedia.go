package tools

import (
	"context"
	"errors"
	"strings"
)

type wikipediaArgs struct {
	Title string `json:"title" jsonschema:"description=Exact title of the Wikipedia article such as ChatGPT"`
}

type wikipediaTool struct {
	ctx Context
}

func (t *wikipediaTool) name() string {
	return "wikipedia"
}

func (t *wikipediaTool) description() string {
	return "Look up the summary (lead paragraph) of an English Wikipedia article by title."
}

func (t *wikipediaTool) schema() map[string]any {
	return schemaFor[wikipediaArgs]()
}

func (t *wikipediaTool) execute(ctx context.Context, argText string) (string, error) {
	var args wikipediaArgs
	if err := decodeArgs(argText, &args); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}
	args.Title = strings.TrimSpace(args.Title)
	if args.Title == "" {
		return marshalToolResponse(t.name(), nil, errors.New("title is required"))
	}

	summary, err := t.ctx.Encyclopedia.Summary(ctx, args.Title)
	if err != nil {
		t.ctx.debug("wikipedia lookup failed", map[string]any{"title": args.Title, "error": err.Error()})
		return marshalToolResponse(t.name(), nil, err)
	}
	return marshalToolResponse(t.name(), summary, nil)
}
