package tools

import (
	"context"
	"errors"
	"strings"
)

type searchArgs struct {
	Query string `json:"query" jsonschema:"description=Search query to run against the web"`
}

type searchTool struct {
	ctx Context
}

func (t *searchTool) name() string {
	return "search"
}

func (t *searchTool) description() string {
	return "Useful for when you need to answer questions about current events or search the internet. Returns the top web results with title and url and snippet."
}

func (t *searchTool) schema() map[string]any {
	return schemaFor[searchArgs]()
}

func (t *searchTool) execute(ctx context.Context, argText string) (string, error) {
	var args searchArgs
	if err := decodeArgs(argText, &args); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}
	args.Query = strings.TrimSpace(args.Query)
	if args.Query == "" {
		return marshalToolResponse(t.name(), nil, errors.New("query is required"))
	}

	results, err := t.ctx.Searcher.Search(ctx, args.Query, t.ctx.SearchResults)
	if err != nil {
		t.ctx.debug("search failed", map[string]any{"query": args.Query, "error": err.Error()})
		return marshalToolResponse(t.name(), nil, err)
	}
	t.ctx.debug("search done", map[string]any{"query": args.Query, "results": len(results)})
	if len(results) == 0 {
		return marshalToolResponse(t.name(), map[string]any{"query": args.Query, "results": results, "note": "no results"}, nil)
	}
	return marshalToolResponse(t.name(), map[string]any{"query": args.Query, "results": results}, nil)
}
