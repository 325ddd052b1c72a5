package main

import "strings"

const (
	wikiDemoQuestion = "can you give me a summary of the first paragraph for the wikipedia entry for ChatGPT"
	leoDemoQuestion  = "Who is Leonardo DiCaprio's girlfriend and what is her current age raised to the 0.43 power?"
)

// commandKind tags a parsed input line.
type commandKind int

const (
	commandEmpty commandKind = iota
	commandQuit
	commandWikiDemo
	commandLeoDemo
	commandFreeText
)

// command is one input line after special-command recognition. text holds the
// question to forward for the demo and free-text kinds.
type command struct {
	kind commandKind
	text string
}

// parseCommand classifies a raw input line. Special commands match
// case-insensitively; free text is forwarded trimmed but otherwise verbatim.
func parseCommand(line string) command {
	input := strings.TrimSpace(line)
	switch strings.ToLower(input) {
	case "":
		return command{kind: commandEmpty}
	case ":quit", ":exit", "quit", "exit":
		return command{kind: commandQuit}
	case ":wiki":
		return command{kind: commandWikiDemo, text: wikiDemoQuestion}
	case ":leo":
		return command{kind: commandLeoDemo, text: leoDemoQuestion}
	default:
		return command{kind: commandFreeText, text: input}
	}
}

func (c command) isDemo() bool {
	return c.kind == commandWikiDemo || c.kind == commandLeoDemo
}
