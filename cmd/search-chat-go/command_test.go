package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		line string
		want command
	}{
		{"", command{kind: commandEmpty}},
		{" \t ", command{kind: commandEmpty}},
		{":quit", command{kind: commandQuit}},
		{"EXIT", command{kind: commandQuit}},
		{":exit", command{kind: commandQuit}},
		{"Quit", command{kind: commandQuit}},
		{":wiki", command{kind: commandWikiDemo, text: wikiDemoQuestion}},
		{":Leo", command{kind: commandLeoDemo, text: leoDemoQuestion}},
		{"  what is Go?  ", command{kind: commandFreeText, text: "what is Go?"}},
		{"quit now", command{kind: commandFreeText, text: "quit now"}},
		{":help", command{kind: commandFreeText, text: ":help"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseCommand(tc.line), "line %q", tc.line)
	}
}

func TestCommandIsDemo(t *testing.T) {
	assert.True(t, parseCommand(":wiki").isDemo())
	assert.True(t, parseCommand(":leo").isDemo())
	assert.False(t, parseCommand("hello").isDemo())
}
