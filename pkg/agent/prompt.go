package agent

import (
	"fmt"
	"strings"
	"time"
)

// BuildSystemPrompt returns the assistant instructions for a session started at now.
func BuildSystemPrompt(now time.Time, toolNames []string) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant chatting with a user in a terminal.\n")
	b.WriteString("Answer conversationally and keep answers short enough to read in a console.\n")
	if len(toolNames) > 0 {
		fmt.Fprintf(&b, "You can call these tools: %s.\n", strings.Join(toolNames, ", "))
		b.WriteString("Use search for current events or facts you are unsure about, ")
		b.WriteString("wikipedia when the user asks about an encyclopedia article, ")
		b.WriteString("and calculator for any arithmetic instead of computing it yourself.\n")
		b.WriteString("Decide from the conversation whether a tool is needed; do not call tools for small talk.\n")
	}
	fmt.Fprintf(&b, "Today's date is %s.\n", now.Format("2006-01-02"))
	return b.String()
}
