package agent

import (
	loggerpkg "github.com/minhyannv/search-chat-go/pkg/logger"
	"github.com/minhyannv/search-chat-go/pkg/tools"
)

// AgentOption configures optional runtime dependencies for AgentLoop.
type AgentOption func(*agentDeps)

type agentDeps struct {
	logger     loggerpkg.Logger
	tools      *tools.Registry
	maxRetries int
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) AgentOption {
	return func(d *agentDeps) {
		d.logger = l
	}
}

// WithTools replaces the default tool registry.
func WithTools(r *tools.Registry) AgentOption {
	return func(d *agentDeps) {
		d.tools = r
	}
}

// WithMaxRetries sets how often the SDK retries a failed model request.
// Negative values keep the SDK default.
func WithMaxRetries(n int) AgentOption {
	return func(d *agentDeps) {
		d.maxRetries = n
	}
}
