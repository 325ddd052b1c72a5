//go:build unix

package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhyannv/search-chat-go/pkg/memory"
)

// blockingResponder waits for its context to end and reports why.
type blockingResponder struct {
	once    sync.Once
	started chan struct{}
}

func (b *blockingResponder) Respond(ctx context.Context, _ string, _ []memory.Turn) (string, error) {
	b.once.Do(func() { close(b.started) })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(10 * time.Second):
		return "not interrupted", nil
	}
}

func TestREPLInterruptCancelsOnlyTheCurrentCall(t *testing.T) {
	stub := &blockingResponder{started: make(chan struct{})}
	go func() {
		<-stub.started
		time.Sleep(50 * time.Millisecond)
		_ = syscall.Kill(syscall.Getpid(), syscall.SIGINT)
	}()

	sess := newSession(stub)
	var out bytes.Buffer
	err := runREPL(context.Background(), sess, replOptions{HandleInterrupt: true},
		strings.NewReader("slow question\n\n:quit\n"), &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, disclosurePrompt)
	assert.Contains(t, got, "context canceled\n\n")
	assert.NotContains(t, got, "not interrupted")
	assert.True(t, strings.HasSuffix(got, ps1+" Goodbye!\n"))
	assert.Zero(t, sess.history.Len())
}
