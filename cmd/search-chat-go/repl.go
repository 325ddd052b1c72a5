package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/minhyannv/search-chat-go/pkg/colorize"
	loggerpkg "github.com/minhyannv/search-chat-go/pkg/logger"
	"github.com/minhyannv/search-chat-go/pkg/memory"
)

const banner = `    +------------------------------------------------------------+
    | You can chat with ChatGPT via your command line here.      |
    | use ` + "`:wiki`" + ` to test the Wikipedia plugin                   |
    | use ` + "`:leo`" + ` to test the Search Engine and Math plugins      |
    | use ` + "`:quit`" + ` to stop                                        |
    +------------------------------------------------------------+`

const disclosurePrompt = "Whoops! We ran into an exception. Would you like me to show it to you?"

// maxLineBytes bounds one input line, well above bufio's 64 KiB default.
const maxLineBytes = 1 << 20

// Responder answers one user input given the prior conversation.
type Responder interface {
	Respond(ctx context.Context, input string, history []memory.Turn) (string, error)
}

// session is the REPL's exclusively owned state: the agent handle and the
// conversation so far.
type session struct {
	responder Responder
	history   *memory.Buffer
}

func newSession(r Responder) *session {
	return &session{responder: r, history: memory.NewBuffer()}
}

// replOptions configures REPL behavior.
type replOptions struct {
	Verbose bool
	Logger  loggerpkg.Logger
	// HandleInterrupt makes SIGINT cancel the in-flight agent call instead of
	// killing the process.
	HandleInterrupt bool
}

type repl struct {
	sess    *session
	opts    replOptions
	scanner *bufio.Scanner
	out     io.Writer
	ps1     string
	logger  loggerpkg.Logger
}

// runREPL prints the menu and serves input lines until a quit command or end
// of input. It returns an error only for I/O or colorizing failures.
func runREPL(ctx context.Context, sess *session, opts replOptions, in io.Reader, out io.Writer) error {
	if sess == nil || sess.responder == nil {
		return fmt.Errorf("agent responder is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = loggerpkg.NopLogger{}
	}

	ps1, err := colorize.Colorize(colorize.Green, "λ")
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	r := &repl{
		sess:    sess,
		opts:    opts,
		scanner: scanner,
		out:     out,
		ps1:     ps1,
		logger:  loggerpkg.With(opts.Logger, map[string]any{"session_id": sess.history.ID()}),
	}
	loggerpkg.Debug(opts.Verbose, r.logger, "repl start", nil)

	printMenu(out)
	for {
		_, _ = fmt.Fprintf(out, "%s ", r.ps1)
		if !r.scanner.Scan() {
			break
		}

		cmd := parseCommand(r.scanner.Text())
		switch cmd.kind {
		case commandEmpty:
			continue
		case commandQuit:
			_, _ = fmt.Fprintln(out, "Goodbye!")
			return nil
		}
		if cmd.isDemo() {
			_, _ = fmt.Fprintf(out, "%s %s\n", r.ps1, cmd.text)
		}

		if err := r.dispatch(ctx, cmd.text); err != nil {
			return err
		}
	}

	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	_, _ = fmt.Fprintln(out, "Goodbye!")
	return nil
}

// dispatch forwards input to the agent and prints the outcome. Agent failures
// are handled here and never end the loop.
func (r *repl) dispatch(ctx context.Context, input string) error {
	callCtx, cancel := r.callContext(ctx)
	history := r.sess.history.Turns()
	loggerpkg.Debug(r.opts.Verbose, r.logger, "dispatch", map[string]any{"history_turns": len(history)})
	output, err := r.sess.responder.Respond(callCtx, input, history)
	cancel()

	if err != nil {
		loggerpkg.Error(r.logger, "agent call failed", map[string]any{"error": err.Error()})
		return r.disclose(err)
	}

	if err := r.sess.history.AppendExchange(input, output); err != nil {
		return err
	}
	colored, err := colorize.Colorize(colorize.Blue, output)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(r.out, colored)
	return nil
}

// disclose asks whether to show err and prints it unless the answer is
// exactly n or N.
func (r *repl) disclose(callErr error) error {
	_, _ = fmt.Fprintln(r.out, disclosurePrompt)
	question, err := colorize.Colorize(colorize.Green, "[Y/n] ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(r.out, question)

	answer := ""
	if r.scanner.Scan() {
		answer = r.scanner.Text()
	}
	if strings.EqualFold(answer, "n") {
		return nil
	}
	_, _ = fmt.Fprintf(r.out, "%v\n\n", callErr)
	return nil
}

func (r *repl) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.HandleInterrupt {
		return signal.NotifyContext(ctx, os.Interrupt)
	}
	return context.WithCancel(ctx)
}

// printMenu prints the startup banner.
func printMenu(out io.Writer) {
	_, _ = fmt.Fprintln(out, banner)
}
