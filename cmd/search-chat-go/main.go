// Package main runs an interactive terminal chat with a tool-using model agent.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/minhyannv/search-chat-go/pkg/agent"
	loggerpkg "github.com/minhyannv/search-chat-go/pkg/logger"
)

// main is the program entry point.
func main() {
	_ = godotenv.Load()

	config, err := parseCLIConfig(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var appLogger loggerpkg.Logger = loggerpkg.NopLogger{}
	if config.Verbose {
		appLogger = loggerpkg.NewWriterLogger(os.Stderr)
	}

	app, err := agent.New(config, agent.WithLogger(appLogger))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := runREPL(context.Background(), newSession(app), replOptions{
		Verbose:         config.Verbose,
		Logger:          appLogger,
		HandleInterrupt: true,
	}, os.Stdin, os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
