// Package main is the entry point for the lorabridge gateway.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/lorabridge/lorabridge/cmd/lorabridge/commands"
	"github.com/lorabridge/lorabridge/internal/adapters/config"
	"github.com/lorabridge/lorabridge/internal/app"
	_ "github.com/lorabridge/lorabridge/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. The config path flag must be visible before the component
	// graph is built, since the config store is part of that graph.
	applyConfigFlag(args)

	// 2. Initialize application components
	components, _, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	// 3. Interface - CLI
	cli := commands.New(components.App, components.Config)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	// 4. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}

// applyConfigFlag pre-scans args for --config and exposes it through
// the environment, which is where the config store node looks.
func applyConfigFlag(args []string) {
	for i, arg := range args {
		switch {
		case arg == "--config" && i+1 < len(args):
			_ = os.Setenv(config.EnvConfigPath, args[i+1])
			return
		case strings.HasPrefix(arg, "--config="):
			_ = os.Setenv(config.EnvConfigPath, strings.TrimPrefix(arg, "--config="))
			return
		}
	}
}
