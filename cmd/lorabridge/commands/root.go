// Package commands implements the CLI commands for the lorabridge gateway.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/lorabridge/lorabridge/internal/adapters/config"
	"github.com/lorabridge/lorabridge/internal/build"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for lorabridge.
type CLI struct {
	app     Application
	store   *config.Store
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Serve(ctx context.Context) error
}

// New creates a new CLI instance with the given app.
func New(a Application, store *config.Store) *CLI {
	rootCmd := &cobra.Command{
		Use:           "lorabridge",
		Short:         "Bridge a node editor to a remote lora metadata service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		store:   store,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
