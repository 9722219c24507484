package commands

import (
	"github.com/lorabridge/lorabridge/internal/adapters/config"
	"github.com/spf13/cobra"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			watch, _ := cmd.Flags().GetBool("watch")
			if watch && c.store != nil {
				if err := c.store.Watch(ctx, config.Path(), nil); err != nil {
					return err
				}
			}

			return c.app.Serve(ctx)
		},
	}
	cmd.Flags().String("config", "", "Path to the configuration file")
	cmd.Flags().Bool("watch", true, "Reload the configuration file on change")
	return cmd
}
