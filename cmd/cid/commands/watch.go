package commands

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Read events from stdin and dispatch them concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parallelism, err := cmd.Flags().GetInt("parallelism")
			if err != nil {
				return err
			}
			return c.components.App.Watch(cmd.Context(), os.Stdin, parallelism)
		},
	}
	cmd.Flags().IntP("parallelism", "p", runtime.NumCPU(), "Maximum concurrent dispatches")
	return cmd
}
