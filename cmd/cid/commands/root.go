// Package commands implements the CLI commands for the cid dispatcher.
package commands

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/cid/internal/adapters/config"
	"go.trai.ch/cid/internal/adapters/fs"
	"go.trai.ch/cid/internal/app"
)

// CLI represents the command line interface for cid.
type CLI struct {
	components *app.Components
	rootCmd    *cobra.Command
}

// New creates a new CLI instance around the initialized components.
func New(c *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:           "cid",
		Short:         "Decide whether and how to build on repository updates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultPath, "Path to the repositories file")
	rootCmd.PersistentFlags().StringP("workdir", "w", fs.DefaultRoot, "Workspace root directory")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cli := &CLI{
		components: c,
		rootCmd:    rootCmd,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		workdir, err := cmd.Flags().GetString("workdir")
		if err != nil {
			return err
		}
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		c.Repos.SetPath(configPath)
		c.Workspaces.SetRoot(workdir)
		c.State.SetPath(filepath.Join(workdir, "history.json"))
		if verbose {
			c.Logger.SetVerbose()
		}
		return nil
	}

	rootCmd.AddCommand(cli.newDispatchCmd())
	rootCmd.AddCommand(cli.newWatchCmd())
	rootCmd.AddCommand(cli.newVersionCmd())

	return cli
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
