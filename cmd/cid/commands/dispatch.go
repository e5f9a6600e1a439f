package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cid/internal/core/domain"
)

func (c *CLI) newDispatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch <repository> <branch> [dep-repository dep-branch]",
		Short: "Handle one repository-update event",
		Long: "Handle one repository-update event. With four arguments the last two name\n" +
			"the repository and branch whose rebuild triggered this event.",
		Args: cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := domain.ParseEvent(args)
			if err != nil {
				return err
			}
			return c.components.App.Dispatch(cmd.Context(), event)
		},
	}
}
