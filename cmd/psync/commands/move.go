package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Retrack a file under a new path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Move(cmd.Context(), args[0], args[1])
		},
	}
}
