package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/psync/internal/core/domain"
	"go.trai.ch/psync/internal/ui/style"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>",
		Short: "Report whether a file is tracked by its project manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, tracked, err := c.app.Check(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !tracked {
				_, _ = fmt.Fprintf(out, "%s %s is not tracked in %s\n", style.Cross, args[0], ref.Name)
				// The result is already on stdout; the sentinel only sets
				// the exit code for scripted callers.
				return domain.ErrItemNotTracked
			}

			_, _ = fmt.Fprintf(out, "%s %s is tracked in %s\n", style.Check, args[0], ref.Name)
			return nil
		},
	}
}
