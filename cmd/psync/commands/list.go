package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/psync/internal/app"
	"go.trai.ch/psync/internal/ui/style"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List the items of the nearest project manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "."
			if len(args) > 0 {
				start = args[0]
			}
			untracked, _ := cmd.Flags().GetBool("untracked")

			listing, err := c.app.List(cmd.Context(), start, app.ListOptions{
				Untracked: untracked,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (%d items)\n", listing.Project.Name, len(listing.Items))
			for _, item := range listing.Items {
				_, _ = fmt.Fprintf(out, "  %s %s [%s]\n", style.Dot, item.Include, item.Kind)
			}

			if untracked {
				_, _ = fmt.Fprintf(out, "untracked (%d files)\n", len(listing.Untracked))
				for _, include := range listing.Untracked {
					_, _ = fmt.Fprintf(out, "  %s %s\n", style.Circle, include)
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolP("untracked", "u", false, "Also list mapped files the manifest does not reference")

	return cmd
}
