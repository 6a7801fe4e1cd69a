package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Reiker1894/isekai-system/internal/tui"
)

func newBoardCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The dashboard saves after each completion through commit, so the
			// closing save only persists the pruned effects.
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				return tui.RunBoard(ctx, s.svc, s.save, cmd.OutOrStdout())
			})
		},
	}

	return cmd
}
