package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Reiker1894/isekai-system/internal/ui"
)

func newRewardCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reward",
		Short: "Spend dark points on real rewards",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the reward store",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, false, func(ctx context.Context, s *session) error {
					out := cmd.OutOrStdout()
					fmt.Fprintln(out, ui.LabelValue(ui.IconDark+" Dark Points", s.svc.DarkPoints()))
					rewards := s.svc.Rewards()
					if len(rewards) == 0 {
						fmt.Fprintln(out, ui.Muted.Render("The store is empty."))
					}
					for _, r := range rewards {
						cost := ui.Muted.Render(fmt.Sprintf("%d", r.Cost))
						if r.Cost <= s.svc.DarkPoints() {
							cost = ui.Good.Render(fmt.Sprintf("%d", r.Cost))
						}
						fmt.Fprintf(out, "- %s %s\n", r.Name, cost)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add <name> <cost>",
			Short: "Add a reward",
			Args:  exactArgs(2, "name and cost are"),
			RunE: func(cmd *cobra.Command, args []string) error {
				cost, err := intArg(args, 1, "cost")
				if err != nil {
					return err
				}
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					r, err := s.svc.AddReward(args[0], cost)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(fmt.Sprintf("%s %s (%d)", ui.IconPlus, r.Name, r.Cost)))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove a reward",
			Args:  exactArgs(1, "name is"),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					if err := s.svc.RemoveReward(args[0]); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Removed "+args[0]+"."))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "buy <name>",
			Short: "Buy a reward",
			Args:  exactArgs(1, "name is"),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					r, err := s.svc.BuyReward(args[0])
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					fmt.Fprintln(out, ui.Gold.Render(fmt.Sprintf("%s %s acquired (-%d)", ui.IconTrophy, r.Name, r.Cost)))
					fmt.Fprintln(out, ui.LabelValue(ui.IconDark+" Dark Points", s.svc.DarkPoints()))
					return nil
				})
			},
		},
	)
	return cmd
}
