package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Reiker1894/isekai-system/internal/ui"
)

func newEmotionCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emotion",
		Short: "Inspect and set emotional state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, false, func(ctx context.Context, s *session) error {
				renderEmotions(cmd.OutOrStdout(), s.svc)
				return nil
			})
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <dimension> <value>",
			Short: "Set a dimension (0-100)",
			Args:  exactArgs(2, "dimension and value are"),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := intArg(args, 1, "value")
				if err != nil {
					return err
				}
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					got, err := s.svc.SetEmotion(args[0], v)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %d\n", ui.IconMind, ui.Key.Render(args[0]), got)
					return nil
				})
			},
		},
		newMoodCmd(opts),
	)
	return cmd
}

func newMoodCmd(opts *options) *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   "mood <mood>",
		Short: "Set the mood text",
		Args:  exactArgs(1, "mood is"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				s.svc.SetMood(args[0], notes)
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue(ui.IconMind+" mood", args[0]))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}
