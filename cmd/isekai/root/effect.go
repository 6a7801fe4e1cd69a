package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Reiker1894/isekai-system/internal/engine"
	"github.com/Reiker1894/isekai-system/internal/ui"
)

func newEffectCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "effect",
		Short: "Time-bound buffs and debuffs",
	}
	cmd.AddCommand(newEffectAddCmd(opts), &cobra.Command{
		Use:   "list",
		Short: "List active effects",
		RunE: func(cmd *cobra.Command, args []string) error {
			// listing prunes expired effects
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				renderEffects(cmd.OutOrStdout(), s.svc)
				return nil
			})
		},
	})
	return cmd
}

func newEffectAddCmd(opts *options) *cobra.Command {
	var kind string
	var hours int
	var mods map[string]int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a buff or debuff",
		Args:  exactArgs(1, "name is"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				e, err := s.svc.AddEffect(engine.EffectInput{
					Name:      args[0],
					Kind:      kind,
					Duration:  time.Duration(hours) * time.Hour,
					Modifiers: mods,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.EffectIcon(e.Icon, e.Kind), e.Name, ui.Muted.Render("until "+e.Expires.Local().Format("2006-01-02 15:04")))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "buff|debuff (default from the modifier sign)")
	cmd.Flags().IntVar(&hours, "hours", 24, "Duration in hours")
	cmd.Flags().StringToIntVarP(&mods, "mod", "m", nil, "Attribute modifiers (wisdom=2,charisma=-1)")
	return cmd
}
