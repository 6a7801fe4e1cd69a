package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Reiker1894/isekai-system/internal/ui"
)

func newEventCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Record real events and roll world events",
	}
	cmd.AddCommand(
		newEventRealCmd(opts),
		&cobra.Command{
			Use:   "random",
			Short: "Roll a random world event",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					res := s.svc.RandomWorldEvent()
					out := cmd.OutOrStdout()
					fmt.Fprintln(out, ui.Heading(ui.IconWorld, res.Event.Name))
					fmt.Fprintln(out, res.Event.Description)
					if res.Effect != nil {
						fmt.Fprintf(out, "%s %s %s\n", ui.EffectIcon(res.Effect.Icon, res.Effect.Kind), res.Effect.Name, ui.Muted.Render("(1 day)"))
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List recorded events",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, false, func(ctx context.Context, s *session) error {
					out := cmd.OutOrStdout()
					events := s.svc.Events()
					if len(events) == 0 {
						fmt.Fprintln(out, ui.Muted.Render("No events."))
						return nil
					}
					for i, e := range events {
						label := e.Category
						if label == "" {
							label = e.Name
						}
						fmt.Fprintf(out, "[%d] %s %s %s %s\n", i, ui.Muted.Render(e.Date.Local().Format("2006-01-02")), ui.Key.Render(e.Type), label, e.Description)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete <index>",
			Short: "Delete an event",
			Args:  exactArgs(1, "index is"),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := intArg(args, 0, "index")
				if err != nil {
					return err
				}
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					e, err := s.svc.DeleteEvent(idx)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Deleted: "+e.Description))
					return nil
				})
			},
		},
		newEventPruneCmd(opts),
	)
	return cmd
}

func newEventRealCmd(opts *options) *cobra.Command {
	var intensity int
	cmd := &cobra.Command{
		Use:   "real <category> <description>",
		Short: "Record a real-life event (family|work|finance|emotions|...)",
		Args:  exactArgs(2, "category and description are"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				res, err := s.svc.RegisterRealEvent(args[0], args[1], intensity)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Event recorded: "+res.Event.Category))
				renderEmotions(out, s.svc)
				if res.Attack != nil {
					printAttack(out, *res.Attack)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&intensity, "intensity", "i", 1, "Intensity (1-3)")
	return cmd
}

func newEventPruneCmd(opts *options) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Drop events older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				retention := s.cfg.EventRetention()
				if days > 0 {
					retention = time.Duration(days) * 24 * time.Hour
				}
				n := s.svc.PruneEvents(retention)
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue(ui.IconLoop+" Events removed", n))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Retention in days (defaults to ISEKAI_EVENT_RETENTION_DAYS)")
	return cmd
}
