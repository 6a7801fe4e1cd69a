package root

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Reiker1894/isekai-system/internal/engine"
	"github.com/Reiker1894/isekai-system/internal/ui"
)

func newDomainCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain",
		Short: "Domain progression and weekly objectives",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List domains, milestones and discovered zones",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, false, func(ctx context.Context, s *session) error {
					out := cmd.OutOrStdout()
					renderDomains(out, s.svc)
					for _, id := range s.svc.DomainIDs() {
						d, err := s.svc.Domain(id)
						if err != nil {
							return err
						}
						if len(d.Milestones) == 0 {
							continue
						}
						levels := make([]string, 0, len(d.Milestones))
						for lvl := range d.Milestones {
							levels = append(levels, lvl)
						}
						sort.Strings(levels)
						fmt.Fprintln(out, ui.H2.Render(d.Name))
						for _, lvl := range levels {
							mark := "🔒"
							for _, u := range d.Unlocked {
								if u == lvl {
									mark = "🔓"
									break
								}
							}
							fmt.Fprintf(out, "  %s lvl %s: %s\n", mark, lvl, d.Milestones[lvl])
						}
					}
					zones := s.svc.ZoneMap().DiscoveredZones
					if len(zones) > 0 {
						fmt.Fprintln(out, "")
						fmt.Fprintln(out, ui.LabelValue(ui.IconQuest+" Zones", strings.Join(zones, ", ")))
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "xp <domain> <amount>",
			Short: "Grant domain experience",
			Args:  exactArgs(2, "domain and amount are"),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := intArg(args, 1, "amount")
				if err != nil {
					return err
				}
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					res, err := s.svc.AddDomainExperience(args[0], amount)
					if err != nil {
						return err
					}
					d, err := s.svc.Domain(args[0])
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					fmt.Fprintf(out, "%s +%d exp → lvl %d (%d/%d)\n", ui.Key.Render(d.Name), amount, d.Level, d.Exp, d.ExpToNext)
					printDomainResult(out, res)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "objectives",
			Short: "Generate this week's objectives",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					s.svc.GenerateWeeklyObjectives()
					out := cmd.OutOrStdout()
					fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Weekly objectives"))
					for _, id := range s.svc.DomainIDs() {
						d, err := s.svc.Domain(id)
						if err != nil {
							return err
						}
						if len(d.WeeklyObjectives) == 0 {
							continue
						}
						fmt.Fprintln(out, ui.H2.Render(d.Name+" ("+id+")"))
						for i, o := range d.WeeklyObjectives {
							box := "[ ]"
							if o.Completed {
								box = "[x]"
							}
							fmt.Fprintf(out, "  %d %s %s\n", i, box, o.Task)
						}
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "objective-done <domain> <index>",
			Short: "Complete a weekly objective",
			Args:  exactArgs(2, "domain and index are"),
			RunE: func(cmd *cobra.Command, args []string) error {
				idx, err := intArg(args, 1, "index")
				if err != nil {
					return err
				}
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					res, err := s.svc.CompleteWeeklyObjective(args[0], idx)
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s %s (+%d exp)", ui.IconDone, res.Objective.Task, engine.WeeklyObjectiveExp)))
					printDomainResult(out, res.Domain)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear-objectives",
			Short: "Reset every domain's weekly objectives",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					s.svc.ClearWeeklyObjectives()
					fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconLoop+" Weekly objectives cleared."))
					return nil
				})
			},
		},
	)
	return cmd
}

func printDomainResult(out io.Writer, res engine.DomainResult) {
	if res.LeveledUp() {
		fmt.Fprintf(out, "- %s %s reached level %d\n", ui.BadgeLevelUp, res.Domain, res.NewLevel)
	}
	for _, m := range res.Unlocked {
		fmt.Fprintf(out, "- %s %s\n", ui.Gold.Render("🔓 Milestone:"), m)
	}
}

func newRealmCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "realm",
		Short: "Inspect and update realms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, false, func(ctx context.Context, s *session) error {
				out := cmd.OutOrStdout()
				names := s.svc.RealmNames()
				if len(names) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("No realms (run `isekai init`)."))
				}
				for _, name := range names {
					r, err := s.svc.Realm(name)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s progress %d%% reputation %d difficulty %d\n", ui.Key.Render(fmt.Sprintf("%-10s", name)), r.Progress, r.Reputation, r.Difficulty)
				}
				return nil
			})
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "update <name> <progress> <reputation> <difficulty>",
		Short: "Set a realm's progress, reputation and difficulty",
		Args:  exactArgs(4, "name, progress, reputation and difficulty are"),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals := make([]int, 3)
			for i, field := range []string{"progress", "reputation", "difficulty"} {
				v, err := intArg(args, i+1, field)
				if err != nil {
					return err
				}
				vals[i] = v
			}
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				r, err := s.svc.UpdateRealm(args[0], vals[0], vals[1], vals[2])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s progress %d%% reputation %d difficulty %d\n", ui.IconWorld, ui.Key.Render(args[0]), r.Progress, r.Reputation, r.Difficulty)
				return nil
			})
		},
	})
	return cmd
}
