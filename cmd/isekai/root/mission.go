package root

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Reiker1894/isekai-system/internal/engine"
	"github.com/Reiker1894/isekai-system/internal/storage"
	"github.com/Reiker1894/isekai-system/internal/ui"
)

var missionTypes = []engine.MissionType{engine.MissionDaily, engine.MissionWeekly, engine.MissionSide, engine.MissionMain}

func newMissionCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mission",
		Aliases: []string{"m"},
		Short:   "Create, complete and expire missions",
	}
	cmd.AddCommand(
		newMissionGenCmd(opts, "gen-daily", "Generate today's missions", (*engine.Service).GenerateDailyMissions),
		newMissionGenCmd(opts, "gen-weekly", "Generate this week's missions", (*engine.Service).GenerateWeeklyMissions),
		newMissionAddCmd(opts),
		newMissionDoneCmd(opts),
		newMissionExpireCmd(opts),
		newMissionCleanupCmd(opts),
		newMissionListCmd(opts),
	)
	return cmd
}

func newMissionGenCmd(opts *options, use, short string, gen func(*engine.Service) ([]storage.Mission, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				created, err := gen(s.svc)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconQuest, fmt.Sprintf("%d missions generated", len(created))))
				for _, m := range created {
					printMission(out, -1, m)
				}
				return nil
			})
		},
	}
}

func newMissionAddCmd(opts *options) *cobra.Command {
	var typ string
	var diff int
	var days int
	var desc string
	var domain string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a mission",
		Args:  exactArgs(1, "title is"),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := engine.ParseMissionType(typ)
			if !ok {
				return fmt.Errorf("unknown mission type %q (daily|weekly|side|main)", typ)
			}
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				m, err := s.svc.CreateMission(engine.CreateMissionInput{
					Title:          args[0],
					Description:    desc,
					Type:           t,
					BaseDifficulty: diff,
					Deadline:       time.Duration(days) * 24 * time.Hour,
					Domain:         domain,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconPlus, "Mission added"))
				printMission(out, len(s.svc.Missions(t))-1, m)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", string(engine.MissionSide), "Mission type (daily|weekly|side|main)")
	cmd.Flags().IntVarP(&diff, "diff", "d", 1, "Base difficulty (1-5)")
	cmd.Flags().IntVar(&days, "days", 1, "Days until the deadline")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&domain, "domain", "", "Domain credited on completion")
	return cmd
}

func newMissionDoneCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "done <type> <index>",
		Short: "Complete a pending mission",
		Args:  exactArgs(2, "type and index are"),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := engine.ParseMissionType(args[0])
			if !ok {
				return fmt.Errorf("unknown mission type %q", args[0])
			}
			idx, err := intArg(args, 1, "index")
			if err != nil {
				return err
			}
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				res, err := s.svc.CompleteMission(ctx, t, idx)
				if err != nil {
					return err
				}
				printCompletion(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}
}

func printCompletion(out io.Writer, res engine.CompleteResult) {
	fmt.Fprintln(out, ui.Heading(ui.IconDone, "Mission completed: "+res.Mission.Title))
	fmt.Fprintf(out, "- %s +%d %s\n", ui.Key.Render("EXP:"), res.Mission.RewardExp, ui.Muted.Render(fmt.Sprintf("(%d/%d)", res.Level.Exp, res.Level.ExpToNext)))
	fmt.Fprintf(out, "- %s +%d %s\n", ui.Key.Render(ui.IconDark+" Dark Points:"), res.Mission.RewardDark, ui.Muted.Render(fmt.Sprintf("(balance %d)", res.DarkPoints)))
	if res.Level.LevelUp() {
		fmt.Fprintf(out, "- %s level %d → %d\n", ui.BadgeLevelUp, res.Level.LevelBefore, res.Level.LevelAfter)
	}
	if res.Domain != nil {
		printDomainResult(out, *res.Domain)
	}
}

func newMissionExpireCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "expire",
		Short: "Fail pending missions past their deadline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				failed, err := s.svc.FailExpiredMissions(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(failed) == 0 {
					fmt.Fprintln(out, ui.Good.Render(ui.IconInfo+" No expired missions."))
					return nil
				}
				fmt.Fprintln(out, ui.Heading(ui.IconFailed, fmt.Sprintf("%d missions failed", len(failed))))
				for _, m := range failed {
					printMission(out, -1, m)
				}
				fmt.Fprintln(out, ui.Warn.Render(ui.IconDebuff+" Frustración por Misiones Incompletas (24h)"))
				return nil
			})
		},
	}
}

func newMissionCleanupCmd(opts *options) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Drop missions older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				retention := s.cfg.MissionRetention()
				if days > 0 {
					retention = time.Duration(days) * 24 * time.Hour
				}
				n := s.svc.CleanupMissions(retention)
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue(ui.IconLoop+" Missions removed", n))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Retention in days (defaults to ISEKAI_MISSION_RETENTION_DAYS)")
	return cmd
}

func newMissionListCmd(opts *options) *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List missions by type",
		RunE: func(cmd *cobra.Command, args []string) error {
			types := missionTypes
			if typ != "" {
				t, ok := engine.ParseMissionType(typ)
				if !ok {
					return fmt.Errorf("unknown mission type %q", typ)
				}
				types = []engine.MissionType{t}
			}
			return opts.run(cmd, false, func(ctx context.Context, s *session) error {
				out := cmd.OutOrStdout()
				total := 0
				for _, t := range types {
					list := s.svc.Missions(t)
					if len(list) == 0 {
						continue
					}
					total += len(list)
					fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s %s", ui.IconQuest, t)))
					for i, m := range list {
						printMission(out, i, m)
					}
					fmt.Fprintln(out, "")
				}
				if total == 0 {
					fmt.Fprintln(out, ui.Muted.Render("No missions."))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "Only this mission type")
	return cmd
}

func printMission(out io.Writer, index int, m storage.Mission) {
	prefix := "-"
	if index >= 0 {
		prefix = fmt.Sprintf("[%d]", index)
	}
	domain := ""
	if m.Domain != "" {
		domain = " @" + m.Domain
	}
	fmt.Fprintf(out, "%s %s %s%s %s %s\n",
		prefix,
		m.Title,
		ui.StatusText(m.Status),
		domain,
		ui.Muted.Render(fmt.Sprintf("(diff %d, +%d exp, +%d dark)", m.Difficulty, m.RewardExp, m.RewardDark)),
		ui.Muted.Render("due "+m.Deadline.Local().Format("2006-01-02 15:04")),
	)
}
