package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Reiker1894/isekai-system/internal/engine"
	"github.com/Reiker1894/isekai-system/internal/ui"
)

func newHabitCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Track recurring habits and streaks",
	}
	cmd.AddCommand(
		newHabitAddCmd(opts),
		newHabitToggleCmd(opts),
		newHabitListCmd(opts),
		newHabitWeekCmd(opts),
	)
	return cmd
}

func newHabitAddCmd(opts *options) *cobra.Command {
	var weekdays []string
	var effects map[string]int
	var domains map[string]int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Define a habit",
		Args:  exactArgs(1, "name is"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				h, err := s.svc.AddHabit(engine.HabitInput{
					Name:     args[0],
					Weekdays: weekdays,
					Effects:  effects,
					Domains:  domains,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconPlus, "Habit added: "+h.Name))
				fmt.Fprintln(out, ui.LabelValue("ID", h.ID))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&weekdays, "days", nil, "Weekdays it applies to (mon,tue,...); default every day")
	cmd.Flags().StringToIntVar(&effects, "effect", nil, "Effects on completion (energy=-10,clarity=5,...)")
	cmd.Flags().StringToIntVar(&domains, "domain", nil, "Domain exp on completion (academia=30,...)")
	return cmd
}

func newHabitToggleCmd(opts *options) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark or unmark a habit for a day",
		Args:  exactArgs(1, "habit id is"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				day, err := parseDay(date, s.svc.Now())
				if err != nil {
					return err
				}
				res, err := s.svc.ToggleHabit(args[0], day)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !res.Done {
					fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s %s unmarked for %s.", ui.IconLoop, res.Habit.Name, engine.DateKey(day))))
					return nil
				}
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s %s done (streak %d)", ui.IconDone, res.Habit.Name, res.Streak)))
				if res.Bonus > 0 {
					fmt.Fprintln(out, ui.Gold.Render(fmt.Sprintf("%s Streak bonus +%d Dark Points", ui.IconDark, res.Bonus)))
				}
				for _, d := range res.Domains {
					printDomainResult(out, d)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day as YYYY-MM-DD (default today)")
	return cmd
}

func newHabitListCmd(opts *options) *cobra.Command {
	var date string
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the habits that apply to a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, false, func(ctx context.Context, s *session) error {
				day, err := parseDay(date, s.svc.Now())
				if err != nil {
					return err
				}
				habits := s.svc.HabitsForDay(day)
				if all {
					habits = s.svc.Habits()
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconLoop, "Habits for "+engine.DateKey(day)))
				if len(habits) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("No habits."))
				}
				streaks := s.svc.Document().Habits.Streaks
				for _, h := range habits {
					box := "[ ]"
					if s.svc.HabitDone(h.ID, day) {
						box = "[x]"
					}
					fmt.Fprintf(out, "%s %s %s %s\n", box, h.Name, ui.Muted.Render(h.ID), ui.Muted.Render(fmt.Sprintf("(streak %d)", streaks[h.ID])))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&all, "all", false, "List every habit regardless of weekday")
	return cmd
}

func newHabitWeekCmd(opts *options) *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Completed habits per day for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, false, func(ctx context.Context, s *session) error {
				now := s.svc.Now()
				day, err := parseDay(start, now.AddDate(0, 0, -6))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, d := range s.svc.WeekSummary(day) {
					fmt.Fprintf(out, "%s %s %d\n", ui.Key.Render(d.Date), ui.Meter(d.Completed, max(len(s.svc.Habits()), 1), 10), d.Completed)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "First day as YYYY-MM-DD (default six days ago)")
	return cmd
}

// parseDay reads a YYYY-MM-DD value in the local zone, falling back to def.
func parseDay(value string, def time.Time) (time.Time, error) {
	if value == "" {
		return def, nil
	}
	day, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return day, nil
}
