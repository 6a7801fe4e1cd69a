package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Reiker1894/isekai-system/internal/engine"
	"github.com/Reiker1894/isekai-system/internal/ui"
)

func newBossCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boss",
		Short: "Fight boss battles",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the boss catalog",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, false, func(ctx context.Context, s *session) error {
					out := cmd.OutOrStdout()
					for _, def := range s.svc.BossCatalog() {
						fmt.Fprintf(out, "%s %s %s\n", ui.Key.Render(def.ID), def.Name, ui.Muted.Render("("+def.Category+")"))
						for i, p := range def.Phases {
							fmt.Fprintf(out, "  %d. %s HP %d %s\n", i+1, p.Name, p.HP, ui.Muted.Render("counter: "+p.CounterMission))
						}
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "start <id>",
			Short: "Start a battle",
			Args:  exactArgs(1, "boss id is"),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					b, err := s.svc.StartBattle(args[0])
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					fmt.Fprintln(out, ui.Heading(ui.IconBoss, "Battle started: "+b.Name))
					fmt.Fprintln(out, ui.LabelValue("HP", b.CurrentHP))
					fmt.Fprintln(out, ui.LabelValue("Expires", b.Expires.Local().Format("2006-01-02")))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "damage <amount>",
			Short: "Deal damage to the active boss",
			Args:  exactArgs(1, "amount is"),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := intArg(args, 0, "amount")
				if err != nil {
					return err
				}
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					res, err := s.svc.ApplyDamage(amount)
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					switch {
					case res.Defeated:
						fmt.Fprintln(out, ui.Gold.Render(fmt.Sprintf("%s %s defeated! +%d exp, Victoria Heroica", ui.IconTrophy, res.Boss.Name, engine.BossVictoryExp)))
						if res.Level.LevelUp() {
							fmt.Fprintf(out, "%s level %d → %d\n", ui.BadgeLevelUp, res.Level.LevelBefore, res.Level.LevelAfter)
						}
					case res.PhaseChanged:
						fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("%s Phase %d/%d begins (HP %d)", ui.IconBoss, res.Boss.Phase, res.Boss.TotalPhases, res.Boss.CurrentHP)))
					default:
						fmt.Fprintln(out, ui.LabelValue("HP left", res.Boss.CurrentHP))
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "attack",
			Short: "Let the boss react to your emotional state",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					res, err := s.svc.BossAttack()
					if err != nil {
						return err
					}
					printAttack(cmd.OutOrStdout(), res)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Clear the boss state",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					if err := s.svc.ResetBoss(); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconLoop+" Boss state cleared."))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the active boss",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, false, func(ctx context.Context, s *session) error {
					return renderBoss(cmd.OutOrStdout(), s.svc)
				})
			},
		},
	)
	return cmd
}

func renderBoss(out io.Writer, svc *engine.Service) error {
	fmt.Fprintln(out, ui.H2.Render(ui.IconBoss+" Boss"))
	b, ok := svc.CurrentBoss()
	if !ok {
		fmt.Fprintln(out, ui.Muted.Render("- none"))
		return nil
	}
	if b.Defeated {
		fmt.Fprintf(out, "- %s %s\n", b.Name, ui.Good.Render("defeated"))
		return nil
	}
	phase, err := svc.CurrentPhase()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "- %s phase %d/%d (%s) HP %s %d/%d\n", b.Name, b.Phase, b.TotalPhases, phase.Name, ui.Meter(b.CurrentHP, phase.HP, 14), b.CurrentHP, phase.HP)
	fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Counter mission:"), phase.CounterMission)
	fmt.Fprintf(out, "- %s %s\n", ui.Key.Render("Expires:"), b.Expires.Local().Format("2006-01-02"))
	return nil
}

func printAttack(out io.Writer, res engine.AttackResult) {
	if !res.Attacked {
		fmt.Fprintln(out, ui.Muted.Render(res.Message))
		return
	}
	fmt.Fprintln(out, ui.Bad.Render(res.Message))
	if res.Effect != nil {
		fmt.Fprintf(out, "%s %s %s\n", ui.IconDebuff, res.Effect.Name, ui.Muted.Render("until "+res.Effect.Expires.Local().Format("2006-01-02 15:04")))
	}
}

func newCurseCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "curse",
		Short: "The witch's kiss",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "check",
			Short: "Roll for an automatic trigger",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					out := cmd.OutOrStdout()
					if !s.svc.CanTrigger() {
						fmt.Fprintln(out, ui.Muted.Render(ui.IconInfo+" The curse is resting (cooldown)."))
						return nil
					}
					chance := s.svc.CurseChance()
					hit, err := s.svc.TryAutoTrigger()
					if err != nil {
						return err
					}
					if !hit {
						fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s The curse passed you by (%d%%).", ui.IconSparkle, chance)))
						return nil
					}
					printCurse(out, s.svc)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "trigger",
			Short: "Trigger the curse now, ignoring the cooldown",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					if _, err := s.svc.ForceTrigger(); err != nil {
						return err
					}
					printCurse(cmd.OutOrStdout(), s.svc)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "dispel",
			Short: "Dispel the curse",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, true, func(ctx context.Context, s *session) error {
					s.svc.Dispel()
					fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSparkle+" The curse is dispelled."))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the curse state",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, false, func(ctx context.Context, s *session) error {
					out := cmd.OutOrStdout()
					c := s.svc.Curse()
					state := ui.Good.Render("dormant")
					if c.Active {
						state = ui.Bad.Render("active")
					}
					fmt.Fprintln(out, ui.Heading(ui.IconCurse, "Beso de la Bruja"))
					fmt.Fprintln(out, ui.LabelValue("State", state))
					fmt.Fprintln(out, ui.LabelValue("Intensity", fmt.Sprintf("%d/%d", c.Intensity, engine.CurseMaxIntensity)))
					fmt.Fprintln(out, ui.LabelValue("Chance", fmt.Sprintf("%d%%", s.svc.CurseChance())))
					fmt.Fprintln(out, ui.LabelValue("Can trigger", s.svc.CanTrigger()))
					if c.LastTrigger != nil {
						fmt.Fprintln(out, ui.LabelValue("Last trigger", c.LastTrigger.Local().Format("2006-01-02 15:04")))
					}
					return nil
				})
			},
		},
	)
	return cmd
}

func printCurse(out io.Writer, svc *engine.Service) {
	c := svc.Curse()
	fmt.Fprintln(out, ui.Bad.Render(fmt.Sprintf("%s Beso de la Bruja (Nivel %d)", ui.IconCurse, c.Intensity)))
	fmt.Fprintln(out, ui.Muted.Render("Tu claridad se nubla..."))
}
