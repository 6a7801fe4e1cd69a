package root

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Reiker1894/isekai-system/internal/engine"
	"github.com/Reiker1894/isekai-system/internal/ui"
)

func newStatusCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the character sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			// ActiveEffects prunes expired entries, so status saves.
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				out := cmd.OutOrStdout()
				svc := s.svc
				base := svc.BaseStats()
				final := svc.FinalStats()

				fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Character Sheet"))
				fmt.Fprintln(out, ui.LabelValue("Level", base.Level))
				fmt.Fprintln(out, ui.LabelValue("EXP", fmt.Sprintf("%d/%d %s", base.Exp, base.ExpToNextLevel, ui.Meter(base.Exp, base.ExpToNextLevel, 20))))
				fmt.Fprintln(out, ui.LabelValue("Energy", fmt.Sprintf("%d/%d", base.Energy, base.MaxEnergy)))
				fmt.Fprintln(out, ui.LabelValue(ui.IconDark+" Dark Points", svc.DarkPoints()))
				fmt.Fprintln(out, "")

				fmt.Fprintln(out, ui.H2.Render("📊 Attributes"))
				for _, a := range engine.Attributes {
					b := engine.AttributeOf(base, a)
					f := engine.AttributeOf(final, a)
					fmt.Fprintf(out, "- %s %d %s\n", ui.Key.Render(string(a)+":"), f, ui.Muted.Render(fmt.Sprintf("(base %d, %s)", b, ui.Signed(f-b))))
				}
				fmt.Fprintln(out, "")

				renderEmotions(out, svc)
				renderEffects(out, svc)

				if err := renderBoss(out, svc); err != nil {
					return err
				}
				fmt.Fprintln(out, "")

				c := svc.Curse()
				fmt.Fprintln(out, ui.H2.Render(ui.IconCurse+" Curse"))
				if c.Active {
					fmt.Fprintf(out, "- %s intensity %d/%d\n", ui.Bad.Render("active"), c.Intensity, engine.CurseMaxIntensity)
				} else {
					fmt.Fprintln(out, "- "+ui.Good.Render("dormant"))
				}
				fmt.Fprintf(out, "- %s %d%%\n", ui.Key.Render("Trigger chance:"), svc.CurseChance())
				fmt.Fprintln(out, "")

				renderDomains(out, svc)

				checker := engine.NewAchievementChecker(svc.Document())
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, checker.CountEarned(), checker.CountTotal())))
				for _, a := range checker.GetAchievements() {
					if a.Earned {
						fmt.Fprintf(out, "- %s %s %s\n", a.Icon, a.Name, ui.Muted.Render(a.Description))
					}
				}
				return nil
			})
		},
	}
	return cmd
}

func renderEmotions(out io.Writer, svc *engine.Service) {
	e := svc.Emotion()
	fmt.Fprintln(out, ui.H2.Render(ui.IconMind+" Emotions"))
	for _, dim := range e.Dimensions() {
		fmt.Fprintf(out, "- %s %s %d\n", ui.Key.Render(fmt.Sprintf("%-10s", dim)), ui.Meter(e.Get(dim), 100, 20), e.Get(dim))
	}
	if e.Mood != "" {
		fmt.Fprintln(out, "- "+ui.LabelValue("mood", e.Mood))
	}
	if e.Notes != "" {
		fmt.Fprintln(out, "- "+ui.LabelValue("notes", e.Notes))
	}
	fmt.Fprintln(out, "")
}

func renderEffects(out io.Writer, svc *engine.Service) {
	effects := svc.ActiveEffects()
	fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Effects (%d)", ui.IconBolt, len(effects))))
	if len(effects) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("- none"))
	}
	for _, e := range effects {
		keys := make([]string, 0, len(e.Modifiers))
		for k := range e.Modifiers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		mods := ""
		for _, k := range keys {
			mods += fmt.Sprintf(" %s %s", k, ui.Signed(e.Modifiers[k]))
		}
		fmt.Fprintf(out, "- %s %s%s %s\n", ui.EffectIcon(e.Icon, e.Kind), e.Name, mods, ui.Muted.Render("until "+e.Expires.Local().Format("2006-01-02 15:04")))
	}
	fmt.Fprintln(out, "")
}

func renderDomains(out io.Writer, svc *engine.Service) {
	fmt.Fprintln(out, ui.H2.Render(ui.IconWorld+" Domains"))
	ids := svc.DomainIDs()
	if len(ids) == 0 {
		fmt.Fprintln(out, ui.Muted.Render("- none (run `isekai init`)"))
	}
	for _, id := range ids {
		d, err := svc.Domain(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(out, "- %s lvl %d %s %d/%d\n", ui.Key.Render(d.Name), d.Level, ui.Meter(d.Exp, d.ExpToNext, 14), d.Exp, d.ExpToNext)
	}
	fmt.Fprintln(out, "")
}

func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed realms, domains and the reward store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, true, func(ctx context.Context, s *session) error {
				res := s.svc.InitializeWorld()
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconWorld, "World initialized"))
				fmt.Fprintln(out, ui.LabelValue("Realms added", res.Realms))
				fmt.Fprintln(out, ui.LabelValue("Domains added", res.Domains))
				fmt.Fprintln(out, ui.LabelValue("Rewards added", res.Rewards))
				fmt.Fprintln(out, ui.Muted.Render("Data: "+s.cfg.DataFile))
				return nil
			})
		},
	}
}
