package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Reiker1894/isekai-system/internal/engine"
	"github.com/Reiker1894/isekai-system/internal/ui"
)

func newBackupCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshots of the whole document",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create [label]",
			Short: "Write a snapshot (dated when no label is given)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, false, func(ctx context.Context, s *session) error {
					b := s.backups()
					var path string
					var err error
					if len(args) == 1 {
						path, err = b.ManualBackup(s.svc.Document(), args[0])
					} else {
						path, _, err = b.AutoBackup(s.svc.Document(), s.svc.Now())
					}
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconBackup+" "+path))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List snapshots",
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, false, func(ctx context.Context, s *session) error {
					names, err := s.backups().List()
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					if len(names) == 0 {
						fmt.Fprintln(out, ui.Muted.Render("No backups in "+s.cfg.BackupDir))
					}
					for _, n := range names {
						fmt.Fprintln(out, "- "+n)
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "restore <name>",
			Short: "Replace the live document with a snapshot",
			Args:  exactArgs(1, "backup name is"),
			RunE: func(cmd *cobra.Command, args []string) error {
				// Restore writes the store itself; the loaded document is discarded.
				return opts.run(cmd, false, func(ctx context.Context, s *session) error {
					doc, err := s.backups().Restore(ctx, s.store, args[0])
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					fmt.Fprintln(out, ui.Good.Render(ui.IconLoop+" Restored "+args[0]))
					fmt.Fprintln(out, ui.LabelValue("Level", doc.Stats.Level))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "chapter <date>",
			Short: "Render a dated snapshot as a story chapter",
			Args:  exactArgs(1, "date is"),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.run(cmd, false, func(ctx context.Context, s *session) error {
					date := strings.TrimSuffix(args[0], ".json")
					doc, err := s.backups().Read(date)
					if err != nil {
						return err
					}
					fmt.Fprint(cmd.OutOrStdout(), engine.RenderChapter(date, doc))
					return nil
				})
			},
		},
	)
	return cmd
}
