package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Reiker1894/isekai-system/internal/ui"
)

const Version = "0.2.0"

// options are the persistent flags shared by every subcommand.
type options struct {
	dataFile string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "isekai",
		Short:         "Isekai System: your life as an RPG character sheet",
		Long:          "Isekai System tracks missions, habits, emotions, curses and boss battles as a local RPG character sheet.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.dataFile, "data", "", "Document path (overrides ISEKAI_DATA_FILE)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log engine activity to stderr")

	cmd.AddCommand(
		newInitCmd(opts),
		newStatusCmd(opts),
		newBoardCmd(opts),
		newMissionCmd(opts),
		newBossCmd(opts),
		newCurseCmd(opts),
		newEventCmd(opts),
		newDomainCmd(opts),
		newHabitCmd(opts),
		newEffectCmd(opts),
		newRewardCmd(opts),
		newEmotionCmd(opts),
		newRealmCmd(opts),
		newBackupCmd(opts),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
