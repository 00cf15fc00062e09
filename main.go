package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		opts     Options
		logLevel string
	)
	cmd := &cobra.Command{
		Use:           "platformer",
		Short:         "Collect every coin across three levels",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Debug && !cmd.Flags().Changed("log-level") {
				logLevel = "debug"
			}
			if err := common.ConfigureLogging(logLevel); err != nil {
				return err
			}
			if opts.Level < common.FirstLevel || opts.Level > common.FinalLevel {
				return fmt.Errorf("--level must be between %d and %d", common.FirstLevel, common.FinalLevel)
			}
			return run(opts)
		},
	}
	cmd.Flags().IntVar(&opts.Level, "level", common.FirstLevel, "Level to start on")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Show the debug overlay and log at debug level")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Reload prefab specs and scripts from disk when they change")
	cmd.Flags().StringVar(&opts.Records, "records", "", "SQLite file to store finished runs in")
	cmd.Flags().BoolVar(&opts.Mute, "mute", false, "Disable sound effects")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}

func run(opts Options) error {
	game, err := NewGame(opts)
	if err != nil {
		log.Error("start game", "error", err)
		return err
	}
	defer game.Close()

	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle(common.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(game)
}
