package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/trainer400/CampoMinato/game"
	"golang.org/x/sync/errgroup"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "campominato",
	Short: "Play Minesweeper in the terminal",
	Long: `campominato is a Minesweeper game played from the terminal.

Run with no arguments to play manually; commands are read from stdin
	l <col> <row>   reveal a cell
	r <col> <row>   flag or unflag a cell
	m <col> <row>   reveal the neighbors of a satisfied number
	reset           start a new game
	q               quit

Use the director flag to make the computer play for you
	campominato --director constraint
`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		gameConfig, err := loadConfig(cmd, configFile)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return play(ctx, gameConfig, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func play(ctx context.Context, gameConfig game.GameConfig, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mailbox := game.NewMailbox()
	geometry, err := gameConfig.Geometry()
	if err != nil {
		return err
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		quit, err := pumpInput(ctx, in, geometry, mailbox, gameConfig.Logger)
		// A director keeps playing after the input ends, until "q" or an interrupt
		if quit || gameConfig.Director == nil {
			cancel()
		}
		return err
	})
	group.Go(func() error {
		return game.Run(ctx, gameConfig, mailbox, &textRenderer{out: out})
	})
	return group.Wait()
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	addFlags(rootCmd)
}

func addFlags(cmd *cobra.Command) {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	cmd.Flags().Bool("help", false, "Help for this command")

	defaults := game.NewGameConfig()
	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "Config file (default ./campominato.yaml)")
	flags.IntP("width", "w", defaults.Width, "Width of game board, in cells")
	flags.IntP("height", "h", defaults.Height, "Height of game board, in cells")
	flags.Float64("cell-size", defaults.CellSize, "Size of a cell, in pixels")
	flags.Float64("mine-probability", defaults.MineProbability, "Chance that a cell is free of mines, in (0, 1)")
	flags.Int64("seed", 0, "Seed for mine placement (default: current time)")
	flags.String("layout", "", "YAML board snapshot with a fixed mine layout")
	flags.VarP(newDirectorValue("none", new(string)), "director", "d", `Make the computer play.
none: play manually
random: click random hidden cells
constraint: play provable moves, guess otherwise`)
	flags.Duration("director-interval", defaults.DirectorInterval, "Time between two director moves")
	flags.String("log-level", logrus.InfoLevel.String(), "Log level (debug, info, warn, error)")
}
