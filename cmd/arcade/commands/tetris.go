package commands

import (
	"context"

	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/retrogamehub/arcade/ui/termui"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	tetrisCmd.Flags().Int64Var(&seed, "seed", seed, "random seed, 0 picks one from the clock")
}

var tetrisCmd = &cobra.Command{
	Use:   "tetris",
	Short: "plays tetris in the terminal",
	Run: func(c *cobra.Command, args []string) {
		stores := openStores()
		defer stores.Close()
		scores, err := stores.Board(scoreboard.TetrisBoard)
		if err != nil {
			log.WithError(err).Fatal("unable to open scoreboard")
		}

		t := &termui.Tetris{Scores: scores, Seed: seed}
		restore := quietLogs()
		err = t.Run(context.Background())
		restore()
		if err != nil {
			log.WithError(err).Error("tetris failed")
		}
	},
}
