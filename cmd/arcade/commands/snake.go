package commands

import (
	"context"
	"fmt"

	"github.com/retrogamehub/arcade/game"
	"github.com/retrogamehub/arcade/recording"
	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/retrogamehub/arcade/ui/termui"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	variant   = string(game.VariantClassic)
	seed      int64
	record    = false
	recordDir = recording.DefaultDir()
)

func init() {
	snakeCmd.Flags().StringVarP(&variant, "variant", "v", variant, fmt.Sprintf("snake variant, as one of: %v", game.Variants))
	snakeCmd.Flags().Int64Var(&seed, "seed", seed, "random seed, 0 picks one from the clock")
	snakeCmd.Flags().BoolVarP(&record, "record", "r", record, "record every game for replay")
	snakeCmd.Flags().StringVar(&recordDir, "record-dir", recordDir, "directory recordings are written to")

	guiCmd.Flags().AddFlagSet(snakeCmd.Flags())
}

// boardFor is the scoreboard of a snake variant. Classic keeps the
// original board name so existing scores carry over.
func boardFor(v game.Variant) string {
	if v == game.VariantClassic {
		return scoreboard.SnakeBoard
	}
	return scoreboard.SnakeBoard + "_" + string(v)
}

func selectedVariant() game.Variant {
	v := game.Variant(variant)
	if _, err := game.RulesFor(v); err != nil {
		log.WithError(err).Fatal("invalid variant")
	}
	return v
}

var snakeCmd = &cobra.Command{
	Use:   "snake",
	Short: "plays snake in the terminal",
	Run: func(c *cobra.Command, args []string) {
		v := selectedVariant()
		stores := openStores()
		defer stores.Close()
		scores, err := stores.Board(boardFor(v))
		if err != nil {
			log.WithError(err).Fatal("unable to open scoreboard")
		}

		app := &termui.App{
			KV:      stores.KV(),
			Scores:  scores,
			Variant: v,
			Seed:    seed,
		}
		if record {
			app.RecordDir = recordDir
		}

		restore := quietLogs()
		err = app.Run(context.Background())
		restore()
		if err != nil {
			log.WithError(err).Error("snake failed")
		}
	},
}
