package commands

import (
	"context"

	"github.com/retrogamehub/arcade/ui/gui"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var mute = false

func init() {
	guiCmd.Flags().BoolVar(&mute, "mute", mute, "disable sounds")
}

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "plays snake in a window",
	Run: func(c *cobra.Command, args []string) {
		v := selectedVariant()
		stores := openStores()
		defer stores.Close()
		scores, err := stores.Board(boardFor(v))
		if err != nil {
			log.WithError(err).Fatal("unable to open scoreboard")
		}

		opts := gui.Options{
			KV:      stores.KV(),
			Scores:  scores,
			Variant: v,
			Seed:    seed,
			Mute:    mute,
		}
		if record {
			opts.RecordDir = recordDir
		}
		if err := gui.New(context.Background(), opts).Run(); err != nil {
			log.WithError(err).Error("gui failed")
		}
	},
}
