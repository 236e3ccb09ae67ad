package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/retrogamehub/arcade/prefs"
	"github.com/retrogamehub/arcade/recording"
	"github.com/retrogamehub/arcade/ui/termui"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	replayFile = ""
	listOnly   = false
)

func init() {
	replayCmd.Flags().StringVarP(&replayFile, "file", "f", replayFile, "recording to replay")
	replayCmd.Flags().BoolVarP(&listOnly, "list", "l", listOnly, "list the recordings in --record-dir")
	replayCmd.Flags().StringVar(&recordDir, "record-dir", recordDir, "directory recordings are read from")
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "replays a recorded snake game",
	Args: func(c *cobra.Command, args []string) error {
		if len(replayFile) == 0 && !listOnly {
			return errors.New("a recording --file is required")
		}
		return nil
	},
	Run: func(*cobra.Command, []string) {
		if listOnly {
			files, err := recording.List(recordDir)
			if err != nil {
				log.WithError(err).Fatal("unable to list recordings")
			}
			for _, f := range files {
				fmt.Println(f)
			}
			return
		}
		replayGame()
	},
}

func replayGame() {
	stores := openStores()
	defer stores.Close()

	kv := stores.KV()
	colors, err := prefs.Load(context.Background(), kv)
	if err != nil {
		log.WithError(err).Warn("unable to load colors, using defaults")
	}
	theme := prefs.Themes[0]
	if name, err := kv.Get(context.Background(), prefs.ThemeKey); err == nil {
		theme = prefs.ThemeFor(name)
	}

	restore := quietLogs()
	err = termui.Replay(replayFile, colors, theme)
	restore()
	if err != nil {
		log.WithError(err).WithField("file", replayFile).Error("replay failed")
	}
}
