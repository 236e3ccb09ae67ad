package commands

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/retrogamehub/arcade/cmd/arcade/backend"
	"github.com/retrogamehub/arcade/cmd/arcade/commands/server"
	"github.com/retrogamehub/arcade/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "arcade",
	Short:   "arcade plays snake and tetris in the terminal or a window",
	Version: version.Version,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		return setupLogging()
	},
	Run: func(c *cobra.Command, args []string) {
		snakeCmd.Run(c, args)
	},
}

var (
	logFile  = ""
	logLevel = "info"

	backendOpts = backend.Options{Backend: backend.Local}
)

// Execute runs the root command.
func Execute() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&logFile, "log-file", logFile, "write logs to this file instead of stderr")
	flags.StringVar(&logLevel, "log-level", logLevel, "log level, as one of: [debug, info, warn, error]")
	flags.StringVarP(&backendOpts.Backend, "backend", "b", backendOpts.Backend, fmt.Sprintf("scoreboard backend, as one of: %v", backend.Names))
	flags.StringVarP(&backendOpts.Args, "backend-args", "a", backendOpts.Args, "options to pass to the backend being used")
	flags.StringVar(&backendOpts.BoardURL, "board-url", backendOpts.BoardURL, "base url of the remote scoreboards; {board} is replaced by the board name, otherwise the name is appended")
	flags.StringVar(&backendOpts.APIKey, "api-key", backendOpts.APIKey, "access key sent to the remote scoreboard")
	rootCmd.Flags().AddFlagSet(snakeCmd.Flags())

	rootCmd.AddCommand(snakeCmd)
	rootCmd.AddCommand(tetrisCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(server.RootCmd)

	server.Backend = &backendOpts

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// setupLogging keeps logrus off the terminal while a game owns the screen.
func setupLogging() error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if logFile == "" {
		return nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	log.SetFormatter(&log.JSONFormatter{})
	return nil
}

// quietLogs discards logs while a terminal frontend owns the screen, unless
// they already go to a file. The returned func restores the output.
func quietLogs() (restore func()) {
	if logFile != "" {
		return func() {}
	}
	out := log.StandardLogger().Out
	log.SetOutput(ioutil.Discard)
	return func() { log.SetOutput(out) }
}

func openStores() *backend.Stores {
	stores, err := backend.Open(backendOpts)
	if err != nil {
		log.WithError(err).WithField("backend", backendOpts.Backend).Fatal("unable to open backend")
	}
	return stores
}
