package commands

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/retrogamehub/arcade/api"
	"github.com/retrogamehub/arcade/menu"
	"github.com/retrogamehub/arcade/scoreboard"
	"github.com/retrogamehub/arcade/scoreboard/csv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	board      = scoreboard.SnakeBoard
	dump       = false
	exportFile = ""
	importFile = ""
	serverURL  = "http://localhost:3005"
)

func init() {
	scoresCmd.PersistentFlags().StringVar(&board, "board", board, "scoreboard name")
	scoresCmd.Flags().BoolVar(&dump, "dump", dump, "dump the raw entries")
	scoresCmd.Flags().StringVar(&exportFile, "export", exportFile, "write the board to a csv file, - for stdout")
	scoresCmd.Flags().StringVar(&importFile, "import", importFile, "replace the board with a csv file")
	watchCmd.Flags().StringVar(&serverURL, "server-url", serverURL, "address of the arcade server")

	scoresCmd.AddCommand(watchCmd)
}

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "shows, exports or imports a scoreboard",
	Run: func(c *cobra.Command, args []string) {
		stores := openStores()
		defer stores.Close()
		st, err := stores.Board(board)
		if err != nil {
			log.WithError(err).Fatal("unable to open scoreboard")
		}

		ctx, cancel := context.WithTimeout(context.Background(), scoreboard.SaveTimeout)
		defer cancel()

		if importFile != "" {
			list, err := importBoard(ctx, st, importFile)
			if err != nil {
				log.WithError(err).WithField("file", importFile).Fatal("import failed")
			}
			log.WithFields(log.Fields{"board": board, "entries": len(list)}).Info("board imported")
		}

		list, err := st.List(ctx)
		if err != nil {
			log.WithError(err).Fatal("unable to list scores")
		}

		switch {
		case exportFile != "":
			if err := exportBoard(exportFile, list); err != nil {
				log.WithError(err).WithField("file", exportFile).Fatal("export failed")
			}
		case dump:
			spew.Dump(list)
		default:
			printBoard(os.Stdout, list)
		}
	},
}

func importBoard(ctx context.Context, st scoreboard.Store, file string) ([]scoreboard.Entry, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	meta, entries, err := csv.Read(f)
	if err != nil {
		return nil, err
	}
	if meta.Board != "" && meta.Board != board {
		log.WithFields(log.Fields{"from": meta.Board, "to": board}).Warn("importing into a different board")
	}
	return st.Replace(ctx, entries)
}

func exportBoard(file string, list []scoreboard.Entry) error {
	meta := csv.Metadata{Board: board, Exported: time.Now().UTC()}
	if file == "-" {
		return csv.Write(os.Stdout, meta, list)
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := csv.Write(f, meta, list); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printBoard(w io.Writer, list []scoreboard.Entry) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSCORE")
	for _, r := range menu.Rows(list) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Rank, r.Name, r.Score)
	}
	tw.Flush()
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "follows a scoreboard served by the arcade server",
	Run: func(c *cobra.Command, args []string) {
		err := watchBoard(context.Background(), serverURL, board, func(list []scoreboard.Entry) {
			fmt.Printf("--- %s %s\n", board, time.Now().Format(time.Kitchen))
			printBoard(os.Stdout, list)
		})
		if err != nil {
			log.WithError(err).Fatal("watch failed")
		}
	},
}

// liveURL turns the server address into the board's websocket url.
func liveURL(server, board string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http", "":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/scores/" + url.PathEscape(board) + "/live"
	return u.String(), nil
}

// watchBoard calls update with every board pushed by the server until the
// connection closes or ctx is cancelled.
func watchBoard(ctx context.Context, server, board string, update func([]scoreboard.Entry)) error {
	u, err := liveURL(server, board)
	if err != nil {
		return err
	}
	log.WithField("url", u).Info("connecting")
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return errors.Wrap(err, "dial")
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var doc api.Document
		if err := conn.ReadJSON(&doc); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "read")
		}
		update(scoreboard.Normalize(doc.Record))
	}
}
