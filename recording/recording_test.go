package recording

import (
	"bufio"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/retrogamehub/arcade/game"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	text   string
	closed bool
}

func (w *mockWriter) WriteString(s string) (int, error) {
	w.text += s
	return len(s), nil
}

func (w *mockWriter) Close() error {
	w.closed = true
	return nil
}

func TestWriteLines(t *testing.T) {
	mw := &mockWriter{}
	w := &Writer{w: mw}
	require.NoError(t, w.WriteInfo(Info{ID: "g1", Variant: game.VariantClassic, Width: 20, Height: 20}))
	require.NoError(t, w.WriteFrame(game.Frame{Turn: 1, Score: 2}))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSuffix(mw.text, "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"id":"g1"`)
	require.Contains(t, lines[1], `"turn":1`)
	require.True(t, mw.closed)
}

func TestCreateWriteRead(t *testing.T) {
	dir, err := ioutil.TempDir("", "arcade-rec")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	s, err := game.New(game.Config{Variant: game.VariantObstacles, Seed: 9})
	require.NoError(t, err)

	w, err := Create(dir, s.ID)
	require.NoError(t, err)
	info := InfoFor(s, "ada")
	require.NoError(t, w.WriteInfo(info))

	var want []game.Frame
	for i := 0; i < 5; i++ {
		f := s.Frame()
		want = append(want, f)
		require.NoError(t, w.WriteFrame(f))
		s.Tick(s.Rules.TickInterval)
	}
	require.NoError(t, w.Close())

	_, err = Create(dir, s.ID)
	require.Error(t, err, "existing recordings are not overwritten")

	archive, err := Read(Path(dir, s.ID))
	require.NoError(t, err)
	require.Equal(t, info.ID, archive.Info.ID)
	require.Equal(t, "ada", archive.Info.Player)
	require.Equal(t, int64(9), archive.Info.Seed)
	require.Equal(t, want, archive.Frames)

	files, err := List(dir)
	require.NoError(t, err)
	require.Equal(t, []string{Path(dir, s.ID)}, files)
}

func TestReadTruncatedLastLine(t *testing.T) {
	text := `{"id":"g1","variant":"classic","width":5,"height":5}
{"turn":0,"score":0}
{"turn":1,"score":1}
{"turn":2,"sco`
	archive, err := readArchive(bufio.NewReader(strings.NewReader(text)))
	require.NoError(t, err)
	require.Len(t, archive.Frames, 2)
	require.Equal(t, 1, archive.Frames[1].Score)
}

func TestReadCorruptMiddleLine(t *testing.T) {
	text := "{\"id\":\"g1\"}\nnot json\n{\"turn\":1}\n"
	_, err := readArchive(bufio.NewReader(strings.NewReader(text)))
	require.Error(t, err)
}

func TestReadMissingHeader(t *testing.T) {
	_, err := readArchive(bufio.NewReader(strings.NewReader("")))
	require.Equal(t, ErrNoHeader, err)

	_, err = readArchive(bufio.NewReader(strings.NewReader("{\"turn\":1}\n")))
	require.Equal(t, ErrNoHeader, err)
}
