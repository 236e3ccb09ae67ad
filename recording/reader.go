package recording

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/retrogamehub/arcade/game"
	log "github.com/sirupsen/logrus"
)

// ErrNoHeader is returned for files that do not start with a header line.
var ErrNoHeader = errors.New("recording: missing header")

// Archive is a recording read back from disk.
type Archive struct {
	Info   Info
	Frames []game.Frame
}

// Read loads the recording at file.
func Read(file string) (Archive, error) {
	f, err := os.Open(file)
	if err != nil {
		return Archive{}, err
	}
	defer f.Close()
	return readArchive(bufio.NewReader(f))
}

// readArchive reads a header and frames. A broken last line is what an
// interrupted game leaves behind, so it ends the recording rather than
// failing it.
func readArchive(r *bufio.Reader) (Archive, error) {
	var info Info
	more, err := readLine(r, &info)
	if err != nil || info.ID == "" {
		return Archive{}, ErrNoHeader
	}

	frames := []game.Frame{}
	for more {
		var f game.Frame
		var ferr error
		more, ferr = readLine(r, &f)
		if ferr == errEmpty {
			continue
		}
		if ferr != nil {
			if !more {
				log.WithError(ferr).WithField("game", info.ID).Warn("truncated recording")
				break
			}
			return Archive{}, ferr
		}
		frames = append(frames, f)
	}

	return Archive{Info: info, Frames: frames}, nil
}

var errEmpty = errors.New("empty line")

func readLine(r *bufio.Reader, out interface{}) (bool, error) {
	line, err := r.ReadBytes('\n')
	eof := err == io.EOF
	if err != nil && !eof {
		return false, err
	}
	if len(bytes.TrimSpace(line)) == 0 {
		return !eof, errEmpty
	}
	if err := json.Unmarshal(line, out); err != nil {
		return !eof, err
	}
	return !eof, nil
}

// List returns the recording files in dir, newest name last.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), fileExt) {
			files = append(files, path.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
