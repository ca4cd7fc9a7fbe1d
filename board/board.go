// Package board reads Game of Life boards from their text encoding.
//
// A board is one row per line. By default '.', '0', '-' and '·' mark dead
// cells and '1' marks a living one; every other character is ignored, and
// lines that yield no cells (blank lines, comments without markers) do not
// form a row. Rows of different lengths are rejected with ErrMalformedRow.
package board

import (
	"bufio"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/textlife/model"
)

// ErrMalformedRow is returned when a row's length differs from the first row's
var ErrMalformedRow = errors.New("malformed row")

// Logger receives diagnostics about boards that could not be read
var Logger = log.New(os.Stderr, "board: ", 0)

var (
	defaultDead  = []string{".", "0", "-", "·"}
	defaultAlive = []string{"1"}
)

// SourceUnavailableError reports a board source that could not be opened or read
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return "board source " + e.Path + " unavailable: " + e.Err.Error()
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// decoder turns lines into rows of cells
type decoder struct {
	markers   []string // longest first
	alive     map[string]bool
	separator string
}

func newDecoder(alive, dead []string, separator string) *decoder {
	d := &decoder{alive: make(map[string]bool), separator: separator}
	for _, m := range dead {
		if m != "" {
			d.markers = append(d.markers, m)
		}
	}
	for _, m := range alive {
		if m != "" {
			d.markers = append(d.markers, m)
			d.alive[m] = true
		}
	}
	sort.SliceStable(d.markers, func(i, j int) bool {
		return len(d.markers[i]) > len(d.markers[j])
	})
	return d
}

func (d *decoder) row(line string) []bool {
	var row []bool
	for len(line) > 0 {
		marker, ok := d.match(line)
		if !ok {
			_, size := utf8.DecodeRuneInString(line)
			line = line[size:]
			continue
		}
		row = append(row, d.alive[marker])
		line = line[len(marker):]
		if d.separator != "" {
			line = strings.TrimPrefix(line, d.separator)
		}
	}
	return row
}

func (d *decoder) match(s string) (string, bool) {
	for _, m := range d.markers {
		if strings.HasPrefix(s, m) {
			return m, true
		}
	}
	return "", false
}

func (d *decoder) decode(r io.Reader) (*model.Grid, error) {
	var (
		rows    [][]bool
		lineNo  int
		scanner = bufio.NewScanner(r)
	)
	for scanner.Scan() {
		lineNo++
		row := d.row(scanner.Text())
		if len(row) == 0 {
			continue
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, errors.Wrapf(ErrMalformedRow, "line %d has %d cells, want %d", lineNo, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return model.FromRows(rows)
}

// Parse reads a board using the default markers
func Parse(r io.Reader) (*model.Grid, error) {
	return newDecoder(defaultAlive, defaultDead, "").decode(r)
}

// ParseString is Parse for an in-memory board
func ParseString(s string) (*model.Grid, error) {
	return Parse(strings.NewReader(s))
}

// ParseWith reads a board written by model.Format with the same glyphs.
// Empty glyphs fall back to the default markers for that state.
func ParseWith(r io.Reader, glyphs model.Glyphs) (*model.Grid, error) {
	alive, dead := defaultAlive, defaultDead
	if glyphs.Alive != "" {
		alive = []string{glyphs.Alive}
	}
	if glyphs.Dead != "" {
		dead = []string{glyphs.Dead}
	}
	return newDecoder(alive, dead, glyphs.Separator).decode(r)
}

// Read opens path and parses it. Open and read failures come back as
// *SourceUnavailableError.
func Read(path string) (*model.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		if errors.Is(err, ErrMalformedRow) {
			return nil, errors.Wrapf(err, "[Read] %s", path)
		}
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	return g, nil
}

// Load reads the board at path. A source that cannot be opened or read is
// logged and replaced by an empty grid; only malformed rows are returned as errors.
func Load(path string) (*model.Grid, error) {
	g, err := Read(path)
	var ue *SourceUnavailableError
	if errors.As(err, &ue) {
		Logger.Printf("could not read board %q, starting empty: %v", path, ue.Err)
		return model.NewGrid(0, 0), nil
	}
	return g, err
}
