package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

const (
	unixClearCmd    = "clear"
	windowsClearCmd = "cls"
)

// Glyphs configures how cells are written out as text
type Glyphs struct {
	Alive     string `json:"alive" yaml:"alive"`
	Dead      string `json:"dead" yaml:"dead"`
	Separator string `json:"separator" yaml:"separator"`
}

// DefaultGlyphs writes boards the way they are usually stored on disk
var DefaultGlyphs = Glyphs{Alive: "1", Dead: "0"}

// BlockGlyphs draws living cells as solid blocks
var BlockGlyphs = Glyphs{Alive: "██", Dead: "  "}

// Format returns one line per row. Each cell glyph is followed by the separator.
func Format(g *Grid, glyphs Glyphs) []string {
	lines := make([]string, 0, g.height)
	var sb strings.Builder
	for y := range g.height {
		sb.Reset()
		for x := range g.width {
			if g.cells[y][x] {
				sb.WriteString(glyphs.Alive)
			} else {
				sb.WriteString(glyphs.Dead)
			}
			sb.WriteString(glyphs.Separator)
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// Renderer displays a grid somewhere
type Renderer interface {
	Display(g *Grid)
}

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct {
	Out    io.Writer
	Glyphs Glyphs
}

// NewTerminalRenderer renders to stdout with the given glyphs
func NewTerminalRenderer(glyphs Glyphs) *TerminalRenderer {
	return &TerminalRenderer{Out: os.Stdout, Glyphs: glyphs}
}

// Display renders the grid to the terminal
func (r *TerminalRenderer) Display(g *Grid) {
	for _, line := range Format(g, r.Glyphs) {
		fmt.Fprintln(r.Out, line)
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/c", windowsClearCmd)
	} else {
		cmd = exec.Command(unixClearCmd)
	}
	cmd.Stdout = r.Out
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.Out, "Error clearing terminal:", err)
	}
}
