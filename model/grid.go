package model

import (
	"crypto/md5"
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/textlife/rules"
)

// ErrRaggedRows is returned when rows passed to FromRows differ in length
var ErrRaggedRows = errors.New("rows have different lengths")

// Grid is a rectangular board of cells, indexed by (row, col)
type Grid struct {
	width  int
	height int
	cells  [][]bool
}

// NewGrid creates an all-dead grid with the specified dimensions
func NewGrid(width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	if height == 0 {
		width = 0
	}
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// FromRows builds a grid from a copy of rows. Every row must have the same length.
func FromRows(rows [][]bool) (*Grid, error) {
	if len(rows) == 0 {
		return NewGrid(0, 0), nil
	}
	width := len(rows[0])
	g := NewGrid(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, errors.Wrapf(ErrRaggedRows, "[FromRows] row %d has %d cells, want %d", y, len(row), width)
		}
		copy(g.cells[y], row)
	}
	return g, nil
}

// MustFromRows is FromRows for literals known to be rectangular
func MustFromRows(rows [][]bool) *Grid {
	g, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// IsEmpty reports whether the grid has no rows
func (g *Grid) IsEmpty() bool {
	return g.height == 0
}

// Reset resets the grid to new dimensions, all cells dead
func (g *Grid) Reset(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if height == 0 {
		width = 0
	}
	g.width = width
	g.height = height

	if len(g.cells) != height {
		g.cells = make([][]bool, height)
	}
	for i := range g.cells {
		if len(g.cells[i]) != width {
			g.cells[i] = make([]bool, width)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear kills all cells
func (g *Grid) Clear() {
	for y := range g.height {
		clear(g.cells[y])
	}
}

// Set sets a cell to alive (true) or dead (false); out of range is a no-op
func (g *Grid) Set(row, col int, alive bool) {
	if g.inBounds(row, col) {
		g.cells[row][col] = alive
	}
}

// Get returns the state of a cell; out of range cells are dead
func (g *Grid) Get(row, col int) bool {
	if !g.inBounds(row, col) {
		return false
	}
	return g.cells[row][col]
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// Rows returns a deep copy of the cell states
func (g *Grid) Rows() [][]bool {
	rows := make([][]bool, g.height)
	for y := range g.height {
		rows[y] = append([]bool(nil), g.cells[y]...)
	}
	return rows
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	return &Grid{width: g.width, height: g.height, cells: g.Rows()}
}

// Equal reports whether both grids have the same dimensions and cells
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// CountLiveNeighbors counts the living cells among the 8 surrounding (row, col).
// Each offset is bounds-checked on its own and the board does not wrap, so
// (row, col) itself may lie outside the grid.
func (g *Grid) CountLiveNeighbors(row, col int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dy == 0 && dx == 0 {
				continue
			}
			if g.Get(row+dy, col+dx) {
				count++
			}
		}
	}
	return count
}

// NextGeneration returns a new grid holding the next generation.
// All neighbor counts are taken against g, which is left untouched.
func (g *Grid) NextGeneration() *Grid {
	next := NewGrid(g.width, g.height)
	g.stepRows(next, 0, g.height)
	return next
}

// stepRows writes rows [startRow, endRow) of the next generation into next
func (g *Grid) stepRows(next *Grid, startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		for x := range g.width {
			next.cells[y][x] = rules.ApplyConwayRules(g.CountLiveNeighbors(y, x), g.cells[y][x])
		}
	}
}

// NextGenerationParallel calculates the next generation using parallel processing.
// The result is drawn from pool when one is given; it never aliases g.
func (g *Grid) NextGenerationParallel(pool *GridPool) *Grid {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.width, g.height)
	} else {
		next = NewGrid(g.width, g.height)
	}
	if next == g {
		next = NewGrid(g.width, g.height)
	}

	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (g.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.height)
		)
		if startRow >= g.height {
			break
		}

		eg.Go(func() error {
			g.stepRows(next, startRow, endRow)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		fmt.Printf("Error in parallel processing: %v\n", err)
	}

	return next
}

// activeBounds returns the bounding box of living cells; ok is false when none live
func (g *Grid) activeBounds() (minRow, maxRow, minCol, maxCol int, ok bool) {
	for y := range g.height {
		for x := range g.width {
			if !g.cells[y][x] {
				continue
			}
			if !ok {
				minRow, maxRow, minCol, maxCol, ok = y, y, x, x, true
				continue
			}
			minRow = min(minRow, y)
			maxRow = max(maxRow, y)
			minCol = min(minCol, x)
			maxCol = max(maxCol, x)
		}
	}
	return
}

// NextGenerationBounded calculates the next generation only around the living region.
// Cells further than one step from any living cell cannot be born, so the result
// matches NextGeneration.
func (g *Grid) NextGenerationBounded(pool *GridPool) *Grid {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.width, g.height)
	} else {
		next = NewGrid(g.width, g.height)
	}
	if next == g {
		next = NewGrid(g.width, g.height)
	}

	minRow, maxRow, minCol, maxCol, ok := g.activeBounds()
	if !ok {
		return next
	}

	minRow = max(0, minRow-1)
	maxRow = min(g.height-1, maxRow+1)
	minCol = max(0, minCol-1)
	maxCol = min(g.width-1, maxCol+1)

	for y := minRow; y <= maxRow; y++ {
		for x := minCol; x <= maxCol; x++ {
			next.cells[y][x] = rules.ApplyConwayRules(g.CountLiveNeighbors(y, x), g.cells[y][x])
		}
	}
	return next
}

// BoundingBoxSize returns the number of cells in the living region
func (g *Grid) BoundingBoxSize() int {
	minRow, maxRow, minCol, maxCol, ok := g.activeBounds()
	if !ok {
		return 0
	}
	return (maxRow - minRow + 1) * (maxCol - minCol + 1)
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// Hash returns an MD5 digest of the grid's dimensions and cell states
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.width, g.height)
	for y := range g.height {
		for x := range g.width {
			if g.cells[y][x] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
