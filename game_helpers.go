package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sheikhrachel/textlife/model"
	"github.com/sheikhrachel/textlife/utils"
)

// Reasons the driver loop stops
const (
	reasonEmptyBoard  = "empty board"
	reasonExtinction  = "extinction"
	reasonMaxGens     = "generation limit reached"
	reasonStable      = "board stopped changing"
	reasonInterrupted = "interrupted"
)

type runResult struct {
	Generations int
	Reason      string
	Final       *model.Grid
}

// clearer is implemented by renderers that can wipe the screen between frames
type clearer interface {
	Clear()
}

// game owns pacing and termination; the grid itself only knows how to step
type game struct {
	config   utils.Config
	renderer model.Renderer
	out      io.Writer
	in       io.Reader // nil skips the start prompt
	pool     *model.GridPool
	history  *model.History
	stats    *utils.Stats
}

// newGame sets up the driver state for config
func newGame(config utils.Config, renderer model.Renderer, out io.Writer) *game {
	var pool *model.GridPool
	if config.UseMemoryPool {
		pool = model.NewGridPool()
	}
	return &game{
		config:   config,
		renderer: renderer,
		out:      out,
		pool:     pool,
		history:  model.NewHistory(config.StagnationThreshold),
		stats:    utils.NewStats(),
	}
}

// step calculates the next generation based on configuration
func (g *game) step(grid *model.Grid) *model.Grid {
	switch {
	case g.config.UseBoundedGrid:
		return grid.NextGenerationBounded(g.pool)
	case g.config.UseParallel:
		return grid.NextGenerationParallel(g.pool)
	default:
		return grid.NextGeneration()
	}
}

func (g *game) clearScreen() {
	if !g.config.ClearScreen {
		return
	}
	if c, ok := g.renderer.(clearer); ok {
		c.Clear()
	}
}

// waitForStart blocks until the user presses enter
func (g *game) waitForStart() {
	if g.in == nil {
		return
	}
	fmt.Fprint(g.out, "Press enter to start")
	_, _ = bufio.NewReader(g.in).ReadString('\n')
}

// sleep pauses for the frame delay; it returns false if ctx ended first
func (g *game) sleep(ctx context.Context) bool {
	if g.config.FrameRate <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(g.config.FrameRate)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// displayGameStatus shows the header above each generation
func (g *game) displayGameStatus(generation int, grid *model.Grid, population int) {
	fmt.Fprintf(g.out, "Generation %d | Living: %d | Avg Pop: %.1f | %.1f gen/sec\n",
		generation, population, g.stats.AveragePopulation, g.stats.GenerationsPerSecond)
	if g.config.UseBoundedGrid {
		fmt.Fprintf(g.out, "Bounding box: %d cells\n", grid.BoundingBoxSize())
	}
}

// run drives the simulation from grid until a stop condition is met
func (g *game) run(ctx context.Context, grid *model.Grid) runResult {
	g.clearScreen()
	fmt.Fprintf(g.out, "Initial board (%d rows, %d columns):\n", grid.GetHeight(), grid.GetWidth())
	g.renderer.Display(grid)

	if grid.IsEmpty() || grid.GetWidth() == 0 {
		return runResult{Reason: reasonEmptyBoard, Final: grid}
	}
	g.waitForStart()

	var (
		generation    = 0
		stagnantCount = 0
		lastFrameTime = time.Now()
	)
	g.history.Record(grid)

	for {
		if ctx.Err() != nil {
			return runResult{Generations: generation, Reason: reasonInterrupted, Final: grid}
		}
		if g.config.MaxGenerations > 0 && generation >= g.config.MaxGenerations {
			return runResult{Generations: generation, Reason: reasonMaxGens, Final: grid}
		}

		frameStart := time.Now()
		next := g.step(grid)
		generation++

		population := next.CountLivingCells()
		g.stats.Update(generation, population, frameStart.Sub(lastFrameTime))
		lastFrameTime = frameStart

		g.clearScreen()
		g.displayGameStatus(generation, next, population)
		g.renderer.Display(next)

		if g.config.StopWhenStable {
			if g.history.Repeats(next) {
				stagnantCount++
			} else {
				stagnantCount = 0
			}
			g.history.Record(next)
		}

		// Return old grid to pool if using memory pooling
		model.GridToPool(grid, g.pool)
		grid = next

		if population == 0 {
			return runResult{Generations: generation, Reason: reasonExtinction, Final: grid}
		}
		if g.config.StopWhenStable && stagnantCount >= g.config.StagnationThreshold {
			return runResult{Generations: generation, Reason: reasonStable, Final: grid}
		}

		if !g.sleep(ctx) {
			return runResult{Generations: generation, Reason: reasonInterrupted, Final: grid}
		}
	}
}
