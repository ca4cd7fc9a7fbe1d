package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikhrachel/textlife/board"
	"github.com/sheikhrachel/textlife/model"
	"github.com/sheikhrachel/textlife/utils"
)

func main() {
	var (
		configFile  = flag.String("config", "config.yaml", "JSON or YAML configuration file")
		boardFile   = flag.String("board", "", "board file to load (overrides the config)")
		generations = flag.Int("generations", -1, "stop after this many generations, 0 runs until the board empties")
		delay       = flag.Duration("delay", -1, "pause between generations")
	)
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configFile)
	if err != nil {
		if _, statErr := os.Stat(*configFile); statErr == nil {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Using default configuration (%s not found)\n", *configFile)
		config = utils.DefaultConfig()
	}
	applyFlags(&config, *boardFile, flag.Arg(0), *generations, *delay)

	grid, err := board.Load(config.BoardFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	renderer := model.NewTerminalRenderer(config.Glyphs)
	g := newGame(config, renderer, os.Stdout)
	if config.Interactive {
		g.in = os.Stdin
	}

	result := g.run(ctx, grid)
	fmt.Printf("\nStopped after %d generations (%s)\n", result.Generations, result.Reason)
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population, %.1f seconds\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation, g.stats.Elapsed().Seconds())
}

// applyFlags overrides config values with the ones given on the command line
func applyFlags(config *utils.Config, boardFlag, boardArg string, generations int, delay time.Duration) {
	switch {
	case boardFlag != "":
		config.BoardFile = boardFlag
	case boardArg != "":
		config.BoardFile = boardArg
	}
	if generations >= 0 {
		config.MaxGenerations = generations
	}
	if delay >= 0 {
		config.FrameRate = delay
	}
}
