package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sheikhrachel/textlife/model"
	"github.com/sheikhrachel/textlife/utils"
)

// recordingRenderer keeps a copy of every displayed grid
type recordingRenderer struct {
	frames []*model.Grid
}

func (r *recordingRenderer) Display(g *model.Grid) {
	r.frames = append(r.frames, g.Clone())
}

func testConfig() utils.Config {
	config := utils.DefaultConfig()
	config.FrameRate = 0
	config.ClearScreen = false
	config.Interactive = false
	return config
}

func gridOf(rows ...string) *model.Grid {
	cells := make([][]bool, len(rows))
	for y, row := range rows {
		for _, c := range row {
			cells[y] = append(cells[y], c == '1')
		}
	}
	return model.MustFromRows(cells)
}

func TestRunStopConditions(t *testing.T) {
	block := []string{"....", ".11.", ".11.", "...."}
	blinker := []string{".....", "..1..", "..1..", "..1..", "....."}

	tests := []struct {
		name       string
		configure  func(c *utils.Config)
		board      *model.Grid
		wantGens   int
		wantReason string
		wantFrames int
	}{
		{
			name:       "empty board",
			board:      model.NewGrid(0, 0),
			wantReason: reasonEmptyBoard,
			wantFrames: 1,
		},
		{
			name:       "single cell dies out",
			board:      gridOf("...", ".1.", "..."),
			wantGens:   1,
			wantReason: reasonExtinction,
			wantFrames: 2,
		},
		{
			name: "block is stable",
			configure: func(c *utils.Config) {
				c.StopWhenStable = true
				c.StagnationThreshold = 2
			},
			board:      gridOf(block...),
			wantGens:   2,
			wantReason: reasonStable,
			wantFrames: 3,
		},
		{
			name:       "generation limit",
			configure:  func(c *utils.Config) { c.MaxGenerations = 3 },
			board:      gridOf(blinker...),
			wantGens:   3,
			wantReason: reasonMaxGens,
			wantFrames: 4,
		},
		{
			name: "generation limit parallel",
			configure: func(c *utils.Config) {
				c.MaxGenerations = 3
				c.UseParallel = true
			},
			board:      gridOf(blinker...),
			wantGens:   3,
			wantReason: reasonMaxGens,
			wantFrames: 4,
		},
		{
			name: "generation limit bounded",
			configure: func(c *utils.Config) {
				c.MaxGenerations = 3
				c.UseBoundedGrid = true
			},
			board:      gridOf(blinker...),
			wantGens:   3,
			wantReason: reasonMaxGens,
			wantFrames: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig()
			if tt.configure != nil {
				tt.configure(&config)
			}
			renderer := &recordingRenderer{}
			var out bytes.Buffer

			initial := tt.board.Clone()
			result := newGame(config, renderer, &out).run(context.Background(), tt.board)

			if result.Generations != tt.wantGens || result.Reason != tt.wantReason {
				t.Errorf("run = %d generations (%s), want %d (%s)",
					result.Generations, result.Reason, tt.wantGens, tt.wantReason)
			}
			if len(renderer.frames) != tt.wantFrames {
				t.Fatalf("displayed %d frames, want %d", len(renderer.frames), tt.wantFrames)
			}
			if !renderer.frames[0].Equal(initial) {
				t.Error("first frame should be the initial board")
			}
			want := initial
			for i := 1; i < len(renderer.frames); i++ {
				want = want.NextGeneration()
				if !renderer.frames[i].Equal(want) {
					t.Errorf("frame %d differs from generation %d", i, i)
				}
			}
			if !result.Final.Equal(want) {
				t.Error("final grid differs from the last displayed generation")
			}
		})
	}
}

func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	config := testConfig()
	config.FrameRate = time.Hour
	result := newGame(config, &recordingRenderer{}, &bytes.Buffer{}).run(ctx, gridOf("11", "11"))
	if result.Reason != reasonInterrupted || result.Generations != 0 {
		t.Errorf("run = %d generations (%s), want 0 (%s)", result.Generations, result.Reason, reasonInterrupted)
	}
}

func TestRunWaitsForEnter(t *testing.T) {
	config := testConfig()
	config.MaxGenerations = 1
	var out bytes.Buffer
	g := newGame(config, &recordingRenderer{}, &out)
	g.in = strings.NewReader("\n")

	g.run(context.Background(), gridOf("11", "11"))
	if !strings.Contains(out.String(), "Press enter to start") {
		t.Errorf("output %q should prompt before starting", out.String())
	}
}

func TestRunPrintsTerminalFrames(t *testing.T) {
	config := testConfig()
	config.MaxGenerations = 1
	var out bytes.Buffer
	renderer := &model.TerminalRenderer{Out: &out, Glyphs: model.Glyphs{Alive: "1", Dead: "-", Separator: " "}}

	newGame(config, renderer, &out).run(context.Background(), gridOf("11.", "1..", "..."))

	want := "Initial board (3 rows, 3 columns):\n1 1 - \n1 - - \n- - - \n"
	if !strings.HasPrefix(out.String(), want) {
		t.Errorf("output starts %q, want %q", out.String(), want)
	}
	if !strings.Contains(out.String(), "1 1 - \n1 1 - \n- - - \n") {
		t.Errorf("output %q should contain the next generation", out.String())
	}
}

func TestApplyFlags(t *testing.T) {
	config := utils.DefaultConfig()
	applyFlags(&config, "", "arg.txt", -1, -1)
	if config.BoardFile != "arg.txt" {
		t.Errorf("positional board: BoardFile = %q", config.BoardFile)
	}

	applyFlags(&config, "flag.txt", "arg.txt", 7, 10*time.Millisecond)
	if config.BoardFile != "flag.txt" || config.MaxGenerations != 7 || config.FrameRate != 10*time.Millisecond {
		t.Errorf("config = %+v", config)
	}
}
