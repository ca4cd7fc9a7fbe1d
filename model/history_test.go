package model

import "testing"

func TestHistoryDetectsStillLife(t *testing.T) {
	block := MustFromRows([][]bool{
		{false, false, false, false},
		{false, true, true, false},
		{false, true, true, false},
		{false, false, false, false},
	})
	h := NewHistory(0)
	h.Record(block)
	if !h.Repeats(block.NextGeneration()) {
		t.Error("block should repeat after one generation")
	}
}

func TestHistoryDetectsOscillator(t *testing.T) {
	blinker := NewGrid(5, 5)
	blinker.Set(2, 1, true)
	blinker.Set(2, 2, true)
	blinker.Set(2, 3, true)

	h := NewHistory(3)
	h.Record(blinker)
	next := blinker.NextGeneration()
	if h.Repeats(next) {
		t.Fatal("blinker phase 2 should not match phase 1")
	}
	h.Record(next)
	if !h.Repeats(next.NextGeneration()) {
		t.Error("blinker should return to phase 1")
	}
}

func TestHistoryDropsOldEntries(t *testing.T) {
	h := NewHistory(1)
	first := NewGrid(1, 1)
	second := NewGrid(2, 2)
	h.Record(first)
	h.Record(second)
	if h.Repeats(first) {
		t.Error("entry beyond the history size should be forgotten")
	}
	h.Reset()
	if h.Repeats(second) {
		t.Error("Reset should forget all entries")
	}
}
