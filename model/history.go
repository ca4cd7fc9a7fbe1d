package model

// defaultHistorySize covers still lifes and period-2 and period-3 oscillators
const defaultHistorySize = 5

// History remembers hashes of recent generations to spot boards that stopped changing
type History struct {
	size   int
	hashes []string
}

// NewHistory keeps at most size recent generations; size <= 0 uses the default
func NewHistory(size int) *History {
	if size <= 0 {
		size = defaultHistorySize
	}
	return &History{size: size}
}

// Record adds g to the history, dropping the oldest entry when full
func (h *History) Record(g *Grid) {
	h.hashes = append(h.hashes, g.Hash())
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
}

// Repeats reports whether g matches one of the recorded generations,
// i.e. the board is static or cycling with a period no longer than the history.
func (h *History) Repeats(g *Grid) bool {
	current := g.Hash()
	for i := len(h.hashes) - 1; i >= 0; i-- {
		if h.hashes[i] == current {
			return true
		}
	}
	return false
}

// Reset forgets all recorded generations
func (h *History) Reset() {
	h.hashes = nil
}
