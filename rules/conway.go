package rules

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Fewer than 2 neighbors kills a cell, more than 3 kills it, exactly 3 brings it
to life and exactly 2 keeps whatever state it had.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	switch {
	case neighbors < 2, neighbors > 3:
		return false
	case neighbors == 3:
		return true
	default:
		return alive
	}
}
