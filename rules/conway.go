package rules

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: alive survives on 2 or 3 neighbors, dead is born on exactly 3,
everything else is dead. Counts outside 0..8 are never produced by a bounded grid and yield dead.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == 3
}
