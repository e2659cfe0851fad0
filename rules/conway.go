package rules

const (
	// MinSurvive and MaxSurvive bound the neighbor count a live cell needs to stay alive
	MinSurvive = 2
	MaxSurvive = 3
	// Birth is the exact neighbor count that brings a dead cell to life
	Birth = 3
)

/*
ApplyConwayRules applies Conway's Game of Life rules (B3/S23) to determine the
next state of a cell from its current state and live Moore-neighbor count.

	alive: stays alive with 2 or 3 neighbors, dies otherwise
	dead:  becomes alive with exactly 3 neighbors
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return Survives(neighbors)
	}
	return neighbors == Birth
}

// Survives reports whether a live cell with the given neighbor count stays alive
func Survives(neighbors int) bool {
	return neighbors >= MinSurvive && neighbors <= MaxSurvive
}
