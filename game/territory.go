package game

import "math"

// CapturedCells returns the flattened indices (y*GridWidth + x) of every grid
// cell whose Euclidean distance from (x, y) is at most radius, the center
// included. Indices are not clamped to the board: a column past a horizontal
// edge wraps into the adjacent row (j = -1 flattens to the previous row's
// x = GridWidth-1), so claims near the left or right edge alias cells on the
// opposite side. Clients share the same flattening and expect the aliasing.
func CapturedCells(x, y, radius int) []int {
	cells := make([]int, 0, (2*radius+1)*(2*radius+1))
	for i := y - radius; i <= y+radius; i++ {
		for j := x - radius; j <= x+radius; j++ {
			if math.Hypot(float64(i-y), float64(j-x)) <= float64(radius) {
				cells = append(cells, i*GridWidth+j)
			}
		}
	}
	return cells
}
