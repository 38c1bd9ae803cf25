package game

import "math/rand"

// GenerateDeposits draws DepositDraws candidate positions and inserts each
// accepted draw together with its horizontal mirror, so the field is always
// left/right symmetric. Draws landing on an already-occupied cell are skipped
// outright, which is why the final count varies from run to run (it is always
// even, and at most 2*DepositDraws).
func GenerateDeposits(rng *rand.Rand) []Deposit {
	deposits := make([]Deposit, 0, 2*DepositDraws)
	taken := make(map[int]bool, 2*DepositDraws)

	for i := 0; i < DepositDraws; i++ {
		x := rng.Intn(GridWidth / 2)
		y := rng.Intn(GridHeight)
		// Thin out the inner quarter of the left half by re-rolling the
		// x with an extra half-width offset.
		if x < GridWidth/4 {
			x += rng.Intn(GridWidth / 2)
		}
		if taken[y*GridWidth+x] {
			continue
		}
		mx := GridWidth - x - 1
		deposits = append(deposits, Deposit{X: x, Y: y}, Deposit{X: mx, Y: y})
		taken[y*GridWidth+x] = true
		taken[y*GridWidth+mx] = true
	}
	return deposits
}

// DepositAt reports whether a deposit sits exactly on (x, y).
func DepositAt(deposits []Deposit, x, y int) bool {
	for _, d := range deposits {
		if d.X == x && d.Y == y {
			return true
		}
	}
	return false
}
