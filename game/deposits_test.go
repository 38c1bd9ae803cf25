package game

import (
	"math/rand"
	"testing"

	"pgregory.net/rapid"
)

func TestGenerateDepositsMirroredAndEven(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		rng := rand.New(rand.NewSource(seed))

		deposits := GenerateDeposits(rng)

		if len(deposits) == 0 {
			t.Fatalf("no deposits generated")
		}
		if len(deposits)%2 != 0 {
			t.Fatalf("deposit count %d is odd", len(deposits))
		}
		if len(deposits) > 2*DepositDraws {
			t.Fatalf("deposit count %d exceeds 2x draw count", len(deposits))
		}

		for _, d := range deposits {
			if d.Y < 0 || d.Y >= GridHeight {
				t.Fatalf("deposit y=%d out of range", d.Y)
			}
			if !DepositAt(deposits, GridWidth-d.X-1, d.Y) {
				t.Fatalf("deposit (%d,%d) has no mirror", d.X, d.Y)
			}
		}
	})
}

func TestGenerateDepositsSkipsOccupiedDraws(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	deposits := GenerateDeposits(rng)

	// Drawn positions are checked against everything already inserted, so
	// no cell appears twice.
	seen := make(map[int]int)
	for _, d := range deposits {
		seen[d.Y*GridWidth+d.X]++
	}
	for cell, n := range seen {
		if n > 1 {
			t.Fatalf("cell %d holds %d deposits", cell, n)
		}
	}
}

func TestDepositAt(t *testing.T) {
	deposits := []Deposit{{X: 3, Y: 7}, {X: 96, Y: 7}}
	if !DepositAt(deposits, 3, 7) {
		t.Fatalf("expected deposit at (3,7)")
	}
	if DepositAt(deposits, 7, 3) {
		t.Fatalf("unexpected deposit at (7,3)")
	}
}
