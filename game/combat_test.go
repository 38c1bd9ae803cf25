package game

import (
	"math/rand"
	"testing"
)

// battlefield wires a started session plus manually placed combatants.
func battlefield(t *testing.T) *State {
	t.Helper()
	s, _ := newActiveState(t)
	s.rng = rand.New(rand.NewSource(42))
	return s
}

func TestNearestEnemyStrictRadius(t *testing.T) {
	s := battlefield(t)
	attacker := s.placeTower("p1", 10, 10, TowerBasic, Configs[TowerBasic])

	inRange := s.placeTower("p2", 16, 10, TowerWall, Configs[TowerWall]) // distance 6
	if got := s.nearestEnemy(attacker, BasicEngageRadius); got != inRange {
		t.Fatalf("enemy at distance 6 not targeted by radius-7 tower")
	}

	s.Towers = s.Towers[:len(s.Towers)-1]
	s.placeTower("p2", 17, 10, TowerWall, Configs[TowerWall]) // distance exactly 7
	if got := s.nearestEnemy(attacker, BasicEngageRadius); got != nil {
		t.Fatalf("enemy at distance exactly 7 targeted; comparison must be strict")
	}

	s.Towers = s.Towers[:len(s.Towers)-1]
	s.placeTower("p2", 15, 15, TowerWall, Configs[TowerWall]) // distance ~7.07
	if got := s.nearestEnemy(attacker, BasicEngageRadius); got != nil {
		t.Fatalf("enemy beyond the engagement radius targeted")
	}
}

func TestNearestEnemyPrefersClosest(t *testing.T) {
	s := battlefield(t)
	attacker := s.placeTower("p1", 10, 10, TowerAdvanced, Configs[TowerAdvanced])

	s.placeTower("p2", 15, 10, TowerWall, Configs[TowerWall]) // distance 5
	near := s.placeTower("p2", 13, 10, TowerWall, Configs[TowerWall]) // distance 3

	if got := s.nearestEnemy(attacker, OtherEngageRadius); got != near {
		t.Fatalf("targeting did not pick the nearest enemy")
	}
}

func TestNearestEnemyTieKeepsFirstEncountered(t *testing.T) {
	s := battlefield(t)
	attacker := s.placeTower("p1", 10, 10, TowerAdvanced, Configs[TowerAdvanced])

	first := s.placeTower("p2", 14, 10, TowerWall, Configs[TowerWall])  // distance 4
	s.placeTower("p2", 6, 10, TowerWall, Configs[TowerWall])            // distance 4 again

	if got := s.nearestEnemy(attacker, OtherEngageRadius); got != first {
		t.Fatalf("tie at equal distance did not keep the first tower in board order")
	}
}

func TestNearestEnemySkipsOwnTowers(t *testing.T) {
	s := battlefield(t)
	attacker := s.placeTower("p1", 10, 10, TowerAdvanced, Configs[TowerAdvanced])
	s.placeTower("p1", 12, 10, TowerWall, Configs[TowerWall])

	if got := s.nearestEnemy(attacker, OtherEngageRadius); got != nil {
		t.Fatalf("tower targeted a friendly tower")
	}
}

func TestCombatTickDamagesAndEmitsBullets(t *testing.T) {
	s := battlefield(t)
	attacker := s.placeTower("p1", 50, 25, TowerAdvanced, Configs[TowerAdvanced])
	victim := s.placeTower("p2", 53, 25, TowerWall, Configs[TowerWall])

	// The fire gate is probabilistic (advanced passes with p=0.7), so loop
	// until the first shot lands.
	var bullets []Bullet
	for i := 0; i < 200 && len(bullets) == 0; i++ {
		bullets = s.CombatTick()
	}
	if len(bullets) == 0 {
		t.Fatalf("no bullet emitted in 200 cycles")
	}

	b := bullets[0]
	if b.ID == "" {
		t.Fatalf("bullet has no id")
	}
	if b.TargetX != victim.X || b.TargetY != victim.Y {
		t.Fatalf("bullet target (%d,%d), want (%d,%d)", b.TargetX, b.TargetY, victim.X, victim.Y)
	}
	if b.DX <= 0 || b.DY != 0 {
		t.Fatalf("bullet velocity (%f,%f) does not point at the target", b.DX, b.DY)
	}
	if victim.Health != Configs[TowerWall].MaxHealth-FireDamage {
		t.Fatalf("victim health %d; damage must land at fire time", victim.Health)
	}
	// Walls never pass the gate, so the attacker is untouched.
	if attacker.Health != Configs[TowerAdvanced].MaxHealth {
		t.Fatalf("attacker took damage from a wall")
	}
}

func TestMinersNeverFire(t *testing.T) {
	s := battlefield(t)
	s.placeTower("p1", 50, 25, TowerMiner, Configs[TowerMiner])
	victim := s.placeTower("p2", 51, 25, TowerWall, Configs[TowerWall])

	for i := 0; i < 100; i++ {
		s.CombatTick()
	}
	if victim.Health != Configs[TowerWall].MaxHealth {
		t.Fatalf("a miner dealt damage")
	}
}

func TestDamageIsNotClampedAtZero(t *testing.T) {
	s := battlefield(t)
	s.placeTower("p1", 50, 25, TowerAdvanced, Configs[TowerAdvanced])
	victim := s.placeTower("p2", 53, 25, TowerWall, Configs[TowerWall])
	victim.Health = 1

	for i := 0; i < 200 && victim.Health > 0; i++ {
		s.CombatTick()
	}
	if victim.Health != -1 {
		t.Fatalf("health after overkill = %d, want -1", victim.Health)
	}
}

func TestDeadTowerStillTargetableUntilSweep(t *testing.T) {
	s := battlefield(t)
	attacker := s.placeTower("p1", 50, 25, TowerAdvanced, Configs[TowerAdvanced])
	victim := s.placeTower("p2", 53, 25, TowerWall, Configs[TowerWall])
	victim.Health = 0

	if got := s.nearestEnemy(attacker, OtherEngageRadius); got != victim {
		t.Fatalf("dead-but-unswept tower no longer targetable")
	}
}

func TestSweepDeadRemovesAndReports(t *testing.T) {
	s := battlefield(t)
	alive := s.placeTower("p1", 50, 25, TowerWall, Configs[TowerWall])
	dead1 := s.placeTower("p2", 60, 25, TowerWall, Configs[TowerWall])
	dead2 := s.placeTower("p2", 62, 25, TowerWall, Configs[TowerWall])
	dead1.Health = 0
	dead2.Health = -3

	removed := s.SweepDead()
	if len(removed) != 2 || removed[0] != dead1.ID || removed[1] != dead2.ID {
		t.Fatalf("swept %v, want [%s %s] in board order", removed, dead1.ID, dead2.ID)
	}
	for _, tw := range s.Towers {
		if tw.Health <= 0 {
			t.Fatalf("dead tower survived the sweep")
		}
	}
	found := false
	for _, tw := range s.Towers {
		if tw.ID == alive.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("sweep removed a live tower")
	}

	if again := s.SweepDead(); len(again) != 0 {
		t.Fatalf("second sweep removed %v", again)
	}
}
