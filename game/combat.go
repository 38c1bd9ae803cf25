package game

import (
	"math"

	"github.com/google/uuid"
)

// CombatTick is the targeting/damage phase of one combat cycle. Every
// non-miner tower picks the nearest enemy tower strictly inside its
// engagement radius, rolls the fire gate, and on a pass commits damage
// immediately. The returned bullets are purely cosmetic; the health change
// has already happened.
func (s *State) CombatTick() []Bullet {
	var bullets []Bullet

	for _, tw := range s.Towers {
		if tw.Type == TowerMiner {
			continue
		}
		radius := OtherEngageRadius
		if tw.Type == TowerBasic {
			radius = BasicEngageRadius
		}
		target := s.nearestEnemy(tw, radius)
		if target == nil {
			continue
		}

		cfg, ok := Configs[tw.Type]
		if !ok {
			continue
		}
		// Inverted on purpose: a higher AttackSpeed makes the gate easier
		// to pass. Walls (AttackSpeed 0) never fire.
		if s.rng.Float64()*cfg.AttackSpeed < FireGate {
			continue
		}

		dx := float64(target.X - tw.X)
		dy := float64(target.Y - tw.Y)
		dist := math.Hypot(dx, dy)
		if dist < 0.01 {
			continue
		}
		dx = dx / dist * BulletSpeed
		dy = dy / dist * BulletSpeed

		// Damage lands at fire time, not at visual impact. No clamp here;
		// the sweep treats anything <= 0 as dead.
		target.Health -= FireDamage

		bullets = append(bullets, Bullet{
			ID:      uuid.NewString(),
			X:       float64(tw.X) + dx,
			Y:       float64(tw.Y) + dy,
			DX:      dx,
			DY:      dy,
			TargetX: target.X,
			TargetY: target.Y,
		})
	}
	return bullets
}

// nearestEnemy scans every tower not owned by tw's owner and returns the
// closest one strictly within radius. Distances compare with <, so on an
// exact tie the first tower encountered keeps the slot.
func (s *State) nearestEnemy(tw *Tower, radius float64) *Tower {
	var target *Tower
	minDist := math.Inf(1)
	for _, other := range s.Towers {
		if other.Owner == tw.Owner || other.ID == tw.ID {
			continue
		}
		d := math.Hypot(float64(other.X-tw.X), float64(other.Y-tw.Y))
		if d < radius && d < minDist {
			target = other
			minDist = d
		}
	}
	return target
}

// SweepDead removes every tower whose health has reached zero and returns
// their ids in board order. Until this runs, a dead tower is still a legal
// target and can keep absorbing damage.
func (s *State) SweepDead() []string {
	var removed []string
	kept := s.Towers[:0]
	for _, tw := range s.Towers {
		if tw.Health <= 0 {
			removed = append(removed, tw.ID)
			continue
		}
		kept = append(kept, tw)
	}
	s.Towers = kept
	return removed
}
