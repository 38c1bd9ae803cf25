package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// State is the authoritative registry: players, towers and deposits. It is
// not safe for concurrent use; the room goroutine owns it outright.
type State struct {
	Players   map[string]*Player
	JoinOrder []string // join sequence, so "first two joiners" is well defined
	Towers    []*Tower
	Deposits  []Deposit
	Started   bool

	rng *rand.Rand
}

func NewState() *State {
	return &State{
		Players: make(map[string]*Player),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// JoinResult carries what the session layer needs to announce after a join.
type JoinResult struct {
	Player   *Player
	Started  bool     // this join brought the session to Active
	Starters []*Tower // the two starter basics, when Started
}

// Join registers (or overwrites) a player. A join is accepted iff the id is
// unknown or the session has not started; every accepted join wipes all
// towers and deposits — the blunt restart path for a 2-player session. The
// second registered player flips the session to Active.
func (s *State) Join(id, name string) (JoinResult, bool) {
	if _, exists := s.Players[id]; exists && s.Started {
		return JoinResult{}, false
	}

	if _, exists := s.Players[id]; !exists {
		s.JoinOrder = append(s.JoinOrder, id)
	}
	s.Players[id] = &Player{ID: id, Name: name, Money: StartingMoney}
	s.Towers = nil
	s.Deposits = nil
	s.Started = false

	res := JoinResult{Player: s.Players[id]}
	if len(s.Players) >= 2 {
		res.Started = true
		res.Starters = s.start()
	}
	return res, true
}

// start transitions Waiting -> Active: seeds the deposit field and places one
// basic tower per side at mirrored positions for the first two joiners.
func (s *State) start() []*Tower {
	s.Started = true
	s.Deposits = GenerateDeposits(s.rng)

	cfg := Configs[TowerBasic]
	left := s.placeTower(s.JoinOrder[0], StarterX, StarterY, TowerBasic, cfg)
	right := s.placeTower(s.JoinOrder[1], GridWidth-StarterX-1, StarterY, TowerBasic, cfg)
	return []*Tower{left, right}
}

func (s *State) placeTower(owner string, x, y int, typ TowerType, cfg TowerConfig) *Tower {
	t := &Tower{
		ID:            uuid.NewString(),
		X:             x,
		Y:             y,
		Type:          typ,
		Owner:         owner,
		CapturedCells: CapturedCells(x, y, cfg.CaptureRadius),
		Health:        cfg.MaxHealth,
	}
	s.Towers = append(s.Towers, t)
	return t
}

// Build runs the validation pipeline for a player-requested construction.
// Failures are silent no-ops: the caller broadcasts nothing and the registry
// is left untouched.
func (s *State) Build(playerID string, fx, fy float64, typ TowerType) (*Tower, *Player, bool) {
	x := int(math.Floor(fx))
	y := int(math.Floor(fy))

	player, ok := s.Players[playerID]
	if !ok {
		return nil, nil, false
	}
	cfg, ok := Configs[typ]
	if !ok {
		return nil, nil, false
	}
	if player.Money < cfg.Price {
		return nil, nil, false
	}
	for _, tw := range s.Towers {
		if tw.X == x && tw.Y == y {
			return nil, nil, false
		}
	}
	if typ == TowerMiner && !DepositAt(s.Deposits, x, y) {
		return nil, nil, false
	}

	cell := y*GridWidth + x
	if !s.cellCaptured(playerID, cell, true) {
		return nil, nil, false // can only build inside own territory
	}
	if s.cellCaptured(playerID, cell, false) {
		return nil, nil, false // enemy claim takes precedence
	}

	player.Money -= cfg.Price
	t := s.placeTower(playerID, x, y, typ, cfg)
	return t, player, true
}

// cellCaptured reports whether cell is in the union of captured cells over
// the player's own towers (own=true) or over everyone else's (own=false).
func (s *State) cellCaptured(playerID string, cell int, own bool) bool {
	for _, tw := range s.Towers {
		if (tw.Owner == playerID) != own {
			continue
		}
		for _, c := range tw.CapturedCells {
			if c == cell {
				return true
			}
		}
	}
	return false
}

// Destroy removes a player-owned tower and refunds half its price scaled by
// remaining health. A tower that captures real territory (radius > 1) cannot
// be destroyed if it is the owner's last one.
func (s *State) Destroy(playerID, towerID string) (*Tower, *Player, bool) {
	player, ok := s.Players[playerID]
	if !ok {
		return nil, nil, false
	}

	idx := -1
	for i, tw := range s.Towers {
		if tw.ID == towerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil, false
	}
	tower := s.Towers[idx]
	if tower.Owner != player.ID {
		return nil, nil, false
	}
	cfg, ok := Configs[tower.Type]
	if !ok {
		return nil, nil, false
	}

	if cfg.CaptureRadius > 1 {
		meaningful := 0
		for _, tw := range s.Towers {
			if tw.Owner == player.ID && Configs[tw.Type].CaptureRadius > 1 {
				meaningful++
			}
		}
		if meaningful == 1 {
			return nil, nil, false // must keep at least one territory holder
		}
	}

	s.Towers = append(s.Towers[:idx], s.Towers[idx+1:]...)
	refund := float64(cfg.Price) * 0.5 * float64(tower.Health) / float64(cfg.MaxHealth)
	player.Money += int(math.Round(refund))
	return tower, player, true
}

// CreditIncome applies one economy tick for a single player: a flat base
// income plus a bonus per miner that is still alive.
func (s *State) CreditIncome(id string) *Player {
	player, ok := s.Players[id]
	if !ok {
		return nil
	}
	miners := 0
	for _, tw := range s.Towers {
		if tw.Type == TowerMiner && tw.Health > 0 && tw.Owner == id {
			miners++
		}
	}
	player.Money += miners*MinerIncome + BaseIncome
	return player
}

// RemovePlayer deregisters a player. Their towers stay on the board.
func (s *State) RemovePlayer(id string) bool {
	if _, ok := s.Players[id]; !ok {
		return false
	}
	delete(s.Players, id)
	for i, jid := range s.JoinOrder {
		if jid == id {
			s.JoinOrder = append(s.JoinOrder[:i], s.JoinOrder[i+1:]...)
			break
		}
	}
	return true
}

// PlayerIDs returns the registered player ids in join order.
func (s *State) PlayerIDs() []string {
	return append([]string(nil), s.JoinOrder...)
}
