package game

// Entities of the authoritative game state.

type TowerType string

const (
	TowerBasic    TowerType = "basic"
	TowerAdvanced TowerType = "advanced"
	TowerMiner    TowerType = "miner"
	TowerWall     TowerType = "wall"
)

// TowerConfig is static per-type data, read-only at runtime.
type TowerConfig struct {
	Price         int
	CaptureRadius int
	MaxHealth     int
	AttackSpeed   float64
}

var Configs = map[TowerType]TowerConfig{
	TowerBasic:    {Price: 20, CaptureRadius: 4, MaxHealth: 20, AttackSpeed: 0.5},
	TowerAdvanced: {Price: 40, CaptureRadius: 7, MaxHealth: 30, AttackSpeed: 1.0},
	TowerMiner:    {Price: 20, CaptureRadius: 1, MaxHealth: 10, AttackSpeed: 0.0},
	TowerWall:     {Price: 20, CaptureRadius: 1, MaxHealth: 50, AttackSpeed: 0.0},
}

type Player struct {
	ID     string
	Name   string
	Money  int
	Wins   int
	Losses int
}

type Tower struct {
	ID    string
	X, Y  int
	Type  TowerType
	Owner string
	// CapturedCells is computed once at construction and never refreshed;
	// towers do not move.
	CapturedCells []int
	Health        int
}

type Deposit struct {
	X, Y int
}

// Bullet is a cosmetic projectile descriptor. Damage is already applied by
// the time one is emitted; clients only animate it.
type Bullet struct {
	ID               string
	X, Y             float64
	DX, DY           float64
	TargetX, TargetY int
}
