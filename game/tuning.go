package game

const (
	GridWidth  = 100
	GridHeight = 50

	StartingMoney = 30

	// Starter basics go at (StarterX, StarterY) and its horizontal mirror.
	StarterX = 30
	StarterY = 20

	DepositDraws = 200 // each accepted draw inserts a mirrored pair

	BaseIncome  = 1 // flat credit per economy tick
	MinerIncome = 1 // extra credit per live miner

	BasicEngageRadius = 7.0
	OtherEngageRadius = 12.0
	FireGate          = 0.3 // rand * attackSpeed below this skips the shot
	FireDamage        = 2
	BulletSpeed       = 0.3 // grid units per visual sub-step, cosmetic only
)
