package protocol

// Event payloads the server pushes to clients.

type PlayerState struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Money  int    `json:"money"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

type TowerState struct {
	ID            string `json:"id"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Type          string `json:"type"`
	Owner         string `json:"owner"`
	CapturedCells []int  `json:"captured_cells"`
	Health        int    `json:"health"`
}

type DepositPos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Setup struct {
	Deposits []DepositPos `json:"deposits"`
}

type TargetPos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type BulletEvent struct {
	ID     string    `json:"id"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	DX     float64   `json:"dx"`
	DY     float64   `json:"dy"`
	Target TargetPos `json:"target"`
}
