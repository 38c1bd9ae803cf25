package protocol

// Intent payloads coming in from the client.

type JoinIntent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BuildIntent struct {
	ID    string  `json:"id"` // ignored; the server assigns tower ids
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Type  string  `json:"type"`
	Owner string  `json:"owner"` // ignored; ownership comes from the connection
}

type DestroyIntent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}
