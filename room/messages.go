package room

// Conn is all the room needs from a client transport.
type Conn interface {
	Send([]byte) error
	Close() error
}

// Join: parsed player.join intent plus the transport it arrived on. The
// room answers on Reply before any events flow, so the network layer only
// binds the connection to the id once the join is accepted.
type Join struct {
	Conn     Conn
	PlayerID string
	Name     string
	Reply    chan<- JoinResult
}

type JoinResult struct {
	Accepted bool
}

// Build: player.join-authenticated construction request.
type Build struct {
	PlayerID string
	X, Y     float64
	Type     string
}

// Destroy: owner-initiated removal of a tower by id.
type Destroy struct {
	PlayerID string
	TowerID  string
}

// Leave: issued by the network layer on disconnect. Conn identifies the
// transport that dropped; a leave from a connection that is not the one
// registered for the id is stale and gets ignored.
type Leave struct {
	PlayerID string
	Conn     Conn
}
