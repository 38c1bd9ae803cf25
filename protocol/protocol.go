package protocol

import (
	"encoding/json"
)

// Client -> server intents.
const (
	MsgPlayerJoin  = "player.join"
	MsgGameBuild   = "game.build" // also the server's construction broadcast
	MsgGameDestroy = "game.destroy"
)

// Server -> client events.
const (
	MsgGameSetup    = "game.setup"
	MsgPlayerJoined = "player.joined"
	MsgYouState     = "you.state"
	MsgPlayerLeft   = "player.left"
	MsgGameBullets  = "game.bullets"
)

const (
	TickMillis       = 1000 // economy and combat clock period
	SweepDelayMillis = 400  // must stay below TickMillis so sweeps never overlap
)

type Envelope struct {
	Type    string          `json:"type"`
	Message json.RawMessage `json:"message"` // raw payload bytes
}
