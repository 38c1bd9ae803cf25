package room

import (
	"log/slog"
	"time"

	"github.com/KostyaCholak/towdef/game"
	"github.com/KostyaCholak/towdef/protocol"
)

// Room owns the authoritative state and is its single writer: client intents
// arrive as commands on Inbox, the economy and combat clocks fire as ticker
// cases, and the deferred death sweep is a one-shot timer case. Everything
// mutating state runs on the Run goroutine, so none of it needs locks.
type Room struct {
	Inbox chan any

	state   *game.State
	clients map[string]Conn

	tickEvery  time.Duration
	sweepAfter time.Duration
	sweep      <-chan time.Time // armed after each combat phase, nil when idle

	quit chan struct{}
}

func New() *Room {
	return &Room{
		Inbox:      make(chan any, 256),
		state:      game.NewState(),
		clients:    make(map[string]Conn),
		tickEvery:  protocol.TickMillis * time.Millisecond,
		sweepAfter: protocol.SweepDelayMillis * time.Millisecond,
		quit:       make(chan struct{}),
	}
}

func (r *Room) Stop() {
	close(r.quit)
}

func (r *Room) Run() {
	economy := time.NewTicker(r.tickEvery)
	defer economy.Stop()
	combat := time.NewTicker(r.tickEvery)
	defer combat.Stop()

	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-economy.C:
			r.economyTick()
		case <-combat.C:
			r.combatTick()
		case <-r.sweep:
			r.sweep = nil
			r.sweepDead()
		}
	}
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		r.handleJoin(c)
	case Build:
		r.handleBuild(c)
	case Destroy:
		r.handleDestroy(c)
	case Leave:
		r.handleLeave(c)
	default:
		slog.Warn("room: dropping unknown command", "command", cmd)
	}
}

func (r *Room) handleJoin(c Join) {
	res, ok := r.state.Join(c.PlayerID, c.Name)
	if !ok {
		slog.Debug("join rejected, id already in active session", "player", c.PlayerID)
		if c.Reply != nil {
			c.Reply <- JoinResult{}
		}
		return
	}
	r.clients[c.PlayerID] = c.Conn
	if c.Reply != nil {
		c.Reply <- JoinResult{Accepted: true}
	}
	slog.Info("player joined", "player", c.PlayerID, "name", c.Name)

	// The joiner sees the reset field first, then everyone learns about the
	// new player, then the joiner gets its own state.
	r.broadcast(protocol.MsgGameSetup, r.setupPayload())
	r.broadcast(protocol.MsgPlayerJoined, playerState(res.Player))
	r.sendTo(c.PlayerID, protocol.MsgYouState, playerState(res.Player))

	if res.Started {
		r.broadcast(protocol.MsgGameSetup, r.setupPayload())
		for _, tw := range res.Starters {
			r.broadcast(protocol.MsgGameBuild, towerState(tw))
		}
		slog.Info("session active", "deposits", len(r.state.Deposits))
	}
}

func (r *Room) handleBuild(c Build) {
	tower, player, ok := r.state.Build(c.PlayerID, c.X, c.Y, game.TowerType(c.Type))
	if !ok {
		slog.Debug("build rejected", "player", c.PlayerID, "x", c.X, "y", c.Y, "type", c.Type)
		return
	}
	r.broadcast(protocol.MsgGameBuild, towerState(tower))
	r.sendTo(c.PlayerID, protocol.MsgYouState, playerState(player))
}

func (r *Room) handleDestroy(c Destroy) {
	tower, player, ok := r.state.Destroy(c.PlayerID, c.TowerID)
	if !ok {
		slog.Debug("destroy rejected", "player", c.PlayerID, "tower", c.TowerID)
		return
	}
	r.broadcast(protocol.MsgGameDestroy, tower.ID)
	r.sendTo(c.PlayerID, protocol.MsgYouState, playerState(player))
}

func (r *Room) handleLeave(c Leave) {
	registered, ok := r.clients[c.PlayerID]
	if ok && c.Conn != nil && registered != c.Conn {
		// The id is held by a different live connection; this leave came
		// from a transport that never got (or lost) the registration.
		slog.Debug("ignoring leave from an unregistered connection", "player", c.PlayerID)
		return
	}
	if ok {
		_ = registered.Close()
		delete(r.clients, c.PlayerID)
	}
	if r.state.RemovePlayer(c.PlayerID) {
		slog.Info("player left", "player", c.PlayerID)
		r.broadcast(protocol.MsgPlayerLeft, c.PlayerID)
	}
}

// economyTick credits every player their income and pushes their new state.
// A player with no mapped connection is treated as departed and silently
// deregistered instead.
func (r *Room) economyTick() {
	for _, id := range r.state.PlayerIDs() {
		if _, ok := r.clients[id]; !ok {
			r.state.RemovePlayer(id)
			slog.Debug("reaped player without connection", "player", id)
			continue
		}
		player := r.state.CreditIncome(id)
		r.sendTo(id, protocol.MsgYouState, playerState(player))
	}
}

// combatTick runs Phase A (targeting + immediate damage) and arms the
// delayed sweep. The sweep delay is below the tick period, so normally the
// previous cycle's sweep has fired before we get here; if the loop fell
// behind and this tick won the select anyway, the pending sweep is flushed
// first.
func (r *Room) combatTick() {
	if r.sweep != nil {
		// An armed sweep lost the select race against this tick; run it
		// now so the removals it owes never slip a full period.
		r.sweep = nil
		r.sweepDead()
	}
	bullets := r.state.CombatTick()
	if len(bullets) > 0 {
		r.broadcast(protocol.MsgGameBullets, bulletEvents(bullets))
	}
	r.sweep = time.After(r.sweepAfter)
}

// sweepDead is Phase B: dead towers leave the registry and clients are told,
// late enough that the bullet animation had time to land.
func (r *Room) sweepDead() {
	for _, id := range r.state.SweepDead() {
		r.broadcast(protocol.MsgGameDestroy, id)
	}
}

// broadcast is fire-and-forget: a failed send never fails the mutation that
// triggered it. Dead connections get cleaned up by the network layer's Leave
// or by the economy reaper.
func (r *Room) broadcast(msgType string, payload any) {
	b, err := protocol.Encode(msgType, payload)
	if err != nil {
		slog.Error("encode broadcast", "type", msgType, "err", err)
		return
	}
	for id, c := range r.clients {
		if err := c.Send(b); err != nil {
			slog.Debug("broadcast send failed", "player", id, "type", msgType, "err", err)
		}
	}
}

func (r *Room) sendTo(playerID, msgType string, payload any) {
	c, ok := r.clients[playerID]
	if !ok {
		return
	}
	b, err := protocol.Encode(msgType, payload)
	if err != nil {
		slog.Error("encode unicast", "type", msgType, "err", err)
		return
	}
	if err := c.Send(b); err != nil {
		slog.Debug("unicast send failed", "player", playerID, "type", msgType, "err", err)
	}
}

func (r *Room) setupPayload() protocol.Setup {
	out := protocol.Setup{Deposits: make([]protocol.DepositPos, 0, len(r.state.Deposits))}
	for _, d := range r.state.Deposits {
		out.Deposits = append(out.Deposits, protocol.DepositPos{X: d.X, Y: d.Y})
	}
	return out
}

func playerState(p *game.Player) protocol.PlayerState {
	return protocol.PlayerState{
		ID:     p.ID,
		Name:   p.Name,
		Money:  p.Money,
		Wins:   p.Wins,
		Losses: p.Losses,
	}
}

func towerState(t *game.Tower) protocol.TowerState {
	return protocol.TowerState{
		ID:            t.ID,
		X:             t.X,
		Y:             t.Y,
		Type:          string(t.Type),
		Owner:         t.Owner,
		CapturedCells: t.CapturedCells,
		Health:        t.Health,
	}
}

func bulletEvents(bullets []game.Bullet) []protocol.BulletEvent {
	out := make([]protocol.BulletEvent, 0, len(bullets))
	for _, b := range bullets {
		out = append(out, protocol.BulletEvent{
			ID:     b.ID,
			X:      b.X,
			Y:      b.Y,
			DX:     b.DX,
			DY:     b.DY,
			Target: protocol.TargetPos{X: b.TargetX, Y: b.TargetY},
		})
	}
	return out
}
