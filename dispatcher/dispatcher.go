// Package dispatcher implements the protocol dispatcher: connection
// bookkeeping, join_match slot assignment, inbound message routing, and the
// fan-out of outbound messages (state_update, game_over, timeout, etc.) to
// a match's connected slots.
package dispatcher

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panyam/gocurrent"

	"github.com/turnforge/gridclash/core"
	"github.com/turnforge/gridclash/internal/draft"
	"github.com/turnforge/gridclash/match"
	"github.com/turnforge/gridclash/matchsvc"
	"github.com/turnforge/gridclash/protocol"
	"github.com/turnforge/gridclash/rules"
	"github.com/turnforge/gridclash/timer"
)

// connEntry tracks one live connection: the transport handle plus which
// match/slot it currently occupies, if any.
type connEntry struct {
	conn    match.Connection
	matchID string
	slot    core.Owner
}

// Dispatcher owns the connection registry, the match registry, MatchService
// and a per-match gocurrent.FanOut used to broadcast to both connected
// slots at once.
type Dispatcher struct {
	registry     *match.Registry
	svc          *matchsvc.Service
	draftFactory draft.Factory
	log          *slog.Logger

	mu      sync.Mutex
	conns   map[string]*connEntry
	fanOuts map[string]*gocurrent.FanOut[*protocol.Envelope]
}

// New constructs a Dispatcher with its own process-wide MatchRegistry and
// TimerService, using factory to produce a match's initial GameState on
// first join. Pass draft.Default for the shipped deterministic factory.
func New(factory draft.Factory, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	d := &Dispatcher{
		registry:     match.NewRegistry(),
		draftFactory: factory,
		log:          log,
		conns:        make(map[string]*connEntry),
		fanOuts:      make(map[string]*gocurrent.FanOut[*protocol.Envelope]),
	}
	timers := timer.NewService(timer.RealClock{}, timer.RealScheduler{})
	d.svc = matchsvc.NewService(d.registry, timers, d.handleTimeout)
	return d
}

// OnConnect registers a newly established connection. The connection is
// not yet part of any match until it sends join_match.
func (d *Dispatcher) OnConnect(connID string, conn match.Connection) {
	d.mu.Lock()
	d.conns[connID] = &connEntry{conn: conn}
	d.mu.Unlock()
}

// OnDisconnect unregisters connID. If it occupied a match slot, that slot
// is vacated and the remaining slot is told via player_disconnected — the
// match's timers are left running; disconnection does not pause game time.
func (d *Dispatcher) OnDisconnect(connID string) {
	d.mu.Lock()
	entry, ok := d.conns[connID]
	delete(d.conns, connID)
	d.mu.Unlock()
	if !ok || entry.matchID == "" {
		return
	}

	slot, vacated := d.registry.VacateSlot(entry.matchID, entry.conn)
	if !vacated {
		return
	}
	d.broadcast(entry.matchID, protocol.TypePlayerDisconnected, protocol.PlayerDisconnectedPayload{PlayerID: slot})
}

// HandleMessage routes one inbound wire frame for connID. Every error path
// — malformed JSON, an unknown type, a missing field, a rejected action —
// produces a validation_error to connID alone; nothing here ever panics the
// transport.
func (d *Dispatcher) HandleMessage(connID string, raw []byte) {
	env, err := protocol.Decode(raw)
	if err != nil {
		d.sendError(connID, err.Error(), nil)
		return
	}

	switch env.Type {
	case protocol.TypeJoinMatch:
		d.handleJoinMatch(connID, env)
	case protocol.TypeAction:
		d.handleAction(connID, env)
	default:
		d.sendError(connID, fmt.Sprintf("unknown message type %q", env.Type), nil)
	}
}

func (d *Dispatcher) handleJoinMatch(connID string, env protocol.Envelope) {
	payload, err := protocol.DecodeJoinMatch(env)
	if err != nil {
		d.sendError(connID, err.Error(), nil)
		return
	}

	d.mu.Lock()
	entry, ok := d.conns[connID]
	d.mu.Unlock()
	if !ok {
		return
	}

	if _, exists := d.registry.Get(payload.MatchID); !exists {
		initial := d.draftFactory(payload.MatchID)
		if _, err := d.registry.Create(payload.MatchID, initial); err != nil {
			d.sendError(connID, err.Error(), nil)
			return
		}
	}

	slot, err := d.registry.AssignSlot(payload.MatchID, entry.conn)
	if err != nil {
		d.sendError(connID, err.Error(), nil)
		return
	}

	d.mu.Lock()
	entry.matchID = payload.MatchID
	entry.slot = slot
	d.mu.Unlock()
	d.subscribe(connID, entry)

	m, _ := d.registry.Get(payload.MatchID)
	d.unicast(entry.conn, protocol.TypeMatchJoined, protocol.MatchJoinedPayload{
		MatchID: payload.MatchID, PlayerID: slot, State: m.State,
	})

	if d.registry.ConnectionCount(payload.MatchID) != 2 {
		return
	}

	d.broadcast(payload.MatchID, protocol.TypeGameReady, protocol.GameReadyPayload{Message: "both players connected"})

	start := d.svc.StartInitialActionTimer(payload.MatchID)
	m, _ = d.registry.Get(payload.MatchID)
	timerMeta := &protocol.TimerMeta{ActionStartTime: start, TimeoutMs: 10000, TimerType: string(timer.Action)}

	if firstConn, found := d.connectionForSlot(payload.MatchID, m.State.CurrentPlayer); found {
		hero, _ := m.State.HeroOf(m.State.CurrentPlayer)
		d.unicast(firstConn, protocol.TypeYourTurn, protocol.YourTurnPayload{
			UnitID: hero.ID, ActionStartTime: start, TimeoutMs: 10000, TimerType: string(timer.Action),
		})
	}
	d.broadcast(payload.MatchID, protocol.TypeStateUpdate, protocol.StateUpdatePayload{
		State: m.State, Timer: timerMeta, CurrentPlayerID: m.State.CurrentPlayer,
	})
}

func (d *Dispatcher) handleAction(connID string, env protocol.Envelope) {
	payload, err := protocol.DecodeAction(env)
	if err != nil {
		d.sendError(connID, err.Error(), nil)
		return
	}

	d.mu.Lock()
	entry, ok := d.conns[connID]
	d.mu.Unlock()
	if !ok || entry.matchID != payload.MatchID {
		d.sendError(connID, "not joined to this match", payload.Action)
		return
	}

	action := toRulesAction(payload)
	result, err := d.svc.ApplyActionWithTimer(payload.MatchID, core.Owner(payload.PlayerID), action)
	if err != nil {
		d.sendError(connID, err.Error(), payload.Action)
		return
	}

	if result.GameOver {
		d.broadcast(payload.MatchID, protocol.TypeGameOver, protocol.GameOverPayload{
			Winner: result.State.Winner, State: result.State,
		})
		return
	}

	d.broadcast(payload.MatchID, protocol.TypeStateUpdate, protocol.StateUpdatePayload{
		State: result.State,
		Timer: &protocol.TimerMeta{
			ActionStartTime: result.StartTime, TimeoutMs: result.TimeoutMs, TimerType: string(result.TimerType),
		},
		CurrentPlayerID: result.State.CurrentPlayer,
	})
}

func toRulesAction(payload protocol.ActionPayload) rules.Action {
	var target core.Position
	if payload.Action.TargetX != nil {
		target.X = *payload.Action.TargetX
	}
	if payload.Action.TargetY != nil {
		target.Y = *payload.Action.TargetY
	}
	return rules.Action{
		Type:         rules.ActionType(payload.Action.Type),
		ActingPlayer: core.Owner(payload.PlayerID),
		ActorID:      payload.Action.UnitID,
		Target:       target,
		TargetUnitID: payload.Action.TargetUnitID,
		Choice:       rules.SpawnChoice(payload.Action.Choice),
	}
}

func (d *Dispatcher) handleTimeout(matchID string, msg protocol.TimeoutPayload) {
	d.broadcast(matchID, protocol.TypeTimeout, msg)
}

func (d *Dispatcher) connectionForSlot(matchID string, slot core.Owner) (match.Connection, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range d.conns {
		if e.matchID == matchID && e.slot == slot {
			return e.conn, true
		}
	}
	return nil, false
}

func (d *Dispatcher) sendError(connID string, message string, action any) {
	d.mu.Lock()
	entry, ok := d.conns[connID]
	d.mu.Unlock()
	if !ok {
		return
	}
	d.unicast(entry.conn, protocol.TypeValidationError, protocol.ValidationErrorPayload{Message: message, Action: action})
}

func (d *Dispatcher) unicast(conn match.Connection, typ string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		d.log.Error("marshal outbound payload", "type", typ, "err", err)
		return
	}
	if err := conn.Send(&protocol.Envelope{Type: typ, Payload: raw}); err != nil {
		d.log.Warn("send to connection failed", "type", typ, "err", err)
	}
}
