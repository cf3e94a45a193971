// Package matchsvc implements MatchService: applying a player action to a
// registered match's state while driving that match's ACTION and
// DEATH_CHOICE timers per spec, and handling each timer type's timeout
// consequence.
package matchsvc

import (
	"errors"
	"fmt"

	"github.com/turnforge/gridclash/core"
	"github.com/turnforge/gridclash/match"
	"github.com/turnforge/gridclash/protocol"
	"github.com/turnforge/gridclash/rules"
	"github.com/turnforge/gridclash/timer"
)

// TimerCallback is invoked exactly once per timeout firing, carrying the
// outbound timeout payload the dispatcher broadcasts to the match.
type TimerCallback func(matchID string, msg protocol.TimeoutPayload)

// ActionResult is what a successful ApplyActionWithTimer call returns: the
// resulting state plus the timer metadata the dispatcher needs to build its
// outbound state_update or game_over message.
type ActionResult struct {
	State      core.GameState
	GameOver   bool
	NextPlayer core.Owner
	StartTime  int64
	TimeoutMs  int64
	TimerType  timer.Type
}

// Service is MatchService: it owns no state of its own beyond its
// references to the registry and timer service, both of which are
// process-wide and injected at construction.
type Service struct {
	registry  *match.Registry
	timers    *timer.Service
	onTimeout TimerCallback
}

// NewService wires a MatchService against a registry and timer service. The
// onTimeout callback is how the dispatcher learns about timer-driven state
// changes it did not itself request.
func NewService(registry *match.Registry, timers *timer.Service, onTimeout TimerCallback) *Service {
	return &Service{registry: registry, timers: timers, onTimeout: onTimeout}
}

// ApplyActionWithTimer validates and applies action against matchID's
// current state, updates the registry, and drives the match's timers
// exactly as spec.md §4.4 describes. An invalid action leaves the stored
// state and every timer untouched; the returned error carries the rule
// engine's rejection reason (or a timer-gating reason).
func (s *Service) ApplyActionWithTimer(matchID string, playerID core.Owner, action rules.Action) (ActionResult, error) {
	m, ok := s.registry.Get(matchID)
	if !ok {
		return ActionResult{}, fmt.Errorf("unknown match %q", matchID)
	}

	if action.Type == rules.DeathChoice {
		return s.applyDeathChoice(matchID, m.State, playerID, action)
	}

	if st, found := s.timers.GetTimerState(matchID, timer.DeathChoice); found && st == timer.Running {
		return ActionResult{}, errors.New("death choice pending")
	}
	if st, found := s.timers.GetTimerState(matchID, timer.Action); found {
		if st == timer.TimedOut {
			return ActionResult{}, errors.New("action timeout already processed")
		}
		if st != timer.Running && st != timer.Paused && !s.timers.IsWithinGracePeriod(matchID, timer.Action) {
			return ActionResult{}, errors.New("timer not active")
		}
	}

	if v := rules.Validate(m.State, action); !v.Valid {
		return ActionResult{}, errors.New(v.Reason)
	}
	newState, err := rules.Apply(m.State, action)
	if err != nil {
		return ActionResult{}, err
	}
	if err := s.registry.UpdateState(matchID, newState); err != nil {
		return ActionResult{}, err
	}
	return s.postApply(matchID, newState), nil
}

// StartInitialActionTimer starts the very first ACTION timer for a match,
// once both slots have connected. It is the one caller outside this
// package's own timer-transition methods, used by the dispatcher when the
// second player joins.
func (s *Service) StartInitialActionTimer(matchID string) int64 {
	return s.timers.StartActionTimer(matchID, func() { s.handleActionTimeout(matchID) })
}

// applyDeathChoice handles the DEATH_CHOICE branch: it is gated by the
// pending choice's owner and the DEATH_CHOICE timer's state, and always
// resets (never resumes) the ACTION timer for the next player.
func (s *Service) applyDeathChoice(matchID string, state core.GameState, playerID core.Owner, action rules.Action) (ActionResult, error) {
	if state.PendingDeathChoice == nil {
		return ActionResult{}, errors.New("no death choice pending")
	}
	if state.PendingDeathChoice.Owner != playerID {
		return ActionResult{}, errors.New("not your death choice")
	}
	if st, found := s.timers.GetTimerState(matchID, timer.DeathChoice); found && st == timer.TimedOut {
		return ActionResult{}, errors.New("death choice timeout already processed")
	}

	if v := rules.Validate(state, action); !v.Valid {
		return ActionResult{}, errors.New(v.Reason)
	}
	newState, err := rules.Apply(state, action)
	if err != nil {
		return ActionResult{}, err
	}
	if err := s.registry.UpdateState(matchID, newState); err != nil {
		return ActionResult{}, err
	}

	s.timers.CompleteTimer(matchID, timer.DeathChoice)
	start := s.timers.ResumeActionTimer(matchID, true)
	return ActionResult{
		State:      newState,
		NextPlayer: newState.CurrentPlayer,
		StartTime:  start,
		TimeoutMs:  10000,
		TimerType:  timer.Action,
	}, nil
}

// postApply drives the ACTION/DEATH_CHOICE timer transition that follows a
// normal (non-DEATH_CHOICE) applied action.
func (s *Service) postApply(matchID string, state core.GameState) ActionResult {
	if state.GameOver {
		s.timers.CancelTimer(matchID, timer.Action)
		return ActionResult{State: state, GameOver: true}
	}
	if state.PendingDeathChoice != nil {
		s.timers.PauseActionTimer(matchID)
		owner := state.PendingDeathChoice.Owner
		start := s.timers.StartDeathChoiceTimer(matchID, func() { s.handleDeathChoiceTimeout(matchID) })
		return ActionResult{
			State:      state,
			NextPlayer: owner,
			StartTime:  start,
			TimeoutMs:  5000,
			TimerType:  timer.DeathChoice,
		}
	}
	s.timers.CompleteTimer(matchID, timer.Action)
	start := s.timers.StartActionTimer(matchID, func() { s.handleActionTimeout(matchID) })
	return ActionResult{
		State:      state,
		NextPlayer: state.CurrentPlayer,
		StartTime:  start,
		TimeoutMs:  10000,
		TimerType:  timer.Action,
	}
}

// handleActionTimeout is the ACTION timer's callback: it applies the Hero
// HP Penalty Rule, then an automatic END_TURN unless that penalty ended the
// game, then starts the next player's ACTION timer.
func (s *Service) handleActionTimeout(matchID string) {
	m, ok := s.registry.Get(matchID)
	if !ok {
		return
	}
	owner := m.State.CurrentPlayer
	penalized := rules.ApplyHeroHPPenalty(m.State, owner)

	result := penalized
	if !penalized.GameOver {
		if applied, err := rules.Apply(penalized, rules.Action{Type: rules.EndTurn, ActingPlayer: owner}); err == nil {
			result = applied
		}
	}
	s.registry.UpdateState(matchID, result)

	var nextTimer *protocol.TimerMeta
	var nextPlayerID core.Owner
	if !result.GameOver {
		start := s.timers.StartActionTimer(matchID, func() { s.handleActionTimeout(matchID) })
		nextTimer = &protocol.TimerMeta{ActionStartTime: start, TimeoutMs: 10000, TimerType: string(timer.Action)}
		nextPlayerID = result.CurrentPlayer
	}

	if s.onTimeout != nil {
		s.onTimeout(matchID, protocol.TimeoutPayload{
			TimerType:     string(timer.Action),
			PlayerID:      owner,
			Penalty:       &protocol.Penalty{Kind: "HERO_HP_LOSS", Amount: 1},
			DefaultAction: "END_TURN",
			State:         result,
			NextTimer:     nextTimer,
			NextPlayerID:  nextPlayerID,
		})
	}
}

// handleDeathChoiceTimeout is the DEATH_CHOICE timer's callback: it applies
// a default SPAWN_OBSTACLE choice for the pending owner, with no HP
// penalty, then resets the ACTION timer for the next player.
func (s *Service) handleDeathChoiceTimeout(matchID string) {
	m, ok := s.registry.Get(matchID)
	if !ok || m.State.PendingDeathChoice == nil {
		return
	}
	owner := m.State.PendingDeathChoice.Owner

	result := m.State
	if applied, err := rules.Apply(m.State, rules.Action{
		Type:         rules.DeathChoice,
		ActingPlayer: owner,
		Choice:       rules.SpawnObstacle,
	}); err == nil {
		result = applied
	}
	s.registry.UpdateState(matchID, result)

	start := s.timers.ResumeActionTimer(matchID, true)
	nextTimer := &protocol.TimerMeta{ActionStartTime: start, TimeoutMs: 10000, TimerType: string(timer.Action)}

	if s.onTimeout != nil {
		s.onTimeout(matchID, protocol.TimeoutPayload{
			TimerType:     string(timer.DeathChoice),
			PlayerID:      owner,
			DefaultAction: "DEATH_CHOICE",
			State:         result,
			NextTimer:     nextTimer,
			NextPlayerID:  result.CurrentPlayer,
		})
	}
}
