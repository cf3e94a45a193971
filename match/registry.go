// Package match implements the process-wide MatchRegistry: the keyed store
// of active matches, their current GameState, and their connected slots.
package match

import (
	"fmt"
	"sync"

	"github.com/turnforge/gridclash/core"
)

// Connection is the transport-agnostic handle the dispatcher and registry
// hold for a connected client. transport/ws provides the concrete
// implementation over a websocket.
type Connection interface {
	// Send marshals and writes one outbound message. Implementations must
	// serialize concurrent Send calls on the same connection so two
	// messages' bytes are never interleaved.
	Send(message any) error
	Close() error
}

// Match is one active game: its id, its current immutable state, and the
// connections occupying its two slots. Either slot may be nil.
type Match struct {
	ID          string
	State       core.GameState
	Connections map[core.Owner]Connection
}

// Registry is the process-wide keyed store of matches. Reads may proceed
// concurrently; writes that add or remove a match never expose a
// half-initialised entry.
type Registry struct {
	mu      sync.RWMutex
	matches map[string]*Match
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{matches: make(map[string]*Match)}
}

// Get returns a copy of the match with the given id, taken under the read
// lock, and whether it exists.
func (r *Registry) Get(id string) (*Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, false
	}
	snapshot := *m
	return &snapshot, true
}

// Create registers a new match with the given initial state. It returns an
// error if a match with that id already exists.
func (r *Registry) Create(id string, initialState core.GameState) (*Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.matches[id]; exists {
		return nil, fmt.Errorf("match %q already exists", id)
	}
	m := &Match{
		ID:          id,
		State:       initialState,
		Connections: make(map[core.Owner]Connection),
	}
	r.matches[id] = m
	return m, nil
}

// UpdateState atomically replaces the state reference for matchID.
// Concurrent readers of Get see either the old or the new state, never a
// blend of the two, because the store happens under the write lock and Get
// copies the match under the read lock.
func (r *Registry) UpdateState(id string, state core.GameState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return fmt.Errorf("unknown match %q", id)
	}
	m.State = state
	return nil
}

// List returns every match id currently registered.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.matches))
	for id := range r.matches {
		ids = append(ids, id)
	}
	return ids
}

// Remove drops a match from the registry.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.matches, id)
}

// AssignSlot occupies the first free slot (P1 then P2) for conn and
// returns the slot it was given. Returns an error if the match is full.
func (r *Registry) AssignSlot(id string, conn Connection) (core.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return "", fmt.Errorf("unknown match %q", id)
	}
	if _, taken := m.Connections[core.P1]; !taken {
		m.Connections[core.P1] = conn
		return core.P1, nil
	}
	if _, taken := m.Connections[core.P2]; !taken {
		m.Connections[core.P2] = conn
		return core.P2, nil
	}
	return "", fmt.Errorf("match full")
}

// VacateSlot removes whichever slot conn occupies in matchID, if any, and
// reports the vacated slot.
func (r *Registry) VacateSlot(id string, conn Connection) (core.Owner, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return "", false
	}
	for slot, c := range m.Connections {
		if c == conn {
			delete(m.Connections, slot)
			return slot, true
		}
	}
	return "", false
}

// ConnectionCount reports how many slots of matchID are currently occupied.
func (r *Registry) ConnectionCount(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	if !ok {
		return 0
	}
	return len(m.Connections)
}
