package match

import (
	"testing"

	"github.com/turnforge/gridclash/core"
)

type fakeConn struct{ id string }

func (f *fakeConn) Send(any) error { return nil }
func (f *fakeConn) Close() error   { return nil }

func TestCreateGetUpdateRemove(t *testing.T) {
	r := NewRegistry()
	state := core.GameState{Board: core.NewBoard(), CurrentPlayer: core.P1}

	if _, err := r.Create("m1", state); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Create("m1", state); err == nil {
		t.Fatalf("expected duplicate create to fail")
	}

	m, ok := r.Get("m1")
	if !ok || m.ID != "m1" {
		t.Fatalf("expected to find m1")
	}

	updated := state
	updated.CurrentRound = 2
	if err := r.UpdateState("m1", updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, _ = r.Get("m1")
	if m.State.CurrentRound != 2 {
		t.Fatalf("expected updated state to be visible, got round=%d", m.State.CurrentRound)
	}

	r.Remove("m1")
	if _, ok := r.Get("m1"); ok {
		t.Fatalf("expected m1 to be gone after remove")
	}
}

func TestAssignSlotFillsAThenBThenRejects(t *testing.T) {
	r := NewRegistry()
	r.Create("m1", core.GameState{})

	c1, c2, c3 := &fakeConn{"c1"}, &fakeConn{"c2"}, &fakeConn{"c3"}

	slot1, err := r.AssignSlot("m1", c1)
	if err != nil || slot1 != core.P1 {
		t.Fatalf("expected first connection to get P1, got %s err=%v", slot1, err)
	}
	slot2, err := r.AssignSlot("m1", c2)
	if err != nil || slot2 != core.P2 {
		t.Fatalf("expected second connection to get P2, got %s err=%v", slot2, err)
	}
	if _, err := r.AssignSlot("m1", c3); err == nil {
		t.Fatalf("expected third connection to be rejected, match full")
	}
}

func TestVacateSlot(t *testing.T) {
	r := NewRegistry()
	r.Create("m1", core.GameState{})
	c1 := &fakeConn{"c1"}
	r.AssignSlot("m1", c1)

	slot, ok := r.VacateSlot("m1", c1)
	if !ok || slot != core.P1 {
		t.Fatalf("expected to vacate P1, got %s ok=%v", slot, ok)
	}
	if r.ConnectionCount("m1") != 0 {
		t.Fatalf("expected 0 connections after vacate")
	}
}
