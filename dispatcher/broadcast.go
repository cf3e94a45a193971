package dispatcher

import (
	"encoding/json"

	"github.com/panyam/gocurrent"

	"github.com/turnforge/gridclash/protocol"
)

// getFanOut returns (or lazily creates) the broadcast FanOut for matchID,
// grounded on the same per-game FanOut pattern the teacher uses for
// broadcasting game updates to every connected viewer.
func (d *Dispatcher) getFanOut(matchID string) *gocurrent.FanOut[*protocol.Envelope] {
	d.mu.Lock()
	defer d.mu.Unlock()
	if fo, ok := d.fanOuts[matchID]; ok {
		return fo
	}
	fo := gocurrent.NewFanOut[*protocol.Envelope](
		gocurrent.WithFanOutInputBuffer[*protocol.Envelope](16),
	)
	d.fanOuts[matchID] = fo
	return fo
}

// subscribe attaches connID's output channel to matchID's FanOut and spawns
// the single goroutine that drains it onto the real transport connection.
// It exits, and unsubscribes, once the FanOut closes that channel.
func (d *Dispatcher) subscribe(connID string, entry *connEntry) {
	fo := d.getFanOut(entry.matchID)
	outputChan := fo.New(nil)

	go func() {
		defer func() { <-fo.Remove(outputChan, true) }()
		for env := range outputChan {
			if err := entry.conn.Send(env); err != nil {
				d.log.Warn("fan-out send failed", "connId", connID, "matchId", entry.matchID, "err", err)
				return
			}
		}
	}()
}

// broadcast fans typ/payload out to every slot currently subscribed to
// matchID. If nobody is subscribed yet the message is simply dropped, the
// same as the teacher's broadcastInternal behavior for an empty FanOut.
func (d *Dispatcher) broadcast(matchID string, typ string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		d.log.Error("marshal broadcast payload", "type", typ, "err", err)
		return
	}
	fo := d.getFanOut(matchID)
	if fo.Count() == 0 {
		return
	}
	fo.Send(&protocol.Envelope{Type: typ, Payload: raw})
}
