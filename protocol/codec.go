package protocol

import (
	"encoding/json"
	"fmt"
)

// Envelope is the outer {"type":..., "payload":...} wire frame shared by
// every inbound and outbound message.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Encode marshals type and payload into one wire frame.
func Encode(typ string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return json.Marshal(Envelope{Type: typ, Payload: raw})
}

// Decode parses one inbound wire frame into its envelope, leaving Payload
// as raw JSON for the caller to unmarshal against the shape its Type
// implies.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("malformed message: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("missing message type")
	}
	return env, nil
}

// DecodeJoinMatch unmarshals an envelope's payload as JoinMatchPayload.
func DecodeJoinMatch(env Envelope) (JoinMatchPayload, error) {
	var p JoinMatchPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return p, fmt.Errorf("malformed join_match payload: %w", err)
	}
	if p.MatchID == "" {
		return p, fmt.Errorf("missing matchId")
	}
	return p, nil
}

// DecodeAction unmarshals an envelope's payload as ActionPayload.
func DecodeAction(env Envelope) (ActionPayload, error) {
	var p ActionPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return p, fmt.Errorf("malformed action payload: %w", err)
	}
	if p.MatchID == "" {
		return p, fmt.Errorf("missing matchId")
	}
	if p.PlayerID == "" {
		return p, fmt.Errorf("missing playerId")
	}
	if p.Action.Type == "" {
		return p, fmt.Errorf("missing action type")
	}
	return p, nil
}
