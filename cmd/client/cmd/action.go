package cmd

import (
	"fmt"
	"time"

	"github.com/turnforge/gridclash/internal/wsclient"
	"github.com/turnforge/gridclash/protocol"
)

// runOneShotAction dials the server, joins matchID, sends one action built
// from inbound, prints whatever comes back, and returns once a terminal
// response (state_update, game_over, or validation_error) arrives.
func runOneShotAction(inbound protocol.InboundAction) error {
	id, err := getMatchID()
	if err != nil {
		return err
	}

	client, err := wsclient.Dial(getServerURL())
	if err != nil {
		return err
	}
	defer client.Close()

	joined, err := client.JoinMatch(id, 5*time.Second)
	if err != nil {
		return fmt.Errorf("join match: %w", err)
	}
	if isVerbose() {
		fmt.Printf("[verbose] joined as %s\n", joined.PlayerID)
	}

	if err := client.Send(protocol.TypeAction, protocol.ActionPayload{
		MatchID: id, PlayerID: string(joined.PlayerID), Action: inbound,
	}); err != nil {
		return err
	}

	for {
		env, err := client.Next()
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		printEnvelope(env)
		switch env.Type {
		case protocol.TypeStateUpdate, protocol.TypeGameOver, protocol.TypeValidationError:
			return nil
		}
	}
}
