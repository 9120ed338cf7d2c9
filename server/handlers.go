package server

import (
	"context"
	"log"

	"footballers-server/game"
	"footballers-server/protocol"
)

// handleClientMessage decodes one frame from a peer and forwards it to the
// session loop. Malformed frames are dropped. It reports false once the
// session has stopped.
func (s *Session) handleClientMessage(client *WebSocketClient, frame []byte) bool {
	msg, err := client.codec.Decode(frame)
	if err != nil {
		log.Printf("Client %s: ERROR decoding incoming message: %v", client.peerID, err)
		return true
	}

	switch m := msg.(type) {
	case protocol.PlayerInput:
		err = s.Send(context.Background(), Input{PeerID: client.peerID, Input: game.PlayerInput(m)})
	default:
		log.Printf("Client %s: WARNING unexpected message type '%s'.", client.peerID, msg.Type())
		return true
	}
	if err != nil {
		log.Printf("Client %s: %v", client.peerID, err)
		return false
	}
	return true
}

func (s *Session) leave(peerID string) {
	if err := s.Send(context.Background(), Leave{PeerID: peerID}); err != nil {
		log.Printf("Client %s: leave not delivered: %v", peerID, err)
	}
}
