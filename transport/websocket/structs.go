package websocket

import (
	"encoding/json"

	"github.com/sanathkumarr/hitwicket-backend/internal/entity"
)

// Inbound event names.
const (
	ActionJoinGame      = "join-game"
	ActionJoinSpectator = "join-spectator"
	ActionMove          = "move"
	ActionChatMessage   = "chat-message"
	ActionRestartGame   = "restart-game"
	ActionPossibleMoves = "possible-moves"
	ActionError         = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type JoinPayload struct {
	Username string `json:"username,omitempty"`
}

// MovePayload is the client's move intent. The server recomputes everything
// from it; clients never ship game state.
type MovePayload struct {
	From entity.Position `json:"from"`
	To   entity.Position `json:"to"`
}

type PossibleMovesPayload struct {
	From entity.Position `json:"from"`
}

type PossibleMovesResponse struct {
	From  entity.Position   `json:"from"`
	Moves []entity.Position `json:"moves"`
}
