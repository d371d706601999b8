package entity

// Player is a connection bound to one of the two authoritative slots.
// Spectator connections never appear in Game.Players.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Slot     string `json:"slot,omitempty"`
}
