package pkg

import "github.com/google/uuid"

// GenerateConnectionID returns a fresh identity for one socket connection.
func GenerateConnectionID() string {
	return uuid.NewString()
}

// GenerateGameID returns an identifier for a game room.
func GenerateGameID() string {
	return uuid.NewString()
}

// GenerateUsername derives a default display name from a connection id for
// clients that don't supply one.
func GenerateUsername(connID string) string {
	if len(connID) > 8 {
		connID = connID[:8]
	}
	return "player-" + connID
}
