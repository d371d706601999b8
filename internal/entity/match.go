package entity

import "time"

// MatchRecord is the archived result of a finished game.
type MatchRecord struct {
	GameID     string       `json:"gameId"`
	Winner     string       `json:"winner"`
	Moves      int          `json:"moves"`
	History    []MoveRecord `json:"history"`
	FinishedAt time.Time    `json:"finishedAt"`
}
