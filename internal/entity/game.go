package entity

import (
	"fmt"

	"github.com/sanathkumarr/hitwicket-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

var ErrUnknownGameStatus = fmt.Errorf("unknown game status")

// MoveRecord is one accepted move. Records are append-only and never mutated;
// their order is the chronological move order.
type MoveRecord struct {
	Piece   string `json:"piece"`
	FromRow int    `json:"fromRow"`
	FromCol int    `json:"fromCol"`
	ToRow   int    `json:"toRow"`
	ToCol   int    `json:"toCol"`
}

// String renders the record the way the move history is displayed,
// e.g. "A-P1:0-0 to 1-0".
func (that MoveRecord) String() string {
	return fmt.Sprintf("%s:%d-%d to %d-%d", that.Piece, that.FromRow, that.FromCol, that.ToRow, that.ToCol)
}

type ChatMessage struct {
	Player    string `json:"player"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Game is the authoritative state of one room. It is owned and mutated
// exclusively by the room's command loop; everything else works on snapshots.
type Game struct {
	ID      string             `json:"id"`
	Board   Board              `json:"board"`
	Turn    string             `json:"currentPlayer"`
	Winner  string             `json:"winner"`
	Status  string             `json:"status"`
	History []MoveRecord       `json:"history"`
	Chat    []ChatMessage      `json:"chat"`
	Players map[string]*Player `json:"players"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:      id,
		Board:   NewBoard(),
		Turn:    PlayerA,
		Status:  StatusWaiting,
		History: []MoveRecord{},
		Chat:    []ChatMessage{},
		Players: map[string]*Player{},
	}
}

// Reset puts the board back to the initial layout and clears the move history.
// Chat and player bindings survive a restart.
func (that *Game) Reset() {
	that.Board = NewBoard()
	that.Turn = PlayerA
	that.Winner = EmptyCell
	that.History = []MoveRecord{}

	if len(that.Players) == 2 {
		that.Status = StatusOngoing
	} else {
		that.Status = StatusWaiting
	}
}

// Bind assigns the player to the first free slot, A before B. It reports false
// when both slots are taken.
func (that *Game) Bind(player *Player) (string, bool) {
	for _, slot := range []string{PlayerA, PlayerB} {
		if that.Players[slot] != nil {
			continue
		}

		player.Slot = slot
		that.Players[slot] = player

		if len(that.Players) == 2 && !that.IsFinished() {
			that.Status = StatusOngoing
		}

		return slot, true
	}

	return "", false
}

// Unbind frees the slot held by the given connection, if any. A room with a
// freed slot goes back to waiting until someone takes the slot again.
func (that *Game) Unbind(connID string) (string, bool) {
	for slot, player := range that.Players {
		if player.ID != connID {
			continue
		}

		delete(that.Players, slot)
		if !that.IsFinished() {
			that.Status = StatusWaiting
		}

		return slot, true
	}

	return "", false
}

// SlotOf returns "A" or "B" for a bound connection, or EmptyCell for
// spectators and unknown connections.
func (that *Game) SlotOf(connID string) string {
	for slot, player := range that.Players {
		if player.ID == connID {
			return slot
		}
	}

	return EmptyCell
}

// DetermineWinner checks for elimination. The just-moved player's opponent is
// checked first so precedence stays deterministic.
func (that *Game) DetermineWinner(lastMover string) string {
	opponent := OpponentOf(lastMover)

	if that.Board.CountPieces(opponent) == 0 {
		return lastMover
	}

	if that.Board.CountPieces(lastMover) == 0 {
		return opponent
	}

	return EmptyCell
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// Snapshot returns a deep copy safe to hand to other goroutines. The board is
// an array and copies by value; history, chat and players need cloning.
func (that *Game) Snapshot() Game {
	snapshot := *that

	snapshot.History = make([]MoveRecord, len(that.History))
	copy(snapshot.History, that.History)

	snapshot.Chat = make([]ChatMessage, len(that.Chat))
	copy(snapshot.Chat, that.Chat)

	snapshot.Players = make(map[string]*Player, len(that.Players))
	for slot, player := range that.Players {
		clone := *player
		snapshot.Players[slot] = &clone
	}

	return snapshot
}
