package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanathkumarr/hitwicket-backend/internal/apperror"
)

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.True(t, game.IsFinished())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.True(t, game.IsOngoing())
	})

	t.Run("IsWaiting returns true when game status is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}

		assert.True(t, game.IsWaiting())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown game status")
	})
}

func TestGame_Bind(t *testing.T) {
	t.Run("First two connections take slot A then B and the game starts", func(t *testing.T) {
		// Given: an empty game
		game := NewGame("room-1")

		// When: two connections bind
		slotOne, okOne := game.Bind(&Player{ID: "conn-1", Username: "alice"})
		slotTwo, okTwo := game.Bind(&Player{ID: "conn-2", Username: "bob"})

		// Then: they get A and B and the game transitions to ongoing
		require.True(t, okOne)
		require.True(t, okTwo)
		assert.Equal(t, PlayerA, slotOne)
		assert.Equal(t, PlayerB, slotTwo)
		assert.True(t, game.IsOngoing())
	})

	t.Run("Third connection gets no slot", func(t *testing.T) {
		game := NewGame("room-1")
		game.Bind(&Player{ID: "conn-1"})
		game.Bind(&Player{ID: "conn-2"})

		_, ok := game.Bind(&Player{ID: "conn-3"})

		assert.False(t, ok)
	})

	t.Run("Single bound player keeps the game waiting", func(t *testing.T) {
		game := NewGame("room-1")

		_, ok := game.Bind(&Player{ID: "conn-1"})

		require.True(t, ok)
		assert.True(t, game.IsWaiting())
	})
}

func TestGame_Unbind(t *testing.T) {
	t.Run("Frees the slot and pauses the game", func(t *testing.T) {
		// Given: a running game with both slots bound
		game := NewGame("room-1")
		game.Bind(&Player{ID: "conn-1"})
		game.Bind(&Player{ID: "conn-2"})
		require.True(t, game.IsOngoing())

		// When: player A's connection goes away
		slot, wasPlayer := game.Unbind("conn-1")

		// Then: the slot is free again and the game waits for a replacement
		require.True(t, wasPlayer)
		assert.Equal(t, PlayerA, slot)
		assert.True(t, game.IsWaiting())
		assert.Equal(t, EmptyCell, game.SlotOf("conn-1"))

		// And: the freed slot is handed to the next joiner
		slot, ok := game.Bind(&Player{ID: "conn-3"})
		require.True(t, ok)
		assert.Equal(t, PlayerA, slot)
		assert.True(t, game.IsOngoing())
	})

	t.Run("Unknown connection is not a player", func(t *testing.T) {
		game := NewGame("room-1")

		_, wasPlayer := game.Unbind("nobody")

		assert.False(t, wasPlayer)
	})
}

func TestGame_DetermineWinner(t *testing.T) {
	t.Run("Returns no winner while both sides have pieces", func(t *testing.T) {
		game := NewGame("room-1")

		assert.Equal(t, EmptyCell, game.DetermineWinner(PlayerA))
	})

	t.Run("Mover wins when the opponent has no pieces left", func(t *testing.T) {
		// Given: a board where only A pieces remain
		game := NewGame("room-1")
		for col := 0; col < BoardSize; col++ {
			game.Board[4][col] = EmptyCell
		}

		// When/Then: A is the winner after A's move
		assert.Equal(t, PlayerA, game.DetermineWinner(PlayerA))
	})

	t.Run("Opponent is checked before the mover", func(t *testing.T) {
		// Given: an impossible board with no pieces at all
		game := &Game{}

		// Then: precedence is deterministic, the mover is declared winner
		assert.Equal(t, PlayerA, game.DetermineWinner(PlayerA))
		assert.Equal(t, PlayerB, game.DetermineWinner(PlayerB))
	})
}

func TestGame_Reset(t *testing.T) {
	t.Run("Puts the board back to the initial layout and clears history", func(t *testing.T) {
		// Given: a finished game with moves and chat
		game := NewGame("room-1")
		game.Bind(&Player{ID: "conn-1"})
		game.Bind(&Player{ID: "conn-2"})
		game.Board[1][0] = MakeCell(PlayerA, PiecePawn)
		game.Board[0][0] = EmptyCell
		game.Turn = PlayerB
		game.Winner = PlayerA
		game.Status = StatusFinished
		game.History = append(game.History, MoveRecord{Piece: "A-P1", ToRow: 1})
		game.Chat = append(game.Chat, ChatMessage{Player: PlayerA, Text: "gg"})

		// When: the game restarts
		game.Reset()

		// Then: board, turn, winner and history are back to the start
		assert.Equal(t, NewBoard(), game.Board)
		assert.Equal(t, PlayerA, game.Turn)
		assert.Equal(t, EmptyCell, game.Winner)
		assert.Empty(t, game.History)

		// And: chat and player bindings survive
		assert.Len(t, game.Chat, 1)
		assert.Len(t, game.Players, 2)
		assert.True(t, game.IsOngoing())
	})

	t.Run("Stays waiting when a slot is free", func(t *testing.T) {
		game := NewGame("room-1")
		game.Bind(&Player{ID: "conn-1"})

		game.Reset()

		assert.True(t, game.IsWaiting())
	})
}

func TestGame_Snapshot(t *testing.T) {
	t.Run("Snapshot is independent of later mutations", func(t *testing.T) {
		// Given: a game with some state
		game := NewGame("room-1")
		game.Bind(&Player{ID: "conn-1", Username: "alice"})
		game.History = append(game.History, MoveRecord{Piece: "A-P1"})
		game.Chat = append(game.Chat, ChatMessage{Player: PlayerA, Text: "hi"})

		// When: taking a snapshot and then mutating the original
		snapshot := game.Snapshot()
		game.Board[2][2] = MakeCell(PlayerB, PieceHero1)
		game.History[0].Piece = "B-H1"
		game.Chat[0].Text = "changed"
		game.Players[PlayerA].Username = "mallory"

		// Then: the snapshot still shows the old state
		assert.Equal(t, EmptyCell, snapshot.Board[2][2])
		assert.Equal(t, "A-P1", snapshot.History[0].Piece)
		assert.Equal(t, "hi", snapshot.Chat[0].Text)
		assert.Equal(t, "alice", snapshot.Players[PlayerA].Username)
	})
}

func TestMoveRecord_String(t *testing.T) {
	record := MoveRecord{Piece: "A-P1", FromRow: 0, FromCol: 0, ToRow: 1, ToCol: 0}

	assert.Equal(t, "A-P1:0-0 to 1-0", record.String())
}
