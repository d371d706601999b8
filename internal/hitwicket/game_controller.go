package hitwicket

import (
	"fmt"

	"github.com/sanathkumarr/hitwicket-backend/internal/apperror"
	"github.com/sanathkumarr/hitwicket-backend/internal/entity"
)

// MakeTurn validates and applies one move for the given player. On any error
// the game is left completely untouched: board, turn and history keep their
// previous values.
func MakeTurn(gameInstance *entity.Game, player string, from, to entity.Position) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if gameInstance.IsWaiting() {
		return apperror.ErrGameIsNotStarted
	}

	if gameInstance.Turn != player {
		return apperror.ErrWrongTurn
	}

	if err := ValidateMove(&gameInstance.Board, player, from, to); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	applyMove(gameInstance, from, to)
	updateGameStatus(gameInstance, player)

	return nil
}

// applyMove mutates the board and appends the move record. The move has
// already been validated: the intermediate cell of a hero move can only hold
// an enemy piece here, and clearing it is the path capture.
func applyMove(gameInstance *entity.Game, from, to entity.Position) {
	piece := gameInstance.Board.At(from)

	if mid, ok := pathIntermediate(from, to); ok {
		gameInstance.Board.Set(mid, entity.EmptyCell)
	}

	gameInstance.Board.Set(to, piece)
	gameInstance.Board.Set(from, entity.EmptyCell)

	gameInstance.History = append(gameInstance.History, entity.MoveRecord{
		Piece:   piece,
		FromRow: from.Row,
		FromCol: from.Col,
		ToRow:   to.Row,
		ToCol:   to.Col,
	})
}

// updateGameStatus - checks the game result after a move.
func updateGameStatus(gameInstance *entity.Game, player string) {
	if winner := gameInstance.DetermineWinner(player); winner != entity.EmptyCell {
		gameInstance.Winner = winner
		gameInstance.Status = entity.StatusFinished
		return
	}

	gameInstance.Turn = entity.OpponentOf(player)
}
