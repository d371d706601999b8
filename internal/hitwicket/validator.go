package hitwicket

import (
	"github.com/sanathkumarr/hitwicket-backend/internal/apperror"
	"github.com/sanathkumarr/hitwicket-backend/internal/entity"
)

// ValidateMove decides legality of a move for the given mover without touching
// the board. Checks run in a fixed order and stop at the first failure, so the
// same illegal move is always rejected for the same reason.
func ValidateMove(board *entity.Board, mover string, from, to entity.Position) error {
	if !board.Contains(from) {
		return apperror.ErrOutOfBounds
	}

	cell := board.At(from)
	if cell == entity.EmptyCell {
		return apperror.ErrNoPieceAtSource
	}

	if entity.Owner(cell) != mover {
		return apperror.ErrNotYourPiece
	}

	if !board.Contains(to) {
		return apperror.ErrOutOfBounds
	}

	if entity.Owner(board.At(to)) == mover {
		return apperror.ErrFriendlyFire
	}

	if !legalShape(entity.Kind(cell), from, to) {
		return apperror.ErrIllegalShape
	}

	// Hero moves sweep their intermediate cell. An enemy piece there is
	// captured; a friendly piece blocks the move entirely.
	if mid, ok := pathIntermediate(from, to); ok && entity.Owner(board.At(mid)) == mover {
		return apperror.ErrPathBlocked
	}

	return nil
}

// legalShape checks the (dRow, dCol) displacement against the piece-kind rule:
// pawns step one cell orthogonally, Hero1 jumps two cells straight, Hero2 jumps
// two cells diagonally.
func legalShape(kind string, from, to entity.Position) bool {
	dRow := abs(to.Row - from.Row)
	dCol := abs(to.Col - from.Col)

	switch kind {
	case entity.PiecePawn:
		return dRow+dCol == 1
	case entity.PieceHero1:
		return (dRow == 2 && dCol == 0) || (dRow == 0 && dCol == 2)
	case entity.PieceHero2:
		return dRow == 2 && dCol == 2
	default:
		return false
	}
}

// pathIntermediate returns the single cell strictly between source and
// destination of a two-step move, and false for one-step moves.
func pathIntermediate(from, to entity.Position) (entity.Position, bool) {
	if abs(to.Row-from.Row) != 2 && abs(to.Col-from.Col) != 2 {
		return entity.Position{}, false
	}

	return entity.Position{
		Row: (from.Row + to.Row) / 2,
		Col: (from.Col + to.Col) / 2,
	}, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
