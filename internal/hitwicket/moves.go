package hitwicket

import "github.com/sanathkumarr/hitwicket-backend/internal/entity"

var pieceOffsets = map[string][]entity.Position{
	entity.PiecePawn:  {{Row: 1}, {Row: -1}, {Col: 1}, {Col: -1}},
	entity.PieceHero1: {{Row: 2}, {Row: -2}, {Col: 2}, {Col: -2}},
	entity.PieceHero2: {{Row: 2, Col: 2}, {Row: 2, Col: -2}, {Row: -2, Col: 2}, {Row: -2, Col: -2}},
}

// PossibleMoves lists the destinations ValidateMove would accept for the piece
// at the given position. It exists for client-side highlighting only; every
// submitted move is re-validated regardless.
func PossibleMoves(board *entity.Board, mover string, from entity.Position) []entity.Position {
	if !board.Contains(from) {
		return nil
	}

	offsets := pieceOffsets[entity.Kind(board.At(from))]

	moves := make([]entity.Position, 0, len(offsets))
	for _, offset := range offsets {
		to := entity.Position{Row: from.Row + offset.Row, Col: from.Col + offset.Col}
		if ValidateMove(board, mover, from, to) == nil {
			moves = append(moves, to)
		}
	}

	return moves
}
