package entity

import (
	"fmt"
	"strings"
)

const BoardSize = 5

const EmptyCell = ""

const (
	PlayerA = "A"
	PlayerB = "B"
)

const (
	PiecePawn  = "P1"
	PieceHero1 = "H1"
	PieceHero2 = "H2"
)

// Board is a row-major 5x5 grid. Row 0 is player A's home row, row 4 is
// player B's. Each cell is either EmptyCell or "<owner>-<kind>", e.g. "A-P1".
// The cell encoding is the wire format and must round-trip as-is.
type Board [BoardSize][BoardSize]string

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewBoard returns a board with the fixed initial layout: both home rows hold
// P1,H1,H2,H1,P1 and the middle rows are empty.
func NewBoard() Board {
	var board Board

	homeRow := []string{PiecePawn, PieceHero1, PieceHero2, PieceHero1, PiecePawn}
	for col, kind := range homeRow {
		board[0][col] = MakeCell(PlayerA, kind)
		board[BoardSize-1][col] = MakeCell(PlayerB, kind)
	}

	return board
}

func MakeCell(owner, kind string) string {
	return owner + "-" + kind
}

// Owner returns "A", "B" or EmptyCell for an empty cell.
func Owner(cell string) string {
	owner, _, _ := strings.Cut(cell, "-")
	return owner
}

// Kind returns the piece kind ("P1", "H1", "H2") or EmptyCell for an empty cell.
func Kind(cell string) string {
	_, kind, _ := strings.Cut(cell, "-")
	return kind
}

func OpponentOf(player string) string {
	if player == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// Contains reports whether the position is inside the 5x5 grid. Every access
// goes through this check; indexing out of bounds is a programming error.
func (that *Board) Contains(pos Position) bool {
	return pos.Row >= 0 && pos.Row < BoardSize && pos.Col >= 0 && pos.Col < BoardSize
}

func (that *Board) At(pos Position) string {
	return that[pos.Row][pos.Col]
}

func (that *Board) Set(pos Position, cell string) {
	that[pos.Row][pos.Col] = cell
}

// CountPieces returns how many occupants the given player has left.
func (that *Board) CountPieces(player string) int {
	count := 0
	for row := range that {
		for col := range that[row] {
			if Owner(that[row][col]) == player {
				count++
			}
		}
	}

	return count
}

func (that Position) String() string {
	return fmt.Sprintf("%d-%d", that.Row, that.Col)
}
