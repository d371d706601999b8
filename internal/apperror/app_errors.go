package apperror

import "errors"

// User-facing rejection reasons. All of them are recoverable: the room reports
// them to the connection that caused them and leaves the game untouched.
var (
	ErrNoPieceAtSource = errors.New("no piece at the source cell")
	ErrNotYourPiece    = errors.New("that piece is not yours")
	ErrOutOfBounds     = errors.New("destination is outside the board")
	ErrFriendlyFire    = errors.New("destination holds your own piece")
	ErrIllegalShape    = errors.New("that piece cannot move like that")
	ErrPathBlocked     = errors.New("your own piece blocks the path")

	ErrWrongTurn        = errors.New("it's not your turn")
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotAPlayer       = errors.New("spectators cannot make moves")
	ErrEmptyMessage     = errors.New("chat message is empty")
)
