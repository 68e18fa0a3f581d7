package apperror

import "errors"

var (
	ErrGameFinished  = errors.New("game is already finished")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrNothingToUndo = errors.New("nothing to undo")
)
