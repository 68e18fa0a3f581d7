package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when BestMove is asked about a board that has
// no move to search: the game is already decided, or the side cannot move.
var ErrInvalidState = errors.New("invalid state for move search")

// BestMove returns the optimal cell for side on an in-progress board.
//
// The search is an exhaustive minimax over every empty cell, no pruning:
// a leaf scores +1 when side wins, -1 when the opponent wins, 0 for a draw.
// Ties break deterministically toward the lowest cell index, so equal boards
// always produce equal moves.
func BestMove(board Board, side Mark) (int, error) {
	if side != X && side != O {
		return 0, fmt.Errorf("%w: side must be X or O", ErrInvalidState)
	}

	if verdict := Evaluate(board); verdict.Status != InProgress {
		return 0, fmt.Errorf("%w: game is not in progress", ErrInvalidState)
	}

	bestCell := -1
	bestScore := 0

	for i, cell := range board {
		if cell != Empty {
			continue
		}

		next := board
		next[i] = side

		// only a strictly better score replaces the candidate, which keeps
		// the first optimal cell in ascending order
		if score := minimax(next, side, side.Opponent()); bestCell == -1 || score > bestScore {
			bestCell = i
			bestScore = score
		}
	}

	return bestCell, nil
}

func minimax(board Board, side, turn Mark) int {
	verdict := Evaluate(board)
	switch verdict.Status {
	case Won:
		if verdict.Winner == side {
			return 1
		}
		return -1
	case Draw:
		return 0
	case InProgress:
	}

	maximizing := turn == side

	// scores live in [-1, 1], so 2 works as an unreachable bound
	best := 2
	if maximizing {
		best = -2
	}

	for i, cell := range board {
		if cell != Empty {
			continue
		}

		next := board
		next[i] = turn

		score := minimax(next, side, turn.Opponent())
		if maximizing && score > best {
			best = score
		}
		if !maximizing && score < best {
			best = score
		}
	}

	return best
}
