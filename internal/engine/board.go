// Package engine holds the game rules: board representation, verdict
// evaluation and optimal move search. It is pure and knows nothing about
// sessions, rendering or storage.
package engine

// Mark is the content of a single cell.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Mark) String() string {
	switch that {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Board is a 3x3 grid in row-major order, cells 0 through 8.
// It is passed by value everywhere, so callers never observe mutations.
type Board [9]Mark

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}
	return true
}

func (that Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == Empty {
			cells = append(cells, i)
		}
	}
	return cells
}

// Lines are the eight winning triples, scanned in this exact order.
var Lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Status uint8

const (
	InProgress Status = iota
	Won
	Draw
)

// Verdict is the outcome of evaluating a board. Winner and Line are only
// meaningful when Status is Won.
type Verdict struct {
	Status Status
	Winner Mark
	Line   [3]int
}

// Evaluate classifies any board, legal or not. The first completed line in
// Lines order wins, so even a corrupt double-win board gets a deterministic
// answer.
func Evaluate(board Board) Verdict {
	for _, line := range Lines {
		a := board[line[0]]
		if a != Empty && a == board[line[1]] && a == board[line[2]] {
			return Verdict{Status: Won, Winner: a, Line: line}
		}
	}

	if board.IsFull() {
		return Verdict{Status: Draw}
	}

	return Verdict{Status: InProgress}
}
