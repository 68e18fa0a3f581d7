package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/pocketarcade/tictactoe/internal/apperror"
	"github.com/pocketarcade/tictactoe/internal/engine"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

var ErrInvalidCell = errors.New("invalid cell index")

// Checkpoint is the single stored prior state. Saving a new one overwrites
// the last, so undo never goes back more than one step.
type Checkpoint struct {
	Board [9]string `json:"board"`
	Turn  string    `json:"turn"`
}

type Game struct {
	Board      [9]string   `json:"board"`
	Winner     string      `json:"winner,omitempty"`
	WinLine    *[3]int     `json:"win_line,omitempty"`
	Status     string      `json:"status"`
	Turn       string      `json:"player_turn"`
	Starter    string      `json:"starter"`
	Checkpoint *Checkpoint `json:"checkpoint,omitempty"`
}

func NewGame(starter string) *Game {
	if starter != PlayerX && starter != PlayerO {
		starter = PlayerX
	}

	return &Game{
		Board:   [9]string{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell},
		Turn:    starter,
		Starter: starter,
		Status:  StatusOngoing,
	}
}

// EngineBoard converts the stored string cells into the engine's typed board.
func (that *Game) EngineBoard() engine.Board {
	var board engine.Board
	for i, cell := range that.Board {
		board[i] = MarkOf(cell)
	}
	return board
}

func MarkOf(cell string) engine.Mark {
	switch cell {
	case PlayerX:
		return engine.X
	case PlayerO:
		return engine.O
	default:
		return engine.Empty
	}
}

// UpdateGameState derives winner, winning line and status from the engine
// verdict. The engine is the only place that knows when a game has ended.
func (that *Game) UpdateGameState() {
	verdict := engine.Evaluate(that.EngineBoard())
	switch verdict.Status {
	case engine.Won:
		line := verdict.Line
		that.Winner = verdict.Winner.String()
		that.WinLine = &line
		that.Status = StatusFinished
		that.Turn = EmptyCell
	case engine.Draw:
		that.Winner = PlayerTie
		that.WinLine = nil
		that.Status = StatusFinished
		that.Turn = EmptyCell
	case engine.InProgress:
		that.Winner = EmptyCell
		that.WinLine = nil
		that.Status = StatusOngoing
	}
}

func (that *Game) MakeTurn(playerMark string, cell int) error {
	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = playerMark

	// It's simple logic for a game changing move
	if that.Turn == PlayerX {
		that.Turn = PlayerO
	} else {
		that.Turn = PlayerX
	}

	that.UpdateGameState()

	return nil
}

// SaveCheckpoint remembers the current board and turn as the one undo step.
func (that *Game) SaveCheckpoint() {
	that.Checkpoint = &Checkpoint{Board: that.Board, Turn: that.Turn}
}

// Undo restores the saved checkpoint and consumes it. Works on a finished
// game too, so a lost round can be taken back.
func (that *Game) Undo() error {
	if that.Checkpoint == nil {
		return apperror.ErrNothingToUndo
	}

	that.Board = that.Checkpoint.Board
	that.Turn = that.Checkpoint.Turn
	that.Checkpoint = nil
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func GetRandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}
