package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/pocketarcade/tictactoe/internal/engine"
	"github.com/pocketarcade/tictactoe/internal/entity"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrUnknownStrategy  = errors.New("unknown bot strategy")
)

type BotService interface {
	ChooseCell(game *entity.Game, botMark, strategy string) (int, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// ChooseCell picks the bot's next cell without applying it. The strategy is
// explicit per call, so sessions with different difficulties can share one
// service.
func (that *botService) ChooseCell(game *entity.Game, botMark, strategy string) (int, error) {
	switch strategy {
	case entity.RandomStrategy:
		return that.randomCell(game)
	case entity.OptimalStrategy:
		return that.optimalCell(game, botMark)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

func (that *botService) randomCell(game *entity.Game) (int, error) {
	availableCells := game.EngineBoard().EmptyCells()
	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	return availableCells[rand.Intn(len(availableCells))], nil //nolint: gosec // it's ok
}

func (that *botService) optimalCell(game *entity.Game, botMark string) (int, error) {
	cell, err := engine.BestMove(game.EngineBoard(), entity.MarkOf(botMark))
	if err != nil {
		return 0, fmt.Errorf("failed to search best move: %w", err)
	}

	return cell, nil
}
