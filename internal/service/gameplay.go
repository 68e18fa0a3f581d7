package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pocketarcade/tictactoe/internal/apperror"
	"github.com/pocketarcade/tictactoe/internal/entity"
)

var (
	ErrUnknownMode  = errors.New("unknown session mode")
	ErrRoundNotOver = errors.New("round is not over yet")
)

type GamePlayService interface {
	NewSession(ctx context.Context, mode, strategy string) (*entity.Session, error)
	Resume(ctx context.Context) (*entity.Session, error)

	MakeTurn(ctx context.Context, session *entity.Session, cell int) error
	MakeBotTurn(ctx context.Context, session *entity.Session) error
	Undo(ctx context.Context, session *entity.Session) error
	NextRound(ctx context.Context, session *entity.Session) error

	Abandon(ctx context.Context, session *entity.Session)
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetLast(ctx context.Context) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type gamePlayService struct {
	logger *slog.Logger

	sessionRepo sessionRepo
	botService  BotService
}

func NewGamePlayService(logger *slog.Logger, sessionRepo sessionRepo, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:      logger,
		sessionRepo: sessionRepo,
		botService:  botService,
	}
}

// NewSession starts a fresh sitting. X always opens the first round; in a bot
// session the marks are split at random, so the bot may well open the game.
func (that *gamePlayService) NewSession(ctx context.Context, mode, strategy string) (*entity.Session, error) {
	session := &entity.Session{
		ID:   uuid.NewString(),
		Mode: mode,
		Game: entity.NewGame(entity.PlayerX),
	}

	switch mode {
	case entity.PvPMode:
		session.Players = []*entity.Player{
			entity.NewHumanPlayer("Player 1", entity.PlayerX),
			entity.NewHumanPlayer("Player 2", entity.PlayerO),
		}
	case entity.WithBotMode:
		if strategy == "" {
			strategy = entity.OptimalStrategy
		}
		session.Strategy = strategy

		humanMark, botMark := entity.GetRandomMarks()
		session.Players = []*entity.Player{
			entity.NewHumanPlayer("You", humanMark),
			entity.NewBotPlayer(botMark),
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

func (that *gamePlayService) Resume(ctx context.Context) (*entity.Session, error) {
	session, err := that.sessionRepo.GetLast(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load last session: %w", err)
	}

	return session, nil
}

func (that *gamePlayService) MakeTurn(ctx context.Context, session *entity.Session, cell int) error {
	game := session.Game

	if bot := session.BotPlayer(); bot != nil && bot.Mark == game.Turn {
		return apperror.ErrNotYourTurn
	}

	// checkpoint before the move, but roll it back if the move is rejected
	// so a failed attempt does not burn the undo step
	prev := game.Checkpoint
	game.SaveCheckpoint()

	if err := game.MakeTurn(game.Turn, cell); err != nil {
		game.Checkpoint = prev
		return fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsFinished() {
		session.Scoreboard.Record(game.Winner)
	}

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (that *gamePlayService) MakeBotTurn(ctx context.Context, session *entity.Session) error {
	bot := session.BotPlayer()
	if bot == nil {
		return ErrBotNotFound
	}

	game := session.Game
	if game.Turn != bot.Mark {
		return apperror.ErrNotYourTurn
	}

	cell, err := that.botService.ChooseCell(game, bot.Mark, session.Strategy)
	if err != nil {
		return fmt.Errorf("bot failed to choose a cell: %w", err)
	}

	// no checkpoint here: the one from the human's move stays, so a single
	// undo rewinds the human move and the bot's reply together
	if err = game.MakeTurn(bot.Mark, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	if game.IsFinished() {
		session.Scoreboard.Record(game.Winner)
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (that *gamePlayService) Undo(ctx context.Context, session *entity.Session) error {
	game := session.Game

	finishedWinner := entity.EmptyCell
	if game.IsFinished() {
		finishedWinner = game.Winner
	}

	if err := game.Undo(); err != nil {
		return fmt.Errorf("failed to undo: %w", err)
	}

	// taking back the finishing move also takes back its tally
	if finishedWinner != entity.EmptyCell {
		session.Scoreboard.Unrecord(finishedWinner)
	}

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (that *gamePlayService) NextRound(ctx context.Context, session *entity.Session) error {
	if !session.Game.IsFinished() {
		return ErrRoundNotOver
	}

	session.StartNextRound()

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (that *gamePlayService) Abandon(ctx context.Context, session *entity.Session) {
	log := that.logger.With("method", "abandon", "sessionID", session.ID)

	if err := that.sessionRepo.DeleteByID(ctx, session.ID); err != nil {
		log.Error("failed to delete session", "error", err)
	}
}
