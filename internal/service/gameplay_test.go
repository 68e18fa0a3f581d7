package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketarcade/tictactoe/internal/apperror"
	"github.com/pocketarcade/tictactoe/internal/entity"
	"github.com/pocketarcade/tictactoe/internal/repository"
)

func newTestGamePlayService() (GamePlayService, repository.SessionRepository) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessionRepo := repository.NewMemorySessionRepository()

	return NewGamePlayService(logger, sessionRepo, NewBotService()), sessionRepo
}

// newBotSession builds a bot session with fixed marks, so tests stay
// deterministic where NewSession would assign them at random.
func newBotSession(humanMark, botMark string) *entity.Session {
	return &entity.Session{
		ID:       "test-session",
		Mode:     entity.WithBotMode,
		Strategy: entity.OptimalStrategy,
		Players: []*entity.Player{
			entity.NewHumanPlayer("You", humanMark),
			entity.NewBotPlayer(botMark),
		},
		Game: entity.NewGame(entity.PlayerX),
	}
}

func TestGamePlayService_NewSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a pvp session with two human players", func(t *testing.T) {
		// Given: a gameplay service
		gamePlay, sessionRepo := newTestGamePlayService()

		// When: starting a pvp session
		session, err := gamePlay.NewSession(ctx, entity.PvPMode, "")

		// Then: two humans play X and O on a fresh board, and the
		// session is persisted
		require.NoError(t, err)
		require.Len(t, session.Players, 2)
		assert.Equal(t, entity.PlayerX, session.Players[0].Mark)
		assert.Equal(t, entity.PlayerO, session.Players[1].Mark)
		assert.Nil(t, session.BotPlayer())
		assert.Equal(t, entity.NewGame(entity.PlayerX), session.Game)

		stored, err := sessionRepo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, session, stored)
	})

	t.Run("Creates a bot session with marks split between human and bot", func(t *testing.T) {
		// Given: a gameplay service
		gamePlay, _ := newTestGamePlayService()

		// When: starting a bot session without naming a strategy
		session, err := gamePlay.NewSession(ctx, entity.WithBotMode, "")

		// Then: there is a bot, the strategy defaults to optimal and
		// both marks are taken
		require.NoError(t, err)
		require.NotNil(t, session.BotPlayer())
		assert.Equal(t, entity.OptimalStrategy, session.Strategy)

		marks := map[string]bool{}
		for _, player := range session.Players {
			marks[player.Mark] = true
		}
		assert.True(t, marks[entity.PlayerX])
		assert.True(t, marks[entity.PlayerO])
	})

	t.Run("Rejects an unknown mode", func(t *testing.T) {
		// Given: a gameplay service
		gamePlay, _ := newTestGamePlayService()

		// When: starting a session with a bogus mode
		_, err := gamePlay.NewSession(ctx, "tournament", "")

		// Then: an ErrUnknownMode error should be returned
		assert.ErrorIs(t, err, ErrUnknownMode)
	})
}

func TestGamePlayService_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies a human turn and persists the session", func(t *testing.T) {
		// Given: a fresh pvp session
		gamePlay, sessionRepo := newTestGamePlayService()
		session, err := gamePlay.NewSession(ctx, entity.PvPMode, "")
		require.NoError(t, err)

		// When: the X player takes the center
		err = gamePlay.MakeTurn(ctx, session, 4)

		// Then: the board updates and the stored session matches
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, session.Game.Board[4])
		assert.Equal(t, entity.PlayerO, session.Game.Turn)

		stored, err := sessionRepo.GetByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, session, stored)
	})

	t.Run("A rejected move does not burn the undo step", func(t *testing.T) {
		// Given: a pvp session where X already took cell 0
		gamePlay, _ := newTestGamePlayService()
		session, err := gamePlay.NewSession(ctx, entity.PvPMode, "")
		require.NoError(t, err)
		require.NoError(t, gamePlay.MakeTurn(ctx, session, 0))

		// When: O tries the same cell and then undoes
		err = gamePlay.MakeTurn(ctx, session, 0)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)

		err = gamePlay.Undo(ctx, session)

		// Then: the undo still rewinds the valid move
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame(entity.PlayerX), session.Game)
	})

	t.Run("Refuses the human move when it is the bot's turn", func(t *testing.T) {
		// Given: a bot session where the bot plays X and X is to move
		gamePlay, _ := newTestGamePlayService()
		session := newBotSession(entity.PlayerO, entity.PlayerX)

		// When: the human tries to move anyway
		err := gamePlay.MakeTurn(ctx, session, 0)

		// Then: an ErrNotYourTurn error should be returned
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Records the score when the turn finishes the round", func(t *testing.T) {
		// Given: a pvp session one move away from an X win
		gamePlay, _ := newTestGamePlayService()
		session, err := gamePlay.NewSession(ctx, entity.PvPMode, "")
		require.NoError(t, err)
		session.Game.Board = [9]string{
			entity.PlayerX, entity.PlayerX, entity.EmptyCell,
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}
		session.Game.Turn = entity.PlayerX

		// When: X completes the row
		err = gamePlay.MakeTurn(ctx, session, 2)

		// Then: the round is finished and tallied
		require.NoError(t, err)
		assert.True(t, session.Game.IsFinished())
		assert.Equal(t, entity.Scoreboard{XWins: 1}, session.Scoreboard)
	})
}

func TestGamePlayService_MakeBotTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("The optimal bot blocks the open threat", func(t *testing.T) {
		// Given: a bot session where the human X threatens the top row
		gamePlay, _ := newTestGamePlayService()
		session := newBotSession(entity.PlayerX, entity.PlayerO)
		session.Game.Board = [9]string{
			entity.PlayerX, entity.PlayerX, entity.EmptyCell,
			entity.EmptyCell, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}
		session.Game.Turn = entity.PlayerO

		// When: the bot moves
		err := gamePlay.MakeBotTurn(ctx, session)

		// Then: it blocks at cell 2
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, session.Game.Board[2])
	})

	t.Run("Fails in a session without a bot", func(t *testing.T) {
		// Given: a pvp session
		gamePlay, _ := newTestGamePlayService()
		session, err := gamePlay.NewSession(ctx, entity.PvPMode, "")
		require.NoError(t, err)

		// When: asking for a bot move
		err = gamePlay.MakeBotTurn(ctx, session)

		// Then: an ErrBotNotFound error should be returned
		assert.ErrorIs(t, err, ErrBotNotFound)
	})

	t.Run("Refuses to move out of turn", func(t *testing.T) {
		// Given: a bot session where the human X is to move
		gamePlay, _ := newTestGamePlayService()
		session := newBotSession(entity.PlayerX, entity.PlayerO)

		// When: asking for a bot move anyway
		err := gamePlay.MakeBotTurn(ctx, session)

		// Then: an ErrNotYourTurn error should be returned
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})
}

func TestGamePlayService_Undo(t *testing.T) {
	ctx := context.Background()

	t.Run("One undo rewinds the human move and the bot reply together", func(t *testing.T) {
		// Given: a bot session where the human moved and the bot replied
		gamePlay, _ := newTestGamePlayService()
		session := newBotSession(entity.PlayerX, entity.PlayerO)
		require.NoError(t, gamePlay.MakeTurn(ctx, session, 4))
		require.NoError(t, gamePlay.MakeBotTurn(ctx, session))

		// When: undoing once
		err := gamePlay.Undo(ctx, session)

		// Then: the board is back to the start
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame(entity.PlayerX), session.Game)
	})

	t.Run("Undoing a finishing move takes the tally back", func(t *testing.T) {
		// Given: a pvp session where X just won
		gamePlay, _ := newTestGamePlayService()
		session, err := gamePlay.NewSession(ctx, entity.PvPMode, "")
		require.NoError(t, err)
		session.Game.Board = [9]string{
			entity.PlayerX, entity.PlayerX, entity.EmptyCell,
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}
		session.Game.Turn = entity.PlayerX
		require.NoError(t, gamePlay.MakeTurn(ctx, session, 2))
		require.Equal(t, entity.Scoreboard{XWins: 1}, session.Scoreboard)

		// When: undoing the winning move
		err = gamePlay.Undo(ctx, session)

		// Then: the round is ongoing again and the tally is back to zero
		require.NoError(t, err)
		assert.True(t, session.Game.IsOngoing())
		assert.Equal(t, entity.Scoreboard{}, session.Scoreboard)
	})

	t.Run("Fails when there is nothing to undo", func(t *testing.T) {
		// Given: a fresh session
		gamePlay, _ := newTestGamePlayService()
		session, err := gamePlay.NewSession(ctx, entity.PvPMode, "")
		require.NoError(t, err)

		// When: undoing
		err = gamePlay.Undo(ctx, session)

		// Then: an ErrNothingToUndo error should be returned
		assert.ErrorIs(t, err, apperror.ErrNothingToUndo)
	})
}

func TestGamePlayService_NextRound(t *testing.T) {
	ctx := context.Background()

	t.Run("Refuses to start the next round mid-game", func(t *testing.T) {
		// Given: a session with an ongoing round
		gamePlay, _ := newTestGamePlayService()
		session, err := gamePlay.NewSession(ctx, entity.PvPMode, "")
		require.NoError(t, err)

		// When: forcing the next round
		err = gamePlay.NextRound(ctx, session)

		// Then: an ErrRoundNotOver error should be returned
		assert.ErrorIs(t, err, ErrRoundNotOver)
	})

	t.Run("Starts a fresh round keeping the tally, loser first", func(t *testing.T) {
		// Given: a session where X won the round
		gamePlay, _ := newTestGamePlayService()
		session, err := gamePlay.NewSession(ctx, entity.PvPMode, "")
		require.NoError(t, err)
		session.Game.Board = [9]string{
			entity.PlayerX, entity.PlayerX, entity.EmptyCell,
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}
		session.Game.Turn = entity.PlayerX
		require.NoError(t, gamePlay.MakeTurn(ctx, session, 2))

		// When: starting the next round
		err = gamePlay.NextRound(ctx, session)

		// Then: O starts on a fresh board and the score survives
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame(entity.PlayerO), session.Game)
		assert.Equal(t, entity.Scoreboard{XWins: 1}, session.Scoreboard)
	})
}

func TestGamePlayService_ResumeAndAbandon(t *testing.T) {
	ctx := context.Background()

	t.Run("Resume returns the last saved session", func(t *testing.T) {
		// Given: a started session
		gamePlay, _ := newTestGamePlayService()
		session, err := gamePlay.NewSession(ctx, entity.PvPMode, "")
		require.NoError(t, err)

		// When: resuming
		resumed, err := gamePlay.Resume(ctx)

		// Then: the same session comes back
		require.NoError(t, err)
		assert.Equal(t, session.ID, resumed.ID)
	})

	t.Run("Resume fails after the session is abandoned", func(t *testing.T) {
		// Given: a started and then abandoned session
		gamePlay, _ := newTestGamePlayService()
		session, err := gamePlay.NewSession(ctx, entity.PvPMode, "")
		require.NoError(t, err)
		gamePlay.Abandon(ctx, session)

		// When: resuming
		_, err = gamePlay.Resume(ctx)

		// Then: there is nothing to resume
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})
}
