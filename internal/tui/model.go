package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pocketarcade/tictactoe/internal/config"
	"github.com/pocketarcade/tictactoe/internal/service"
)

type screen int

const (
	menuScreen screen = iota
	gameScreen
	calcScreen
)

// Model is the root bubbletea model. It routes messages to the active screen
// and owns the shared services; all game logic stays behind them.
type Model struct {
	ctx    context.Context
	logger *slog.Logger

	gamePlay service.GamePlayService
	calc     service.CalcService

	theme    Theme
	strategy string
	botDelay time.Duration

	screen screen
	menu   menuState
	game   gameState
	calcUI calcState
}

func NewModel(ctx context.Context, logger *slog.Logger, conf *config.Config, gamePlay service.GamePlayService, calc service.CalcService) Model {
	return Model{
		ctx:      ctx,
		logger:   logger.With("component", "tui"),
		gamePlay: gamePlay,
		calc:     calc,
		theme:    NewTheme(conf.Theme),
		strategy: conf.Bot.Strategy,
		botDelay: conf.Bot.Delay,
		screen:   menuScreen,
	}
}

func NewProgram(ctx context.Context, model Model) *tea.Program {
	return tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case menuScreen:
		return m.updateMenu(msg)
	case gameScreen:
		return m.updateGame(msg)
	case calcScreen:
		return m.updateCalc(msg)
	}

	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case menuScreen:
		return m.viewMenu()
	case gameScreen:
		return m.viewGame()
	case calcScreen:
		return m.viewCalc()
	}

	return ""
}
