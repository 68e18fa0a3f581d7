package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pocketarcade/tictactoe/internal/entity"
	"github.com/pocketarcade/tictactoe/internal/repository"
)

const (
	menuItemBotGame = iota
	menuItemPvPGame
	menuItemResume
	menuItemCalc
	menuItemQuit
)

var menuItems = []string{
	"Play vs computer",
	"Two players",
	"Resume last session",
	"Calculator",
	"Quit",
}

type menuState struct {
	cursor int
	status string
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.menu.cursor > 0 {
			m.menu.cursor--
		}
	case "down", "j":
		if m.menu.cursor < len(menuItems)-1 {
			m.menu.cursor++
		}
	case "enter", " ":
		return m.selectMenuItem()
	}

	return m, nil
}

func (m Model) selectMenuItem() (tea.Model, tea.Cmd) {
	m.menu.status = ""

	switch m.menu.cursor {
	case menuItemBotGame:
		return m.startSession(entity.WithBotMode)
	case menuItemPvPGame:
		return m.startSession(entity.PvPMode)
	case menuItemResume:
		session, err := m.gamePlay.Resume(m.ctx)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				m.menu.status = "nothing to resume yet"
			} else {
				m.logger.Error("failed to resume session", "error", err)
				m.menu.status = "could not load the last session"
			}
			return m, nil
		}

		return m.enterGame(session)
	case menuItemCalc:
		m.screen = calcScreen
		return m, nil
	case menuItemQuit:
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) startSession(mode string) (tea.Model, tea.Cmd) {
	// a new sitting replaces the stored one
	if m.game.session != nil {
		m.gamePlay.Abandon(m.ctx, m.game.session)
		m.game = gameState{}
	}

	session, err := m.gamePlay.NewSession(m.ctx, mode, m.strategy)
	if err != nil {
		m.logger.Error("failed to start session", "error", err, "mode", mode)
		m.menu.status = "could not start a new game"
		return m, nil
	}

	return m.enterGame(session)
}

func (m Model) viewMenu() string {
	var view strings.Builder

	view.WriteString(m.theme.Title.Render("TIC-TAC-TOE") + "\n\n")

	for i, item := range menuItems {
		cursor := "  "
		line := item
		if i == m.menu.cursor {
			cursor = m.theme.Accent.Render("> ")
			line = m.theme.Accent.Render(item)
		}
		view.WriteString(cursor + line + "\n")
	}

	if m.menu.status != "" {
		view.WriteString("\n" + m.theme.Muted.Render(m.menu.status) + "\n")
	}

	view.WriteString("\n" + m.theme.Muted.Render("up/down move, enter select, q quit") + "\n")

	return view.String()
}
