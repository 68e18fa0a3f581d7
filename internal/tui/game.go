package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pocketarcade/tictactoe/internal/apperror"
	"github.com/pocketarcade/tictactoe/internal/entity"
	"github.com/pocketarcade/tictactoe/internal/service"
)

type botTickMsg struct {
	seq int
}

func botTickCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return botTickMsg{seq: seq}
	})
}

type gameState struct {
	session    *entity.Session
	cursor     int
	status     string
	waitingBot bool
	botSeq     int
}

func (m Model) enterGame(session *entity.Session) (tea.Model, tea.Cmd) {
	m.game = gameState{session: session, cursor: 4}
	m.screen = gameScreen

	return m.scheduleBot()
}

// scheduleBot arms the delayed bot reply when the bot is to move. The delay
// is pure presentation, the chosen move never depends on it. The sequence
// number keeps a tick from an undone move from firing early.
func (m Model) scheduleBot() (tea.Model, tea.Cmd) {
	session := m.game.session
	if session == nil || !session.IsWithBot() || !session.Game.IsOngoing() {
		return m, nil
	}

	bot := session.BotPlayer()
	if bot == nil || session.Game.Turn != bot.Mark {
		return m, nil
	}

	m.game.waitingBot = true
	m.game.botSeq++

	return m, botTickCmd(m.botDelay, m.game.botSeq)
}

func (m Model) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case botTickMsg:
		return m.applyBotTurn(msg)
	case tea.KeyMsg:
		return m.handleGameKey(msg)
	}

	return m, nil
}

func (m Model) handleGameKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.screen = menuScreen
		return m, nil
	case "up", "k":
		if m.game.cursor >= 3 {
			m.game.cursor -= 3
		}
	case "down", "j":
		if m.game.cursor < 6 {
			m.game.cursor += 3
		}
	case "left", "h":
		if m.game.cursor%3 > 0 {
			m.game.cursor--
		}
	case "right", "l":
		if m.game.cursor%3 < 2 {
			m.game.cursor++
		}
	case "enter", " ":
		return m.placeAt(m.game.cursor)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		cell := int(key.String()[0] - '1')
		m.game.cursor = cell
		return m.placeAt(cell)
	case "u":
		return m.applyUndo()
	case "n":
		return m.applyNextRound()
	}

	return m, nil
}

func (m Model) placeAt(cell int) (tea.Model, tea.Cmd) {
	if m.game.waitingBot {
		return m, nil
	}

	m.game.status = ""

	if err := m.gamePlay.MakeTurn(m.ctx, m.game.session, cell); err != nil {
		m.game.status = turnMessage(err)
		if m.game.status == "" {
			m.logger.Error("failed to make turn", "error", err, "cell", cell)
			m.game.status = "something went wrong, see the log"
		}
		return m, nil
	}

	return m.scheduleBot()
}

func turnMessage(err error) string {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return "that cell is taken"
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "wait for your turn"
	case errors.Is(err, apperror.ErrGameFinished):
		return "the round is over, press n for the next one"
	case errors.Is(err, entity.ErrInvalidCell):
		return "that cell does not exist"
	default:
		return ""
	}
}

func (m Model) applyBotTurn(msg botTickMsg) (tea.Model, tea.Cmd) {
	if !m.game.waitingBot || msg.seq != m.game.botSeq {
		return m, nil
	}
	m.game.waitingBot = false

	if err := m.gamePlay.MakeBotTurn(m.ctx, m.game.session); err != nil {
		m.logger.Error("bot failed to move", "error", err)
		m.game.status = "the computer could not move"
	}

	return m, nil
}

func (m Model) applyUndo() (tea.Model, tea.Cmd) {
	m.game.status = ""
	// a pending bot reply is discarded by the rewind
	m.game.waitingBot = false

	if err := m.gamePlay.Undo(m.ctx, m.game.session); err != nil {
		if errors.Is(err, apperror.ErrNothingToUndo) {
			m.game.status = "nothing to undo"
		} else {
			m.logger.Error("failed to undo", "error", err)
			m.game.status = "could not undo"
		}
	}

	return m, nil
}

func (m Model) applyNextRound() (tea.Model, tea.Cmd) {
	m.game.status = ""

	if err := m.gamePlay.NextRound(m.ctx, m.game.session); err != nil {
		if errors.Is(err, service.ErrRoundNotOver) {
			m.game.status = "finish this round first"
		} else {
			m.logger.Error("failed to start next round", "error", err)
			m.game.status = "could not start the next round"
		}
		return m, nil
	}

	m.game.cursor = 4

	return m.scheduleBot()
}

func (m Model) viewGame() string {
	session := m.game.session
	if session == nil {
		return ""
	}

	var view strings.Builder

	view.WriteString(m.theme.Title.Render("TIC-TAC-TOE") + "   " + m.renderScore() + "\n\n")
	view.WriteString(m.renderBoard() + "\n\n")
	view.WriteString(m.renderStatus() + "\n")

	if m.game.status != "" {
		view.WriteString(m.theme.Error.Render(m.game.status) + "\n")
	}

	view.WriteString("\n" + m.theme.Muted.Render("arrows move, enter place, 1-9 direct, u undo, n next round, esc menu, q quit") + "\n")

	return view.String()
}

func (m Model) renderBoard() string {
	showCursor := m.game.session.Game.IsOngoing() && !m.game.waitingBot

	rows := make([]string, 0, 3)
	for row := 0; row < 3; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			cells = append(cells, m.renderCell(row*3+col, showCursor))
		}
		rows = append(rows, strings.Join(cells, m.theme.Grid.Render("│")))
	}

	divider := m.theme.Grid.Render("───┼───┼───")

	return rows[0] + "\n" + divider + "\n" + rows[1] + "\n" + divider + "\n" + rows[2]
}

func (m Model) renderCell(idx int, showCursor bool) string {
	game := m.game.session.Game

	content := "·"
	style := m.theme.Muted

	switch game.Board[idx] {
	case entity.PlayerX:
		content = "X"
		style = m.theme.MarkX
	case entity.PlayerO:
		content = "O"
		style = m.theme.MarkO
	}

	if line := game.WinLine; line != nil {
		for _, cell := range line {
			if cell == idx {
				style = m.theme.Highlight
			}
		}
	}

	cell := " " + content + " "
	if showCursor && idx == m.game.cursor {
		return m.theme.Cursor.Render(cell)
	}

	return style.Render(cell)
}

func (m Model) renderScore() string {
	session := m.game.session
	score := session.Scoreboard

	nameX, nameO := entity.PlayerX, entity.PlayerO
	if player := session.PlayerByMark(entity.PlayerX); player != nil {
		nameX = player.Name
	}
	if player := session.PlayerByMark(entity.PlayerO); player != nil {
		nameO = player.Name
	}

	return m.theme.Accent.Render(fmt.Sprintf("%s %d : %d %s, draws %d", nameX, score.XWins, score.OWins, nameO, score.Draws))
}

func (m Model) renderStatus() string {
	session := m.game.session
	game := session.Game

	if game.IsFinished() {
		if game.Winner == entity.PlayerTie {
			return m.theme.Accent.Render("Round drawn. Press n for the next round.")
		}

		name := game.Winner
		if player := session.PlayerByMark(game.Winner); player != nil {
			name = player.Name
		}

		return m.theme.Highlight.Render(fmt.Sprintf("%s wins the round! Press n for the next one.", name))
	}

	if m.game.waitingBot {
		return m.theme.Muted.Render("Computer is thinking...")
	}

	name := game.Turn
	if player := session.PlayerByMark(game.Turn); player != nil {
		name = player.Name
	}

	return fmt.Sprintf("%s to move (%s)", name, game.Turn)
}
