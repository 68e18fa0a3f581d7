package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type calcState struct {
	input  string
	result string
	errMsg string
}

func (m Model) updateCalc(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.screen = menuScreen
		return m, nil
	case "enter":
		return m.evaluateCalc()
	case "backspace":
		if len(m.calcUI.input) > 0 {
			m.calcUI.input = m.calcUI.input[:len(m.calcUI.input)-1]
		}
		return m, nil
	case "c":
		m.calcUI = calcState{}
		return m, nil
	case " ":
		m.calcUI.input += " "
		return m, nil
	}

	if key.Type == tea.KeyRunes {
		for _, symbol := range key.Runes {
			if isCalcRune(symbol) {
				m.calcUI.input += string(symbol)
			}
		}
	}

	return m, nil
}

func (m Model) evaluateCalc() (tea.Model, tea.Cmd) {
	m.calcUI.result = ""
	m.calcUI.errMsg = ""

	result, err := m.calc.Evaluate(m.calcUI.input)
	if err != nil {
		m.calcUI.errMsg = "cannot evaluate that"
		return m, nil
	}

	m.calcUI.result = result

	return m, nil
}

func isCalcRune(symbol rune) bool {
	return (symbol >= '0' && symbol <= '9') || strings.ContainsRune("+-*/%^().", symbol)
}

func (m Model) viewCalc() string {
	var view strings.Builder

	view.WriteString(m.theme.Title.Render("CALCULATOR") + "\n\n")
	view.WriteString("> " + m.calcUI.input + m.theme.Cursor.Render(" ") + "\n")

	switch {
	case m.calcUI.errMsg != "":
		view.WriteString(m.theme.Error.Render(m.calcUI.errMsg) + "\n")
	case m.calcUI.result != "":
		view.WriteString(m.theme.Accent.Render("= "+m.calcUI.result) + "\n")
	default:
		view.WriteString("\n")
	}

	view.WriteString("\n" + m.theme.Muted.Render("enter evaluate, backspace delete, c clear, esc menu, q quit") + "\n")

	return view.String()
}
