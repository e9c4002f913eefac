package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/lifetime/track"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	liveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	destroyedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD580"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const historyLimit = 12

type interactiveModel struct {
	sb      *sandbox
	input   textinput.Model
	history []string
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "make a"
	ti.Prompt = "> "
	ti.Width = 48
	ti.Focus()

	return &interactiveModel{
		sb:    newSandbox(),
		input: ti,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				return m, tea.Quit
			}
			out, err := m.sb.exec(line)
			if err != nil {
				m.push(errorStyle.Render("! " + err.Error()))
			} else if out != "" {
				for _, l := range strings.Split(out, "\n") {
					m.push(resultStyle.Render(l))
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) push(line string) {
	m.history = append(m.history, line)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("lifetime sandbox"))
	b.WriteString("  ")
	b.WriteString(helpStyle.Render(m.sb.stats()))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-4s %-13s %-10s %7s %6s", "ID", "KIND", "STATE", "STRONG", "WEAK")))
	b.WriteString("\n")
	records := m.sb.reg.Snapshot()
	if len(records) == 0 {
		b.WriteString(helpStyle.Render("  no tracked blocks"))
		b.WriteString("\n")
	}
	for _, r := range records {
		line := fmt.Sprintf("  %-4d %-13s %-10s %7d %6d", r.ID, r.Kind, r.State, r.Strong, r.Weak)
		if r.State == track.StateLive {
			b.WriteString(liveStyle.Render(line))
		} else {
			b.WriteString(destroyedStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, line := range m.history {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter run • help commands • esc quit"))

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
