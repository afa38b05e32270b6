// Package tui provides interactive terminal components for selections the
// flag-based CLI cannot express comfortably.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pocketwatch/pocketwatch/internal/budget"
	"github.com/pocketwatch/pocketwatch/internal/cli"
)

// pickerKeyMap defines the key bindings for the donor picker.
type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var pickerKeys = pickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/esc", "cancel"),
	),
}

// DonorPickerModel lets the user choose which budget funds a balance
// transfer. Candidates are budgets with spare remaining amount.
type DonorPickerModel struct {
	title      string
	currency   string
	candidates []budget.Measured
	cursor     int
	width      int
	height     int
	chosen     string
	done       bool
}

// NewDonorPicker creates a picker over the given donor candidates.
func NewDonorPicker(title, currency string, candidates []budget.Measured) DonorPickerModel {
	return DonorPickerModel{
		title:      title,
		currency:   currency,
		candidates: candidates,
	}
}

// Init implements tea.Model.
func (m DonorPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DonorPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, pickerKeys.Down):
			if len(m.candidates) > 0 {
				m.cursor = (m.cursor + 1) % len(m.candidates)
			}

		case key.Matches(msg, pickerKeys.Up):
			if len(m.candidates) > 0 {
				m.cursor = (m.cursor + len(m.candidates) - 1) % len(m.candidates)
			}

		case key.Matches(msg, pickerKeys.Select):
			if len(m.candidates) > 0 {
				m.chosen = m.candidates[m.cursor].Budget.ID
			}
			m.done = true
			return m, tea.Quit

		case key.Matches(msg, pickerKeys.Quit):
			m.done = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the picker.
func (m DonorPickerModel) View() string {
	if m.done {
		return ""
	}

	title := cli.TitleStyle.UnsetMargins().Render(m.title)

	lines := make([]string, 0, len(m.candidates))
	for i, cand := range m.candidates {
		prefix := "  "
		if i == m.cursor {
			prefix = cli.PromptStyle.Render("> ")
		}

		line := fmt.Sprintf("%s%s  %s remaining",
			prefix,
			cand.Budget.DisplayName(),
			cli.FormatMoney(cand.Progress.Remaining, m.currency),
		)
		if i == m.cursor {
			line = cli.BoldStyle.Render(line)
		}
		lines = append(lines, line)
	}

	help := cli.SubtleStyle.Render("[↑↓] Navigate | [Enter] Select | [Esc] Cancel")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		strings.Join(lines, "\n"),
		"",
		help,
	)

	if m.width == 0 {
		return cli.BoxStyle.Render(content)
	}
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		cli.BoxStyle.Render(content),
	)
}

// Chosen returns the selected donor budget ID, empty when canceled.
func (m DonorPickerModel) Chosen() string {
	return m.chosen
}

// PickDonor runs the picker program and returns the chosen donor ID. An
// empty ID means the user canceled.
func PickDonor(title, currency string, candidates []budget.Measured) (string, error) {
	p := tea.NewProgram(NewDonorPicker(title, currency, candidates))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("donor picker failed: %w", err)
	}
	model, ok := final.(DonorPickerModel)
	if !ok {
		return "", fmt.Errorf("donor picker returned unexpected model")
	}
	return model.Chosen(), nil
}
