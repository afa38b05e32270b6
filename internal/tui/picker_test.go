package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketwatch/pocketwatch/internal/budget"
	"github.com/pocketwatch/pocketwatch/internal/model"
)

func testCandidates() []budget.Measured {
	return []budget.Measured{
		{
			Budget:   model.Budget{ID: "b1", Name: "Fun"},
			Progress: budget.Progress{Remaining: decimal.NewFromInt(40)},
		},
		{
			Budget:   model.Budget{ID: "b2", Name: "Transport"},
			Progress: budget.Progress{Remaining: decimal.NewFromInt(15)},
		},
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func TestDonorPicker_SelectsUnderCursor(t *testing.T) {
	m := NewDonorPicker("pick", "USD", testCandidates())

	next, _ := m.Update(keyMsg("j"))
	next, cmd := next.(DonorPickerModel).Update(keyMsg("enter"))

	picked, ok := next.(DonorPickerModel)
	require.True(t, ok)
	assert.Equal(t, "b2", picked.Chosen())
	assert.NotNil(t, cmd, "selection quits the program")
}

func TestDonorPicker_CursorWrapsAround(t *testing.T) {
	m := NewDonorPicker("pick", "USD", testCandidates())

	// Up from the top wraps to the bottom.
	next, _ := m.Update(keyMsg("k"))
	next, _ = next.(DonorPickerModel).Update(keyMsg("enter"))
	assert.Equal(t, "b2", next.(DonorPickerModel).Chosen())
}

func TestDonorPicker_EscCancels(t *testing.T) {
	m := NewDonorPicker("pick", "USD", testCandidates())

	next, cmd := m.Update(keyMsg("esc"))
	assert.Empty(t, next.(DonorPickerModel).Chosen())
	assert.NotNil(t, cmd)
}

func TestDonorPicker_ViewListsCandidates(t *testing.T) {
	m := NewDonorPicker("Cover \"Groceries\" from:", "USD", testCandidates())

	view := m.View()
	assert.Contains(t, view, "Fun")
	assert.Contains(t, view, "Transport")
	assert.Contains(t, view, "$40.00")
}
