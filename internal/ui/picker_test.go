package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m pickerModel, keys ...string) pickerModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		pm, ok := next.(pickerModel)
		require.True(t, ok)
		m = pm
	}
	return m
}

func testPicker() pickerModel {
	return pickerModel{title: "Default account", items: []PickerItem{
		{Label: "dev", SubLabel: "0x0127…fcec", Value: "dev"},
		{Label: "ops", SubLabel: "0x0abc…0001", Value: "ops"},
		{Label: "qa", Value: "qa"},
	}}
}

func TestPickerNavigateAndSelect(t *testing.T) {
	m := press(t, testPicker(), "down", "down", "down", "up", "enter")
	require.NotNil(t, m.selected)
	assert.Equal(t, "ops", m.selected.Value)
}

func TestPickerJumpEnds(t *testing.T) {
	m := press(t, testPicker(), "G")
	assert.Equal(t, 2, m.cursor)
	m = press(t, m, "g")
	assert.Equal(t, 0, m.cursor)
}

func TestPickerCancel(t *testing.T) {
	m := press(t, testPicker(), "q")
	assert.True(t, m.quitting)
	assert.Nil(t, m.selected)
	assert.Empty(t, m.View())
}

func TestPickerViewListsItems(t *testing.T) {
	v := testPicker().View()
	assert.Contains(t, v, "Default account")
	assert.Contains(t, v, "dev")
	assert.Contains(t, v, "0x0127…fcec")
}

func TestPickItemEmpty(t *testing.T) {
	_, err := PickItem("nothing", nil)
	assert.Error(t, err)
}
