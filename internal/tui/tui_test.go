package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/silk-route/internal/content"
	"github.com/tatianab/silk-route/internal/engine"
	"github.com/tatianab/silk-route/internal/models"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	g, err := content.Default()
	require.NoError(t, err)
	eng := engine.NewEngine(g, models.NewStore(&models.MemoryAdapter{}, g, nil), nil)
	return NewModel(eng)
}

func press(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m, cmd = next.(model), c
	}
	return m, cmd
}

func TestChoosingByNumber(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "Govind")

	m, _ = press(t, m, "1")
	assert.Equal(t, "boatman_story", m.engine.Session().CurrentDialogueID)

	m, _ = press(t, m, "9")
	assert.Equal(t, "boatman_story", m.engine.Session().CurrentDialogueID, "out of range")

	m, _ = press(t, m, "1", "enter")
	assert.Equal(t, "chapter_complete", m.engine.Session().CurrentDialogueID)
	assert.Equal(t, 15, m.engine.Session().Points)
}

func TestSolvingPuzzle(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "1", "1", "enter", "enter")
	assert.Contains(t, m.notice, "solved first")

	m, _ = press(t, m, "p")
	require.Equal(t, statePuzzle, m.state)
	p, ok := m.engine.CurrentPuzzle()
	require.True(t, ok)

	// Wrong order first.
	m, _ = press(t, m, "enter", "s")
	assert.Contains(t, m.notice, "Hint")
	assert.Empty(t, m.sequence)

	for _, want := range p.Solution {
		m.cursor = indexOf(p.Options, want)
		m, _ = press(t, m, "enter")
	}
	require.Equal(t, p.Solution, m.sequence)

	m, cmd := press(t, m, "s")
	require.NotNil(t, cmd, "solved puzzle lingers on a timer")
	require.NotNil(t, m.solved)
	assert.True(t, m.engine.Session().PuzzleCompleted("boat_symbols"))
	assert.Equal(t, statePuzzle, m.state)
	view := m.View()
	assert.Contains(t, view, "Decipher the Boat Markings", "solved puzzle stays visible during the delay")
	assert.Contains(t, view, "Sequence (4/4)")

	next, _ := m.Update(puzzleSolvedMsg{})
	m = next.(model)
	assert.Equal(t, statePlaying, m.state)
	assert.Nil(t, m.solved)
	assert.NotContains(t, m.View(), "Decipher the Boat Markings")

	m, _ = press(t, m, "enter")
	assert.Equal(t, content.StatusCompleted, m.engine.Session().Status(1))

	m, _ = press(t, m, "enter")
	require.Equal(t, stateChapters, m.state)
	m, _ = press(t, m, "enter")
	assert.Equal(t, statePlaying, m.state)
	assert.Equal(t, 2, m.engine.Session().CurrentChapter)
}

func TestClosingPuzzle(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "p")
	require.Equal(t, statePuzzle, m.state)
	m, _ = press(t, m, "esc")
	assert.Equal(t, statePlaying, m.state)
	_, active := m.engine.CurrentPuzzle()
	assert.False(t, active)
}

func TestLockedChapterRefused(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, "c", "down", "enter")
	assert.Equal(t, stateChapters, m.state)
	assert.Contains(t, m.notice, "locked")
	assert.Equal(t, 1, m.engine.Session().CurrentChapter)
}

func TestEndingScreenAndRestart(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.engine.CompleteGame(content.Preserver))
	m, _ = press(t, m, "1")
	assert.Equal(t, stateEnding, m.state)
	assert.Contains(t, m.View(), "The Sacred Keeper")

	m, _ = press(t, m, "R")
	assert.Equal(t, statePlaying, m.state)
	assert.False(t, m.engine.Completed())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func indexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return -1
}
