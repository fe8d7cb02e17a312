// Package tui is the terminal front end. It renders the engine's
// projections and turns key presses into engine operations.
package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/silk-route/internal/content"
	"github.com/tatianab/silk-route/internal/engine"
)

type sessionState int

const (
	statePlaying sessionState = iota
	statePuzzle
	stateChapters
	stateEnding
)

// solvedDelay is how long a solved puzzle stays on screen.
const solvedDelay = 1500 * time.Millisecond

type model struct {
	state    sessionState
	engine   *engine.Engine
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	width    int
	height   int

	cursor   int
	sequence []string
	solved   *content.Puzzle
	notice   string
}

var (
	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87AFD7"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func NewModel(eng *engine.Engine) model {
	m := model{
		engine:   eng,
		keys:     keys,
		help:     help.New(),
		viewport: viewport.New(60, 20),
		width:    80,
		height:   26,
	}
	if eng.Completed() {
		m.state = stateEnding
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

type puzzleSolvedMsg struct{}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.75)
		m.viewport.Height = msg.Height - 6
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case puzzleSolvedMsg:
		if m.state == statePuzzle {
			m.state = statePlaying
		}
		m.solved = nil
		m.notice = ""
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Reset):
			m.engine.Reset()
			m.state = statePlaying
			m.resetPuzzle()
			m.notice = "A new journey begins."
			m.refresh()
			return m, nil
		}

		var cmd tea.Cmd
		switch m.state {
		case statePlaying:
			cmd = m.updatePlaying(msg)
		case statePuzzle:
			cmd = m.updatePuzzle(msg)
		case stateChapters:
			m.updateChapters(msg)
		}
		if m.engine.Completed() {
			m.state = stateEnding
		}
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) updatePlaying(msg tea.KeyMsg) tea.Cmd {
	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Choose):
		d, ok := m.engine.CurrentDialogue()
		if !ok {
			return nil
		}
		n := int(msg.String()[0] - '1')
		if n < len(d.Choices) {
			m.engine.SelectChoice(d.Choices[n].ID)
		}
	case key.Matches(msg, m.keys.Continue):
		if m.engine.Advance() {
			return nil
		}
		if _, waiting := m.engine.Waiting(); waiting {
			m.notice = "Something must be solved first. Press p."
		} else if ch, ok := m.engine.CurrentChapter(); ok && ch.Status == content.StatusCompleted {
			m.openChapters()
		}
	case key.Matches(msg, m.keys.Puzzle):
		m.openPuzzle()
	case key.Matches(msg, m.keys.Chapters):
		m.openChapters()
	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
	}
	return nil
}

func (m *model) openPuzzle() {
	p, ok := m.engine.Waiting()
	if !ok {
		open := m.engine.OpenPuzzles()
		if len(open) == 0 {
			m.notice = "There is nothing to solve here."
			return
		}
		p = open[0]
	}
	if cur, active := m.engine.CurrentPuzzle(); !active || cur.ID != p.ID {
		m.engine.StartPuzzle(p.ID)
	}
	m.resetPuzzle()
	m.state = statePuzzle
}

func (m *model) resetPuzzle() {
	m.cursor = 0
	m.sequence = nil
	m.solved = nil
}

func (m *model) updatePuzzle(msg tea.KeyMsg) tea.Cmd {
	p, ok := m.engine.CurrentPuzzle()
	if !ok || m.solved != nil {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(p.Options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Continue):
		opt := p.Options[m.cursor]
		if i := slices.Index(m.sequence, opt); i >= 0 {
			m.sequence = slices.Delete(m.sequence, i, i+1)
		} else {
			m.sequence = append(m.sequence, opt)
		}
	case key.Matches(msg, m.keys.Undo):
		if len(m.sequence) > 0 {
			m.sequence = m.sequence[:len(m.sequence)-1]
		}
	case key.Matches(msg, m.keys.Submit):
		if m.engine.Attempt(p.ID, m.sequence) {
			m.solved = &p
			m.notice = "Solved! " + p.Reward.Knowledge
			return tea.Tick(solvedDelay, func(time.Time) tea.Msg { return puzzleSolvedMsg{} })
		}
		m.sequence = nil
		m.notice = "That is not it. Hint: " + p.Hint
	case key.Matches(msg, m.keys.Back):
		m.engine.ClosePuzzle()
		m.state = statePlaying
		m.notice = ""
	}
	return nil
}

func (m *model) openChapters() {
	m.state = stateChapters
	m.cursor = 0
	for i, ch := range m.engine.Summary().Chapters {
		if ch.Status == content.StatusAvailable || ch.Status == content.StatusInProgress {
			m.cursor = i
			if ch.ID != m.engine.Session().CurrentChapter {
				break
			}
		}
	}
}

func (m *model) updateChapters(msg tea.KeyMsg) {
	chapters := m.engine.Summary().Chapters
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(chapters)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Continue):
		ch := chapters[m.cursor]
		if ch.ID == m.engine.Session().CurrentChapter && ch.Status == content.StatusInProgress {
			m.state = statePlaying
			return
		}
		if m.engine.StartChapter(ch.ID) {
			m.state = statePlaying
			m.notice = ""
			return
		}
		m.notice = fmt.Sprintf("Chapter %d is %s.", ch.ID, strings.ReplaceAll(string(ch.Status), "_", " "))
	case key.Matches(msg, m.keys.Back):
		m.state = statePlaying
		m.notice = ""
	}
}

// refresh re-renders the main pane into the viewport.
func (m *model) refresh() {
	var body string
	switch m.state {
	case statePlaying:
		body = m.renderDialogue()
	case statePuzzle:
		body = m.renderPuzzle()
	case stateChapters:
		body = m.renderChapters()
	case stateEnding:
		body = m.renderEnding()
	}
	m.viewport.SetContent(body)
}

func (m model) View() string {
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderState(),
	)
	footer := m.help.View(m.keys)
	if m.notice != "" {
		footer = noticeStyle.Render(m.notice) + "\n" + footer
	}
	return "\n" + lipgloss.JoinVertical(lipgloss.Left, main, "", footer) + "\n"
}

func (m model) renderDialogue() string {
	width := m.viewport.Width
	var b strings.Builder
	if ch, ok := m.engine.CurrentChapter(); ok {
		b.WriteString(titleStyle.Render(fmt.Sprintf("Chapter %d: %s", ch.ID, ch.Title)))
		if ch.Subtitle != "" {
			b.WriteString("\n" + noticeStyle.Render(ch.Subtitle))
		}
		b.WriteString("\n\n")
	}
	d, ok := m.engine.CurrentDialogue()
	if !ok {
		return b.String()
	}
	speaker := d.Speaker
	if d.SpeakerRole != "" {
		speaker += ", " + d.SpeakerRole
	}
	if speaker != "" {
		b.WriteString(speakerStyle.Render(speaker) + "\n\n")
	}
	b.WriteString(gameStyle.Width(width).Render(d.Text) + "\n\n")

	for i, c := range d.Choices {
		b.WriteString(choiceStyle.Width(width).Render(fmt.Sprintf("%d. %s", i+1, c.Text)) + "\n")
	}
	if !d.HasChoices() {
		switch p, waiting := m.engine.Waiting(); {
		case waiting:
			b.WriteString(noticeStyle.Render("Before going on: "+p.Title+" (p)") + "\n")
		case m.chapterDone():
			b.WriteString(noticeStyle.Render("Chapter complete. Press enter to choose what comes next.") + "\n")
		default:
			b.WriteString(noticeStyle.Render("Press enter to continue.") + "\n")
		}
	}
	return b.String()
}

func (m model) chapterDone() bool {
	ch, ok := m.engine.CurrentChapter()
	return ok && ch.Status == content.StatusCompleted
}

// renderPuzzle draws the active puzzle, or the one just solved while it
// lingers on screen.
func (m model) renderPuzzle() string {
	p, ok := m.engine.CurrentPuzzle()
	if m.solved != nil {
		p, ok = *m.solved, true
	}
	if !ok {
		return ""
	}
	width := m.viewport.Width
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title) + "\n\n")
	b.WriteString(gameStyle.Width(width).Render(p.Description) + "\n\n")
	for i, opt := range p.Options {
		mark := "  "
		if pos := slices.Index(m.sequence, opt); pos >= 0 {
			mark = fmt.Sprintf("%d.", pos+1)
		}
		line := fmt.Sprintf("%s %s", mark, opt)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = choiceStyle.Render("  " + line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(fmt.Sprintf("\nSequence (%d/%d): %s\n", len(m.sequence), len(p.Solution), strings.Join(m.sequence, " → ")))
	return b.String()
}

func (m model) renderChapters() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("CHAPTERS") + "\n\n")
	for i, ch := range m.engine.Summary().Chapters {
		line := fmt.Sprintf("%d. %s [%s]", ch.ID, ch.Title, strings.ReplaceAll(string(ch.Status), "_", " "))
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = choiceStyle.Render("  " + line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m model) renderEnding() string {
	sum := m.engine.Summary()
	if sum.Ending == nil {
		return ""
	}
	width := m.viewport.Width
	var b strings.Builder
	b.WriteString(titleStyle.Render(sum.Ending.Title) + "\n\n")
	b.WriteString(gameStyle.Width(width).Render(sum.Ending.Description) + "\n\n")
	if sum.Ending.Epilogue != "" {
		b.WriteString(gameStyle.Width(width).Render(sum.Ending.Epilogue) + "\n\n")
	}
	b.WriteString(fmt.Sprintf("Final score: %d\n\n", sum.Points))
	b.WriteString(noticeStyle.Render("Press R to begin again or q to quit."))
	return b.String()
}

func (m model) renderState() string {
	sum := m.engine.Summary()

	location := ""
	if loc, ok := m.engine.CurrentLocation(); ok {
		location = titleStyle.Render("LOCATION") + "\n" + loc.Name + "\n\n"
	}

	stats := titleStyle.Render("STATS") + "\n" + fmt.Sprintf(
		"Points: %d\nPreserver: %d\nRevealer: %d\nExploiter: %d\n\n",
		sum.Points, sum.MoralPoints.Preserver, sum.MoralPoints.Revealer, sum.MoralPoints.Exploiter)

	inventory := titleStyle.Render("INVENTORY") + "\n"
	items := m.engine.AcquiredItems()
	if len(items) == 0 {
		inventory += "(empty)\n"
	}
	for _, it := range items {
		inventory += "- " + it.Name + "\n"
	}

	knowledge := ""
	if len(sum.UnlockedKnowledge) > 0 {
		knowledge = "\n" + titleStyle.Render("KNOWLEDGE") + "\n"
		for _, k := range sum.UnlockedKnowledge {
			knowledge += "- " + k + "\n"
		}
	}

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(location + stats + inventory + knowledge)
}

// Run starts the terminal UI and blocks until the player quits.
func Run(eng *engine.Engine) error {
	p := tea.NewProgram(NewModel(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
