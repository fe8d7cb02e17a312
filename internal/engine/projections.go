package engine

import (
	"slices"

	"github.com/tatianab/silk-route/internal/content"
)

// ChapterView is a chapter with its session status.
type ChapterView struct {
	content.Chapter
	Status content.ChapterStatus
}

// Summary is the read-only projection handed to presentation layers.
type Summary struct {
	Points              int
	MoralPoints         content.MoralPoints
	Inventory           []content.InventoryItem
	Chapters            []ChapterView
	CompletedPuzzles    []string
	DiscoveredLocations []string
	UnlockedKnowledge   []string
	Ending              *content.Ending
	Completed           bool
}

func (e *Engine) CurrentChapter() (ChapterView, bool) {
	ch, ok := e.graph.Chapter(e.session.CurrentChapter)
	if !ok {
		return ChapterView{}, false
	}
	return ChapterView{Chapter: ch, Status: e.session.Status(ch.ID)}, true
}

// CurrentDialogue returns the node under the pointer, if any.
func (e *Engine) CurrentDialogue() (content.Dialogue, bool) {
	if e.session.CurrentDialogueID == "" {
		return content.Dialogue{}, false
	}
	return e.graph.Dialogue(e.session.CurrentChapter, e.session.CurrentDialogueID)
}

// CurrentPuzzle returns the active puzzle, if any.
func (e *Engine) CurrentPuzzle() (content.Puzzle, bool) {
	if e.session.CurrentPuzzleID == "" {
		return content.Puzzle{}, false
	}
	return e.graph.Puzzle(e.session.CurrentChapter, e.session.CurrentPuzzleID)
}

func (e *Engine) CurrentLocation() (content.Location, bool) {
	if e.session.CurrentLocationID == "" {
		return content.Location{}, false
	}
	return e.graph.Location(e.session.CurrentChapter, e.session.CurrentLocationID)
}

// Waiting returns the unsolved puzzle blocking the current dialogue.
func (e *Engine) Waiting() (content.Puzzle, bool) {
	d, ok := e.CurrentDialogue()
	if !ok || d.RequiresPuzzle == "" || e.session.PuzzleCompleted(d.RequiresPuzzle) {
		return content.Puzzle{}, false
	}
	return e.graph.Puzzle(e.session.CurrentChapter, d.RequiresPuzzle)
}

// OpenPuzzles lists the current chapter's puzzles not yet completed.
func (e *Engine) OpenPuzzles() []content.Puzzle {
	ch, ok := e.graph.Chapter(e.session.CurrentChapter)
	if !ok {
		return nil
	}
	var out []content.Puzzle
	for _, p := range ch.Puzzles {
		if !e.session.PuzzleCompleted(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

func (e *Engine) Summary() Summary {
	s := e.session
	sum := Summary{
		Points:              s.Points,
		MoralPoints:         s.MoralPoints,
		CompletedPuzzles:    slices.Clone(s.CompletedPuzzles),
		DiscoveredLocations: slices.Clone(s.DiscoveredLocations),
		UnlockedKnowledge:   slices.Clone(s.UnlockedKnowledge),
		Completed:           s.Completed,
	}
	for _, it := range e.graph.Items() {
		it.Acquired = s.HasItem(it.ID)
		sum.Inventory = append(sum.Inventory, it)
	}
	for _, ch := range e.graph.Chapters() {
		sum.Chapters = append(sum.Chapters, ChapterView{Chapter: ch, Status: s.Status(ch.ID)})
	}
	if s.Ending != "" {
		if end, ok := e.graph.Ending(s.Ending); ok {
			sum.Ending = &end
		}
	}
	return sum
}

// AcquiredItems returns the acquired items in authored order.
func (e *Engine) AcquiredItems() []content.InventoryItem {
	var out []content.InventoryItem
	for _, it := range e.graph.Items() {
		if e.session.HasItem(it.ID) {
			it.Acquired = true
			out = append(out, it)
		}
	}
	return out
}

// InventoryByChapter returns the acquired items owned by a chapter.
func (e *Engine) InventoryByChapter(chapterID int) []content.InventoryItem {
	var out []content.InventoryItem
	for _, it := range e.AcquiredItems() {
		if it.Chapter == chapterID {
			out = append(out, it)
		}
	}
	return out
}
