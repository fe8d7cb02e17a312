package models

import (
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/tatianab/silk-route/internal/content"
)

// SnapshotVersion is bumped whenever the persisted layout changes.
const SnapshotVersion = 1

// GameSession is the player's position and accumulated progress. It is the
// unit that gets persisted.
type GameSession struct {
	Version             int                           `yaml:"version"`
	ID                  string                        `yaml:"id"`
	CurrentChapter      int                           `yaml:"current_chapter"`
	CurrentDialogueID   string                        `yaml:"current_dialogue_id"`
	CurrentPuzzleID     string                        `yaml:"current_puzzle_id"`
	CurrentLocationID   string                        `yaml:"current_location_id"`
	Points              int                           `yaml:"points"`
	MoralPoints         content.MoralPoints           `yaml:"moral_points"`
	ChapterStatus       map[int]content.ChapterStatus `yaml:"chapter_status"`
	AcquiredItems       map[string]bool               `yaml:"acquired_items"`
	CompletedPuzzles    []string                      `yaml:"completed_puzzles"`
	DiscoveredLocations []string                      `yaml:"discovered_locations"`
	UnlockedKnowledge   []string                      `yaml:"unlocked_knowledge"`
	Ending              content.Alignment             `yaml:"ending"`
	Completed           bool                          `yaml:"completed"`
}

// NewSession returns the canonical default session for g: first chapter
// available, the rest locked, pointer at the entry dialogue, nothing earned.
func NewSession(g *content.Graph) *GameSession {
	first := g.FirstChapter()
	s := &GameSession{
		Version:             SnapshotVersion,
		ID:                  uuid.NewString(),
		CurrentChapter:      first.ID,
		CurrentDialogueID:   first.Dialogues[0].ID,
		ChapterStatus:       make(map[int]content.ChapterStatus),
		AcquiredItems:       make(map[string]bool),
		CompletedPuzzles:    []string{},
		DiscoveredLocations: []string{},
		UnlockedKnowledge:   []string{},
	}
	for _, ch := range g.Chapters() {
		s.ChapterStatus[ch.ID] = content.StatusLocked
	}
	s.ChapterStatus[first.ID] = content.StatusAvailable
	if len(first.Locations) > 0 {
		s.CurrentLocationID = first.Locations[0].ID
		s.DiscoveredLocations = append(s.DiscoveredLocations, first.Locations[0].ID)
	}
	return s
}

// Clone returns a deep copy.
func (s *GameSession) Clone() *GameSession {
	c := *s
	c.ChapterStatus = maps.Clone(s.ChapterStatus)
	c.AcquiredItems = maps.Clone(s.AcquiredItems)
	c.CompletedPuzzles = slices.Clone(s.CompletedPuzzles)
	c.DiscoveredLocations = slices.Clone(s.DiscoveredLocations)
	c.UnlockedKnowledge = slices.Clone(s.UnlockedKnowledge)
	return &c
}

// AddPoints applies delta and floors the total at zero.
func (s *GameSession) AddPoints(delta int) {
	s.Points = max(0, s.Points+delta)
}

// AddMoralPoints raises an alignment counter. Counters never decrease, so
// non-positive amounts are ignored.
func (s *GameSession) AddMoralPoints(a content.Alignment, amount int) {
	if amount <= 0 {
		return
	}
	s.MoralPoints = s.MoralPoints.Add(a, amount)
}

// AcquireItem marks an item acquired. Acquisition is never reverted.
func (s *GameSession) AcquireItem(id string) {
	if s.AcquiredItems == nil {
		s.AcquiredItems = make(map[string]bool)
	}
	s.AcquiredItems[id] = true
}

func (s *GameSession) HasItem(id string) bool { return s.AcquiredItems[id] }

func (s *GameSession) PuzzleCompleted(id string) bool {
	return slices.Contains(s.CompletedPuzzles, id)
}

func (s *GameSession) CompletePuzzle(id string) {
	s.CompletedPuzzles = addUnique(s.CompletedPuzzles, id)
}

func (s *GameSession) DiscoverLocation(id string) {
	s.DiscoveredLocations = addUnique(s.DiscoveredLocations, id)
}

func (s *GameSession) UnlockKnowledge(tag string) {
	s.UnlockedKnowledge = addUnique(s.UnlockedKnowledge, tag)
}

// Status returns the chapter's status, locked when unknown.
func (s *GameSession) Status(chapterID int) content.ChapterStatus {
	if st, ok := s.ChapterStatus[chapterID]; ok {
		return st
	}
	return content.StatusLocked
}

// Promote moves a chapter forward to st. Backward moves are ignored and
// reported as false.
func (s *GameSession) Promote(chapterID int, st content.ChapterStatus) bool {
	if !s.Status(chapterID).Before(st) {
		return false
	}
	s.ChapterStatus[chapterID] = st
	return true
}

func addUnique(set []string, v string) []string {
	if v == "" || slices.Contains(set, v) {
		return set
	}
	return append(set, v)
}
