package models

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tatianab/silk-route/internal/content"
	"gopkg.in/yaml.v3"
)

// ErrIncompatibleSnapshot is returned for snapshots that decode but do not
// fit the loaded content graph.
var ErrIncompatibleSnapshot = errors.New("incompatible snapshot")

// Marshal serializes a session snapshot.
func Marshal(s *GameSession) ([]byte, error) {
	return yaml.Marshal(s)
}

// Unmarshal decodes a snapshot. Unknown keys are rejected and nil
// collections are replaced with empty ones.
func Unmarshal(data []byte) (*GameSession, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var s GameSession
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.ChapterStatus == nil {
		s.ChapterStatus = map[int]content.ChapterStatus{}
	}
	if s.AcquiredItems == nil {
		s.AcquiredItems = map[string]bool{}
	}
	if s.CompletedPuzzles == nil {
		s.CompletedPuzzles = []string{}
	}
	if s.DiscoveredLocations == nil {
		s.DiscoveredLocations = []string{}
	}
	if s.UnlockedKnowledge == nil {
		s.UnlockedKnowledge = []string{}
	}
	return &s, nil
}

// Validate checks that s can be resumed against g.
func (s *GameSession) Validate(g *content.Graph) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if s.Version != SnapshotVersion {
		add("version %d, want %d", s.Version, SnapshotVersion)
	}
	if _, ok := g.Chapter(s.CurrentChapter); !ok {
		add("unknown chapter %d", s.CurrentChapter)
	} else {
		if s.CurrentDialogueID != "" {
			if _, ok := g.Dialogue(s.CurrentChapter, s.CurrentDialogueID); !ok {
				add("unknown dialogue %q in chapter %d", s.CurrentDialogueID, s.CurrentChapter)
			}
		}
		if s.CurrentPuzzleID != "" {
			if _, ok := g.Puzzle(s.CurrentChapter, s.CurrentPuzzleID); !ok {
				add("unknown puzzle %q in chapter %d", s.CurrentPuzzleID, s.CurrentChapter)
			}
		}
		if s.CurrentLocationID != "" {
			if _, ok := g.Location(s.CurrentChapter, s.CurrentLocationID); !ok {
				add("unknown location %q in chapter %d", s.CurrentLocationID, s.CurrentChapter)
			}
		}
	}
	if s.Points < 0 {
		add("negative points %d", s.Points)
	}
	for _, a := range []content.Alignment{content.Preserver, content.Revealer, content.Exploiter} {
		if s.MoralPoints.Get(a) < 0 {
			add("negative %s score", a)
		}
	}
	for _, ch := range g.Chapters() {
		st, ok := s.ChapterStatus[ch.ID]
		if !ok {
			add("no status for chapter %d", ch.ID)
			continue
		}
		if !st.Valid() {
			add("chapter %d: unknown status %q", ch.ID, st)
		}
	}
	for id := range s.ChapterStatus {
		if _, ok := g.Chapter(id); !ok {
			add("status for unknown chapter %d", id)
		}
	}
	for id := range s.AcquiredItems {
		if _, ok := g.Item(id); !ok {
			add("unknown item %q", id)
		}
	}
	for _, id := range s.CompletedPuzzles {
		if !g.HasPuzzle(id) {
			add("unknown completed puzzle %q", id)
		}
	}
	for _, id := range s.DiscoveredLocations {
		if !g.HasLocation(id) {
			add("unknown location %q", id)
		}
	}
	if s.Ending != "" {
		if _, ok := g.Ending(s.Ending); !ok {
			add("unknown ending %q", s.Ending)
		}
	}
	if s.Completed && s.Ending == "" {
		add("completed without an ending")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrIncompatibleSnapshot, errors.Join(errs...))
	}
	return nil
}
