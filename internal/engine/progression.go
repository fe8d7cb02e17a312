package engine

import (
	"github.com/tatianab/silk-route/internal/content"
	"github.com/tatianab/silk-route/internal/models"
	"go.uber.org/zap"
)

// CompleteChapter completes the current chapter, unlocks the next one and
// merges the chapter rewards. A chapter completes exactly once.
func (e *Engine) CompleteChapter() bool {
	return e.update("complete_chapter", e.completeChapter)
}

func (e *Engine) completeChapter(s *models.GameSession) bool {
	ch, ok := e.graph.Chapter(s.CurrentChapter)
	if !ok || s.Status(ch.ID) == content.StatusCompleted {
		return false
	}
	s.Promote(ch.ID, content.StatusCompleted)

	next := ch.ID + 1
	if _, ok := e.graph.Chapter(next); ok && s.Status(next) == content.StatusLocked {
		s.Promote(next, content.StatusAvailable)
	}

	s.AddPoints(ch.Rewards.Points)
	for _, item := range ch.Rewards.Items {
		s.AcquireItem(item)
	}
	for _, k := range ch.Rewards.Knowledge {
		s.UnlockKnowledge(k)
	}
	s.CurrentPuzzleID = ""

	e.logger.Info("chapter completed",
		zap.String("session", s.ID),
		zap.Int("chapter", ch.ID),
		zap.Int("reward_points", ch.Rewards.Points))
	return true
}

// StartChapter moves the player to the start of an available or in-progress
// chapter. Completed chapters cannot be re-entered, so a chapter's status
// never moves backward and its rewards are never granted twice.
func (e *Engine) StartChapter(chapterID int) bool {
	return e.update("start_chapter", func(s *models.GameSession) bool {
		ch, ok := e.graph.Chapter(chapterID)
		if !ok {
			return false
		}
		switch s.Status(chapterID) {
		case content.StatusAvailable, content.StatusInProgress:
		default:
			return false
		}

		s.CurrentChapter = ch.ID
		s.CurrentPuzzleID = ""
		s.CurrentLocationID = ""
		if len(ch.Locations) > 0 {
			s.CurrentLocationID = ch.Locations[0].ID
			s.DiscoverLocation(ch.Locations[0].ID)
		}
		s.Promote(ch.ID, content.StatusInProgress)
		e.enterDialogue(s, ch.Dialogues[0].ID)
		return true
	})
}

// DiscoverLocation records a location of the current chapter as discovered
// and moves the player there.
func (e *Engine) DiscoverLocation(locationID string) bool {
	return e.update("discover_location", func(s *models.GameSession) bool {
		if _, ok := e.graph.Location(s.CurrentChapter, locationID); !ok {
			return false
		}
		if s.CurrentLocationID == locationID {
			return false
		}
		s.CurrentLocationID = locationID
		s.DiscoverLocation(locationID)
		return true
	})
}
