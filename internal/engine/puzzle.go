package engine

import (
	"slices"

	"github.com/tatianab/silk-route/internal/models"
	"go.uber.org/zap"
)

// StartPuzzle makes a puzzle of the current chapter active and moves the
// player to the location hosting it.
func (e *Engine) StartPuzzle(puzzleID string) bool {
	return e.update("start_puzzle", func(s *models.GameSession) bool {
		if _, ok := e.graph.Puzzle(s.CurrentChapter, puzzleID); !ok {
			return false
		}
		if s.PuzzleCompleted(puzzleID) || s.CurrentPuzzleID == puzzleID {
			return false
		}
		s.CurrentPuzzleID = puzzleID
		if loc, ok := e.graph.PuzzleLocation(s.CurrentChapter, puzzleID); ok {
			s.CurrentLocationID = loc.ID
			s.DiscoverLocation(loc.ID)
		}
		return true
	})
}

// ClosePuzzle dismisses the active puzzle without solving it.
func (e *Engine) ClosePuzzle() bool {
	return e.update("close_puzzle", func(s *models.GameSession) bool {
		if s.CurrentPuzzleID == "" {
			return false
		}
		s.CurrentPuzzleID = ""
		return true
	})
}

// Attempt checks submitted against the puzzle's solution for exact
// equality of length, order and values. A correct first submission grants
// the reward, records completion and clears the active puzzle. Resubmitting
// a solved puzzle reports true and grants nothing.
func (e *Engine) Attempt(puzzleID string, submitted []string) bool {
	if e.session.Completed {
		return false
	}
	p, ok := e.graph.Puzzle(e.session.CurrentChapter, puzzleID)
	if !ok {
		e.logger.Debug("attempt on unknown puzzle", zap.String("puzzle", puzzleID))
		return false
	}
	if !slices.Equal(submitted, p.Solution) {
		e.logger.Debug("wrong solution", zap.String("puzzle", puzzleID))
		return false
	}
	if e.session.PuzzleCompleted(puzzleID) {
		e.logger.Debug("puzzle already solved", zap.String("puzzle", puzzleID))
		return true
	}

	e.update("attempt", func(s *models.GameSession) bool {
		s.AddPoints(p.Reward.Points)
		if p.Reward.Item != "" {
			s.AcquireItem(p.Reward.Item)
		}
		if p.Reward.Knowledge != "" {
			s.UnlockKnowledge(p.Reward.Knowledge)
		}
		s.CompletePuzzle(puzzleID)
		s.CurrentPuzzleID = ""
		return true
	})
	e.logger.Info("puzzle solved", zap.String("puzzle", puzzleID), zap.Int("points", p.Reward.Points))
	return true
}
