package engine

import "github.com/tatianab/silk-route/internal/models"

// defaultMoralMagnitude is credited to a choice's alignment when the
// choice carries no points change.
const defaultMoralMagnitude = 10

// SelectChoice applies a choice of the current dialogue: points (floored
// at zero), alignment score, item, then pointer move. A choice without a
// successor leaves the pointer in place. Unknown ids are no-ops.
func (e *Engine) SelectChoice(choiceID string) bool {
	return e.update("select_choice", func(s *models.GameSession) bool {
		d, ok := e.graph.Dialogue(s.CurrentChapter, s.CurrentDialogueID)
		if !ok || !d.HasChoices() {
			return false
		}
		c, ok := d.Choice(choiceID)
		if !ok {
			return false
		}

		touchChapter(s)
		s.AddPoints(c.PointsChange)
		if c.MoralImpact != "" {
			magnitude := abs(c.PointsChange)
			if c.PointsChange == 0 {
				magnitude = defaultMoralMagnitude
			}
			s.AddMoralPoints(c.MoralImpact, magnitude)
		}
		if c.ItemGained != "" {
			s.AcquireItem(c.ItemGained)
		}
		if c.NextDialogueID != "" {
			e.enterDialogue(s, c.NextDialogueID)
		}
		return true
	})
}

// Advance follows a choice-less dialogue. It waits while a required puzzle
// is unsolved, moves to the successor when there is one, and otherwise
// completes the chapter.
func (e *Engine) Advance() bool {
	return e.update("advance", func(s *models.GameSession) bool {
		d, ok := e.graph.Dialogue(s.CurrentChapter, s.CurrentDialogueID)
		if !ok || d.HasChoices() {
			return false
		}
		if d.RequiresPuzzle != "" && !s.PuzzleCompleted(d.RequiresPuzzle) {
			return false
		}
		if d.NextDialogueID != "" {
			touchChapter(s)
			e.enterDialogue(s, d.NextDialogueID)
			return true
		}
		if d.Ending {
			return false
		}
		return e.completeChapter(s)
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
