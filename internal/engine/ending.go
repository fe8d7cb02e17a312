package engine

import (
	"github.com/tatianab/silk-route/internal/content"
	"github.com/tatianab/silk-route/internal/models"
	"go.uber.org/zap"
)

// CalculateEnding returns the alignment whose score is strictly greater
// than both others, or neutral when there is no unique maximum.
func CalculateEnding(m content.MoralPoints) content.Alignment {
	switch {
	case m.Preserver > m.Revealer && m.Preserver > m.Exploiter:
		return content.Preserver
	case m.Revealer > m.Preserver && m.Revealer > m.Exploiter:
		return content.Revealer
	case m.Exploiter > m.Preserver && m.Exploiter > m.Revealer:
		return content.Exploiter
	}
	return content.Neutral
}

// CalculateEnding resolves the ending for the current scores.
func (e *Engine) CalculateEnding() content.Alignment {
	return CalculateEnding(e.session.MoralPoints)
}

// CompleteGame freezes the given ending. Afterwards every operation other
// than Reset is a no-op.
func (e *Engine) CompleteGame(a content.Alignment) bool {
	return e.update("complete_game", func(s *models.GameSession) bool {
		if _, ok := e.graph.Ending(a); !ok {
			return false
		}
		e.completeGame(s, a)
		return true
	})
}

func (e *Engine) completeGame(s *models.GameSession, a content.Alignment) {
	s.Ending = a
	s.Completed = true
	s.CurrentPuzzleID = ""
	e.logger.Info("game completed",
		zap.String("session", s.ID),
		zap.String("ending", string(a)),
		zap.Int("points", s.Points))
}
