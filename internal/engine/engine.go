// Package engine runs the narrative state machine: dialogue navigation,
// puzzle validation, chapter progression and ending resolution.
//
// An Engine has a single writer. Operations are synchronous and never
// return errors: invalid requests are no-ops reported as false, and
// persistence failures are logged.
package engine

import (
	"github.com/tatianab/silk-route/internal/content"
	"github.com/tatianab/silk-route/internal/models"
	"go.uber.org/zap"
)

type Engine struct {
	graph   *content.Graph
	store   *models.Store
	session *models.GameSession
	logger  *zap.Logger
}

// NewEngine loads the persisted session through store, falling back to the
// default session.
func NewEngine(g *content.Graph, store *models.Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := store.Load()
	logger.Info("engine ready",
		zap.String("session", s.ID),
		zap.Int("chapter", s.CurrentChapter),
		zap.Bool("completed", s.Completed))
	return &Engine{graph: g, store: store, session: s, logger: logger}
}

// Graph returns the content graph the engine runs on.
func (e *Engine) Graph() *content.Graph { return e.graph }

// Session returns a copy of the current session.
func (e *Engine) Session() *models.GameSession { return e.session.Clone() }

// Completed reports whether the game has reached an ending.
func (e *Engine) Completed() bool { return e.session.Completed }

// Reset clears persisted storage and starts over. It is the only operation
// allowed once the game is completed.
func (e *Engine) Reset() {
	e.session = e.store.Reset()
	e.logger.Info("session reset", zap.String("session", e.session.ID))
}

// update runs fn against a copy of the session. When fn reports a change
// the copy replaces the session and is written through; otherwise nothing
// happens. Completed sessions are frozen.
func (e *Engine) update(op string, fn func(s *models.GameSession) bool) bool {
	if e.session.Completed {
		e.logger.Debug("ignored, game completed", zap.String("op", op))
		return false
	}
	next := e.session.Clone()
	if !fn(next) {
		e.logger.Debug("no-op", zap.String("op", op))
		return false
	}
	e.session = next
	e.logger.Debug("transition",
		zap.String("op", op),
		zap.Int("chapter", next.CurrentChapter),
		zap.String("dialogue", next.CurrentDialogueID),
		zap.Int("points", next.Points))
	// Best effort; Store already logged the failure.
	_ = e.store.Save(next)
	return true
}

// enterDialogue moves the pointer. Reaching an ending node resolves the
// ending within the same transition.
func (e *Engine) enterDialogue(s *models.GameSession, id string) {
	s.CurrentDialogueID = id
	d, ok := e.graph.Dialogue(s.CurrentChapter, id)
	if ok && d.Ending {
		e.completeGame(s, CalculateEnding(s.MoralPoints))
	}
}

// touchChapter marks an available chapter as in progress on the first
// player action inside it.
func touchChapter(s *models.GameSession) {
	if s.Status(s.CurrentChapter) == content.StatusAvailable {
		s.Promote(s.CurrentChapter, content.StatusInProgress)
	}
}
