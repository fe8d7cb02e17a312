package models

import (
	"errors"

	"github.com/tatianab/silk-route/internal/content"
	"go.uber.org/zap"
)

// Store loads, saves and resets the session through an Adapter. Load and
// Reset never fail; storage problems degrade to the default session.
type Store struct {
	adapter Adapter
	graph   *content.Graph
	logger  *zap.Logger
}

func NewStore(adapter Adapter, g *content.Graph, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{adapter: adapter, graph: g, logger: logger}
}

// Load returns the persisted session, or the default session when nothing
// usable is stored.
func (s *Store) Load() *GameSession {
	data, err := s.adapter.Load()
	if errors.Is(err, ErrNoSnapshot) {
		s.logger.Debug("no saved session, starting fresh")
		return NewSession(s.graph)
	}
	if err != nil {
		s.logger.Warn("failed to read saved session, starting fresh", zap.Error(err))
		return NewSession(s.graph)
	}
	session, err := Unmarshal(data)
	if err != nil {
		s.logger.Warn("corrupt saved session, starting fresh", zap.Error(err))
		return NewSession(s.graph)
	}
	if err := session.Validate(s.graph); err != nil {
		s.logger.Warn("incompatible saved session, starting fresh", zap.Error(err))
		return NewSession(s.graph)
	}
	s.logger.Debug("session loaded",
		zap.String("session", session.ID),
		zap.Int("chapter", session.CurrentChapter),
		zap.String("dialogue", session.CurrentDialogueID))
	return session
}

// Save writes session. Failures are logged and returned.
func (s *Store) Save(session *GameSession) error {
	data, err := Marshal(session)
	if err != nil {
		s.logger.Warn("failed to encode session", zap.String("session", session.ID), zap.Error(err))
		return err
	}
	if err := s.adapter.Save(data); err != nil {
		s.logger.Warn("failed to save session", zap.String("session", session.ID), zap.Error(err))
		return err
	}
	return nil
}

// Reset clears storage and returns a fresh default session.
func (s *Store) Reset() *GameSession {
	if err := s.adapter.Clear(); err != nil {
		s.logger.Warn("failed to clear saved session", zap.Error(err))
	}
	return NewSession(s.graph)
}
