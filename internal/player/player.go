// Package player drives an Engine without a human: a deterministic scripted
// player for tests and demos, and a Gemini-backed player that reads the
// dialogue and decides like a person would.
package player

import (
	"context"

	"github.com/tatianab/silk-route/internal/content"
)

// Turn is what a player sees when asked to pick a choice.
type Turn struct {
	Chapter     string
	Dialogue    content.Dialogue
	Points      int
	MoralPoints content.MoralPoints
}

// Player decides dialogue choices and puzzle answers. Returned ids the
// engine does not recognise are harmless no-ops.
type Player interface {
	Choose(ctx context.Context, t Turn) (choiceID string, err error)
	Solve(ctx context.Context, p content.Puzzle) ([]string, error)
}

// ScriptedPlayer picks the first choice with the preferred alignment, or
// the first choice when none matches, and always knows the answer.
type ScriptedPlayer struct {
	Prefer content.Alignment
}

func (s ScriptedPlayer) Choose(_ context.Context, t Turn) (string, error) {
	if len(t.Dialogue.Choices) == 0 {
		return "", nil
	}
	if s.Prefer != "" {
		for _, c := range t.Dialogue.Choices {
			if c.MoralImpact == s.Prefer {
				return c.ID, nil
			}
		}
	}
	return t.Dialogue.Choices[0].ID, nil
}

func (ScriptedPlayer) Solve(_ context.Context, p content.Puzzle) ([]string, error) {
	return append([]string(nil), p.Solution...), nil
}
