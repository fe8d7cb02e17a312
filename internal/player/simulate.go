package player

import (
	"context"
	"fmt"

	"github.com/tatianab/silk-route/internal/content"
	"github.com/tatianab/silk-route/internal/engine"
	"go.uber.org/zap"
)

// Event is one line of a simulation transcript.
type Event struct {
	Turn   int
	Kind   string
	Detail string
}

// Result summarises a simulation.
type Result struct {
	Turns         int
	Choices       int
	Rejected      int
	PuzzlesSolved int
	FailedAttempt int
	Points        int
	MoralPoints   content.MoralPoints
	Completed     bool
	Ending        content.Alignment
	Events        []Event
}

// Simulate lets p play eng for at most maxTurns turns, stopping early when
// the game ends or no further move exists.
func Simulate(ctx context.Context, eng *engine.Engine, p Player, maxTurns int, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var res Result
	record := func(kind, format string, args ...any) {
		res.Events = append(res.Events, Event{Turn: res.Turns, Kind: kind, Detail: fmt.Sprintf(format, args...)})
	}

	for res.Turns < maxTurns && !eng.Completed() {
		if err := ctx.Err(); err != nil {
			return finish(eng, res), err
		}
		res.Turns++

		d, ok := eng.CurrentDialogue()
		if !ok {
			record("stuck", "no dialogue")
			break
		}

		if d.HasChoices() {
			ch, _ := eng.CurrentChapter()
			s := eng.Session()
			id, err := p.Choose(ctx, Turn{Chapter: ch.Title, Dialogue: d, Points: s.Points, MoralPoints: s.MoralPoints})
			if err != nil {
				return finish(eng, res), fmt.Errorf("turn %d: choose: %w", res.Turns, err)
			}
			if eng.SelectChoice(id) {
				res.Choices++
				record("choice", "%s: %s", d.ID, id)
			} else {
				res.Rejected++
				record("rejected", "%s: %q", d.ID, id)
				logger.Warn("player picked an unknown choice", zap.String("dialogue", d.ID), zap.String("choice", id))
			}
			continue
		}

		if pz, waiting := eng.Waiting(); waiting {
			eng.StartPuzzle(pz.ID)
			answer, err := p.Solve(ctx, pz)
			if err != nil {
				return finish(eng, res), fmt.Errorf("turn %d: solve: %w", res.Turns, err)
			}
			if eng.Attempt(pz.ID, answer) {
				res.PuzzlesSolved++
				record("solved", "%s", pz.ID)
			} else {
				res.FailedAttempt++
				record("failed", "%s: %v", pz.ID, answer)
			}
			continue
		}

		if eng.Advance() {
			record("advance", "%s", d.ID)
			continue
		}

		next, ok := nextChapter(eng)
		if !ok || !eng.StartChapter(next) {
			record("stuck", "no chapter to start after %s", d.ID)
			break
		}
		record("chapter", "started chapter %d", next)
	}

	res = finish(eng, res)
	logger.Info("simulation finished",
		zap.Int("turns", res.Turns),
		zap.Bool("completed", res.Completed),
		zap.String("ending", string(res.Ending)),
		zap.Int("points", res.Points))
	return res, nil
}

// nextChapter returns the lowest chapter the player can still enter,
// skipping the one already under way.
func nextChapter(eng *engine.Engine) (int, bool) {
	current := eng.Session().CurrentChapter
	for _, ch := range eng.Summary().Chapters {
		if ch.ID == current {
			continue
		}
		if ch.Status == content.StatusAvailable || ch.Status == content.StatusInProgress {
			return ch.ID, true
		}
	}
	return 0, false
}

func finish(eng *engine.Engine, res Result) Result {
	s := eng.Session()
	res.Points = s.Points
	res.MoralPoints = s.MoralPoints
	res.Completed = s.Completed
	res.Ending = s.Ending
	return res
}
