package content

import (
	"errors"
	"fmt"
	"slices"
)

// validate checks referential integrity of the whole graph. Every defect is
// reported; nothing is checked lazily at traversal time.
func (g *Graph) validate() []error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if len(g.order) == 0 {
		return []error{errors.New("bundle has no chapters")}
	}
	if _, ok := g.chapters[1]; !ok {
		add("chapter 1 is missing")
	}

	for _, it := range g.Items() {
		if _, ok := g.chapters[it.Chapter]; !ok {
			add("item %q: owning chapter %d does not exist", it.ID, it.Chapter)
		}
	}
	for _, a := range Alignments {
		if _, ok := g.endings[a]; !ok {
			add("no ending defined for alignment %q", a)
		}
	}
	for id := range g.endings {
		if !id.Valid() {
			add("ending %q: unknown alignment", id)
		}
	}

	puzzleOwner := map[string]int{}
	locationOwner := map[string]int{}
	for _, chID := range g.order {
		idx := g.chapters[chID]
		ch := idx.chapter
		if len(ch.Dialogues) == 0 {
			add("chapter %d: no dialogues", ch.ID)
		}
		for _, p := range ch.Puzzles {
			if p.ID == "" {
				add("chapter %d: puzzle: empty id", ch.ID)
			}
			if other, dup := puzzleOwner[p.ID]; dup {
				add("chapter %d: puzzle %q already defined in chapter %d", ch.ID, p.ID, other)
			}
			puzzleOwner[p.ID] = ch.ID
			errs = append(errs, g.validatePuzzle(ch.ID, p)...)
		}
		for _, l := range ch.Locations {
			if l.ID == "" {
				add("chapter %d: location: empty id", ch.ID)
			}
			if other, dup := locationOwner[l.ID]; dup {
				add("chapter %d: location %q already defined in chapter %d", ch.ID, l.ID, other)
			}
			locationOwner[l.ID] = ch.ID
			if l.PuzzleID != "" {
				if _, ok := idx.puzzles[l.PuzzleID]; !ok {
					add("chapter %d: location %q: puzzle %q not found", ch.ID, l.ID, l.PuzzleID)
				}
			}
		}
		for _, item := range ch.Rewards.Items {
			if _, ok := g.items[item]; !ok {
				add("chapter %d: reward item %q not found", ch.ID, item)
			}
		}
		for _, d := range ch.Dialogues {
			errs = append(errs, g.validateDialogue(idx, d)...)
		}
		errs = append(errs, trappedDialogues(idx)...)
	}
	return errs
}

func (g *Graph) validatePuzzle(chID int, p Puzzle) []error {
	var errs []error
	if len(p.Solution) == 0 {
		errs = append(errs, fmt.Errorf("chapter %d: puzzle %q: empty solution", chID, p.ID))
	}
	for _, s := range p.Solution {
		if !slices.Contains(p.Options, s) {
			errs = append(errs, fmt.Errorf("chapter %d: puzzle %q: solution step %q is not an option", chID, p.ID, s))
		}
	}
	if p.Reward.Item != "" {
		if _, ok := g.items[p.Reward.Item]; !ok {
			errs = append(errs, fmt.Errorf("chapter %d: puzzle %q: reward item %q not found", chID, p.ID, p.Reward.Item))
		}
	}
	return errs
}

func (g *Graph) validateDialogue(idx *chapterIndex, d Dialogue) []error {
	var errs []error
	chID := idx.chapter.ID
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("chapter %d: dialogue %q: %s", chID, d.ID, fmt.Sprintf(format, args...)))
	}

	if d.ID == "" {
		add("empty id")
	}
	if d.HasChoices() && d.NextDialogueID != "" {
		add("has both choices and next_dialogue_id")
	}
	if d.NextDialogueID != "" {
		if _, ok := idx.dialogues[d.NextDialogueID]; !ok {
			add("next dialogue %q not found", d.NextDialogueID)
		}
	}
	if d.RequiresPuzzle != "" {
		if d.HasChoices() {
			add("requires_puzzle on a dialogue with choices")
		}
		if _, ok := idx.puzzles[d.RequiresPuzzle]; !ok {
			add("required puzzle %q not found", d.RequiresPuzzle)
		}
	}
	if d.Ending && !d.Sink() {
		add("ending dialogue must have no choices and no successor")
	}

	seen := map[string]bool{}
	for _, c := range d.Choices {
		if c.ID == "" {
			add("choice: empty id")
		}
		if seen[c.ID] {
			add("duplicate choice %q", c.ID)
		}
		seen[c.ID] = true
		if c.MoralImpact != "" && !c.MoralImpact.Valid() {
			add("choice %q: unknown moral impact %q", c.ID, c.MoralImpact)
		}
		if c.ItemGained != "" {
			if _, ok := g.items[c.ItemGained]; !ok {
				add("choice %q: item %q not found", c.ID, c.ItemGained)
			}
		}
		if c.NextDialogueID != "" {
			if _, ok := idx.dialogues[c.NextDialogueID]; !ok {
				add("choice %q: next dialogue %q not found", c.ID, c.NextDialogueID)
			}
		}
	}
	return errs
}

// trappedDialogues reports dialogues from which no sink can be reached.
// Cycles are allowed as long as the player can leave them.
func trappedDialogues(idx *chapterIndex) []error {
	preds := map[string][]string{}
	var queue []string
	for _, d := range idx.chapter.Dialogues {
		if d.Sink() {
			queue = append(queue, d.ID)
		}
		if d.NextDialogueID != "" {
			preds[d.NextDialogueID] = append(preds[d.NextDialogueID], d.ID)
		}
		for _, c := range d.Choices {
			if c.NextDialogueID != "" {
				preds[c.NextDialogueID] = append(preds[c.NextDialogueID], d.ID)
			}
		}
	}

	escapes := map[string]bool{}
	for _, id := range queue {
		escapes[id] = true
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, p := range preds[id] {
			if !escapes[p] {
				escapes[p] = true
				queue = append(queue, p)
			}
		}
	}

	var errs []error
	for _, d := range idx.chapter.Dialogues {
		if !escapes[d.ID] {
			errs = append(errs, fmt.Errorf("chapter %d: dialogue %q: no path leads out of it", idx.chapter.ID, d.ID))
		}
	}
	return errs
}
