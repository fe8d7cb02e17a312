// Package content holds the authored story: chapters, dialogue nodes,
// choices, puzzles and reward bundles. A Graph is built once from a bundle,
// validated for referential integrity and never mutated afterwards.
package content

// ChapterStatus is the lifecycle state of a chapter.
type ChapterStatus string

const (
	StatusLocked     ChapterStatus = "locked"
	StatusAvailable  ChapterStatus = "available"
	StatusInProgress ChapterStatus = "in_progress"
	StatusCompleted  ChapterStatus = "completed"
)

var statusRank = map[ChapterStatus]int{
	StatusLocked:     0,
	StatusAvailable:  1,
	StatusInProgress: 2,
	StatusCompleted:  3,
}

// Valid reports whether s is one of the four known statuses.
func (s ChapterStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Before reports whether s comes strictly earlier than other along
// locked -> available -> in_progress -> completed.
func (s ChapterStatus) Before(other ChapterStatus) bool {
	return statusRank[s] < statusRank[other]
}

// Alignment is a moral alignment.
type Alignment string

const (
	Preserver Alignment = "preserver"
	Revealer  Alignment = "revealer"
	Exploiter Alignment = "exploiter"
	Neutral   Alignment = "neutral"
)

// Alignments lists every alignment, scored ones first.
var Alignments = []Alignment{Preserver, Revealer, Exploiter, Neutral}

func (a Alignment) Valid() bool {
	switch a {
	case Preserver, Revealer, Exploiter, Neutral:
		return true
	}
	return false
}

// MoralPoints holds the per-alignment scores. Neutral is never scored.
type MoralPoints struct {
	Preserver int `yaml:"preserver"`
	Revealer  int `yaml:"revealer"`
	Exploiter int `yaml:"exploiter"`
}

// Add returns m with amount added to the counter for a. Neutral and
// unknown alignments leave m unchanged.
func (m MoralPoints) Add(a Alignment, amount int) MoralPoints {
	switch a {
	case Preserver:
		m.Preserver += amount
	case Revealer:
		m.Revealer += amount
	case Exploiter:
		m.Exploiter += amount
	}
	return m
}

// Get returns the counter for a, zero for neutral.
func (m MoralPoints) Get(a Alignment) int {
	switch a {
	case Preserver:
		return m.Preserver
	case Revealer:
		return m.Revealer
	case Exploiter:
		return m.Exploiter
	}
	return 0
}

// Bundle is the top-level authored document.
type Bundle struct {
	Title    string          `yaml:"title"`
	Items    []InventoryItem `yaml:"items"`
	Chapters []Chapter       `yaml:"chapters"`
	Endings  []Ending        `yaml:"endings"`
}

// Chapter is a top-level content unit. Its status lives in the session.
type Chapter struct {
	ID          int        `yaml:"id"`
	Title       string     `yaml:"title"`
	Subtitle    string     `yaml:"subtitle,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Era         string     `yaml:"era,omitempty"`
	Setting     string     `yaml:"setting,omitempty"`
	Locations   []Location `yaml:"locations,omitempty"`
	Dialogues   []Dialogue `yaml:"dialogues"`
	Puzzles     []Puzzle   `yaml:"puzzles,omitempty"`
	Objectives  []string   `yaml:"objectives,omitempty"`
	Rewards     Rewards    `yaml:"rewards"`
}

// Rewards is merged into the session once when the chapter completes.
type Rewards struct {
	Points    int      `yaml:"points"`
	Items     []string `yaml:"items,omitempty"`
	Knowledge []string `yaml:"knowledge,omitempty"`
}

// Dialogue is a narrative node. NextDialogueID is only followed when the
// node has no choices.
type Dialogue struct {
	ID             string   `yaml:"id"`
	Speaker        string   `yaml:"speaker"`
	SpeakerRole    string   `yaml:"speaker_role,omitempty"`
	Text           string   `yaml:"text"`
	Choices        []Choice `yaml:"choices,omitempty"`
	NextDialogueID string   `yaml:"next_dialogue_id,omitempty"`
	RequiresPuzzle string   `yaml:"requires_puzzle,omitempty"`
	Ending         bool     `yaml:"ending,omitempty"`
}

// HasChoices reports whether the node branches.
func (d Dialogue) HasChoices() bool { return len(d.Choices) > 0 }

// Sink reports whether the node has no way forward on its own.
func (d Dialogue) Sink() bool { return !d.HasChoices() && d.NextDialogueID == "" }

// Choice returns the choice with the given id.
func (d Dialogue) Choice(id string) (Choice, bool) {
	for _, c := range d.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// Choice is a player-selectable branch. A zero PointsChange is treated as
// absent.
type Choice struct {
	ID             string    `yaml:"id"`
	Text           string    `yaml:"text"`
	MoralImpact    Alignment `yaml:"moral_impact,omitempty"`
	PointsChange   int       `yaml:"points_change,omitempty"`
	ItemGained     string    `yaml:"item_gained,omitempty"`
	NextDialogueID string    `yaml:"next_dialogue_id,omitempty"`
}

// Puzzle requires an exact ordered submission.
type Puzzle struct {
	ID          string       `yaml:"id"`
	Type        string       `yaml:"type"`
	Title       string       `yaml:"title,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Hint        string       `yaml:"hint,omitempty"`
	Solution    []string     `yaml:"solution"`
	Options     []string     `yaml:"options"`
	Reward      PuzzleReward `yaml:"reward"`
}

type PuzzleReward struct {
	Points    int    `yaml:"points"`
	Item      string `yaml:"item,omitempty"`
	Knowledge string `yaml:"knowledge,omitempty"`
}

// Location is a place within a chapter, optionally hosting a puzzle.
type Location struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Items       []string `yaml:"items,omitempty"`
	Characters  []string `yaml:"characters,omitempty"`
	PuzzleID    string   `yaml:"puzzle_id,omitempty"`
}

// InventoryItem is an acquirable item. Acquired is the authored default and
// is false for every shipped item; the session tracks acquisition.
type InventoryItem struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Type        string `yaml:"type"`
	Rarity      string `yaml:"rarity"`
	Acquired    bool   `yaml:"acquired,omitempty"`
	Chapter     int    `yaml:"chapter"`
}

// Ending is the terminal narrative branch for one alignment.
type Ending struct {
	ID          Alignment `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Epilogue    string    `yaml:"epilogue"`
}
