package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/silk_route.yaml
var silkRouteBundle []byte

// ErrInvalidContent wraps every load or validation failure.
var ErrInvalidContent = errors.New("invalid content")

// Graph is the validated, read-only content graph.
type Graph struct {
	title     string
	chapters  map[int]*chapterIndex
	order     []int
	items     map[string]InventoryItem
	itemOrder []string
	endings   map[Alignment]Ending
}

type chapterIndex struct {
	chapter   Chapter
	dialogues map[string]Dialogue
	puzzles   map[string]Puzzle
	locations map[string]Location
}

// Default returns the embedded Silk Route graph.
func Default() (*Graph, error) {
	return Load(bytes.NewReader(silkRouteBundle))
}

// LoadFile loads a bundle from path.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrInvalidContent, path, err)
	}
	defer f.Close()
	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Load decodes a YAML bundle and builds a validated Graph.
func Load(r io.Reader) (*Graph, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var b Bundle
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: decode bundle: %v", ErrInvalidContent, err)
	}
	return New(b)
}

// New builds a Graph from an in-memory bundle.
func New(b Bundle) (*Graph, error) {
	g := &Graph{
		title:    b.Title,
		chapters: make(map[int]*chapterIndex, len(b.Chapters)),
		items:    make(map[string]InventoryItem, len(b.Items)),
		endings:  make(map[Alignment]Ending, len(b.Endings)),
	}
	var errs []error
	for _, it := range b.Items {
		if it.ID == "" {
			errs = append(errs, errors.New("item with empty id"))
			continue
		}
		if _, dup := g.items[it.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate item %q", it.ID))
			continue
		}
		g.items[it.ID] = it
		g.itemOrder = append(g.itemOrder, it.ID)
	}
	for _, e := range b.Endings {
		if _, dup := g.endings[e.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate ending %q", e.ID))
			continue
		}
		g.endings[e.ID] = e
	}
	for _, ch := range b.Chapters {
		if ch.ID <= 0 {
			errs = append(errs, fmt.Errorf("chapter %q: id must be positive, got %d", ch.Title, ch.ID))
			continue
		}
		if _, dup := g.chapters[ch.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate chapter %d", ch.ID))
			continue
		}
		idx := &chapterIndex{
			chapter:   ch,
			dialogues: make(map[string]Dialogue, len(ch.Dialogues)),
			puzzles:   make(map[string]Puzzle, len(ch.Puzzles)),
			locations: make(map[string]Location, len(ch.Locations)),
		}
		for _, d := range ch.Dialogues {
			if _, dup := idx.dialogues[d.ID]; dup {
				errs = append(errs, fmt.Errorf("chapter %d: duplicate dialogue %q", ch.ID, d.ID))
				continue
			}
			idx.dialogues[d.ID] = d
		}
		for _, p := range ch.Puzzles {
			idx.puzzles[p.ID] = p
		}
		for _, l := range ch.Locations {
			idx.locations[l.ID] = l
		}
		g.chapters[ch.ID] = idx
		g.order = append(g.order, ch.ID)
	}
	sort.Ints(g.order)

	errs = append(errs, g.validate()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContent, errors.Join(errs...))
	}
	return g, nil
}

// Title returns the bundle title.
func (g *Graph) Title() string { return g.title }

// Chapter looks up a chapter by id.
func (g *Graph) Chapter(id int) (Chapter, bool) {
	idx, ok := g.chapters[id]
	if !ok {
		return Chapter{}, false
	}
	return idx.chapter, true
}

// Chapters returns every chapter ordered by id.
func (g *Graph) Chapters() []Chapter {
	out := make([]Chapter, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.chapters[id].chapter)
	}
	return out
}

// FirstChapter returns the lowest-numbered chapter.
func (g *Graph) FirstChapter() Chapter {
	return g.chapters[g.order[0]].chapter
}

func (g *Graph) Dialogue(chapterID int, dialogueID string) (Dialogue, bool) {
	idx, ok := g.chapters[chapterID]
	if !ok {
		return Dialogue{}, false
	}
	d, ok := idx.dialogues[dialogueID]
	return d, ok
}

func (g *Graph) Puzzle(chapterID int, puzzleID string) (Puzzle, bool) {
	idx, ok := g.chapters[chapterID]
	if !ok {
		return Puzzle{}, false
	}
	p, ok := idx.puzzles[puzzleID]
	return p, ok
}

func (g *Graph) Location(chapterID int, locationID string) (Location, bool) {
	idx, ok := g.chapters[chapterID]
	if !ok {
		return Location{}, false
	}
	l, ok := idx.locations[locationID]
	return l, ok
}

// PuzzleLocation returns the location in the chapter hosting puzzleID.
func (g *Graph) PuzzleLocation(chapterID int, puzzleID string) (Location, bool) {
	idx, ok := g.chapters[chapterID]
	if !ok {
		return Location{}, false
	}
	for _, l := range idx.chapter.Locations {
		if l.PuzzleID == puzzleID {
			return l, true
		}
	}
	return Location{}, false
}

// HasPuzzle reports whether any chapter defines puzzleID.
func (g *Graph) HasPuzzle(puzzleID string) bool {
	for _, idx := range g.chapters {
		if _, ok := idx.puzzles[puzzleID]; ok {
			return true
		}
	}
	return false
}

// HasLocation reports whether any chapter defines locationID.
func (g *Graph) HasLocation(locationID string) bool {
	for _, idx := range g.chapters {
		if _, ok := idx.locations[locationID]; ok {
			return true
		}
	}
	return false
}

func (g *Graph) Item(id string) (InventoryItem, bool) {
	it, ok := g.items[id]
	return it, ok
}

// Items returns every item in authored order.
func (g *Graph) Items() []InventoryItem {
	out := make([]InventoryItem, 0, len(g.itemOrder))
	for _, id := range g.itemOrder {
		out = append(out, g.items[id])
	}
	return out
}

func (g *Graph) Ending(a Alignment) (Ending, bool) {
	e, ok := g.endings[a]
	return e, ok
}
