package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/silk-route/internal/content"
	"github.com/tatianab/silk-route/internal/models"
)

func TestCompleteChapterTouchesOnlyNAndNext(t *testing.T) {
	h := newHarness(t, func(s *models.GameSession) {
		s.CurrentChapter = 3
		s.CurrentDialogueID = "guardian_challenge"
		s.CurrentLocationID = "tunnel_entrance"
		s.ChapterStatus[1] = content.StatusCompleted
		s.ChapterStatus[2] = content.StatusCompleted
		s.ChapterStatus[3] = content.StatusInProgress
	})
	before := h.engine.Session()

	require.True(t, h.engine.CompleteChapter())
	after := h.engine.Session()

	assert.Equal(t, content.StatusCompleted, after.Status(3))
	assert.Equal(t, content.StatusAvailable, after.Status(4))
	for _, id := range []int{1, 2, 5} {
		assert.Equal(t, before.Status(id), after.Status(id), "chapter %d", id)
	}

	assert.Equal(t, before.Points+250, after.Points)
	assert.Equal(t, []string{"Underground Trade Networks", "Merchant Cryptography"}, after.UnlockedKnowledge)
	assert.True(t, after.HasItem("persian_coin"))
	assert.True(t, after.HasItem("cipher_key"))

	assert.False(t, h.engine.CompleteChapter(), "rewards merge once")
	assert.Equal(t, after.Points, h.engine.Session().Points)
}

func TestCompleteChapterDoesNotRelockOrSkip(t *testing.T) {
	h := newHarnessFor(t, smallGraph(t), func(s *models.GameSession) {
		s.ChapterStatus[2] = content.StatusInProgress
	})
	require.True(t, h.engine.CompleteChapter())

	s := h.engine.Session()
	assert.Equal(t, content.StatusCompleted, s.Status(1))
	assert.Equal(t, content.StatusInProgress, s.Status(2), "next chapter only unlocks when locked")
	assert.Equal(t, content.StatusLocked, s.Status(3))
	assert.Equal(t, 7, s.Points)
	assert.Equal(t, []string{"k"}, s.UnlockedKnowledge)
}

func TestCompleteLastChapter(t *testing.T) {
	h := newHarness(t, func(s *models.GameSession) {
		s.CurrentChapter = 5
		s.CurrentDialogueID = "final_choice_intro"
		s.CurrentLocationID = "institute"
		for id := 1; id <= 4; id++ {
			s.ChapterStatus[id] = content.StatusCompleted
		}
		s.ChapterStatus[5] = content.StatusInProgress
	})
	require.True(t, h.engine.CompleteChapter())
	s := h.engine.Session()
	assert.Equal(t, content.StatusCompleted, s.Status(5))
	assert.True(t, s.HasItem("final_ledger"))
}

func TestStartChapter(t *testing.T) {
	h := newHarness(t, nil)

	assert.False(t, h.engine.StartChapter(2), "locked")
	assert.False(t, h.engine.StartChapter(9), "unknown")
	assert.Zero(t, h.adapter.Saves)

	require.True(t, h.engine.SelectChoice("ask_more"))
	require.True(t, h.engine.CompleteChapter())
	require.True(t, h.engine.StartChapter(2))

	s := h.engine.Session()
	assert.Equal(t, 2, s.CurrentChapter)
	assert.Equal(t, "weaver_intro", s.CurrentDialogueID)
	assert.Equal(t, "weaver_home", s.CurrentLocationID)
	assert.Contains(t, s.DiscoveredLocations, "weaver_home")
	assert.Equal(t, content.StatusInProgress, s.Status(2))
}

func TestStartChapterRefusesCompletedChapter(t *testing.T) {
	h := newHarness(t, func(s *models.GameSession) {
		s.CurrentChapter = 2
		s.CurrentDialogueID = "weaver_intro"
		s.CurrentLocationID = "weaver_home"
		s.ChapterStatus[1] = content.StatusCompleted
		s.ChapterStatus[2] = content.StatusInProgress
	})

	assert.False(t, h.engine.StartChapter(1))
	s := h.engine.Session()
	assert.Equal(t, content.StatusCompleted, s.Status(1))
	assert.Equal(t, 2, s.CurrentChapter)
}

func TestDiscoverLocation(t *testing.T) {
	h := newHarness(t, nil)
	assert.False(t, h.engine.DiscoverLocation("institute"), "other chapter")
	assert.False(t, h.engine.DiscoverLocation("main_ghat"), "already there")
	require.True(t, h.engine.DiscoverLocation("boat_storage"))

	s := h.engine.Session()
	assert.Equal(t, "boat_storage", s.CurrentLocationID)
	assert.Equal(t, []string{"main_ghat", "boat_storage"}, s.DiscoveredLocations)
}

func TestInventoryProjections(t *testing.T) {
	h := newHarness(t, nil)
	require.True(t, h.engine.SelectChoice("ask_more"))
	require.True(t, h.engine.SelectChoice("preserve_interest"))

	acquired := h.engine.AcquiredItems()
	require.Len(t, acquired, 1)
	assert.Equal(t, "silk_sample", acquired[0].ID)
	assert.True(t, acquired[0].Acquired)
	assert.Len(t, h.engine.InventoryByChapter(1), 1)
	assert.Empty(t, h.engine.InventoryByChapter(2))

	sum := h.engine.Summary()
	assert.Equal(t, 15, sum.Points)
	assert.Len(t, sum.Inventory, 9)
	assert.Len(t, sum.Chapters, 5)
	assert.Equal(t, content.StatusInProgress, sum.Chapters[0].Status)
	assert.Nil(t, sum.Ending)
}
