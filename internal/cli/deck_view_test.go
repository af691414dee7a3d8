package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/memocard/internal/memorycard"
)

func TestDeckView(t *testing.T) {
	color.NoColor = true
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	deck := memorycard.MemoryCardDeck{
		DeckID:         "d1",
		CourseID:       "bio-101",
		Title:          "Cells",
		Description:    "Cell biology basics",
		TotalReviews:   3,
		CorrectReviews: 2,
		Cards: []memorycard.MemoryCard{
			{CardID: "c1", Question: "What is ATP?", Answer: "Energy", DifficultyLevel: 4, RepetitionCount: 4, CorrectCount: 3},
			{CardID: "c2", Question: strings.Repeat("long ", 20), Answer: "x"},
		},
	}

	tests := []struct {
		name   string
		render func(view *DeckView)
		want   []string
	}{
		{
			name:   "deck list",
			render: func(view *DeckView) { view.ToDeckList([]memorycard.MemoryCardDeck{deck}) },
			want:   []string{"ID", "ACCURACY", "d1", "Cells", "bio-101", "67%"},
		},
		{
			name:   "deck list with due counts",
			render: func(view *DeckView) { view.PrintDecks([]memorycard.MemoryCardDeck{deck}, map[string]int{"d1": 7}) },
			want:   []string{"DUE", "7"},
		},
		{
			name:   "empty deck list",
			render: func(view *DeckView) { view.ToDeckList(nil) },
			want:   []string{"No decks yet."},
		},
		{
			name:   "deck detail",
			render: func(view *DeckView) { view.ToDeck(deck) },
			want:   []string{"Cells (d1)", "Cell biology basics", "Accuracy: 67% (2/3 reviews)", "75%", "2025-06-01", "…"},
		},
		{
			name:   "deck without cards",
			render: func(view *DeckView) { view.PrintCards(nil) },
			want:   []string{"No cards."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			tt.render(newDeckView(&out, func() time.Time { return now }))
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "日本語", truncate("日本語", 3))
}
