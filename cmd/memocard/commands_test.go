package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/memocard/internal/database"
	"github.com/at-ishikawa/memocard/internal/deck"
	"github.com/at-ishikawa/memocard/internal/memorycard"
	"github.com/at-ishikawa/memocard/internal/testutil"
)

func TestCommands_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "review", args: []string{"review"}},
		{name: "decks list", args: []string{"decks", "list"}},
		{name: "decks show", args: []string{"decks", "show", "d1"}},
		{name: "cards add", args: []string{"cards", "add", "d1", "--question", "Q", "--answer", "A"}},
		{name: "cards search", args: []string{"cards", "search", "d1"}},
		{name: "generate", args: []string{"generate", "course-1", "ch1"}},
		{name: "export", args: []string{"export", "d1"}},
		{name: "journal migrate", args: []string{"journal", "migrate"}},
		{name: "journal stats", args: []string{"journal", "stats"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			setConfigFile(t, setupBrokenConfigFile(t))

			_, err := execute(t, newRootCommand(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "configuration")
		})
	}
}

func TestCommands_UserRequired(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir, "http://127.0.0.1:1")
	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfgPath, []byte(strings.Replace(string(content), "id: test-user", "id: \"\"", 1)), 0644))
	setConfigFile(t, cfgPath)

	for _, args := range [][]string{{"review"}, {"decks", "list"}} {
		_, err := execute(t, newRootCommand(), args...)
		assert.ErrorIs(t, err, errUserRequired)
	}
}

func TestDecksListCommand(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantRequests []string
		wantOutput   []string
	}{
		{
			name:         "without due counts",
			args:         []string{"decks", "list"},
			wantRequests: []string{"GET /memory-cards/decks"},
			wantOutput:   []string{"ID", "TITLE", "Cell Biology", "course-1"},
		},
		{
			name:         "with due counts",
			args:         []string{"decks", "list", "--due"},
			wantRequests: []string{"GET /memory-cards/decks", "GET /memory-cards/due"},
			wantOutput:   []string{"DUE", "Cell Biology"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			backend := newFakeBackend(t)
			backend.due = backend.deck.Cards
			backend.start()

			output, err := execute(t, newRootCommand(), tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRequests, backend.recorded())
			for _, want := range tt.wantOutput {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestDecksShowCommand(t *testing.T) {
	tests := []struct {
		name       string
		deckID     string
		wantErr    bool
		wantOutput string
	}{
		{
			name:       "prints the deck",
			deckID:     "d1",
			wantOutput: "Cell Biology (d1)",
		},
		{
			name:       "missing deck",
			deckID:     "unknown",
			wantErr:    true,
			wantOutput: "Failed to load the deck",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			backend := newFakeBackend(t)
			backend.start()

			output, err := execute(t, newRootCommand(), "decks", "show", tt.deckID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, output, tt.wantOutput)
		})
	}
}

func TestDecksCreateCommand(t *testing.T) {
	clearEnv(t)
	backend := newFakeBackend(t)
	backend.start()

	output, err := execute(t, newRootCommand(), "decks", "create", "course-1", "  New deck ", "--description", "Chapter 1")
	require.NoError(t, err)
	assert.Contains(t, output, `Deck "New deck" created`)

	var body memorycard.NewDeck
	sent, ok := backend.body("POST /memory-cards/decks")
	require.True(t, ok)
	require.NoError(t, json.Unmarshal(sent, &body))
	assert.Equal(t, memorycard.NewDeck{UserID: "test-user", CourseID: "course-1", Title: "New deck", Description: "Chapter 1"}, body)
}

func TestDecksDeleteCommand(t *testing.T) {
	tests := []struct {
		name         string
		deckID       string
		wantErr      bool
		wantRequests []string
		wantOutput   []string
	}{
		{
			name:         "deletes and returns to the deck list",
			deckID:       "d1",
			wantRequests: []string{"DELETE /memory-cards/decks/{deckId}", "GET /memory-cards/decks"},
			wantOutput:   []string{"Deck deleted", "No decks yet."},
		},
		{
			name:         "missing deck",
			deckID:       "unknown",
			wantErr:      true,
			wantRequests: []string{"DELETE /memory-cards/decks/{deckId}"},
			wantOutput:   []string{"Failed to delete the deck"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			backend := newFakeBackend(t)
			backend.start()

			output, err := execute(t, newRootCommand(), "decks", "delete", tt.deckID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantRequests, backend.recorded())
			for _, want := range tt.wantOutput {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestCardsAddCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantErr    error
		wantOutput string
		wantSent   bool
	}{
		{
			name:       "adds the card",
			args:       []string{"cards", "add", "d1", "--question", "What is ATP?", "--answer", "Energy currency"},
			wantOutput: "Card added",
			wantSent:   true,
		},
		{
			name:       "question is required",
			args:       []string{"cards", "add", "d1", "--answer", "Energy currency"},
			wantErr:    deck.ErrQuestionRequired,
			wantOutput: "question is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			backend := newFakeBackend(t)
			backend.start()

			output, err := execute(t, newRootCommand(), tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, output, tt.wantOutput)

			body, sent := backend.body("POST /memory-cards/decks/{deckId}/cards")
			assert.Equal(t, tt.wantSent, sent)
			if sent {
				var card memorycard.MemoryCard
				require.NoError(t, json.Unmarshal(body, &card))
				assert.Equal(t, "What is ATP?", card.Question)
				assert.Equal(t, memorycard.DefaultDifficultyLevel, card.DifficultyLevel)
			}
		})
	}
}

func TestCardsSearchCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantOrder []string
		wantNot   []string
		wantErr   bool
	}{
		{
			name:      "filters by term",
			args:      []string{"cards", "search", "d1", "MITO"},
			wantOrder: []string{"c1"},
			wantNot:   []string{"c2"},
		},
		{
			name:      "sorts by difficulty",
			args:      []string{"cards", "search", "d1", "--sort", "difficulty"},
			wantOrder: []string{"c1", "c2"},
		},
		{
			name:      "sorts by performance",
			args:      []string{"cards", "search", "d1", "--sort", "performance"},
			wantOrder: []string{"c1", "c2"},
		},
		{
			name:    "rejects unknown sort",
			args:    []string{"cards", "search", "d1", "--sort", "alphabetical"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			backend := newFakeBackend(t)
			backend.start()

			output, err := execute(t, newRootCommand(), tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotContains(t, output, "Cell Biology (d1)")

			last := -1
			for _, cardID := range tt.wantOrder {
				index := strings.Index(output, cardID+" ")
				require.GreaterOrEqual(t, index, 0, "card %s is missing", cardID)
				assert.Greater(t, index, last)
				last = index
			}
			for _, cardID := range tt.wantNot {
				assert.NotContains(t, output, cardID+" ")
			}
		})
	}
}

func TestGenerateCommand(t *testing.T) {
	clearEnv(t)
	backend := newFakeBackend(t)
	backend.start()

	output, err := execute(t, newRootCommand(), "generate", "course-1", "ch1", " ", "ch2")
	require.NoError(t, err)
	assert.Contains(t, output, "Generated 2 cards")
	assert.Contains(t, output, "Cell Biology (d1)")

	var body memorycard.GenerateCardsRequest
	sent, ok := backend.body("POST /memory-cards/generate")
	require.True(t, ok)
	require.NoError(t, json.Unmarshal(sent, &body))
	assert.Equal(t, memorycard.GenerateCardsRequest{
		UserID:          "test-user",
		CourseID:        "course-1",
		ChapterIDs:      []string{"ch1", "ch2"},
		DeckTitle:       "course-1 flashcards",
		DeckDescription: "Generated from 2 chapter(s) of course-1",
	}, body)
}

func TestExportCommand(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		wantFile string
		wantErr  bool
	}{
		{name: "yaml", format: "yaml", wantFile: "cell-biology.yml"},
		{name: "markdown", format: "md", wantFile: "cell-biology.md"},
		{name: "unsupported", format: "docx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			backend := newFakeBackend(t)
			backend.start()
			outputDir := t.TempDir()

			output, err := execute(t, newRootCommand(), "export", "d1", "--format", tt.format, "--output", outputDir)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, backend.recorded())
				return
			}
			require.NoError(t, err)
			path := filepath.Join(outputDir, tt.wantFile)
			assert.Contains(t, output, "Exported 2 cards to "+path)
			_, err = os.Stat(path)
			assert.NoError(t, err)
		})
	}
}

func TestReviewCommand_NothingDue(t *testing.T) {
	clearEnv(t)
	backend := newFakeBackend(t)
	backend.start()

	output, err := execute(t, newRootCommand(), "review")
	require.NoError(t, err)
	assert.Contains(t, output, "No cards are due for review")
	assert.Equal(t, []string{"GET /memory-cards/due"}, backend.recorded())
}

func TestJournalCommands(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "migrate without a database",
			args:    []string{"journal", "migrate"},
			wantErr: database.ErrNotConfigured,
		},
		{
			name:    "stats without a database",
			args:    []string{"journal", "stats", "--year", "2025"},
			wantErr: database.ErrNotConfigured,
		},
		{
			name:    "stats with an invalid month",
			args:    []string{"journal", "stats", "--month", "13"},
			wantMsg: "invalid month 13",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir(), "http://127.0.0.1:1"))

			_, err := execute(t, newRootCommand(), tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSortFlag(t *testing.T) {
	tests := []struct {
		value   string
		want    memorycard.SortMode
		wantErr bool
	}{
		{value: "created", want: memorycard.SortByCreated},
		{value: "difficulty", want: memorycard.SortByDifficulty},
		{value: "performance", want: memorycard.SortByPerformance},
		{value: "name", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			flag := sortFlag{mode: memorycard.SortByCreated}
			err := flag.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, memorycard.SortByCreated, flag.mode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, flag.mode)
			assert.Equal(t, string(tt.want), flag.String())
			assert.Equal(t, "sort", flag.Type())
		})
	}
}
