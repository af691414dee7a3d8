package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/memocard/internal/config"
	"github.com/at-ishikawa/memocard/internal/memorycard"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir, "http://127.0.0.1:8080/api")
	assert.Equal(t, filepath.Join(tmpDir, "config.yml"), got)

	info, err := os.Stat(filepath.Join(tmpDir, "outputs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/api", cfg.API.BaseURL)
	assert.Equal(t, "test-user", cfg.User.ID)
	assert.Equal(t, filepath.Join(tmpDir, "outputs"), cfg.Outputs.ExportDirectory)
	assert.False(t, cfg.Database.Enabled())
}

func TestSetupTestConfigWithDatabase(t *testing.T) {
	got := SetupTestConfigWithDatabase(t, t.TempDir(), "http://127.0.0.1:8080/api")

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, "memocard_test", cfg.Database.Database)
	assert.Equal(t, "memocard", cfg.Database.Username)
}

func TestNewCard(t *testing.T) {
	tests := []struct {
		name string
		opts []CardOption
		want memorycard.MemoryCard
	}{
		{
			name: "defaults",
			want: memorycard.MemoryCard{CardID: "c1", DeckID: "d1", Question: "Q c1", Answer: "A c1"},
		},
		{
			name: "with options",
			opts: []CardOption{WithDifficulty(5), WithPerformance(4, 1)},
			want: memorycard.MemoryCard{
				CardID: "c1", DeckID: "d1", Question: "Q c1", Answer: "A c1",
				DifficultyLevel: 5, RepetitionCount: 4, CorrectCount: 1, IncorrectCount: 3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewCard("d1", "c1", tt.opts...))
		})
	}
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck("d1", "c1", "c2")
	assert.Equal(t, "Deck d1", deck.Title)
	require.Len(t, deck.Cards, 2)
	assert.Equal(t, "d1", deck.Cards[1].DeckID)
	assert.Equal(t, "c2", deck.Cards[1].CardID)
	assert.Empty(t, NewDeck("d2").Cards)
}
