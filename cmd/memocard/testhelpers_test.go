package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/memocard/internal/memorycard"
	"github.com/at-ishikawa/memocard/internal/testutil"
)

// testConfigFile is passed as --config by execute. Setting the package-level configFile
// directly does not work because registering the flag resets it.
var testConfigFile string

// setConfigFile makes execute load cfgPath for the duration of the test.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := testConfigFile
	testConfigFile = cfgPath
	t.Cleanup(func() { testConfigFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{"MEMOCARD_API_BASE_URL", "MEMOCARD_API_TOKEN", "MEMOCARD_USER_ID", "DB_PASSWORD"} {
		t.Setenv(env, "")
	}
}

// fakeBackend serves the memory card endpoints from one in-memory deck.
type fakeBackend struct {
	t        *testing.T
	deck     memorycard.MemoryCardDeck
	due      []memorycard.MemoryCard

	mu       sync.Mutex
	requests []string
	bodies   map[string][]byte
	deleted  bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	deck := testutil.NewDeck("d1")
	deck.Title = "Cell Biology"
	deck.Cards = []memorycard.MemoryCard{
		testutil.NewCard("d1", "c1", testutil.WithDifficulty(5), testutil.WithPerformance(4, 1)),
		testutil.NewCard("d1", "c2", testutil.WithDifficulty(1), testutil.WithPerformance(2, 2)),
	}
	deck.Cards[0].Question = "What is a mitochondrion?"
	deck.Cards[1].Question = "What surrounds a cell?"
	return &fakeBackend{
		t:      t,
		deck:   deck,
		bodies: make(map[string][]byte),
	}
}

func (backend *fakeBackend) writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(backend.t, json.NewEncoder(w).Encode(value))
}

func (backend *fakeBackend) record(r *http.Request) {
	body, err := io.ReadAll(r.Body)
	require.NoError(backend.t, err)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	backend.requests = append(backend.requests, r.Pattern)
	backend.bodies[r.Pattern] = body
}

// recorded returns the patterns of the requests served so far.
func (backend *fakeBackend) recorded() []string {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	return slices.Clone(backend.requests)
}

func (backend *fakeBackend) body(pattern string) ([]byte, bool) {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	body, ok := backend.bodies[pattern]
	return body, ok
}

// start serves the backend and writes a config file pointing at it.
func (backend *fakeBackend) start() {
	t := backend.t
	mux := http.NewServeMux()
	mux.HandleFunc("GET /memory-cards/decks", func(w http.ResponseWriter, r *http.Request) {
		backend.record(r)
		backend.mu.Lock()
		decks := []memorycard.MemoryCardDeck{backend.deck}
		if backend.deleted {
			decks = []memorycard.MemoryCardDeck{}
		}
		backend.mu.Unlock()
		backend.writeJSON(w, http.StatusOK, decks)
	})
	mux.HandleFunc("DELETE /memory-cards/decks/{deckId}", func(w http.ResponseWriter, r *http.Request) {
		backend.record(r)
		if r.PathValue("deckId") != backend.deck.DeckID {
			backend.writeJSON(w, http.StatusNotFound, map[string]string{"message": "deck not found"})
			return
		}
		backend.mu.Lock()
		backend.deleted = true
		backend.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /memory-cards/decks/{deckId}", func(w http.ResponseWriter, r *http.Request) {
		backend.record(r)
		if r.PathValue("deckId") != backend.deck.DeckID {
			backend.writeJSON(w, http.StatusNotFound, map[string]string{"message": "deck not found"})
			return
		}
		backend.writeJSON(w, http.StatusOK, backend.deck)
	})
	mux.HandleFunc("POST /memory-cards/decks", func(w http.ResponseWriter, r *http.Request) {
		backend.record(r)
		backend.writeJSON(w, http.StatusCreated, memorycard.MemoryCardDeck{DeckID: "d2", CourseID: "course-1", Title: "New deck"})
	})
	mux.HandleFunc("POST /memory-cards/decks/{deckId}/cards", func(w http.ResponseWriter, r *http.Request) {
		backend.record(r)
		backend.writeJSON(w, http.StatusCreated, testutil.NewCard("d1", "c3"))
	})
	mux.HandleFunc("GET /memory-cards/due", func(w http.ResponseWriter, r *http.Request) {
		backend.record(r)
		backend.writeJSON(w, http.StatusOK, map[string]any{
			"dueCards": backend.due,
			"totalDue": len(backend.due),
		})
	})
	mux.HandleFunc("POST /memory-cards/generate", func(w http.ResponseWriter, r *http.Request) {
		backend.record(r)
		backend.writeJSON(w, http.StatusCreated, memorycard.GenerateCardsResult{
			Deck:           backend.deck,
			CardsGenerated: len(backend.deck.Cards),
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	setConfigFile(t, testutil.SetupTestConfig(t, t.TempDir(), server.URL))
}

// execute runs command with args and returns what it printed. The config file set by
// setConfigFile goes first so a --config in args still wins.
func execute(t *testing.T, command *cobra.Command, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	if testConfigFile != "" {
		args = append([]string{"--config", testConfigFile}, args...)
	}

	var out bytes.Buffer
	command.SetOut(&out)
	command.SetErr(&out)
	command.SetArgs(args)
	err := command.Execute()
	return out.String(), err
}
