package memorycard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCards(t *testing.T) {
	cardsJSON := `[{"cardId":"c1","deckId":"d1","question":"q1","answer":"a1"},{"cardId":"c2","deckId":"d1","question":"q2","answer":"a2","repetitionCount":3,"correctCount":2}]`
	cardsString, err := json.Marshal(cardsJSON)
	require.NoError(t, err)

	want := []MemoryCard{
		{CardID: "c1", DeckID: "d1", Question: "q1", Answer: "a1"},
		{CardID: "c2", DeckID: "d1", Question: "q2", Answer: "a2", RepetitionCount: 3, CorrectCount: 2},
	}

	tests := []struct {
		name    string
		payload string
		want    []MemoryCard
	}{
		{
			name:    "cards as an array",
			payload: `{"deckId":"d1","cards":` + cardsJSON + `}`,
			want:    want,
		},
		{
			name:    "cards as a JSON string",
			payload: `{"deckId":"d1","cards":` + string(cardsString) + `}`,
			want:    want,
		},
		{
			name:    "cards as an object with numeric keys",
			payload: `{"deckId":"d1","cards":{"0":{"cardId":"c1","deckId":"d1","question":"q1","answer":"a1"},"1":{"cardId":"c2","deckId":"d1","question":"q2","answer":"a2","repetitionCount":3,"correctCount":2}}}`,
			want:    want,
		},
		{
			name:    "numeric keys are ordered numerically before other keys",
			payload: `{"cards":{"b":{"cardId":"c4"},"10":{"cardId":"c3"},"2":{"cardId":"c2"},"a":{"cardId":"c5"},"0":{"cardId":"c1"}}}`,
			want: []MemoryCard{
				{CardID: "c1"}, {CardID: "c2"}, {CardID: "c3"}, {CardID: "c4"}, {CardID: "c5"},
			},
		},
		{
			name:    "nested data cards array wins over top-level cards",
			payload: `{"data":{"cards":[{"cardId":"nested"}]},"cards":[{"cardId":"top"}]}`,
			want:    []MemoryCard{{CardID: "nested"}},
		},
		{
			name:    "nested data without an array falls back to top-level cards",
			payload: `{"data":{"cards":"oops"},"cards":[{"cardId":"top"}]}`,
			want:    []MemoryCard{{CardID: "top"}},
		},
		{
			name:    "elements that are not objects are skipped",
			payload: `{"cards":[1,"x",null,{"cardId":"c1"},[]]}`,
			want:    []MemoryCard{{CardID: "c1"}},
		},
		{name: "nil payload", payload: "", want: []MemoryCard{}},
		{name: "null payload", payload: "null", want: []MemoryCard{}},
		{name: "empty object", payload: "{}", want: []MemoryCard{}},
		{name: "cards is not JSON", payload: `{"cards":"not json"}`, want: []MemoryCard{}},
		{name: "cards is a JSON string of an object", payload: `{"cards":"{\"a\":1}"}`, want: []MemoryCard{}},
		{name: "cards is null", payload: `{"cards":null}`, want: []MemoryCard{}},
		{name: "cards is an empty object", payload: `{"cards":{}}`, want: []MemoryCard{}},
		{name: "cards is a number", payload: `{"cards":42}`, want: []MemoryCard{}},
		{name: "payload is an array", payload: `[{"cardId":"c1"}]`, want: []MemoryCard{}},
		{name: "truncated payload", payload: `{"cards":[{"cardId":"c1"}`, want: []MemoryCard{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []MemoryCard
			assert.NotPanics(t, func() {
				got = ExtractCards(json.RawMessage(tt.payload))
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArrayIndex(t *testing.T) {
	tests := []struct {
		key       string
		wantIndex uint64
		wantOK    bool
	}{
		{key: "0", wantIndex: 0, wantOK: true},
		{key: "42", wantIndex: 42, wantOK: true},
		{key: "007", wantOK: false},
		{key: "-1", wantOK: false},
		{key: "1.5", wantOK: false},
		{key: "", wantOK: false},
		{key: "4294967295", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			index, ok := arrayIndex(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIndex, index)
			}
		})
	}
}
