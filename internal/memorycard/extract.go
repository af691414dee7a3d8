package memorycard

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
)

// cardsDecoder tries to read a raw "cards" field as a sequence of elements.
// It reports false when the field does not have the shape it handles.
type cardsDecoder func(raw json.RawMessage) ([]json.RawMessage, bool)

// cardsDecoders run in order; the first one that succeeds wins.
var cardsDecoders = []cardsDecoder{
	decodeArray,
	decodeJSONString,
	decodeKeyedObject,
}

// ExtractCards returns the cards of a deck payload in their canonical order.
//
// The upstream "cards" field is not consistently shaped. It is looked up in this order:
// data.cards when it is an array, then the top-level cards field as an array, as a string
// holding a JSON array, or as an object whose values are the cards. Anything else yields
// an empty sequence. ExtractCards never fails.
func ExtractCards(payload json.RawMessage) []MemoryCard {
	var deck map[string]json.RawMessage
	if err := json.Unmarshal(payload, &deck); err != nil || deck == nil {
		return []MemoryCard{}
	}

	if data, ok := deck["data"]; ok {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(data, &nested); err == nil {
			if elements, ok := decodeArray(nested["cards"]); ok {
				return toCards(elements)
			}
		}
	}

	raw, ok := deck["cards"]
	if !ok {
		return []MemoryCard{}
	}
	for _, decode := range cardsDecoders {
		if elements, ok := decode(raw); ok {
			return toCards(elements)
		}
	}
	return []MemoryCard{}
}

func decodeArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if firstByte(raw) != '[' {
		return nil, false
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, false
	}
	return elements, true
}

func decodeJSONString(raw json.RawMessage) ([]json.RawMessage, bool) {
	if firstByte(raw) != '"' {
		return nil, false
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, false
	}
	return decodeArray(json.RawMessage(text))
}

// decodeKeyedObject returns the values of an object in the order a JavaScript
// Object.values call would: array-index keys ascending, then the other keys as written.
func decodeKeyedObject(raw json.RawMessage) ([]json.RawMessage, bool) {
	if firstByte(raw) != '{' {
		return nil, false
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	if _, err := decoder.Token(); err != nil {
		return nil, false
	}

	type entry struct {
		key   string
		index uint64
		isIdx bool
		value json.RawMessage
	}
	var entries []entry
	seen := make(map[string]int)
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, false
		}
		key, ok := token.(string)
		if !ok {
			return nil, false
		}
		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, false
		}
		// a duplicated key keeps its first position and its last value
		if i, ok := seen[key]; ok {
			entries[i].value = value
			continue
		}
		index, isIdx := arrayIndex(key)
		seen[key] = len(entries)
		entries = append(entries, entry{key: key, index: index, isIdx: isIdx, value: value})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].isIdx != entries[j].isIdx {
			return entries[i].isIdx
		}
		if entries[i].isIdx {
			return entries[i].index < entries[j].index
		}
		return false
	})

	values := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		values = append(values, e.value)
	}
	return values, len(values) > 0
}

// arrayIndex reports whether key is a canonical array index such as "0" or "12".
func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	index, err := strconv.ParseUint(key, 10, 32)
	if err != nil || index == 1<<32-1 {
		return 0, false
	}
	return index, true
}

func toCards(elements []json.RawMessage) []MemoryCard {
	cards := make([]MemoryCard, 0, len(elements))
	for i, element := range elements {
		if firstByte(element) != '{' {
			slog.Default().Warn("skipping a card that is not an object",
				slog.Int("index", i),
				slog.String("card", string(element)),
			)
			continue
		}
		var card MemoryCard
		if err := json.Unmarshal(element, &card); err != nil {
			slog.Default().Warn("skipping a malformed card",
				slog.Int("index", i),
				slog.Any("error", err),
			)
			continue
		}
		cards = append(cards, card)
	}
	return cards
}

func isObject(raw json.RawMessage) bool {
	return firstByte(raw) == '{'
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// CardsFromArray decodes raw as a list of cards. Anything other than an array yields an
// empty list.
func CardsFromArray(raw json.RawMessage) []MemoryCard {
	elements, ok := decodeArray(raw)
	if !ok {
		return []MemoryCard{}
	}
	return toCards(elements)
}
