package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/memocard/internal/memorycard"
)

// DeckView renders decks and cards. It is the terminal's navigator: moving to a view
// prints it.
type DeckView struct {
	writer io.Writer
	bold   *color.Color
	now    func() time.Time
}

// NewDeckView prints to writer, or to stdout when writer is nil.
func NewDeckView(writer io.Writer) *DeckView {
	if writer == nil {
		writer = os.Stdout
	}
	return newDeckView(writer, time.Now)
}

func newDeckView(writer io.Writer, now func() time.Time) *DeckView {
	return &DeckView{
		writer: writer,
		bold:   color.New(color.Bold),
		now:    now,
	}
}

func (view *DeckView) ToDeckList(decks []memorycard.MemoryCardDeck) {
	view.PrintDecks(decks, nil)
}

func (view *DeckView) ToDeck(deck memorycard.MemoryCardDeck) {
	view.PrintDeck(deck)
}

// PrintDecks lists decks. dueCounts adds a DUE column when it is not nil.
func (view *DeckView) PrintDecks(decks []memorycard.MemoryCardDeck, dueCounts map[string]int) {
	if len(decks) == 0 {
		_, _ = fmt.Fprintln(view.writer, "No decks yet.")
		return
	}

	w := tabwriter.NewWriter(view.writer, 0, 4, 2, ' ', 0)
	if dueCounts != nil {
		_, _ = fmt.Fprintln(w, "ID\tTITLE\tCOURSE\tCARDS\tACCURACY\tDUE")
	} else {
		_, _ = fmt.Fprintln(w, "ID\tTITLE\tCOURSE\tCARDS\tACCURACY")
	}
	for _, deck := range decks {
		row := fmt.Sprintf("%s\t%s\t%s\t%d\t%d%%", deck.DeckID, deck.Title, deck.CourseID, len(deck.Cards), deck.Accuracy())
		if dueCounts != nil {
			row += fmt.Sprintf("\t%d", dueCounts[deck.DeckID])
		}
		_, _ = fmt.Fprintln(w, row)
	}
	_ = w.Flush()
}

func (view *DeckView) PrintDeck(deck memorycard.MemoryCardDeck) {
	_, _ = view.bold.Fprintf(view.writer, "%s (%s)\n", deck.Title, deck.DeckID)
	if deck.Description != "" {
		_, _ = fmt.Fprintln(view.writer, deck.Description)
	}
	_, _ = fmt.Fprintf(view.writer, "Accuracy: %d%% (%d/%d reviews)\n\n", deck.Accuracy(), deck.CorrectReviews, deck.TotalReviews)
	view.PrintCards(deck.Cards)
}

func (view *DeckView) PrintCards(cards []memorycard.MemoryCard) {
	if len(cards) == 0 {
		_, _ = fmt.Fprintln(view.writer, "No cards.")
		return
	}

	w := tabwriter.NewWriter(view.writer, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tQUESTION\tANSWER\tDIFFICULTY\tSUCCESS\tLAST REVIEWED")
	for _, card := range cards {
		success := "-"
		if card.RepetitionCount > 0 {
			success = fmt.Sprintf("%.0f%%", card.SuccessRate()*100)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			card.CardID,
			truncate(card.Question, 40),
			truncate(card.Answer, 40),
			card.Difficulty(),
			success,
			card.LastReviewedAt(view.now()).UTC().Format(time.DateOnly),
		)
	}
	_ = w.Flush()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
