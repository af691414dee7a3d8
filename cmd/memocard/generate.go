package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memocard/internal/deck"
)

func newGenerateCommand() *cobra.Command {
	var (
		deckTitle       string
		deckDescription string
	)

	command := &cobra.Command{
		Use:   "generate <courseId> <chapterId>...",
		Short: "Generate a deck from course chapters",
		Long: `Generate asks the backend to build a deck of cards from the content of the given
course chapters. Generation can take a while for many chapters.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newDeckSession(cmd.OutOrStdout(), true)
			if err != nil {
				return err
			}
			defer func() {
				_ = session.Close()
			}()

			result, err := session.manager.GenerateCards(cmd.Context(), deck.GenerateOptions{
				CourseID:        args[0],
				ChapterIDs:      args[1:],
				DeckTitle:       deckTitle,
				DeckDescription: deckDescription,
			})
			if err != nil {
				return err
			}
			session.view.PrintDeck(result.Deck)
			return nil
		},
	}

	command.Flags().StringVar(&deckTitle, "deck-title", "", "Title of the generated deck (default \"<courseId> flashcards\")")
	command.Flags().StringVar(&deckDescription, "deck-description", "", "Description of the generated deck")
	return command
}
