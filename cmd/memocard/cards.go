package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/memocard/internal/memorycard"
)

// sortFlag is a pflag.Value accepting only the supported sort modes.
type sortFlag struct {
	mode memorycard.SortMode
}

var _ pflag.Value = (*sortFlag)(nil)

func (f *sortFlag) String() string {
	return string(f.mode)
}

func (f *sortFlag) Set(value string) error {
	mode, err := memorycard.ParseSortMode(value)
	if err != nil {
		return err
	}
	f.mode = mode
	return nil
}

func (f *sortFlag) Type() string {
	return "sort"
}

func newCardsCommand() *cobra.Command {
	cardsCommand := &cobra.Command{
		Use:   "cards",
		Short: "Add, update, delete and search the cards of a deck",
	}

	cardsCommand.AddCommand(
		newCardsAddCommand(),
		newCardsUpdateCommand(),
		newCardsDeleteCommand(),
		newCardsSearchCommand(),
	)
	return cardsCommand
}

func newCardsAddCommand() *cobra.Command {
	var card memorycard.MemoryCard

	command := &cobra.Command{
		Use:   "add <deckId>",
		Short: "Add a card to a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newDeckSession(cmd.OutOrStdout(), true)
			if err != nil {
				return err
			}
			defer func() {
				_ = session.Close()
			}()

			_, err = session.manager.AddCard(cmd.Context(), args[0], card)
			return err
		},
	}

	command.Flags().StringVar(&card.Question, "question", "", "Question on the front of the card")
	command.Flags().StringVar(&card.Answer, "answer", "", "Answer on the back of the card")
	command.Flags().StringVar(&card.SectionID, "section", "", "Course section the card belongs to")
	command.Flags().StringVar(&card.ChapterID, "chapter", "", "Course chapter the card belongs to")
	command.Flags().IntVar(&card.DifficultyLevel, "difficulty", 0, "Difficulty from 1 (easy) to 5 (hard)")
	return command
}

func newCardsUpdateCommand() *cobra.Command {
	var (
		question   string
		answer     string
		sectionID  string
		chapterID  string
		difficulty int
	)

	command := &cobra.Command{
		Use:   "update <deckId> <cardId>",
		Short: "Update the fields of a card given as flags",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update memorycard.CardUpdate
			flags := cmd.Flags()
			if flags.Changed("question") {
				update.Question = &question
			}
			if flags.Changed("answer") {
				update.Answer = &answer
			}
			if flags.Changed("section") {
				update.SectionID = &sectionID
			}
			if flags.Changed("chapter") {
				update.ChapterID = &chapterID
			}
			if flags.Changed("difficulty") {
				update.DifficultyLevel = &difficulty
			}

			session, err := newDeckSession(cmd.OutOrStdout(), true)
			if err != nil {
				return err
			}
			defer func() {
				_ = session.Close()
			}()

			_, err = session.manager.UpdateCard(cmd.Context(), args[0], args[1], update)
			return err
		},
	}

	command.Flags().StringVar(&question, "question", "", "New question")
	command.Flags().StringVar(&answer, "answer", "", "New answer")
	command.Flags().StringVar(&sectionID, "section", "", "New course section")
	command.Flags().StringVar(&chapterID, "chapter", "", "New course chapter")
	command.Flags().IntVar(&difficulty, "difficulty", 0, "New difficulty from 1 (easy) to 5 (hard)")
	return command
}

func newCardsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <deckId> <cardId>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newDeckSession(cmd.OutOrStdout(), true)
			if err != nil {
				return err
			}
			defer func() {
				_ = session.Close()
			}()

			return session.manager.DeleteCard(cmd.Context(), args[0], args[1])
		},
	}
}

func newCardsSearchCommand() *cobra.Command {
	sort := sortFlag{mode: memorycard.SortByCreated}

	command := &cobra.Command{
		Use:   "search <deckId> [term]",
		Short: "Search the cards of a deck by question or answer",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var term string
			if len(args) == 2 {
				term = args[1]
			}

			session, err := newDeckSession(cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			defer func() {
				_ = session.Close()
			}()

			if _, err := session.manager.OpenDeck(cmd.Context(), args[0]); err != nil {
				return err
			}
			session.view.PrintCards(session.manager.SearchCurrent(term, sort.mode))
			return nil
		},
	}

	command.Flags().Var(&sort, "sort", `Sort order: "created", "difficulty" or "performance"`)
	return command
}
