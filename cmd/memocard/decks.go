package main

import (
	"github.com/spf13/cobra"
)

func newDecksCommand() *cobra.Command {
	decksCommand := &cobra.Command{
		Use:   "decks",
		Short: "List, show, create and delete decks",
	}

	decksCommand.AddCommand(
		newDecksListCommand(),
		newDecksShowCommand(),
		newDecksCreateCommand(),
		newDecksDeleteCommand(),
	)
	return decksCommand
}

func newDecksListCommand() *cobra.Command {
	var withDue bool

	command := &cobra.Command{
		Use:   "list",
		Short: "List your decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newDeckSession(cmd.OutOrStdout(), true)
			if err != nil {
				return err
			}
			defer func() {
				_ = session.Close()
			}()

			decks, err := session.manager.LoadDecks(cmd.Context())
			if err != nil {
				return err
			}

			var dueCounts map[string]int
			if withDue {
				dueCounts, err = session.manager.DueCounts(cmd.Context(), decks)
				if err != nil {
					return err
				}
			}
			session.view.PrintDecks(decks, dueCounts)
			return nil
		},
	}

	command.Flags().BoolVar(&withDue, "due", false, "Show the number of due cards per deck")
	return command
}

func newDecksShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <deckId>",
		Short: "Show a deck with its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newDeckSession(cmd.OutOrStdout(), true)
			if err != nil {
				return err
			}
			defer func() {
				_ = session.Close()
			}()

			// OpenDeck navigates to the deck, which prints it.
			_, err = session.manager.OpenDeck(cmd.Context(), args[0])
			return err
		},
	}
}

func newDecksCreateCommand() *cobra.Command {
	var description string

	command := &cobra.Command{
		Use:   "create <courseId> <title>",
		Short: "Create an empty deck for a course",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newDeckSession(cmd.OutOrStdout(), true)
			if err != nil {
				return err
			}
			defer func() {
				_ = session.Close()
			}()

			_, err = session.manager.CreateDeck(cmd.Context(), args[0], args[1], description)
			return err
		},
	}

	command.Flags().StringVar(&description, "description", "", "Deck description")
	return command
}

func newDecksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <deckId>",
		Short: "Delete a deck with all of its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newDeckSession(cmd.OutOrStdout(), true)
			if err != nil {
				return err
			}
			defer func() {
				_ = session.Close()
			}()

			return session.manager.DeleteDeck(cmd.Context(), args[0])
		},
	}
}
