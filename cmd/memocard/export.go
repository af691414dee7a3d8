package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memocard/internal/export"
)

func newExportCommand() *cobra.Command {
	var (
		format    string
		outputDir string
	)

	command := &cobra.Command{
		Use:   "export <deckId>",
		Short: "Export a deck to a YAML, Markdown or PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			session, err := newDeckSession(cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			defer func() {
				_ = session.Close()
			}()

			deck, err := session.manager.OpenDeck(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if outputDir == "" {
				outputDir = session.cfg.Outputs.ExportDirectory
			}
			exporter := export.NewExporter(outputDir, session.cfg.Templates.DeckTemplate)
			path, err := exporter.Export(deck, exportFormat)
			if err != nil {
				return fmt.Errorf("exporter.Export() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d cards to %s\n", len(deck.Cards), path)
			return nil
		},
	}

	command.Flags().StringVarP(&format, "format", "f", string(export.FormatYAML), "Output format: yaml, markdown or pdf")
	command.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default outputs.export_directory)")
	return command
}
