// Package export writes decks to files in YAML, Markdown or PDF.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/memocard/internal/memorycard"
)

type Format string

const (
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format %q: use yaml, markdown or pdf", value)
}

// Exporter writes decks into one output directory.
type Exporter struct {
	directory    string
	templatePath string
	now          func() time.Time
}

func NewExporter(directory, templatePath string) *Exporter {
	return &Exporter{
		directory:    directory,
		templatePath: templatePath,
		now:          time.Now,
	}
}

// Export writes the deck in the given format and returns the path of the written file.
func (exporter *Exporter) Export(deck memorycard.MemoryCardDeck, format Format) (string, error) {
	if err := os.MkdirAll(exporter.directory, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", exporter.directory, err)
	}
	base := filepath.Join(exporter.directory, fileName(deck))

	var (
		path string
		err  error
	)
	switch format {
	case FormatYAML:
		path, err = exporter.writeYAML(base+".yml", deck)
	case FormatMarkdown:
		path, err = exporter.writeMarkdown(base+".md", deck)
	case FormatPDF:
		path, err = exporter.writeMarkdown(base+".md", deck)
		if err == nil {
			path, err = ConvertMarkdownToPDF(path)
		}
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return "", err
	}

	slog.Default().Info("exported deck",
		slog.String("deckId", deck.DeckID),
		slog.String("format", string(format)),
		slog.String("path", path),
	)
	return path, nil
}

func (exporter *Exporter) writeYAML(path string, deck memorycard.MemoryCardDeck) (string, error) {
	data, err := yaml.Marshal(deck)
	if err != nil {
		return "", fmt.Errorf("yaml.Marshal(deck) > %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

func (exporter *Exporter) writeMarkdown(path string, deck memorycard.MemoryCardDeck) (string, error) {
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := WriteDeckMarkdown(file, exporter.templatePath, DeckTemplate{
		Deck:       deck,
		ExportedAt: exporter.now(),
	}); err != nil {
		return "", fmt.Errorf("WriteDeckMarkdown() > %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("file.Close() > %w", err)
	}
	return path, nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]+`)

// fileName derives a file name from the deck title, falling back to the deck id.
func fileName(deck memorycard.MemoryCardDeck) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(deck.Title), "-"), "-")
	if name == "" {
		name = strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(deck.DeckID), "-"), "-")
	}
	if name == "" {
		return "deck"
	}
	return name
}
