package cli

import (
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/at-ishikawa/memocard/internal/review"
)

// ColorNotifier prints notifications as colored lines.
type ColorNotifier struct {
	writer io.Writer
	colors map[review.Level]*color.Color
}

// NewColorNotifier prints to writer, or to stdout when writer is nil.
func NewColorNotifier(writer io.Writer) *ColorNotifier {
	if writer == nil {
		writer = os.Stdout
	}
	return newColorNotifier(writer)
}

func newColorNotifier(writer io.Writer) *ColorNotifier {
	return &ColorNotifier{
		writer: writer,
		colors: map[review.Level]*color.Color{
			review.LevelInfo:    color.New(color.FgCyan),
			review.LevelSuccess: color.New(color.FgGreen),
			review.LevelWarning: color.New(color.FgYellow),
			review.LevelError:   color.New(color.FgRed, color.Bold),
		},
	}
}

func (n *ColorNotifier) Notify(notification review.Notification) {
	c, ok := n.colors[notification.Level]
	if !ok {
		c = color.New(color.Reset)
	}
	_, _ = c.Fprintln(n.writer, notification.Message)
}
