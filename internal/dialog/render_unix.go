//go:build !windows && !darwin

package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// renderNative has no native toolkit to draw with here; the message goes to
// the log and stderr and the dialog closes at once.
func renderNative(l Layout, s *session) error {
	s.markShown()
	slog.Log(context.Background(), levelFor(l.Level), "dialog", "title", l.Title, "message", l.Message)
	fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", l.Level, l.Title, l.Message)
	s.dismiss(ByButton)
	return nil
}

func levelFor(l Level) slog.Level {
	switch l {
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
