//go:build darwin

package dialog

import (
	"log/slog"

	sqdialog "github.com/sqweek/dialog"
)

// renderNative falls back to the platform message box. It has no custom
// chrome and cannot be closed by a timer.
func renderNative(l Layout, s *session) error {
	if l.TimerInterval > 0 {
		slog.Debug("auto close not supported on this platform", "interval_ms", l.TimerInterval)
	}

	s.markShown()
	b := sqdialog.Message("%s", l.Message).Title(l.Title)
	if l.Level == LevelError || l.Level == LevelWarning {
		b.Error()
	} else {
		b.Info()
	}
	s.dismiss(ByButton)
	return nil
}
