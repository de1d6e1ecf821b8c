// Package dialog implements the modal message dialog: a borderless, rounded,
// colour-coded window with one acknowledgement button, an optional severity
// icon and an optional auto-close timer.
package dialog

import (
	"fmt"
	"time"
)

type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Spec describes one dialog invocation.
type Spec struct {
	Message  string
	Title    string
	Level    Level
	ShowIcon bool
	// AutoClose dismisses the dialog once elapsed. Zero or negative leaves
	// it open until the user closes it.
	AutoClose time.Duration
}

// render presents the layout and blocks until s is closed.
var render = renderNative

// Show presents the dialog and blocks until it is dismissed by the button,
// by the auto-close timer or by closing the window.
func Show(spec Spec) error {
	s := newSession()
	if err := render(NewLayout(spec), s); err != nil {
		s.dismiss(ByClose)
		return fmt.Errorf("show %s dialog: %w", spec.Level, err)
	}
	return nil
}

// Message is shorthand for Show with the fields spelled out.
func Message(message, title string, level Level, showIcon bool, autoClose time.Duration) error {
	return Show(Spec{
		Message:   message,
		Title:     title,
		Level:     level,
		ShowIcon:  showIcon,
		AutoClose: autoClose,
	})
}
