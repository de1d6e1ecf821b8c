package dialog

import (
	"image/color"
	"math"
	"time"
	"unicode/utf8"

	"github.com/taodev/jumplist/internal/icons"
)

type Theme struct {
	Background    color.RGBA
	Foreground    color.RGBA
	Button        color.RGBA
	ButtonPressed color.RGBA
}

var (
	colorForeground = color.RGBA{255, 255, 255, 255}
	colorBackground = color.RGBA{35, 35, 35, 255}
	colorHighlight  = color.RGBA{55, 55, 55, 255}

	buttonColors = map[Level]color.RGBA{
		LevelInfo:    {0, 8, 48, 255},
		LevelWarning: {60, 50, 0, 255},
		LevelSuccess: {25, 45, 25, 255},
		LevelError:   {45, 25, 25, 255},
	}

	levelGlyphs = map[Level]icons.Glyph{
		LevelInfo:    icons.Info,
		LevelWarning: icons.Warning,
		LevelSuccess: icons.Success,
		LevelError:   icons.Error,
	}
)

// ThemeFor returns the palette for level. Unknown levels get the neutral
// background colour on the button.
func ThemeFor(level Level) Theme {
	button, ok := buttonColors[level]
	if !ok {
		button = colorBackground
	}
	return Theme{
		Background:    colorBackground,
		Foreground:    colorForeground,
		Button:        button,
		ButtonPressed: colorHighlight,
	}
}

// GlyphFor returns the severity icon for level, defaulting to info.
func GlyphFor(level Level) icons.Glyph {
	if g, ok := levelGlyphs[level]; ok {
		return g
	}
	return icons.Info
}

// FontSize picks the label point size from the message length in runes.
// Each threshold is exclusive: 600 runes still gets 9pt.
func FontSize(message string) int {
	n := utf8.RuneCountInString(message)
	switch {
	case n > 600:
		return 8
	case n > 500:
		return 9
	case n > 400:
		return 10
	case n > 300:
		return 11
	case n > 200:
		return 12
	case n > 100:
		return 13
	default:
		return 14
	}
}

// TimerInterval converts an auto-close duration to a timer interval in
// milliseconds. The second result is false when no timer should be armed.
// Durations beyond the interval type are clamped to math.MaxInt32.
func TimerInterval(d time.Duration) (int32, bool) {
	if d <= 0 {
		return 0, false
	}
	ms := d.Milliseconds()
	switch {
	case ms > math.MaxInt32:
		return math.MaxInt32, true
	case ms == 0:
		return 1, true
	}
	return int32(ms), true
}

type Rect struct {
	X, Y, W, H int
}

type Insets struct {
	Left, Top, Right, Bottom int
}

// Layout is everything a renderer needs to draw one dialog.
type Layout struct {
	Title   string
	Message string
	Level   Level
	Theme   Theme

	Width        int
	Height       int
	CornerRadius int

	FontFace string
	FontSize int
	Padding  Insets

	ShowIcon bool
	Icon     icons.Glyph
	IconRect Rect

	ButtonText     string
	ButtonFontSize int
	ButtonHeight   int

	// TimerInterval is in milliseconds; zero means no timer.
	TimerInterval int32
}

func NewLayout(spec Spec) Layout {
	l := Layout{
		Title:          spec.Title,
		Message:        spec.Message,
		Level:          spec.Level,
		Theme:          ThemeFor(spec.Level),
		Width:          470,
		Height:         190,
		CornerRadius:   13,
		FontFace:       "Calibri",
		FontSize:       FontSize(spec.Message),
		Padding:        Insets{15, 15, 15, 15},
		ShowIcon:       spec.ShowIcon,
		ButtonText:     "OK",
		ButtonFontSize: 14,
		ButtonHeight:   33,
	}
	if spec.ShowIcon {
		l.Icon = GlyphFor(spec.Level)
		l.IconRect = Rect{X: 16, Y: 56, W: 48, H: 48}
		l.Padding = Insets{Left: 65, Top: 10, Right: 20, Bottom: 10}
	}
	if ms, ok := TimerInterval(spec.AutoClose); ok {
		l.TimerInterval = ms
	}
	return l
}

// MessageRect is the area above the button that holds the message text
// and acts as the drag handle.
func (l Layout) MessageRect() Rect {
	return Rect{X: 0, Y: 0, W: l.Width, H: l.Height - l.ButtonHeight}
}

func (l Layout) ButtonRect() Rect {
	return Rect{X: 0, Y: l.Height - l.ButtonHeight, W: l.Width, H: l.ButtonHeight}
}
