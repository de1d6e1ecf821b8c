package dialog

import (
	"errors"
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taodev/jumplist/internal/icons"
)

func TestFontSizeThresholds(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{0, 14}, {100, 14}, {101, 13}, {200, 13}, {201, 12},
		{300, 12}, {301, 11}, {400, 11}, {401, 10}, {500, 10},
		{501, 9}, {600, 9}, {601, 8}, {5000, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FontSize(strings.Repeat("x", tt.length)), "length %d", tt.length)
	}
}

func TestFontSizeCountsRunes(t *testing.T) {
	// 101 runes, 303 bytes
	assert.Equal(t, 13, FontSize(strings.Repeat("界", 101)))
	assert.Equal(t, 14, FontSize(strings.Repeat("界", 100)))
}

func TestTimerInterval(t *testing.T) {
	ms, ok := TimerInterval(0)
	assert.False(t, ok)
	assert.Zero(t, ms)

	_, ok = TimerInterval(-time.Second)
	assert.False(t, ok)

	ms, ok = TimerInterval(1500 * time.Millisecond)
	assert.True(t, ok)
	assert.Equal(t, int32(1500), ms)

	ms, ok = TimerInterval(time.Microsecond)
	assert.True(t, ok)
	assert.Equal(t, int32(1), ms)

	ms, ok = TimerInterval(time.Duration(math.MaxInt32) * time.Millisecond)
	assert.True(t, ok)
	assert.Equal(t, int32(math.MaxInt32), ms)

	ms, ok = TimerInterval(time.Duration(math.MaxInt64))
	assert.True(t, ok)
	assert.Equal(t, int32(math.MaxInt32), ms)
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, color.RGBA{0, 8, 48, 255}, ThemeFor(LevelInfo).Button)
	assert.Equal(t, color.RGBA{60, 50, 0, 255}, ThemeFor(LevelWarning).Button)
	assert.Equal(t, color.RGBA{25, 45, 25, 255}, ThemeFor(LevelSuccess).Button)
	assert.Equal(t, color.RGBA{45, 25, 25, 255}, ThemeFor(LevelError).Button)

	fallback := ThemeFor(Level(42))
	assert.Equal(t, fallback.Background, fallback.Button)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, fallback.Foreground)

	// the pressed button uses one highlight colour for every level
	assert.Equal(t, color.RGBA{55, 55, 55, 255}, ThemeFor(LevelError).ButtonPressed)
	assert.Equal(t, ThemeFor(LevelInfo).ButtonPressed, fallback.ButtonPressed)
}

func TestGlyphFor(t *testing.T) {
	assert.Equal(t, icons.Warning, GlyphFor(LevelWarning))
	assert.Equal(t, icons.Error, GlyphFor(LevelError))
	assert.Equal(t, icons.Info, GlyphFor(Level(-1)))
}

func TestNewLayoutIcon(t *testing.T) {
	with := NewLayout(Spec{Message: "hi", Level: LevelSuccess, ShowIcon: true})
	assert.Equal(t, icons.Success, with.Icon)
	assert.Equal(t, Rect{X: 16, Y: 56, W: 48, H: 48}, with.IconRect)
	assert.Equal(t, Insets{Left: 65, Top: 10, Right: 20, Bottom: 10}, with.Padding)
	// the text starts right of the icon
	assert.Greater(t, with.Padding.Left, with.IconRect.X+with.IconRect.W)

	without := NewLayout(Spec{Message: "hi", Level: LevelSuccess})
	assert.Empty(t, without.Icon)
	assert.Equal(t, Insets{15, 15, 15, 15}, without.Padding)
	assert.Zero(t, without.TimerInterval)
}

func TestNewLayoutGeometry(t *testing.T) {
	l := NewLayout(Spec{Message: "m", Title: "t", AutoClose: 2 * time.Second})
	assert.Equal(t, int32(2000), l.TimerInterval)
	assert.Equal(t, "t", l.Title)
	assert.Equal(t, l.Height, l.MessageRect().H+l.ButtonRect().H)
	assert.Equal(t, l.MessageRect().H, l.ButtonRect().Y)
}

func TestSessionFirstDismissalWins(t *testing.T) {
	s := newSession()
	assert.Equal(t, StateConstructed, s.State())

	stops := 0
	s.markShown()
	s.armTimer(func() { stops++ })
	assert.Equal(t, StateShown, s.State())

	assert.True(t, s.dismiss(ByButton))
	assert.Equal(t, 1, stops)
	assert.False(t, s.dismiss(ByTimer))
	assert.False(t, s.dismiss(ByClose))
	assert.Equal(t, 1, stops)

	assert.Equal(t, StateClosed, s.State())
	assert.Equal(t, ByButton, s.Reason())
	select {
	case <-s.Done():
	default:
		t.Fatal("done channel not closed")
	}

	// closed is terminal
	s.markShown()
	assert.Equal(t, StateClosed, s.State())
}

func TestSessionArmAfterCloseStopsImmediately(t *testing.T) {
	s := newSession()
	s.dismiss(ByClose)

	stopped := false
	s.armTimer(func() { stopped = true })
	assert.True(t, stopped)
}

func withRenderer(t *testing.T, fn func(Layout, *session) error) {
	t.Helper()
	old := render
	render = fn
	t.Cleanup(func() { render = old })
}

func TestShowBlocksUntilTimer(t *testing.T) {
	var got *session
	withRenderer(t, func(l Layout, s *session) error {
		got = s
		s.markShown()
		require.Equal(t, int32(10), l.TimerInterval)

		tick := time.AfterFunc(time.Duration(l.TimerInterval)*time.Millisecond, func() { s.dismiss(ByTimer) })
		s.armTimer(func() { tick.Stop() })
		<-s.Done()
		return nil
	})

	require.NoError(t, Message("bye", "t", LevelInfo, false, 10*time.Millisecond))
	assert.Equal(t, ByTimer, got.Reason())
}

func TestShowButtonBeatsTimer(t *testing.T) {
	var got *session
	withRenderer(t, func(l Layout, s *session) error {
		got = s
		s.markShown()
		fired := make(chan struct{}, 1)
		tick := time.AfterFunc(time.Hour, func() {
			s.dismiss(ByTimer)
			fired <- struct{}{}
		})
		s.armTimer(func() { tick.Stop() })

		s.dismiss(ByButton)
		assert.False(t, tick.Stop(), "timer should already be stopped")
		assert.Empty(t, fired)
		return nil
	})

	require.NoError(t, Show(Spec{Message: "x", AutoClose: time.Hour}))
	assert.Equal(t, ByButton, got.Reason())
}

func TestShowZeroAutoCloseArmsNoTimer(t *testing.T) {
	withRenderer(t, func(l Layout, s *session) error {
		assert.Zero(t, l.TimerInterval)
		s.dismiss(ByButton)
		return nil
	})
	require.NoError(t, Show(Spec{Message: "x"}))
}

func TestShowRendererError(t *testing.T) {
	var got *session
	withRenderer(t, func(l Layout, s *session) error {
		got = s
		return errors.New("no display")
	})
	err := Show(Spec{Message: "x", Level: LevelError})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error dialog")
	assert.Equal(t, StateClosed, got.State())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "level(9)", Level(9).String())
	assert.Equal(t, "timer", ByTimer.String())
}
