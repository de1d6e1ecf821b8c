package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellRejectsEmptyTarget(t *testing.T) {
	assert.ErrorIs(t, Shell{}.Launch(""), ErrEmptyTarget)
}

func TestFunc(t *testing.T) {
	var got []string
	var l Launcher = Func(func(target string) error {
		got = append(got, target)
		return nil
	})
	assert.NoError(t, l.Launch(`C:\tools`))
	assert.Equal(t, []string{`C:\tools`}, got)
}
