// Package launch hands a file or folder path to the operating system, which
// opens it with the associated application. Launches are fire-and-forget.
package launch

import "errors"

var ErrEmptyTarget = errors.New("launch: empty target")

type Launcher interface {
	Launch(target string) error
}

// Func adapts a function to Launcher.
type Func func(target string) error

func (f Func) Launch(target string) error { return f(target) }

// Shell launches through the platform shell.
type Shell struct{}

func (Shell) Launch(target string) error {
	if target == "" {
		return ErrEmptyTarget
	}
	return open(target)
}
