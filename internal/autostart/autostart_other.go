//go:build !windows

package autostart

func Enable(name, command string) error { return ErrUnsupported }

func Disable(name string) error { return ErrUnsupported }

func Enabled(name string) bool { return false }
