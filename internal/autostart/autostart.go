// Package autostart manages the per-user "run at login" entry.
package autostart

import (
	"errors"
	"fmt"
)

var ErrUnsupported = errors.New("autostart: not supported on this platform")

const runKey = `Software\Microsoft\Windows\CurrentVersion\Run`

// Command is the value stored for the entry: the quoted executable followed
// by the menu config it should load.
func Command(exePath, configPath string) string {
	return fmt.Sprintf(`"%s" -config "%s"`, exePath, configPath)
}
