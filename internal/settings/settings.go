// Package settings holds the application settings read from app.yaml.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/taodev/pkg/config"
)

const DefaultFileName = "app.yaml"

type Settings struct {
	ConfigFile  string `yaml:"config_file"`
	RandomIcons bool   `yaml:"random_icons"`
	Tooltip     string `yaml:"tooltip"`
	Watch       *bool  `yaml:"watch"`
	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level"`
	IconCell    int    `yaml:"icon_cell"`
}

func Default() Settings {
	watch := true
	return Settings{
		ConfigFile: "Config.txt",
		Tooltip:    "Right-click to show",
		Watch:      &watch,
		LogFile:    "app.log",
		LogLevel:   "info",
		IconCell:   27,
	}
}

// Load reads path over the defaults. A missing file returns the defaults
// and no error; any other failure returns the defaults and the error.
func Load(path string) (Settings, error) {
	s := Default()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("stat settings: %w", err)
	}

	var loaded Settings
	if err := config.LoadYAML(path, &loaded); err != nil {
		return s, fmt.Errorf("load settings %s: %w", path, err)
	}
	s.merge(loaded)
	return s, nil
}

func (s *Settings) merge(o Settings) {
	if o.ConfigFile != "" {
		s.ConfigFile = o.ConfigFile
	}
	if o.RandomIcons {
		s.RandomIcons = true
	}
	if o.Tooltip != "" {
		s.Tooltip = o.Tooltip
	}
	if o.Watch != nil {
		s.Watch = o.Watch
	}
	if o.LogFile != "" {
		s.LogFile = o.LogFile
	}
	if o.LogLevel != "" {
		s.LogLevel = o.LogLevel
	}
	if o.IconCell > 0 {
		s.IconCell = o.IconCell
	}
}

func (s Settings) WatchEnabled() bool {
	return s.Watch == nil || *s.Watch
}

// Level maps LogLevel onto slog, falling back to info.
func (s Settings) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(s.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
