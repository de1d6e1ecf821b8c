package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/taodev/jumplist/internal/autostart"
	"github.com/taodev/jumplist/internal/dialog"
	"github.com/taodev/jumplist/internal/icons"
	"github.com/taodev/jumplist/internal/settings"
	"github.com/taodev/jumplist/internal/tray"
	"github.com/taodev/jumplist/internal/watcher"
)

var (
	appName = "jumplist"
	exePath string
	dirPath string
)

func main() {
	exePath, _ = os.Executable()
	dirPath = filepath.Dir(exePath)

	var (
		settingsPath  = filepath.Join(dirPath, settings.DefaultFileName)
		configPath    string
		randomIcons   bool
		autostartMode string
	)
	flag.StringVar(&settingsPath, "settings", settingsPath, "settings path")
	flag.StringVar(&configPath, "config", "", "menu config path (default: config_file in the working directory)")
	flag.BoolVar(&randomIcons, "random-icons", false, "decorate menu entries with random icons")
	flag.StringVar(&autostartMode, "autostart", "", "on|off: add or remove the login entry, then exit")
	flag.Parse()

	cfg, cfgErr := settings.Load(settingsPath)

	logPath := cfg.LogFile
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(dirPath, logPath)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: cfg.Level(),
	})))

	defer func() {
		if r := recover(); r != nil {
			slog.Error("unhandled panic", "panic", r, "stack", string(debug.Stack()))
			f.Close()
			os.Exit(2)
		}
	}()

	for _, arg := range os.Args {
		slog.Info("received argument", "arg", arg)
	}

	if configPath == "" {
		configPath = cfg.ConfigFile
	}
	if !filepath.IsAbs(configPath) {
		if wd, err := os.Getwd(); err == nil {
			configPath = filepath.Join(wd, configPath)
		}
	}
	if randomIcons {
		cfg.RandomIcons = true
	}

	if autostartMode != "" {
		code := runAutostart(autostartMode, configPath)
		f.Close()
		os.Exit(code)
	}

	if cfgErr != nil {
		slog.Warn("load settings failed, using defaults", "path", settingsPath, "err", cfgErr)
		alert("Settings", cfgErr, dialog.LevelWarning)
	}

	stock, err := icons.LoadStock()
	if err != nil {
		slog.Error("load icons failed", "err", err)
		alert("Exception", err, dialog.LevelError)
		stock = &icons.Stock{}
	}

	var set *icons.Set
	if cfg.RandomIcons {
		if set, err = icons.LoadSet(cfg.IconCell); err != nil {
			slog.Error("load icon set failed", "cell", cfg.IconCell, "err", err)
			alert("Exception", err, dialog.LevelError)
		}
	}

	var w *watcher.Watcher
	ctrl := tray.New(tray.Options{
		ConfigPath:  configPath,
		RandomIcons: cfg.RandomIcons,
		Host:        tray.SystrayHost{},
		Stock:       stock,
		Set:         set,
		OnExit: func() {
			if w != nil {
				if err := w.Close(); err != nil {
					slog.Warn("close watcher failed", "err", err)
				}
			}
		},
	})

	if cfg.WatchEnabled() {
		if w, err = watcher.New(configPath, watcher.DefaultDebounce, ctrl.Reload, slog.Default()); err != nil {
			slog.Warn("watch menu config failed", "path", configPath, "err", err)
		}
	}

	slog.Info("starting", "config", configPath, "random_icons", cfg.RandomIcons)
	tray.Run(ctrl, tray.RunOptions{
		Icon:    stock.Tray,
		Title:   appName,
		Tooltip: cfg.Tooltip,
		OnExit: func() {
			slog.Info("thread exit")
		},
	})
}

func alert(title string, err error, level dialog.Level) {
	if showErr := dialog.Message(err.Error(), title, level, true, 0); showErr != nil {
		slog.Error("show dialog failed", "err", showErr)
	}
}

func runAutostart(mode, configPath string) int {
	var err error
	switch strings.ToLower(mode) {
	case "on":
		err = autostart.Enable(appName, autostart.Command(exePath, configPath))
	case "off":
		err = autostart.Disable(appName)
	default:
		err = fmt.Errorf("unknown -autostart mode %q, want on or off", mode)
	}
	if err != nil {
		slog.Error("autostart failed", "mode", mode, "err", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	slog.Info("autostart updated", "mode", mode)
	fmt.Printf("autostart: %v\n", autostart.Enabled(appName))
	return 0
}
