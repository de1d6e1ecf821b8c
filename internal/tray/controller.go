// Package tray builds the tray context menu from the menu config file and
// dispatches clicks on it.
package tray

import (
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/taodev/jumplist/internal/dialog"
	"github.com/taodev/jumplist/internal/icons"
	"github.com/taodev/jumplist/internal/launch"
	"github.com/taodev/jumplist/internal/menu"
)

const ExitLabel = "Exit"

// Host is the tray menu surface the controller renders into.
type Host interface {
	AddItem(label string, icon []byte, onClick func())
	AddSeparator()
	// Reset removes every item so the menu can be rebuilt.
	Reset()
	// Quit disposes the tray icon and ends the tray message loop.
	Quit()
}

type Options struct {
	ConfigPath  string
	RandomIcons bool

	Host     Host
	Launcher launch.Launcher
	// Notify presents a dialog and blocks until it is dismissed.
	Notify func(dialog.Spec)

	Stock *icons.Stock
	Set   *icons.Set
	Rand  *rand.Rand
	Stat  func(name string) (fs.FileInfo, error)

	// OnExit runs after the menu is torn down and before Host.Quit.
	OnExit func()
	Logger *slog.Logger
}

type Controller struct {
	opts   Options
	logger *slog.Logger

	// buildMu serializes Reset and the whole render. Reload runs on the
	// watcher goroutine, not the tray thread.
	buildMu sync.Mutex

	mu    sync.Mutex
	model *menu.Model
}

func New(opts Options) *Controller {
	if opts.Launcher == nil {
		opts.Launcher = launch.Shell{}
	}
	if opts.Stat == nil {
		opts.Stat = os.Stat
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if opts.Stock == nil {
		opts.Stock = &icons.Stock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{opts: opts, logger: logger}
	if opts.Notify == nil {
		c.opts.Notify = c.showDialog
	}
	return c
}

func (c *Controller) showDialog(spec dialog.Spec) {
	if err := dialog.Show(spec); err != nil {
		c.logger.Error("show dialog failed", "title", spec.Title, "message", spec.Message, "err", err)
	}
}

func errorSpec(title string, err error) dialog.Spec {
	return dialog.Spec{
		Message:  err.Error(),
		Title:    title,
		Level:    dialog.LevelError,
		ShowIcon: true,
	}
}

func (c *Controller) notifyError(title string, err error) {
	c.opts.Notify(errorSpec(title, err))
}

// guard runs fn, converting a panic into an error dialog so nothing escapes
// a menu callback.
func (c *Controller) guard(op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("recovered panic", "op", op, "panic", r, "stack", string(debug.Stack()))
			c.notifyError("Exception", fmt.Errorf("%s: %v", op, r))
		}
	}()
	fn()
}

// Model returns the menu currently rendered, or nil before Build.
func (c *Controller) Model() *menu.Model {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}

// Build loads the menu config and renders the menu.
func (c *Controller) Build() {
	c.guard("build menu", func() {
		c.notify(c.rebuild(false))
	})
}

// Reload clears the menu and builds it again from the config file.
func (c *Controller) Reload() {
	c.logger.Info("reloading menu", "path", c.opts.ConfigPath)
	c.guard("reload menu", func() {
		c.notify(c.rebuild(true))
	})
}

// rebuild renders the menu under buildMu and returns the dialogs to show
// once the menu is complete. Notify blocks, so it never runs under the lock.
func (c *Controller) rebuild(reset bool) []dialog.Spec {
	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	if reset {
		c.opts.Host.Reset()
	}

	var pending []dialog.Spec
	lines, err := menu.Load(c.opts.ConfigPath)
	if err != nil {
		c.logger.Error("load menu config failed", "path", c.opts.ConfigPath, "err", err)
		pending = append(pending, errorSpec("Exception", err))
	}
	return append(pending, c.render(menu.Build(lines))...)
}

func (c *Controller) notify(specs []dialog.Spec) {
	for _, s := range specs {
		c.opts.Notify(s)
	}
}

func (c *Controller) render(m *menu.Model) []dialog.Spec {
	c.mu.Lock()
	c.model = m
	c.mu.Unlock()

	var pending []dialog.Spec
	host := c.opts.Host
	for _, e := range m.Entries() {
		if e.Separator {
			c.logger.Debug("menu separator", "id", e.ID)
			host.AddSeparator()
			continue
		}

		c.logger.Debug("menu entry", "id", e.ID, "label", e.Label, "target", e.Target)
		icon, err := c.entryIcon(e)
		if err != nil {
			c.logger.Error("assign icon failed", "id", e.ID, "target", e.Target, "err", err)
			pending = append(pending, errorSpec("Exception", err))
		}
		id := e.ID
		host.AddItem(e.Label, icon, func() { c.onEntryClicked(id) })
	}

	host.AddSeparator()
	host.AddItem(ExitLabel, c.opts.Stock.Exit, c.onExitClicked)

	if issues := m.Issues(); len(issues) > 0 {
		pending = append(pending, c.issueReport(issues))
	}
	return pending
}

// entryIcon runs assignIcon, turning a panic into an error so the rest of
// the menu still renders.
func (c *Controller) entryIcon(e menu.Entry) (icon []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("recovered panic", "op", "assign icon", "panic", r, "stack", string(debug.Stack()))
			icon, err = nil, fmt.Errorf("assign icon for %q: %v", e.Target, r)
		}
	}()
	return c.assignIcon(e), nil
}

func (c *Controller) issueReport(issues []menu.Result) dialog.Spec {
	var b strings.Builder
	for _, r := range issues {
		c.logger.Warn("malformed menu line", "line", r.Entry.Line, "raw", r.Raw, "err", r.Err)
		fmt.Fprintf(&b, "line %d (%q): %v\n", r.Entry.Line, r.Raw, r.Err)
	}
	return dialog.Spec{
		Message:  strings.TrimSuffix(b.String(), "\n"),
		Title:    "Malformed menu entries",
		Level:    dialog.LevelWarning,
		ShowIcon: true,
	}
}

// assignIcon picks the icon for an actionable entry: a random sprite in
// random mode, otherwise the file icon when the target is an existing file
// and the folder icon for anything else. A target that cannot be stat'ed,
// such as a URL or a path under a regular file, is not an existing file.
func (c *Controller) assignIcon(e menu.Entry) []byte {
	if c.opts.RandomIcons && c.opts.Set != nil {
		return c.opts.Set.Random(c.opts.Rand)
	}

	info, err := c.opts.Stat(e.Target)
	if err != nil {
		c.logger.Debug("target is not an existing file", "id", e.ID, "target", e.Target, "err", err)
		return c.opts.Stock.Folder
	}
	if info.IsDir() {
		return c.opts.Stock.Folder
	}
	return c.opts.Stock.File
}

func (c *Controller) onEntryClicked(id int) {
	c.guard("launch", func() {
		m := c.Model()
		if m == nil {
			return
		}
		e, ok := m.Lookup(id)
		if !ok {
			c.logger.Warn("click on unknown menu entry", "id", id)
			return
		}
		if e.Separator {
			// separators carry no click handler
			c.logger.Debug("ignoring separator", "id", id)
			return
		}

		if e.Target == "" {
			c.opts.Notify(dialog.Spec{
				Message:  fmt.Sprintf("Empty path for index %d", id),
				Title:    "Warning",
				Level:    dialog.LevelWarning,
				ShowIcon: true,
			})
			return
		}

		c.logger.Info("launching", "id", id, "label", e.Label, "target", e.Target)
		if err := c.opts.Launcher.Launch(e.Target); err != nil {
			c.logger.Error("launch failed", "target", e.Target, "err", err)
			c.notifyError("Error", err)
		}
	})
}

func (c *Controller) onExitClicked() {
	c.logger.Info("exit requested")
	if c.opts.OnExit != nil {
		c.opts.OnExit()
	}
	c.opts.Host.Quit()
}
