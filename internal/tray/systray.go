package tray

import (
	"github.com/energye/systray"
)

// SystrayHost renders the menu through energye/systray.
type SystrayHost struct{}

func (SystrayHost) AddItem(label string, icon []byte, onClick func()) {
	item := systray.AddMenuItem(label, label)
	if len(icon) > 0 {
		item.SetIcon(icon)
	}
	item.Click(onClick)
}

func (SystrayHost) AddSeparator() { systray.AddSeparator() }

func (SystrayHost) Reset() { systray.ResetMenu() }

func (SystrayHost) Quit() { systray.Quit() }

type RunOptions struct {
	Icon    []byte
	Title   string
	Tooltip string
	// OnExit runs once the tray loop has finished.
	OnExit func()
}

// Run shows the tray icon, builds the controller's menu once the tray is
// ready and blocks until Quit.
func Run(c *Controller, opts RunOptions) {
	onReady := func() {
		if len(opts.Icon) > 0 {
			systray.SetIcon(opts.Icon)
		}
		systray.SetTitle(opts.Title)
		systray.SetTooltip(opts.Tooltip)
		systray.SetOnRClick(func(menu systray.IMenu) {
			menu.ShowMenu()
		})
		c.Build()
	}
	onExit := func() {
		c.logger.Info("tray exited")
		if opts.OnExit != nil {
			opts.OnExit()
		}
	}
	systray.Run(onReady, onExit)
}
