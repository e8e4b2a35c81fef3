// Package tray shows a system tray icon with status, view and shutdown actions.
package tray

import (
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
	"go.uber.org/zap"
)

// Actions are invoked from tray menu clicks.
type Actions struct {
	// ResetView is called when "Reset view" is clicked.
	ResetView func()
	// Shutdown is called once when "Exit" is clicked.
	Shutdown func()
}

// Tray manages the system tray icon and menu
type Tray struct {
	log          *zap.Logger
	url          string
	actions      Actions
	once         sync.Once
	shuttingDown atomic.Bool
	menuOpen     *systray.MenuItem
	menuReset    *systray.MenuItem
	menuExit     *systray.MenuItem
}

// New creates a new Tray instance. url is opened by "Server status".
func New(url string, actions Actions, log *zap.Logger) *Tray {
	return &Tray{
		log:     log,
		url:     url,
		actions: actions,
	}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetTitle("gamepadcam")
	systray.SetTooltip("gamepadcam - " + t.url)

	t.menuOpen = systray.AddMenuItem("Server status", "Show the viewer server status")
	t.menuReset = systray.AddMenuItem("Reset view", "Level the camera and face forward")
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	go t.handleMenuClicks()

	t.log.Info("system tray initialized")
}

func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				t.openBrowser()
			}
		case <-t.menuReset.ClickedCh:
			if !t.shuttingDown.Load() && t.actions.ResetView != nil {
				t.actions.ResetView()
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				if t.actions.Shutdown != nil {
					t.once.Do(t.actions.Shutdown)
				}
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	t.log.Info("system tray exiting")
}

func (t *Tray) openBrowser() {
	if t.url == "" {
		return
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", t.url)
	case "darwin":
		cmd = exec.Command("open", t.url)
	default:
		cmd = exec.Command("xdg-open", t.url)
	}

	if err := cmd.Start(); err != nil {
		t.log.Warn("failed to open browser", zap.Error(err))
	}
}
