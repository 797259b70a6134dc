// Package tray provides the system tray interface for the mudra daemon.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle func(enabled bool)
	onScene  func(name string)
	onOpenUI func()
	onQuit   func()

	scenes  []string
	current string
	enabled bool
	mu      sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuScenes map[string]*systray.MenuItem
}

// New creates a Tray offering the given scenes, with current checked.
func New(scenes []string, current string) *Tray {
	return &Tray{
		scenes:     scenes,
		current:    current,
		menuScenes: make(map[string]*systray.MenuItem),
	}
}

// OnToggle sets the callback for the enable/disable menu item.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnScene sets the callback for scene menu item clicks.
func (t *Tray) OnScene(fn func(name string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onScene = fn
}

// OnOpenUI sets the callback for the open-renderer menu item.
func (t *Tray) OnOpenUI(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpenUI = fn
}

// OnQuit sets the callback for the quit menu item.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra Hand Interaction")

	t.menuToggle = systray.AddMenuItem("○ Paused", "Toggle hand tracking")
	systray.AddSeparator()

	for _, name := range t.scenes {
		item := systray.AddMenuItemCheckbox("Scene: "+name, "Switch to the "+name+" scene", name == t.current)
		t.menuScenes[name] = item

		go func(name string, item *systray.MenuItem) {
			for range item.ClickedCh {
				t.handleScene(name)
			}
		}(name, item)
	}
	systray.AddSeparator()

	menuOpenUI := systray.AddMenuItem("Open Renderer...", "Open the renderer in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuOpenUI.ClickedCh:
				t.handleOpenUI()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Tracking")
	} else {
		t.menuToggle.SetTitle("○ Paused")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleScene(name string) {
	t.mu.Lock()
	t.current = name
	for sceneName, item := range t.menuScenes {
		if sceneName == name {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
	callback := t.onScene
	t.mu.Unlock()

	if callback != nil {
		callback(name)
	}
}

func (t *Tray) handleOpenUI() {
	t.mu.RLock()
	callback := t.onOpenUI
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetEnabled updates the toggle item to reflect externally changed state,
// for example a switch made through the REST API.
func (t *Tray) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enabled = enabled
	if t.menuToggle == nil {
		return
	}
	if enabled {
		t.menuToggle.SetTitle("● Tracking")
	} else {
		t.menuToggle.SetTitle("○ Paused")
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
