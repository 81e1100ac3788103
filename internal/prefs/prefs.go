// Package prefs persists user preferences (not simulation state) between runs.
package prefs

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/starfield/internal/logging"
)

// Preferences are the user-facing toggles remembered across runs.
type Preferences struct {
	Volume     float64 `yaml:"volume"`
	Muted      bool    `yaml:"muted"`
	Chimes     bool    `yaml:"chimes"`
	ShowHUD    bool    `yaml:"showHud"`
	Soundtrack string  `yaml:"soundtrack"`
}

// Default returns the preferences used on first launch.
func Default() Preferences {
	return Preferences{
		Volume: 0.7,
		Chimes: true,
	}
}

const (
	prefsObject   = "preferences"
	prefsProperty = "global"
)

// Manager loads and saves Preferences through gdata. A nil gdata manager keeps
// preferences in memory only.
type Manager struct {
	store *gdata.Manager
	prefs Preferences
	saved bool
	log   *logging.Logger
}

// Open creates the gdata store for appName. Failure is returned so the caller
// can fall back to an in-memory Manager.
func Open(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open preference store: %w", err)
	}
	return m, nil
}

// NewManager creates a manager and loads any saved preferences. A failed load
// is logged and leaves the defaults in place.
func NewManager(store *gdata.Manager, log *logging.Logger) *Manager {
	m := &Manager{store: store, prefs: Default(), log: log.Named("Prefs")}
	if err := m.Load(); err != nil {
		m.log.Warn("failed to load preferences: %v (using defaults)", err)
	}
	return m
}

// Load reads saved preferences, keeping defaults when nothing is stored.
func (m *Manager) Load() error {
	m.saved = false
	if m.store == nil || !m.store.ObjectPropExists(prefsObject, prefsProperty) {
		m.prefs = Default()
		return nil
	}

	data, err := m.store.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		m.prefs = Default()
		return fmt.Errorf("load preferences: %w", err)
	}

	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		m.prefs = Default()
		return fmt.Errorf("unmarshal preferences: %w", err)
	}
	loaded.Volume = clampVolume(loaded.Volume)

	m.prefs = loaded
	m.saved = true
	m.log.Debug("preferences loaded")
	return nil
}

// Save writes the current preferences. Without a store it does nothing.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}

	data, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := m.store.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}

	m.saved = true
	m.log.Debug("preferences saved")
	return nil
}

// Saved reports whether the preferences came from, or were written to, the
// store. Callers seed a fresh Manager from config when it is false.
func (m *Manager) Saved() bool { return m.saved }

// Get returns a copy of the current preferences.
func (m *Manager) Get() Preferences { return m.prefs }

// SetVolume sets the volume, clamped to [0,1]. Call Save to persist.
func (m *Manager) SetVolume(v float64) { m.prefs.Volume = clampVolume(v) }

// SetMuted sets the mute flag.
func (m *Manager) SetMuted(muted bool) { m.prefs.Muted = muted }

// SetChimes enables or disables shooting star chimes.
func (m *Manager) SetChimes(on bool) { m.prefs.Chimes = on }

// SetShowHUD shows or hides the HUD.
func (m *Manager) SetShowHUD(on bool) { m.prefs.ShowHUD = on }

// SetSoundtrack remembers the last opened soundtrack path.
func (m *Manager) SetSoundtrack(path string) { m.prefs.Soundtrack = path }

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
