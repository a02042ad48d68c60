// Package app holds the dashboard's working state: settings, the loaded
// export and its rows.
package app

import (
	"fmt"

	"github.com/verte-zerg/housekeep/internal/logger"
	"github.com/verte-zerg/housekeep/internal/model"
	"github.com/verte-zerg/housekeep/internal/pms"
	"github.com/verte-zerg/housekeep/internal/settings"
	"github.com/verte-zerg/housekeep/internal/staffing"
)

// State is owned by a single presentation layer and is not safe for concurrent use.
type State struct {
	SettingsPath string
	Settings     model.Settings
	XMLPath      string
	Rows         []model.DayRow
}

// New loads settings from settingsPath, falling back to defaults silently.
func New(settingsPath string) *State {
	return &State{
		SettingsPath: settingsPath,
		Settings:     settings.Load(settingsPath),
	}
}

// SetSettings stores clamped settings.
func (s *State) SetSettings(v model.Settings) {
	s.Settings = settings.Clamp(v)
}

// LoadXML replaces the cached rows with those from path. On error the
// previous path and rows are left untouched.
func (s *State) LoadXML(path string) error {
	rows, err := pms.Extract(path)
	if err != nil {
		logger.Warn("xml load failed", "path", path, "error", err)
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	s.XMLPath = path
	s.Rows = rows
	logger.Info("xml loaded", "path", path, "rows", len(rows))
	return nil
}

// HasRows reports whether an export has been loaded.
func (s *State) HasRows() bool {
	return len(s.Rows) > 0
}

// Plan computes every cached row with the current settings.
func (s *State) Plan() []model.StaffedDay {
	return staffing.Plan(s.Rows, s.Settings)
}

// Summary aggregates the current plan.
func (s *State) Summary() model.Summary {
	return staffing.Summarize(s.Plan())
}

// Save writes the current settings to SettingsPath.
func (s *State) Save() error {
	if err := settings.Save(s.SettingsPath, s.Settings); err != nil {
		logger.Error("settings save failed", "path", s.SettingsPath, "error", err)
		return err
	}
	s.Settings = settings.Clamp(s.Settings)
	return nil
}
