// Package settings persists staffing parameters to a JSON file.
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/verte-zerg/housekeep/internal/logger"
	"github.com/verte-zerg/housekeep/internal/model"
)

// FileName is the settings file name placed beside the executable.
const FileName = "config.json"

// Default values.
const (
	DefaultHotelName         = "My Hotel"
	DefaultMinutesStayover   = 20
	DefaultMinutesDeparture  = 40
	DefaultMinutesArrival    = 10
	DefaultShiftMinutes      = 420
	DefaultEfficiencyPercent = 85
)

// Bounds enforced by Clamp.
const (
	MinShiftMinutes      = 60
	MinEfficiencyPercent = 10
	MaxEfficiencyPercent = 150
)

// Defaults returns the settings used when nothing has been saved yet.
func Defaults() model.Settings {
	return model.Settings{
		HotelName:         DefaultHotelName,
		MinutesStayover:   DefaultMinutesStayover,
		MinutesDeparture:  DefaultMinutesDeparture,
		MinutesArrival:    DefaultMinutesArrival,
		ShiftMinutes:      DefaultShiftMinutes,
		EfficiencyPercent: DefaultEfficiencyPercent,
	}
}

// Clamp forces every field into its valid range. It is idempotent.
func Clamp(s model.Settings) model.Settings {
	s.HotelName = strings.TrimSpace(s.HotelName)
	if s.HotelName == "" {
		s.HotelName = DefaultHotelName
	}
	s.MinutesStayover = max(0, s.MinutesStayover)
	s.MinutesDeparture = max(0, s.MinutesDeparture)
	s.MinutesArrival = max(0, s.MinutesArrival)
	s.ShiftMinutes = max(MinShiftMinutes, s.ShiftMinutes)
	s.EfficiencyPercent = min(MaxEfficiencyPercent, max(MinEfficiencyPercent, s.EfficiencyPercent))
	return s
}

// DefaultPath returns the settings path next to the running executable.
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), FileName), nil
}

// Load reads settings from path. Any failure yields Defaults without an error.
func Load(path string) model.Settings {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("settings unreadable, using defaults", "path", path, "error", err)
		}
		return Defaults()
	}
	s, err := decode(data)
	if err != nil {
		logger.Debug("settings invalid, using defaults", "path", path, "error", err)
		return Defaults()
	}
	return Clamp(s)
}

// Save clamps s and writes it to path as indented JSON, replacing any existing file.
func Save(path string, s model.Settings) error {
	if path == "" {
		return fmt.Errorf("settings path is empty")
	}
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	logger.Debug("settings saved", "path", path)
	return nil
}

// Encode clamps s and returns its file representation: UTF-8 JSON with
// 2-space indentation and no escaping of non-ASCII or HTML characters.
func Encode(s model.Settings) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Clamp(s)); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	return buf.Bytes(), nil
}

// decode accepts a JSON object holding any subset of the six fields.
// Unknown keys and values that cannot be read as the field type are errors.
func decode(data []byte) (model.Settings, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Settings{}, err
	}
	if raw == nil {
		return model.Settings{}, fmt.Errorf("settings must be a JSON object")
	}
	s := Defaults()
	ints := map[string]*int{
		"minutes_stayover":   &s.MinutesStayover,
		"minutes_departure":  &s.MinutesDeparture,
		"minutes_arrival":    &s.MinutesArrival,
		"shift_minutes":      &s.ShiftMinutes,
		"efficiency_percent": &s.EfficiencyPercent,
	}
	for key, value := range raw {
		if key == "hotel_name" {
			name, err := decodeName(value)
			if err != nil {
				return model.Settings{}, fmt.Errorf("hotel_name: %w", err)
			}
			s.HotelName = name
			continue
		}
		target, ok := ints[key]
		if !ok {
			return model.Settings{}, fmt.Errorf("unknown field %q", key)
		}
		n, err := decodeInt(value)
		if err != nil {
			return model.Settings{}, fmt.Errorf("%s: %w", key, err)
		}
		*target = n
	}
	return s, nil
}

func decodeName(value json.RawMessage) (string, error) {
	if string(bytes.TrimSpace(value)) == "null" {
		return DefaultHotelName, nil
	}
	var name string
	if err := json.Unmarshal(value, &name); err != nil {
		return "", err
	}
	return name, nil
}

// decodeInt reads a JSON number (truncated toward zero) or a string holding
// a base-10 integer.
func decodeInt(value json.RawMessage) (int, error) {
	var v any
	if err := json.Unmarshal(value, &v); err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) || math.Abs(t) > math.MaxInt32 {
			return 0, fmt.Errorf("number out of range")
		}
		return int(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer, got %s", string(value))
	}
}
