// Package settingsform builds the interactive settings editor.
package settingsform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/verte-zerg/housekeep/internal/info"
	"github.com/verte-zerg/housekeep/internal/model"
	"github.com/verte-zerg/housekeep/internal/settings"
)

// Values is the string-backed form state.
type Values struct {
	HotelName  string
	Stayover   string
	Departure  string
	Arrival    string
	Shift      string
	Efficiency string
}

// FromSettings fills form values from s.
func FromSettings(s model.Settings) Values {
	return Values{
		HotelName:  s.HotelName,
		Stayover:   strconv.Itoa(s.MinutesStayover),
		Departure:  strconv.Itoa(s.MinutesDeparture),
		Arrival:    strconv.Itoa(s.MinutesArrival),
		Shift:      strconv.Itoa(s.ShiftMinutes),
		Efficiency: strconv.Itoa(s.EfficiencyPercent),
	}
}

// Settings converts the form values into clamped settings.
func (v Values) Settings() (model.Settings, error) {
	var s model.Settings
	s.HotelName = v.HotelName
	fields := []struct {
		name   string
		value  string
		target *int
	}{
		{"stayover", v.Stayover, &s.MinutesStayover},
		{"departure", v.Departure, &s.MinutesDeparture},
		{"arrival", v.Arrival, &s.MinutesArrival},
		{"shift", v.Shift, &s.ShiftMinutes},
		{"efficiency", v.Efficiency, &s.EfficiencyPercent},
	}
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f.value))
		if err != nil {
			return model.Settings{}, fmt.Errorf("invalid %s value %q", f.name, f.value)
		}
		*f.target = n
	}
	return settings.Clamp(s), nil
}

// New builds a form editing v in place.
func New(v *Values) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hotel name").
				Value(&v.HotelName),
			numberInput("Stayover (min)", info.Stayover, &v.Stayover),
			numberInput("Departure (min)", info.Departure, &v.Departure),
			numberInput("Arrival (min)", info.Arrival, &v.Arrival),
		),
		huh.NewGroup(
			numberInput("Shift (min)", info.Shift, &v.Shift),
			numberInput("Efficiency (%)", info.Efficiency, &v.Efficiency),
		),
	)
}

func numberInput(title, infoKey string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description(tagline(info.Lookup(infoKey))).
		Value(value).
		Validate(validateInt)
}

func validateInt(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

// tagline returns the line under an info title.
func tagline(text string) string {
	lines := strings.SplitN(text, "\n", 3)
	if len(lines) < 2 {
		return text
	}
	return lines[1]
}
