// Package info holds the explanations shown for each staffing parameter.
package info

// Parameter keys.
const (
	Stayover   = "stayover"
	Departure  = "departure"
	Arrival    = "arrival"
	Shift      = "shift"
	Efficiency = "eff"
)

// Fallback is returned for unknown keys.
const Fallback = "No description available."

var texts = map[string]string{
	Stayover: `Stayover minutes
An occupied room that stays in house.

Light cleaning:
  - make the bed
  - quick bathroom
  - tidy up
  - towel change (sometimes)

Typical value:
  - 15-25 minutes
  - well-run 4-star hotel: 20 min (good default)`,

	Departure: `Departure minutes (checkout)
A room being vacated.

Full cleaning:
  - deep bathroom clean
  - full linen change
  - minibar check
  - vacuum / floors
  - final checks

Typical value:
  - 35-50 minutes
  - standard 4-star: 40 min
  - suites / large rooms: 50-60 min`,

	Arrival: `Arrival minutes
Extra work tied to a check-in.

Not a full clean, but:
  - finishing touches
  - quality checks
  - special requests
  - VIP setup

Typical value:
  - 5-15 minutes
  - sensible default: 10 min

If arrivals get no extra work, set 0.`,

	Shift: `Shift minutes
Real working time of one room attendant.

Not the nominal shift (8 hours) but the effective one:
  - 8 hour shift = 480 min
  - breaks, briefing, walking, surprises: -60 min

Realistic value:
  - 420 minutes (7 real hours)
  - very tight hotels: 390-400

This value moves the recommended headcount immediately.`,

	Efficiency: `Efficiency (%)
How much of the shift turns into useful cleaning time.

Examples:
  - 100% perfect day (theoretical)
  - 90%  well organised hotel
  - 80-85% very common in practice
  - 70%  chaos / new staff / distant rooms

In the calculation:
  effective_time = shift_minutes x (efficiency / 100)

Examples:
  - 420 x 80% = 336 real minutes
  - 420 x 90% = 378 real minutes

It directly changes the recommended headcount.`,
}

// Keys lists parameter keys in display order.
func Keys() []string {
	return []string{Stayover, Departure, Arrival, Shift, Efficiency}
}

// Lookup returns the explanation for key, or Fallback.
func Lookup(key string) string {
	if text, ok := texts[key]; ok {
		return text
	}
	return Fallback
}
