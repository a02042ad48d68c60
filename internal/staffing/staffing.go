// Package staffing turns daily room movements into workload and headcount.
package staffing

import (
	"math"

	"github.com/verte-zerg/housekeep/internal/model"
	"github.com/verte-zerg/housekeep/internal/settings"
)

// Workload returns the estimated cleaning minutes for a day.
func Workload(row model.DayRow, s model.Settings) int {
	return row.Stayover*s.MinutesStayover +
		row.Departures*s.MinutesDeparture +
		row.Arrivals*s.MinutesArrival
}

// EffectiveMinutes is the productive part of one shift.
func EffectiveMinutes(s model.Settings) float64 {
	return float64(s.ShiftMinutes) * (float64(s.EfficiencyPercent) / 100)
}

// Compute returns the workload and recommended staff for row. A day without
// workload needs no staff; any workload needs at least one person.
// s must satisfy the settings invariants, see settings.Clamp.
func Compute(row model.DayRow, s model.Settings) model.Result {
	workload := Workload(row, s)
	if workload <= 0 {
		return model.Result{WorkloadMinutes: workload}
	}
	staff := int(math.Ceil(float64(workload) / EffectiveMinutes(s)))
	return model.Result{
		WorkloadMinutes: workload,
		StaffCount:      max(1, staff),
	}
}

// Plan computes every row with clamped settings, preserving row order.
func Plan(rows []model.DayRow, s model.Settings) []model.StaffedDay {
	s = settings.Clamp(s)
	out := make([]model.StaffedDay, len(rows))
	for i, row := range rows {
		out[i] = model.StaffedDay{Row: row, Result: Compute(row, s)}
	}
	return out
}

// Summarize aggregates a plan. The peak is the earliest day with the highest headcount.
func Summarize(plan []model.StaffedDay) model.Summary {
	sum := model.Summary{Days: len(plan)}
	for _, day := range plan {
		sum.TotalWorkload += day.Result.WorkloadMinutes
		sum.TotalStaffDays += day.Result.StaffCount
		if day.Result.StaffCount > sum.PeakStaff {
			sum.PeakStaff = day.Result.StaffCount
			sum.PeakDate = day.Row.Date
		}
	}
	if sum.Days > 0 {
		sum.AvgStaff = float64(sum.TotalStaffDays) / float64(sum.Days)
	}
	return sum
}
