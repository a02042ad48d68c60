// Package model defines shared data structures.
package model

import "time"

// Settings holds the staffing parameters persisted between runs.
type Settings struct {
	HotelName         string `json:"hotel_name"`
	MinutesStayover   int    `json:"minutes_stayover"`
	MinutesDeparture  int    `json:"minutes_departure"`
	MinutesArrival    int    `json:"minutes_arrival"`
	ShiftMinutes      int    `json:"shift_minutes"`
	EfficiencyPercent int    `json:"efficiency_percent"`
}

// DayRow is one considered date extracted from a PMS export.
type DayRow struct {
	Date       string
	DayLabel   string
	Arrivals   int
	Departures int
	Stayover   int

	// ParsedDate orders rows; it is not displayed.
	ParsedDate time.Time
}

// Result is the computed workload for a single day.
type Result struct {
	WorkloadMinutes int
	StaffCount      int
}

// StaffedDay pairs a row with its computed result.
type StaffedDay struct {
	Row    DayRow
	Result Result
}

// Summary aggregates a staffing plan for reporting.
type Summary struct {
	Days           int
	TotalWorkload  int
	TotalStaffDays int
	PeakStaff      int
	PeakDate       string
	AvgStaff       float64
}
