// Package pms extracts daily occupancy rows from property-management XML exports.
package pms

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/housekeep/internal/model"
)

// Element names of the considered-date report.
const (
	TagConsideredDate = "G_CONSIDERED_DATE"
	TagDate           = "C_DATE"
	TagDayDescription = "DAY_DESCRIPTION"
	TagRoomsMorning   = "ROOMS_MORNING"
	TagDepartureRoom  = "DEPARTURE_ROOM"
	TagArrivalRoom    = "ARRIVAL_ROOM"
)

// DateLayout matches dd/mm/yy with optional leading zeros on day and month.
const DateLayout = "2/1/06"

var (
	// ErrMalformedXML is returned when the document is not well-formed.
	ErrMalformedXML = errors.New("pms: malformed xml")
	// ErrInvalidDate is returned when a considered date cannot be parsed.
	ErrInvalidDate = errors.New("pms: invalid date")
)

// Extract reads the export at path and returns its rows sorted by date.
func Extract(path string) ([]model.DayRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xml: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of a read-only file.
			_ = cerr
		}
	}()
	return ExtractReader(f)
}

// ExtractReader parses an export from r. Either every row is returned or an
// error; there are no partial results.
func ExtractReader(r io.Reader) ([]model.DayRow, error) {
	root, err := parseTree(r)
	if err != nil {
		return nil, err
	}
	var rows []model.DayRow
	for _, n := range root.findAll(TagConsideredDate) {
		row, ok, err := rowFromNode(n)
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ParsedDate.Before(rows[j].ParsedDate)
	})
	return rows, nil
}

func rowFromNode(n *node) (model.DayRow, bool, error) {
	date, ok := n.childText(TagDate)
	if !ok || date == "" {
		return model.DayRow{}, false, nil
	}
	parsed, err := ParseDate(date)
	if err != nil {
		return model.DayRow{}, false, err
	}
	day, _ := n.childText(TagDayDescription)
	roomsMorning := parseCount(n, TagRoomsMorning)
	departures := parseCount(n, TagDepartureRoom)
	arrivals := parseCount(n, TagArrivalRoom)
	return model.DayRow{
		Date:       strings.TrimSpace(date),
		DayLabel:   strings.TrimSpace(day),
		Arrivals:   arrivals,
		Departures: departures,
		Stayover:   max(0, roomsMorning-departures),
		ParsedDate: parsed,
	}, true, nil
}

// ParseDate parses a considered-date value such as "05/03/24".
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// ParseInt parses trimmed base-10 text, falling back to def.
func ParseInt(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return def
	}
	return n
}

// parseCount reads a room count; missing, non-numeric and negative values count as 0.
func parseCount(n *node, tag string) int {
	text, ok := n.childText(tag)
	if !ok {
		return 0
	}
	return max(0, ParseInt(text, 0))
}
