// Package holiday classifies calendar dates against the PRC statutory holiday
// arrangements published by the State Council. The yearly datasets are embedded;
// dates outside the covered years return ErrYearNotCovered so callers can fall
// back to a plain weekend/weekday split.
package holiday

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"time"
)

//go:embed data/*.json
var dataFS embed.FS

// Class is the holiday classification of a single date.
type Class int

const (
	// ClassWorkday is an ordinary working weekday.
	ClassWorkday Class = iota
	// ClassWeekend is an ordinary non-working Saturday/Sunday.
	ClassWeekend
	// ClassHoliday is a statutory day off.
	ClassHoliday
	// ClassMakeupWorkday is a weekend turned into a working day to extend an
	// adjacent holiday.
	ClassMakeupWorkday
)

var ErrYearNotCovered = fmt.Errorf("holiday: year not covered by embedded data")

type dayEntry struct {
	Name   string `json:"name"`
	Date   string `json:"date"`
	OffDay bool   `json:"isOffDay"`
}

type yearFile struct {
	Year int        `json:"year"`
	Days []dayEntry `json:"days"`
}

// Calendar holds the loaded holiday arrangements.
type Calendar struct {
	days  map[string]dayEntry // "2006-01-02" -> entry
	years map[int]struct{}
}

// NewCNCalendar loads the embedded PRC datasets.
func NewCNCalendar() (*Calendar, error) {
	entries, err := fs.Glob(dataFS, "data/*.json")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)

	cal := &Calendar{
		days:  map[string]dayEntry{},
		years: map[int]struct{}{},
	}
	for _, name := range entries {
		raw, err := dataFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		var yf yearFile
		if err := json.Unmarshal(raw, &yf); err != nil {
			return nil, fmt.Errorf("holiday: parse %s: %w", name, err)
		}
		if yf.Year == 0 {
			return nil, fmt.Errorf("holiday: %s missing year", name)
		}
		cal.years[yf.Year] = struct{}{}
		for _, d := range yf.Days {
			if _, err := time.Parse("2006-01-02", d.Date); err != nil {
				return nil, fmt.Errorf("holiday: %s bad date %q: %w", name, d.Date, err)
			}
			cal.days[d.Date] = d
		}
	}
	if len(cal.years) == 0 {
		return nil, fmt.Errorf("holiday: no embedded datasets")
	}
	return cal, nil
}

// Covers reports whether the calendar has data for the date's year.
func (c *Calendar) Covers(t time.Time) bool {
	_, ok := c.years[t.Year()]
	return ok
}

// Classify returns the class of the date, and the holiday name for
// ClassHoliday and ClassMakeupWorkday.
func (c *Calendar) Classify(t time.Time) (Class, string, error) {
	if !c.Covers(t) {
		return ClassWorkday, "", ErrYearNotCovered
	}

	if d, ok := c.days[t.Format("2006-01-02")]; ok {
		if d.OffDay {
			return ClassHoliday, d.Name, nil
		}
		return ClassMakeupWorkday, d.Name, nil
	}

	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return ClassWeekend, "", nil
	default:
		return ClassWorkday, "", nil
	}
}
