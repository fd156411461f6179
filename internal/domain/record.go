package domain

import (
	"time"

	"github.com/go-gota/gota/dataframe"
)

// StationTable pairs a loaded archive with the station it came from.
type StationTable struct {
	Station Station
	Frame   dataframe.DataFrame
}

// Record is one row of the merged dataset.
type Record struct {
	Name string
	Date time.Time
	ET0  string // source text, precision preserved
}

// Window is an inclusive calendar date range.
type Window struct {
	From time.Time
	To   time.Time
}

// DefaultWindow is the fixed output range, 2020-01-01 through 2023-12-31.
func DefaultWindow() Window {
	return Window{
		From: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether t falls on or between the window's bounds.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// String renders the window as "from..to".
func (w Window) String() string {
	return w.From.Format(DateLayout) + ".." + w.To.Format(DateLayout)
}
