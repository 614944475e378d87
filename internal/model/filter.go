package model

import "time"

// All is the sentinel plot or season ID meaning "no restriction".
const All = "all"

// Filter restricts which journal entries and lines a calculation folds in.
// The same Filter value is shared by every report.
//
// A zero Start or End leaves that side of the date range open. Dates are
// compared by calendar day, both bounds inclusive. PlotID and SeasonID equal
// to "" or All disable the corresponding dimension filter.
type Filter struct {
	Start    time.Time
	End      time.Time
	PlotID   string
	SeasonID string
}

// AllTime returns a filter with no restrictions.
func AllTime() Filter {
	return Filter{PlotID: All, SeasonID: All}
}

// CalendarYear returns a filter covering January 1 through December 31 of year.
func CalendarYear(year int) Filter {
	return DateRange(
		time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	)
}

// DateRange returns a filter covering from through to, inclusive.
// Either bound may be the zero time.
func DateRange(from, to time.Time) Filter {
	return Filter{Start: from, End: to, PlotID: All, SeasonID: All}
}

// AsOf returns a point-in-time filter ending on d.
func AsOf(d time.Time) Filter {
	return DateRange(time.Time{}, d)
}

// WithPlot restricts the filter to lines tagged with plotID.
func (f Filter) WithPlot(plotID string) Filter {
	f.PlotID = plotID
	return f
}

// WithSeason restricts the filter to lines tagged with seasonID.
func (f Filter) WithSeason(seasonID string) Filter {
	f.SeasonID = seasonID
	return f
}

// Cumulative drops the start bound, keeping End and the dimension filters.
func (f Filter) Cumulative() Filter {
	f.Start = time.Time{}
	return f
}

// HasDates reports whether either date bound is set.
func (f Filter) HasDates() bool {
	return !f.Start.IsZero() || !f.End.IsZero()
}

// Includes reports whether date d lies within the filter's date range.
func (f Filter) Includes(d time.Time) bool {
	day := Day(d)
	if !f.Start.IsZero() && day.Before(Day(f.Start)) {
		return false
	}
	if !f.End.IsZero() && day.After(Day(f.End)) {
		return false
	}
	return true
}

// MatchesLine reports whether a line passes the plot and season filters.
// Untagged lines are excluded once a specific plot or season is selected.
func (f Filter) MatchesLine(l JournalEntryLine) bool {
	if restricted(f.PlotID) && l.PlotID != f.PlotID {
		return false
	}
	if restricted(f.SeasonID) && l.SeasonID != f.SeasonID {
		return false
	}
	return true
}

func restricted(id string) bool {
	return id != "" && id != All
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
