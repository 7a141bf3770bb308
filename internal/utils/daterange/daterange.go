// Package daterange turns the ledger endpoints' query parameters into inclusive date
// ranges. Presets are evaluated in the location of the reference time.
package daterange

import (
	"fmt"
	"time"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
)

// Layout is the calendar date format accepted by every date parameter.
const Layout = "2006-01-02"

// Preset names accepted by the dateRange query parameter.
const (
	Today      = "today"
	Yesterday  = "yesterday"
	ThisWeek   = "thisWeek"
	LastWeek   = "lastWeek"
	ThisMonth  = "thisMonth"
	LastMonth  = "lastMonth"
	ThisYear   = "thisYear"
	Last7Days  = "last7Days"
	Last30Days = "last30Days"
	All        = "all"
)

// epoch is the start of the "all" preset.
var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Day returns the range covering the single calendar day of t.
func Day(t time.Time) domain.DateRange {
	return domain.DateRange{Start: StartOfDay(t), End: EndOfDay(t)}
}

// ParseDate parses a YYYY-MM-DD value into midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, value)
	}
	return t, nil
}

// FromPreset resolves a named preset relative to now.
func FromPreset(preset string, now time.Time) (domain.DateRange, error) {
	today := StartOfDay(now)
	switch preset {
	case Today:
		return Day(today), nil
	case Yesterday:
		return Day(today.AddDate(0, 0, -1)), nil
	case ThisWeek:
		start := today.AddDate(0, 0, -weekdayOffset(today))
		return domain.DateRange{Start: start, End: EndOfDay(today)}, nil
	case LastWeek:
		thisWeek := today.AddDate(0, 0, -weekdayOffset(today))
		start := thisWeek.AddDate(0, 0, -7)
		return domain.DateRange{Start: start, End: EndOfDay(thisWeek.AddDate(0, 0, -1))}, nil
	case ThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return domain.DateRange{Start: start, End: EndOfDay(today)}, nil
	case LastMonth:
		thisMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return domain.DateRange{Start: thisMonth.AddDate(0, -1, 0), End: EndOfDay(thisMonth.AddDate(0, 0, -1))}, nil
	case ThisYear:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		return domain.DateRange{Start: start, End: EndOfDay(today)}, nil
	case Last7Days:
		return domain.DateRange{Start: today.AddDate(0, 0, -6), End: EndOfDay(today)}, nil
	case Last30Days:
		return domain.DateRange{Start: today.AddDate(0, 0, -29), End: EndOfDay(today)}, nil
	case All:
		return domain.DateRange{Start: epoch, End: EndOfDay(today)}, nil
	}
	return domain.DateRange{}, fmt.Errorf("%w: unknown dateRange %q", apperrors.ErrValidation, preset)
}

// Resolve picks the range described by the query parameters: an explicit
// startDate/endDate pair wins over a preset; with neither, the current month is used.
func Resolve(preset, startDate, endDate string, now time.Time) (domain.DateRange, error) {
	if startDate != "" || endDate != "" {
		if startDate == "" || endDate == "" {
			return domain.DateRange{}, fmt.Errorf("%w: startDate and endDate must be provided together", apperrors.ErrValidation)
		}
		start, err := ParseDate(startDate)
		if err != nil {
			return domain.DateRange{}, err
		}
		end, err := ParseDate(endDate)
		if err != nil {
			return domain.DateRange{}, err
		}
		if end.Before(start) {
			return domain.DateRange{}, fmt.Errorf("%w: endDate is before startDate", apperrors.ErrValidation)
		}
		return domain.DateRange{Start: start, End: EndOfDay(end)}, nil
	}
	if preset == "" {
		preset = ThisMonth
	}
	return FromPreset(preset, now)
}

// weekdayOffset counts days since Monday.
func weekdayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
