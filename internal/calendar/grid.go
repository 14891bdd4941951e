// Package calendar derives the month grid shown by the booking date picker
// and tracks the view state (displayed month, selected date) on top of the
// availability computation.
package calendar

import (
	"time"

	"github.com/vitrine-sites/booking-api/internal/availability"
	"github.com/vitrine-sites/booking-api/internal/models"
)

// GridSize is the fixed number of cells in a month view: six full weeks.
const GridSize = 42

// MonthLabels holds the French month names used by the grid header,
// indexed by time.Month - 1.
var MonthLabels = [12]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// BuildGrid classifies the 42 days of the month view containing view.
// The grid starts on the Monday on or before the 1st of the month; leading
// and trailing cells belong to adjacent months but are classified identically
// to in-month days, so cross-month-boundary days stay selectable without
// navigating.
//
// Classification precedence per day: past (strictly before today, start of
// day), closed weekday, explicit full day, else computed availability.
func BuildGrid(view time.Time, today time.Time, cfg models.BookingConfig) []models.CalendarDay {
	loc := view.Location()
	today = startOfDay(today)
	first := time.Date(view.Year(), view.Month(), 1, 0, 0, 0, 0, loc)

	// Monday-first layout: weekday 0 (Sunday) needs 6 leading cells.
	lead := (int(first.Weekday()) - 1 + 7) % 7
	start := first.AddDate(0, 0, -lead)

	days := make([]models.CalendarDay, 0, GridSize)
	for i := 0; i < GridSize; i++ {
		date := start.AddDate(0, 0, i)
		day := ClassifyDay(date, today, cfg)
		day.IsCurrentMonth = date.Month() == view.Month()
		days = append(days, day)
	}
	return days
}

// ClassifyDay derives the metadata for a single day. IsCurrentMonth is left
// false; only BuildGrid knows the displayed month.
func ClassifyDay(date, today time.Time, cfg models.BookingConfig) models.CalendarDay {
	today = startOfDay(today)
	key := availability.DateKey(date)

	day := models.CalendarDay{
		Date:    date,
		DateKey: key,
		IsToday: key == availability.DateKey(today),
		IsPast:  date.Before(today),
	}
	for _, closed := range cfg.ClosedDays {
		if closed == int(date.Weekday()) {
			day.IsClosed = true
			break
		}
	}
	for _, full := range cfg.FullDays {
		if full == key {
			day.IsFullDay = true
			break
		}
	}
	if !day.IsPast && !day.IsClosed && !day.IsFullDay {
		day.HasAvailability = availability.HasAvailability(date, cfg)
	}
	return day
}

// IsDayDisabled reports whether the day is rendered muted and not clickable.
func IsDayDisabled(day models.CalendarDay) bool {
	return day.IsPast || day.IsClosed || day.IsFullDay
}

// IsDaySelectable reports whether the user may pick the day as an appointment
// date. Selectability requires computed availability: a day whose slots are
// all individually blocked is not selectable even when its FullDay flag is
// absent, because the flag is an explicit override and the computation is the
// ground truth.
func IsDaySelectable(day models.CalendarDay) bool {
	return !day.IsPast && !day.IsClosed && day.HasAvailability
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
