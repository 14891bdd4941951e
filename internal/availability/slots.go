// Package availability computes bookable time slots for a calendar date from
// a site's booking configuration. Everything here is a pure function of
// (date, config): no caching, no side effects, identical results for
// identical inputs.
package availability

import (
	"time"

	"github.com/vitrine-sites/booking-api/internal/models"
)

// DefaultSlotDurationMinutes applies when the configuration leaves the slot
// length unset.
const DefaultSlotDurationMinutes = 30

// defaultOpeningHours covers Monday through Friday 09:00-18:00 and applies
// when the configuration carries no opening hours at all.
var defaultOpeningHours = []models.OpeningHoursEntry{
	{DayOfWeek: 1, Open: "09:00", Close: "18:00"},
	{DayOfWeek: 2, Open: "09:00", Close: "18:00"},
	{DayOfWeek: 3, Open: "09:00", Close: "18:00"},
	{DayOfWeek: 4, Open: "09:00", Close: "18:00"},
	{DayOfWeek: 5, Open: "09:00", Close: "18:00"},
}

// Slots returns the available slot start times ("HH:mm", ascending) for date.
//
// A date listed in FullDays has zero availability regardless of opening hours.
// A weekday without an opening-hours entry is not a business day. Candidate
// slots step from open by the slot duration; a slot that would extend past
// closing time is never generated. Candidates overlapping a blocked range for
// the date are filtered out.
func Slots(date time.Time, cfg models.BookingConfig) []string {
	candidates := candidateSlots(date, cfg)
	if len(candidates) == 0 {
		return nil
	}

	blocked := blocksForDate(DateKey(date), cfg.BlockedSlots)
	if len(blocked) == 0 {
		return candidates
	}

	duration := slotDuration(cfg)
	available := make([]string, 0, len(candidates))
	for _, slot := range candidates {
		start := ParseClock(slot)
		if !overlapsAny(start, start+duration, blocked) {
			available = append(available, slot)
		}
	}
	return available
}

// SlotsWithAvailability returns every slot within opening hours for date, each
// flagged available iff it survives the block filter. A full day still yields
// an empty list. Used to render reserved slots visibly rather than hiding
// them.
func SlotsWithAvailability(date time.Time, cfg models.BookingConfig) []models.SlotStatus {
	candidates := candidateSlots(date, cfg)
	if len(candidates) == 0 {
		return nil
	}

	blocked := blocksForDate(DateKey(date), cfg.BlockedSlots)
	duration := slotDuration(cfg)
	statuses := make([]models.SlotStatus, 0, len(candidates))
	for _, slot := range candidates {
		start := ParseClock(slot)
		statuses = append(statuses, models.SlotStatus{
			Time:      slot,
			Available: !overlapsAny(start, start+duration, blocked),
		})
	}
	return statuses
}

// HasAvailability reports whether at least one slot survives for date.
func HasAvailability(date time.Time, cfg models.BookingConfig) bool {
	return len(Slots(date, cfg)) > 0
}

func candidateSlots(date time.Time, cfg models.BookingConfig) []string {
	key := DateKey(date)
	for _, full := range cfg.FullDays {
		if full == key {
			return nil
		}
	}

	schedule, ok := scheduleFor(int(date.Weekday()), cfg)
	if !ok {
		return nil
	}

	duration := slotDuration(cfg)
	open := ParseClock(schedule.Open)
	close := ParseClock(schedule.Close)

	var slots []string
	for t := open; t+duration <= close; t += duration {
		slots = append(slots, FormatClock(t))
	}
	return slots
}

// scheduleFor returns the first opening-hours entry for the weekday. Duplicate
// entries for the same weekday are tolerated: first match wins.
func scheduleFor(dayOfWeek int, cfg models.BookingConfig) (models.OpeningHoursEntry, bool) {
	hours := cfg.OpeningHours
	if len(hours) == 0 {
		hours = defaultOpeningHours
	}
	for _, entry := range hours {
		if entry.DayOfWeek == dayOfWeek {
			return entry, true
		}
	}
	return models.OpeningHoursEntry{}, false
}

func blocksForDate(dateKey string, blocks []models.BlockedSlot) []models.BlockedSlot {
	var matched []models.BlockedSlot
	for _, b := range blocks {
		if b.Date == dateKey {
			matched = append(matched, b)
		}
	}
	return matched
}

func overlapsAny(start, end int, blocks []models.BlockedSlot) bool {
	for _, b := range blocks {
		blockStart := ParseClock(b.Start)
		blockEnd := endOfDayMinutes
		if b.End != "" {
			blockEnd = ParseClock(b.End)
		}
		// Half-open intervals: [start,end) overlaps [blockStart,blockEnd)
		// iff start < blockEnd && blockStart < end.
		if start < blockEnd && blockStart < end {
			return true
		}
	}
	return false
}

func slotDuration(cfg models.BookingConfig) int {
	if cfg.SlotDurationMinutes > 0 {
		return cfg.SlotDurationMinutes
	}
	return DefaultSlotDurationMinutes
}
