package models

import "time"

// OpeningHoursEntry defines the business hours for one weekday.
// DayOfWeek uses 0 = Sunday .. 6 = Saturday; configuration data depends on
// this numbering, so it is never remapped.
type OpeningHoursEntry struct {
	DayOfWeek int    `json:"dayOfWeek"`
	Open      string `json:"open"`
	Close     string `json:"close"`
}

// BlockedSlot marks a time range on a specific date during which no slot may
// be offered. An empty End means the block extends to the end of the day.
type BlockedSlot struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// BookingConfig drives slot generation and calendar classification for one
// site. It is read-only input: the availability and calendar code never
// mutates it.
type BookingConfig struct {
	Title               string              `json:"title"`
	Subtitle            string              `json:"subtitle,omitempty"`
	SuccessMessage      string              `json:"successMessage"`
	SlotDurationMinutes int                 `json:"slotDurationMinutes,omitempty"`
	ClosedDays          []int               `json:"closedDays,omitempty"`
	OpeningHours        []OpeningHoursEntry `json:"openingHours,omitempty"`
	BlockedSlots        []BlockedSlot       `json:"blockedSlots,omitempty"`
	FullDays            []string            `json:"fullDays,omitempty"`
}

// SlotStatus pairs a slot start time with its availability so the UI can
// render reserved slots visibly instead of hiding them.
type SlotStatus struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// CalendarDay is one cell of the 42-cell month grid. Cells are derived values:
// the grid is rebuilt in full on month navigation or configuration change,
// never mutated in place.
type CalendarDay struct {
	Date            time.Time `json:"date"`
	DateKey         string    `json:"date_key"`
	IsCurrentMonth  bool      `json:"is_current_month"`
	IsToday         bool      `json:"is_today"`
	IsPast          bool      `json:"is_past"`
	IsClosed        bool      `json:"is_closed"`
	IsFullDay       bool      `json:"is_full_day"`
	HasAvailability bool      `json:"has_availability"`
}

// BookingRequest is the payload handed to the submission collaborator.
type BookingRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// BookingReceipt is what the collaborator returns on success.
type BookingReceipt struct {
	Reference string `json:"reference,omitempty"`
	Message   string `json:"message"`
}
