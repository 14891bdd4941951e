package dto

// SlotStatusItem is one slot of a day with its availability flag.
type SlotStatusItem struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// DaySlotsResponse lists availability for one date.
type DaySlotsResponse struct {
	Site  string           `json:"site"`
	Date  string           `json:"date"`
	Slots []string         `json:"slots"`
	All   []SlotStatusItem `json:"allSlots"`
}

// CalendarDayItem is one rendered cell of the month grid.
type CalendarDayItem struct {
	DateKey         string `json:"dateKey"`
	IsCurrentMonth  bool   `json:"isCurrentMonth"`
	IsToday         bool   `json:"isToday"`
	IsPast          bool   `json:"isPast"`
	IsClosed        bool   `json:"isClosed"`
	IsFullDay       bool   `json:"isFullDay"`
	HasAvailability bool   `json:"hasAvailability"`
	Disabled        bool   `json:"disabled"`
	Selectable      bool   `json:"selectable"`
}

// CalendarResponse is the 42-cell month view.
type CalendarResponse struct {
	Site  string            `json:"site"`
	Month string            `json:"month"`
	Label string            `json:"label"`
	Days  []CalendarDayItem `json:"days"`
}

// SessionResponse mirrors the booking flow state for the client.
type SessionResponse struct {
	ID           string   `json:"id"`
	Site         string   `json:"site"`
	Step         string   `json:"step"`
	SelectedDate string   `json:"selectedDate,omitempty"`
	SelectedTime string   `json:"selectedTime,omitempty"`
	Status       string   `json:"status"`
	Message      string   `json:"message,omitempty"`
	Slots        []string `json:"slots,omitempty"`
}

// SelectDateRequest picks the appointment date in the date step.
type SelectDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

// SelectTimeRequest picks the slot start time in the time step.
type SelectTimeRequest struct {
	Time string `json:"time" validate:"required,datetime=15:04"`
}

// SubmitRequest carries the contact details for the final step.
type SubmitRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}
