package calendar

import (
	"time"

	"github.com/vitrine-sites/booking-api/internal/models"
)

// Model is the stateful view-model behind the date picker: the displayed
// month and the selected date. All day metadata is derived through BuildGrid
// and recomputed in full on navigation.
type Model struct {
	cfg      models.BookingConfig
	now      func() time.Time
	view     time.Time
	selected *time.Time
}

// NewModel builds a model showing the month containing now().
func NewModel(cfg models.BookingConfig, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Model{
		cfg:  cfg,
		now:  now,
		view: time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()),
	}
}

// ViewMonth returns the first day of the displayed month.
func (m *Model) ViewMonth() time.Time {
	return m.view
}

// ViewLabel returns the display label for the month header, e.g. "Septembre".
func (m *Model) ViewLabel() string {
	return MonthLabels[int(m.view.Month())-1]
}

// ViewYear returns the displayed year.
func (m *Model) ViewYear() int {
	return m.view.Year()
}

// Days returns the freshly classified 42-cell grid for the displayed month.
func (m *Model) Days() []models.CalendarDay {
	return BuildGrid(m.view, m.now(), m.cfg)
}

// PrevMonth shifts the view one month back. Navigation is unbounded in both
// directions.
func (m *Model) PrevMonth() {
	m.view = m.view.AddDate(0, -1, 0)
}

// NextMonth shifts the view one month forward.
func (m *Model) NextMonth() {
	m.view = m.view.AddDate(0, 1, 0)
}

// SelectedDate returns the currently selected date, or nil.
func (m *Model) SelectedDate() *time.Time {
	return m.selected
}

// SetSelectedDate replaces the selection. It does not validate selectability;
// callers only invoke it for selectable days.
func (m *Model) SetSelectedDate(date *time.Time) {
	m.selected = date
}
