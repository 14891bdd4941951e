// Package flow implements the guided booking state machine: a three-step
// date → time → contact progression with an orthogonal submission status.
// One Session owns one user's selections for the lifetime of their visit.
package flow

import (
	"context"
	"time"

	"github.com/vitrine-sites/booking-api/internal/availability"
	"github.com/vitrine-sites/booking-api/internal/calendar"
	"github.com/vitrine-sites/booking-api/internal/models"
	appErrors "github.com/vitrine-sites/booking-api/pkg/errors"
)

// Step identifies the active step of the booking flow.
type Step int

const (
	StepDate Step = iota + 1
	StepTime
	StepContact
)

// String returns the wire name of the step.
func (s Step) String() string {
	switch s {
	case StepDate:
		return "date"
	case StepTime:
		return "time"
	case StepContact:
		return "contact"
	default:
		return "unknown"
	}
}

// Status tracks the submission lifecycle. It only matters while the flow sits
// in the contact step, plus the terminal success snapshot after a reset.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Submitter is the external booking-submission collaborator. It either
// succeeds with a confirmation receipt or fails with a displayable message;
// timeouts and transport faults are its responsibility.
type Submitter interface {
	Submit(ctx context.Context, req models.BookingRequest) (models.BookingReceipt, error)
}

// Session is one booking flow in progress. It is not safe for concurrent use;
// the session store serialises access.
type Session struct {
	id        string
	site      string
	cfg       models.BookingConfig
	now       func() time.Time
	createdAt time.Time
	touchedAt time.Time

	step         Step
	selectedDate *time.Time
	selectedTime string
	status       Status
	message      string
}

// NewSession starts a flow at the date step with nothing selected.
func NewSession(id, site string, cfg models.BookingConfig, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Session{
		id:        id,
		site:      site,
		cfg:       cfg,
		now:       now,
		createdAt: t,
		touchedAt: t,
		step:      StepDate,
		status:    StatusIdle,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Site returns the site key the session belongs to.
func (s *Session) Site() string { return s.site }

// TouchedAt returns the time of the last successful operation, for expiry.
func (s *Session) TouchedAt() time.Time { return s.touchedAt }

// SetConfig swaps the booking configuration the session validates against.
// Configurations can change mid-flow (a slot gets blocked, a reload lands),
// and slot re-validation must see the current state, not the one captured
// when the session was created.
func (s *Session) SetConfig(cfg models.BookingConfig) { s.cfg = cfg }

// SelectDate records the appointment date. Only selectable days are accepted:
// the day must not be past, not closed, and must have at least one available
// slot. Picking a date clears any previously selected time and any stale
// success or error notice.
func (s *Session) SelectDate(date time.Time) error {
	if s.step != StepDate {
		return appErrors.Clone(appErrors.ErrConflict, "date can only be picked in the date step")
	}
	day := calendar.ClassifyDay(date, s.now(), s.cfg)
	if !calendar.IsDaySelectable(day) {
		return appErrors.Clone(appErrors.ErrSlotUnavailable, "date is not open for booking")
	}
	s.selectedDate = &date
	s.selectedTime = ""
	s.status = StatusIdle
	s.message = ""
	s.touch()
	return nil
}

// SelectTime records the slot start time. The slot must be currently
// available for the selected date.
func (s *Session) SelectTime(slot string) error {
	if s.step != StepTime {
		return appErrors.Clone(appErrors.ErrConflict, "time can only be picked in the time step")
	}
	if s.selectedDate == nil {
		return appErrors.Clone(appErrors.ErrValidation, "no date selected")
	}
	if !slotAvailable(*s.selectedDate, slot, s.cfg) {
		return appErrors.ErrSlotUnavailable
	}
	s.selectedTime = slot
	s.touch()
	return nil
}

// Confirm advances the flow one step. Advancing past the date step requires a
// selected date; advancing past the time step requires a selected time that is
// re-validated against the configuration, in case availability changed while
// the user navigated.
func (s *Session) Confirm() error {
	switch s.step {
	case StepDate:
		if s.selectedDate == nil {
			return appErrors.Clone(appErrors.ErrValidation, "select a date first")
		}
		s.step = StepTime
	case StepTime:
		if s.selectedTime == "" {
			return appErrors.Clone(appErrors.ErrValidation, "select a time first")
		}
		if !slotAvailable(*s.selectedDate, s.selectedTime, s.cfg) {
			s.selectedTime = ""
			return appErrors.ErrSlotUnavailable
		}
		s.step = StepContact
	default:
		return appErrors.Clone(appErrors.ErrConflict, "nothing to confirm in the contact step")
	}
	s.touch()
	return nil
}

// Back moves the flow one step backwards. Leaving the time step clears the
// selected time; leaving the contact step keeps both date and time.
func (s *Session) Back() error {
	switch s.step {
	case StepTime:
		s.step = StepDate
		s.selectedTime = ""
	case StepContact:
		s.step = StepTime
	default:
		return appErrors.Clone(appErrors.ErrConflict, "already at the first step")
	}
	s.touch()
	return nil
}

// Submit runs the submission collaborator for the completed selection.
// A submit while one is already pending is a no-op. Success resets the flow to
// the date step with all selections cleared and surfaces the confirmation
// message; failure keeps every selection so the user can retry.
//
// The slot is re-checked immediately before submission so a slot taken during
// the contact step surfaces as SLOT_UNAVAILABLE rather than a generic
// submission failure.
func (s *Session) Submit(ctx context.Context, name, email string, submitter Submitter) error {
	if s.step != StepContact {
		return appErrors.Clone(appErrors.ErrConflict, "submission requires the contact step")
	}
	if s.status == StatusPending {
		return nil
	}
	if name == "" || email == "" {
		return appErrors.Clone(appErrors.ErrValidation, "name and email are required")
	}
	if s.selectedDate == nil || s.selectedTime == "" {
		return appErrors.Clone(appErrors.ErrValidation, "incomplete selection")
	}
	if !slotAvailable(*s.selectedDate, s.selectedTime, s.cfg) {
		s.status = StatusError
		s.message = appErrors.ErrSlotUnavailable.Message
		return appErrors.ErrSlotUnavailable
	}

	s.status = StatusPending
	s.message = ""
	receipt, err := submitter.Submit(ctx, models.BookingRequest{
		Name:  name,
		Email: email,
		Date:  availability.DateKey(*s.selectedDate),
		Time:  s.selectedTime,
	})
	if err != nil {
		s.status = StatusError
		s.message = appErrors.FromError(err).Message
		s.touch()
		return appErrors.Wrap(err, appErrors.ErrSubmissionFailed.Code, appErrors.ErrSubmissionFailed.Status, s.message)
	}

	s.status = StatusSuccess
	s.message = receipt.Message
	if s.message == "" {
		s.message = s.cfg.SuccessMessage
	}
	s.step = StepDate
	s.selectedDate = nil
	s.selectedTime = ""
	s.touch()
	return nil
}

// Snapshot is the externally visible state of a session.
type Snapshot struct {
	ID           string
	Site         string
	Step         Step
	SelectedDate string
	SelectedTime string
	Status       Status
	Message      string
}

// State returns a copy of the current session state.
func (s *Session) State() Snapshot {
	snap := Snapshot{
		ID:           s.id,
		Site:         s.site,
		Step:         s.step,
		SelectedTime: s.selectedTime,
		Status:       s.status,
		Message:      s.message,
	}
	if s.selectedDate != nil {
		snap.SelectedDate = availability.DateKey(*s.selectedDate)
	}
	return snap
}

func (s *Session) touch() {
	s.touchedAt = s.now()
}

func slotAvailable(date time.Time, slot string, cfg models.BookingConfig) bool {
	for _, available := range availability.Slots(date, cfg) {
		if available == slot {
			return true
		}
	}
	return false
}
