package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vitrine-sites/booking-api/internal/availability"
	"github.com/vitrine-sites/booking-api/internal/dto"
	"github.com/vitrine-sites/booking-api/internal/flow"
	appErrors "github.com/vitrine-sites/booking-api/pkg/errors"
)

// BookingService owns the live booking-flow sessions and runs their
// transitions. Each session belongs to one visitor; sessions expire after a
// period of inactivity.
type BookingService struct {
	sites     siteConfigProvider
	submitter flow.Submitter
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
	ttl       time.Duration

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// sessionEntry serialises access to one flow session. Submission holds the
// entry lock for the duration of the collaborator call, which is what makes a
// concurrent submit wait instead of doubling the booking.
type sessionEntry struct {
	mu      sync.Mutex
	session *flow.Session
}

// NewBookingService constructs the service.
func NewBookingService(sites siteConfigProvider, submitter flow.Submitter, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, now func() time.Time, ttl time.Duration) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &BookingService{
		sites:     sites,
		submitter: submitter,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		now:       now,
		ttl:       ttl,
		sessions:  map[string]*sessionEntry{},
	}
}

// CreateSession starts a fresh flow for the site.
func (s *BookingService) CreateSession(site string) (dto.SessionResponse, error) {
	cfg, err := s.sites.Get(site)
	if err != nil {
		return dto.SessionResponse{}, err
	}

	session := flow.NewSession(uuid.NewString(), site, cfg.Booking, s.now)
	s.mu.Lock()
	s.sessions[session.ID()] = &sessionEntry{session: session}
	s.mu.Unlock()

	s.logger.Info("booking session created", zap.String("session_id", session.ID()), zap.String("site", site))
	return s.respond(session), nil
}

// Session returns the current state of the flow.
func (s *BookingService) Session(id string) (dto.SessionResponse, error) {
	entry, err := s.entry(id)
	if err != nil {
		return dto.SessionResponse{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return s.respond(entry.session), nil
}

// SelectDate records the appointment date.
func (s *BookingService) SelectDate(id string, req dto.SelectDateRequest) (dto.SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SessionResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date payload")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return dto.SessionResponse{}, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD")
	}

	return s.transition(id, func(session *flow.Session) error {
		return session.SelectDate(date)
	})
}

// SelectTime records the slot start time.
func (s *BookingService) SelectTime(id string, req dto.SelectTimeRequest) (dto.SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SessionResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time payload")
	}
	return s.transition(id, func(session *flow.Session) error {
		return session.SelectTime(req.Time)
	})
}

// Confirm advances the flow one step.
func (s *BookingService) Confirm(id string) (dto.SessionResponse, error) {
	return s.transition(id, func(session *flow.Session) error {
		return session.Confirm()
	})
}

// Back moves the flow one step backwards.
func (s *BookingService) Back(id string) (dto.SessionResponse, error) {
	return s.transition(id, func(session *flow.Session) error {
		return session.Back()
	})
}

// Submit validates the contact details and runs the submission collaborator.
func (s *BookingService) Submit(ctx context.Context, id string, req dto.SubmitRequest) (dto.SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SessionResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name and a valid email are required")
	}

	entry, err := s.entry(id)
	if err != nil {
		return dto.SessionResponse{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	s.refreshConfig(entry.session)

	submitErr := entry.session.Submit(ctx, req.Name, req.Email, s.submitter)
	switch {
	case submitErr == nil:
		s.metrics.RecordSubmission("success")
	case appErrors.FromError(submitErr).Code == appErrors.ErrSlotUnavailable.Code:
		s.metrics.RecordSubmission("slot_unavailable")
	default:
		s.metrics.RecordSubmission("error")
	}
	if submitErr != nil {
		s.logger.Warn("booking submission failed",
			zap.String("session_id", id),
			zap.String("site", entry.session.Site()),
			zap.Error(submitErr),
		)
		return s.respond(entry.session), submitErr
	}

	s.logger.Info("booking submitted", zap.String("session_id", id), zap.String("site", entry.session.Site()))
	return s.respond(entry.session), nil
}

// StartSweeper expires idle sessions until ctx is done.
func (s *BookingService) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *BookingService) sweep() {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.sessions {
		if entry.session.TouchedAt().Before(cutoff) {
			delete(s.sessions, id)
			s.logger.Debug("booking session expired", zap.String("session_id", id))
		}
	}
}

func (s *BookingService) transition(id string, op func(*flow.Session) error) (dto.SessionResponse, error) {
	entry, err := s.entry(id)
	if err != nil {
		return dto.SessionResponse{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	s.refreshConfig(entry.session)

	if err := op(entry.session); err != nil {
		return s.respond(entry.session), err
	}
	return s.respond(entry.session), nil
}

// refreshConfig hands the session the current site configuration so date and
// slot validation run against live data, not the snapshot taken at creation.
func (s *BookingService) refreshConfig(session *flow.Session) {
	if cfg, err := s.sites.Get(session.Site()); err == nil {
		session.SetConfig(cfg.Booking)
	}
}

func (s *BookingService) entry(id string) (*sessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown booking session")
	}
	if entry.session.TouchedAt().Before(s.now().Add(-s.ttl)) {
		delete(s.sessions, id)
		return nil, appErrors.ErrSessionExpired
	}
	return entry, nil
}

// respond builds the wire view of a session. In the time step it embeds the
// currently available slots for the selected date so the client can render
// the picker without a second round trip.
func (s *BookingService) respond(session *flow.Session) dto.SessionResponse {
	snap := session.State()
	resp := dto.SessionResponse{
		ID:           snap.ID,
		Site:         snap.Site,
		Step:         snap.Step.String(),
		SelectedDate: snap.SelectedDate,
		SelectedTime: snap.SelectedTime,
		Status:       string(snap.Status),
		Message:      snap.Message,
	}
	if snap.Step == flow.StepTime && snap.SelectedDate != "" {
		if date, err := time.Parse("2006-01-02", snap.SelectedDate); err == nil {
			if cfg, err := s.sites.Get(snap.Site); err == nil {
				resp.Slots = availability.Slots(date, cfg.Booking)
			}
		}
	}
	return resp
}
