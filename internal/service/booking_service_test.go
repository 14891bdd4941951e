package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vitrine-sites/booking-api/internal/dto"
	"github.com/vitrine-sites/booking-api/internal/models"
	appErrors "github.com/vitrine-sites/booking-api/pkg/errors"
)

type stubSubmitter struct {
	calls   int
	lastReq models.BookingRequest
	err     error
	receipt models.BookingReceipt
}

func (s *stubSubmitter) Submit(_ context.Context, req models.BookingRequest) (models.BookingReceipt, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return models.BookingReceipt{}, s.err
	}
	return s.receipt, nil
}

type bookingFixture struct {
	svc       *BookingService
	sites     *fakeSites
	submitter *stubSubmitter
	now       time.Time
}

func newBookingFixture(t *testing.T, ttl time.Duration) *bookingFixture {
	t.Helper()
	f := &bookingFixture{
		sites:     restaurantSites(),
		submitter: &stubSubmitter{receipt: models.BookingReceipt{Reference: "BK-1", Message: "ok"}},
		now:       frozenNow(),
	}
	f.svc = NewBookingService(f.sites, f.submitter, validator.New(), nil, zap.NewNop(), func() time.Time { return f.now }, ttl)
	return f
}

func (f *bookingFixture) reachContactStep(t *testing.T, id string) {
	t.Helper()
	_, err := f.svc.SelectDate(id, dto.SelectDateRequest{Date: "2026-09-10"})
	require.NoError(t, err)
	_, err = f.svc.Confirm(id)
	require.NoError(t, err)
	_, err = f.svc.SelectTime(id, dto.SelectTimeRequest{Time: "10:00"})
	require.NoError(t, err)
	_, err = f.svc.Confirm(id)
	require.NoError(t, err)
}

func TestCreateSessionStartsAtDateStep(t *testing.T) {
	f := newBookingFixture(t, time.Hour)

	resp, err := f.svc.CreateSession("restaurant")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "restaurant", resp.Site)
	assert.Equal(t, "date", resp.Step)
	assert.Equal(t, "idle", resp.Status)
}

func TestCreateSessionUnknownSite(t *testing.T) {
	f := newBookingFixture(t, time.Hour)

	_, err := f.svc.CreateSession("bakery")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSiteNotConfigured.Code, appErrors.FromError(err).Code)
}

func TestSelectDateStaysInDateStepUntilConfirm(t *testing.T) {
	f := newBookingFixture(t, time.Hour)
	created, err := f.svc.CreateSession("restaurant")
	require.NoError(t, err)

	resp, err := f.svc.SelectDate(created.ID, dto.SelectDateRequest{Date: "2026-09-10"})
	require.NoError(t, err)

	assert.Equal(t, "date", resp.Step)
	assert.Equal(t, "2026-09-10", resp.SelectedDate)
	assert.Empty(t, resp.Slots)

	resp, err = f.svc.Confirm(created.ID)
	require.NoError(t, err)

	assert.Equal(t, "time", resp.Step)
	assert.NotEmpty(t, resp.Slots)
	assert.NotContains(t, resp.Slots, "12:00")
}

func TestSelectDateRejectsMalformedDate(t *testing.T) {
	f := newBookingFixture(t, time.Hour)
	created, err := f.svc.CreateSession("restaurant")
	require.NoError(t, err)

	_, err = f.svc.SelectDate(created.ID, dto.SelectDateRequest{Date: "10/09/2026"})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSelectDateRejectsPastDate(t *testing.T) {
	f := newBookingFixture(t, time.Hour)
	created, err := f.svc.CreateSession("restaurant")
	require.NoError(t, err)

	_, err = f.svc.SelectDate(created.ID, dto.SelectDateRequest{Date: "2026-09-07"})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSlotUnavailable.Code, appErrors.FromError(err).Code)
}

func TestSubmitHappyPath(t *testing.T) {
	f := newBookingFixture(t, time.Hour)
	created, err := f.svc.CreateSession("restaurant")
	require.NoError(t, err)
	f.reachContactStep(t, created.ID)

	resp, err := f.svc.Submit(context.Background(), created.ID, dto.SubmitRequest{Name: "Margaux", Email: "m@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "date", resp.Step)
	assert.Empty(t, resp.SelectedDate)
	assert.Equal(t, 1, f.submitter.calls)
	assert.Equal(t, "2026-09-10", f.submitter.lastReq.Date)
	assert.Equal(t, "10:00", f.submitter.lastReq.Time)
}

func TestSubmitValidationFailsBeforeCollaborator(t *testing.T) {
	f := newBookingFixture(t, time.Hour)
	created, err := f.svc.CreateSession("restaurant")
	require.NoError(t, err)
	f.reachContactStep(t, created.ID)

	_, err = f.svc.Submit(context.Background(), created.ID, dto.SubmitRequest{Name: "Margaux", Email: "not-an-email"})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, f.submitter.calls)
}

func TestSubmitFailureKeepsContactStep(t *testing.T) {
	f := newBookingFixture(t, time.Hour)
	f.submitter.err = errors.New("boom")
	created, err := f.svc.CreateSession("restaurant")
	require.NoError(t, err)
	f.reachContactStep(t, created.ID)

	resp, err := f.svc.Submit(context.Background(), created.ID, dto.SubmitRequest{Name: "Margaux", Email: "m@example.com"})
	require.Error(t, err)

	assert.Equal(t, appErrors.ErrSubmissionFailed.Code, appErrors.FromError(err).Code)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "contact", resp.Step)
	assert.Equal(t, "2026-09-10", resp.SelectedDate)
	assert.Equal(t, "10:00", resp.SelectedTime)
}

func TestSubmitRechecksSlotAvailability(t *testing.T) {
	f := newBookingFixture(t, time.Hour)
	created, err := f.svc.CreateSession("restaurant")
	require.NoError(t, err)
	f.reachContactStep(t, created.ID)

	cfg := f.sites.cfgs["restaurant"]
	cfg.Booking.BlockedSlots = append(cfg.Booking.BlockedSlots, models.BlockedSlot{Date: "2026-09-10", Start: "10:00", End: "10:30"})

	resp, err := f.svc.Submit(context.Background(), created.ID, dto.SubmitRequest{Name: "Margaux", Email: "m@example.com"})
	require.Error(t, err)

	assert.Equal(t, appErrors.ErrSlotUnavailable.Code, appErrors.FromError(err).Code)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, appErrors.ErrSlotUnavailable.Message, resp.Message)
	assert.Zero(t, f.submitter.calls)
}

func TestBackFromTimeStepClearsSelectedTime(t *testing.T) {
	f := newBookingFixture(t, time.Hour)
	created, err := f.svc.CreateSession("restaurant")
	require.NoError(t, err)
	_, err = f.svc.SelectDate(created.ID, dto.SelectDateRequest{Date: "2026-09-10"})
	require.NoError(t, err)
	_, err = f.svc.Confirm(created.ID)
	require.NoError(t, err)
	_, err = f.svc.SelectTime(created.ID, dto.SelectTimeRequest{Time: "10:00"})
	require.NoError(t, err)

	resp, err := f.svc.Back(created.ID)
	require.NoError(t, err)

	assert.Equal(t, "date", resp.Step)
	assert.Empty(t, resp.SelectedTime)
	assert.Equal(t, "2026-09-10", resp.SelectedDate)
}

func TestSessionExpiresAfterTTL(t *testing.T) {
	f := newBookingFixture(t, 10*time.Minute)
	created, err := f.svc.CreateSession("restaurant")
	require.NoError(t, err)

	f.now = f.now.Add(11 * time.Minute)

	_, err = f.svc.Session(created.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSessionExpired.Code, appErrors.FromError(err).Code)

	// expired sessions are evicted, a second read reports not found
	_, err = f.svc.Session(created.ID)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSweepEvictsExpiredSessions(t *testing.T) {
	f := newBookingFixture(t, 10*time.Minute)
	created, err := f.svc.CreateSession("restaurant")
	require.NoError(t, err)

	f.now = f.now.Add(11 * time.Minute)
	f.svc.sweep()

	_, err = f.svc.Session(created.ID)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUnknownSessionID(t *testing.T) {
	f := newBookingFixture(t, time.Hour)

	_, err := f.svc.Session("does-not-exist")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
