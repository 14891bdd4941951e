package submit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vitrine-sites/booking-api/internal/models"
)

// MockSubmitter simulates the remote endpoint for development: it logs the
// booking, sleeps for a configurable delay, and always succeeds.
type MockSubmitter struct {
	delay  time.Duration
	logger *zap.Logger
}

// NewMockSubmitter constructs a mock collaborator.
func NewMockSubmitter(delay time.Duration, logger *zap.Logger) *MockSubmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockSubmitter{delay: delay, logger: logger}
}

// Submit records the booking and returns a confirmation after the configured
// delay, honoring context cancellation.
func (m *MockSubmitter) Submit(ctx context.Context, booking models.BookingRequest) (models.BookingReceipt, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return models.BookingReceipt{}, ctx.Err()
		}
	}

	reference := uuid.NewString()
	m.logger.Info("mock booking received",
		zap.String("reference", reference),
		zap.String("name", booking.Name),
		zap.String("email", booking.Email),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
	)

	return models.BookingReceipt{
		Reference: reference,
		Message:   "Réservation enregistrée.",
	}, nil
}
