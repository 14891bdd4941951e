// Package submit talks to the external booking-submission collaborator. The
// flow only ever learns success or a displayable failure message from it.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vitrine-sites/booking-api/internal/models"
	appErrors "github.com/vitrine-sites/booking-api/pkg/errors"
)

const defaultTimeout = 10 * time.Second

// HTTPClient posts bookings to a remote endpoint.
type HTTPClient struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewHTTPClient constructs a client for the given submission endpoint.
func NewHTTPClient(url string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type submitResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Reference string `json:"reference"`
}

// Submit posts the booking as JSON. Non-2xx responses carry a displayable
// message in the body; transport failures map to a generic connection error.
func (c *HTTPClient) Submit(ctx context.Context, booking models.BookingRequest) (models.BookingReceipt, error) {
	payload, err := json.Marshal(booking)
	if err != nil {
		return models.BookingReceipt{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode booking payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return models.BookingReceipt{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build submission request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("booking submission unreachable", zap.String("url", c.url), zap.Error(err))
		return models.BookingReceipt{}, appErrors.Wrap(err, appErrors.ErrSubmissionFailed.Code, appErrors.ErrSubmissionFailed.Status, "booking service unreachable")
	}
	defer resp.Body.Close()

	var body submitResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil && resp.StatusCode < http.StatusMultipleChoices {
		c.logger.Warn("booking submission returned malformed body", zap.Int("status", resp.StatusCode), zap.Error(decodeErr))
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		message := body.Message
		if message == "" {
			message = appErrors.ErrSubmissionFailed.Message
		}
		return models.BookingReceipt{}, appErrors.Clone(appErrors.ErrSubmissionFailed, message)
	}

	return models.BookingReceipt{Reference: body.Reference, Message: body.Message}, nil
}
