package submit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-sites/booking-api/internal/models"
	appErrors "github.com/vitrine-sites/booking-api/pkg/errors"
)

func booking() models.BookingRequest {
	return models.BookingRequest{
		Name:  "Marie Dupont",
		Email: "marie@example.fr",
		Date:  "2026-09-10",
		Time:  "10:00",
	}
}

func TestHTTPClientSubmitSuccess(t *testing.T) {
	var received models.BookingRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":   true,
			"message":   "Réservation enregistrée.",
			"reference": "ref-123",
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second, nil)
	receipt, err := client.Submit(context.Background(), booking())

	require.NoError(t, err)
	assert.Equal(t, booking(), received)
	assert.Equal(t, "ref-123", receipt.Reference)
	assert.Equal(t, "Réservation enregistrée.", receipt.Message)
}

func TestHTTPClientSubmitFailureCarriesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Tous les champs sont requis."})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second, nil)
	_, err := client.Submit(context.Background(), booking())

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrSubmissionFailed.Code, appErr.Code)
	assert.Equal(t, "Tous les champs sont requis.", appErr.Message)
}

func TestHTTPClientSubmitFailureWithoutBodyUsesGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second, nil)
	_, err := client.Submit(context.Background(), booking())

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSubmissionFailed.Message, appErrors.FromError(err).Message)
}

func TestHTTPClientSubmitUnreachable(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1/book", 200*time.Millisecond, nil)

	_, err := client.Submit(context.Background(), booking())

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrSubmissionFailed.Code, appErr.Code)
	assert.Equal(t, "booking service unreachable", appErr.Message)
}

func TestMockSubmitterSucceeds(t *testing.T) {
	mock := NewMockSubmitter(0, nil)

	receipt, err := mock.Submit(context.Background(), booking())

	require.NoError(t, err)
	assert.NotEmpty(t, receipt.Reference)
	assert.NotEmpty(t, receipt.Message)
}

func TestMockSubmitterHonorsContext(t *testing.T) {
	mock := NewMockSubmitter(time.Minute, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.Submit(ctx, booking())

	require.Error(t, err)
}
