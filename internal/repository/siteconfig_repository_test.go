package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vitrine-sites/booking-api/internal/models"
	appErrors "github.com/vitrine-sites/booking-api/pkg/errors"
)

const restaurantJSON = `{
  "name": "Chez Margaux",
  "sector": "restaurant",
  "variant": "luxe",
  "booking": {
    "title": "Réserver une table",
    "successMessage": "Réservation confirmée",
    "slotDurationMinutes": 30,
    "closedDays": [0],
    "openingHours": [
      {"dayOfWeek": 2, "open": "12:00", "close": "14:30"},
      {"dayOfWeek": 3, "open": "12:00", "close": "14:30"}
    ],
    "blockedSlots": [
      {"date": "2026-09-15", "start": "12:00", "end": "13:00"}
    ],
    "fullDays": ["2026-09-22"]
  }
}`

func writeSite(t *testing.T, dir, site, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, site+".json"), []byte(content), 0o644))
}

func TestRepositoryLoadsSites(t *testing.T) {
	dir := t.TempDir()
	writeSite(t, dir, "restaurant", restaurantJSON)

	repo, err := NewSiteConfigRepository(dir, zap.NewNop())
	require.NoError(t, err)

	cfg, err := repo.Get("restaurant")
	require.NoError(t, err)
	assert.Equal(t, models.SectorRestaurant, cfg.Sector)
	assert.Equal(t, models.VariantLuxe, cfg.Variant)
	assert.Len(t, cfg.Booking.OpeningHours, 2)
	assert.Equal(t, []string{"2026-09-22"}, cfg.Booking.FullDays)
	assert.Equal(t, []string{"restaurant"}, repo.Sites())
}

func TestRepositoryUnknownSite(t *testing.T) {
	dir := t.TempDir()
	writeSite(t, dir, "restaurant", restaurantJSON)

	repo, err := NewSiteConfigRepository(dir, zap.NewNop())
	require.NoError(t, err)

	_, err = repo.Get("bakery")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSiteNotConfigured.Code, appErrors.FromError(err).Code)
}

func TestRepositoryEmptyDirFails(t *testing.T) {
	_, err := NewSiteConfigRepository(t.TempDir(), zap.NewNop())
	require.Error(t, err)
}

func TestRepositorySkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	writeSite(t, dir, "restaurant", restaurantJSON)
	writeSite(t, dir, "broken", "{not json")

	repo, err := NewSiteConfigRepository(dir, zap.NewNop())
	require.NoError(t, err)

	_, err = repo.Get("broken")
	require.Error(t, err)
	_, err = repo.Get("restaurant")
	require.NoError(t, err)
}

func TestRepositoryReloadBumpsRevision(t *testing.T) {
	dir := t.TempDir()
	writeSite(t, dir, "restaurant", restaurantJSON)

	repo, err := NewSiteConfigRepository(dir, zap.NewNop())
	require.NoError(t, err)
	require.EqualValues(t, 1, repo.Revision())

	writeSite(t, dir, "pizzeria", restaurantJSON)
	require.NoError(t, repo.Reload())

	assert.EqualValues(t, 2, repo.Revision())
	assert.Len(t, repo.Sites(), 2)
}

func TestRepositoryLintsSuspectConfig(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	dir := t.TempDir()
	writeSite(t, dir, "hairdresser", `{
	  "name": "Salon",
	  "sector": "hairdresser",
	  "booking": {
	    "openingHours": [
	      {"dayOfWeek": 2, "open": "09:00", "close": "18:00"},
	      {"dayOfWeek": 2, "open": "10:00", "close": "12:00"},
	      {"dayOfWeek": 9, "open": "18:00", "close": "09:00"},
	      {"dayOfWeek": 3, "open": "abc", "close": "def"}
	    ],
	    "closedDays": [7],
	    "fullDays": ["pas-une-date"],
	    "blockedSlots": [{"date": "2026-13-45", "start": "zz:zz"}]
	  }
	}`)

	_, err := NewSiteConfigRepository(dir, logger)
	require.NoError(t, err)

	messages := make([]string, 0)
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	joined := ""
	for _, m := range messages {
		joined += m + "\n"
	}
	assert.Contains(t, joined, "duplicate opening-hours entry")
	assert.Contains(t, joined, "weekday outside 0..6")
	assert.Contains(t, joined, "opens at or after it closes")
	assert.Contains(t, joined, "malformed HH:mm time")
	assert.Contains(t, joined, "closed day outside 0..6")
	assert.Contains(t, joined, "not a YYYY-MM-DD date")
}
