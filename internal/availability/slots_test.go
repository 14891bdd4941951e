package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-sites/booking-api/internal/models"
)

// 2026-09-02 is a Wednesday.
var wednesday = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

func weekdayConfig() models.BookingConfig {
	return models.BookingConfig{
		SlotDurationMinutes: 30,
		OpeningHours: []models.OpeningHoursEntry{
			{DayOfWeek: 3, Open: "09:00", Close: "18:00"},
		},
	}
}

func TestSlotsFullOpenDay(t *testing.T) {
	slots := Slots(wednesday, weekdayConfig())

	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:30", slots[len(slots)-1])
	assert.NotContains(t, slots, "18:00")
}

func TestSlotsNoScheduleForWeekday(t *testing.T) {
	cfg := weekdayConfig()
	// Thursday has no entry.
	thursday := wednesday.AddDate(0, 0, 1)

	assert.Empty(t, Slots(thursday, cfg))
}

func TestSlotsFullDayShortCircuits(t *testing.T) {
	cfg := weekdayConfig()
	cfg.FullDays = []string{"2026-09-02"}

	assert.Empty(t, Slots(wednesday, cfg))
	assert.Empty(t, SlotsWithAvailability(wednesday, cfg))
}

func TestSlotsBlockedRangeFiltersOverlaps(t *testing.T) {
	cfg := weekdayConfig()
	cfg.BlockedSlots = []models.BlockedSlot{
		{Date: "2026-09-02", Start: "12:00", End: "13:00"},
	}

	slots := Slots(wednesday, cfg)

	assert.Contains(t, slots, "11:30")
	assert.Contains(t, slots, "13:00")
	assert.NotContains(t, slots, "12:00")
	assert.NotContains(t, slots, "12:30")
	assert.Len(t, slots, 16)
}

func TestSlotsBlockWithoutEndExtendsToEndOfDay(t *testing.T) {
	cfg := weekdayConfig()
	cfg.BlockedSlots = []models.BlockedSlot{
		{Date: "2026-09-02", Start: "14:00"},
	}

	slots := Slots(wednesday, cfg)

	require.NotEmpty(t, slots)
	assert.Equal(t, "13:30", slots[len(slots)-1])
	for _, s := range slots {
		assert.Less(t, ParseClock(s), 14*60)
	}
}

func TestSlotsBlockOnOtherDateIgnored(t *testing.T) {
	cfg := weekdayConfig()
	cfg.BlockedSlots = []models.BlockedSlot{
		{Date: "2026-09-09", Start: "09:00"},
	}

	assert.Len(t, Slots(wednesday, cfg), 18)
}

func TestSlotsDefaultsApply(t *testing.T) {
	// No opening hours and no duration: Mon-Fri 09:00-18:00, 30 minutes.
	slots := Slots(wednesday, models.BookingConfig{})
	require.Len(t, slots, 18)

	// Sunday is outside the default schedule.
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, Slots(sunday, models.BookingConfig{}))
}

func TestSlotsDuplicateWeekdayFirstMatchWins(t *testing.T) {
	cfg := models.BookingConfig{
		SlotDurationMinutes: 60,
		OpeningHours: []models.OpeningHoursEntry{
			{DayOfWeek: 3, Open: "10:00", Close: "12:00"},
			{DayOfWeek: 3, Open: "08:00", Close: "20:00"},
		},
	}

	slots := Slots(wednesday, cfg)

	require.Len(t, slots, 2)
	assert.Equal(t, []string{"10:00", "11:00"}, slots)
}

func TestSlotsMalformedHoursDegradeSilently(t *testing.T) {
	cfg := models.BookingConfig{
		OpeningHours: []models.OpeningHoursEntry{
			{DayOfWeek: 3, Open: "purple", Close: "monkey"},
		},
	}

	// Both parse to 00:00, so no slot fits; no panic, no error.
	assert.Empty(t, Slots(wednesday, cfg))
}

func TestSlotsWithAvailabilityMarksBlocked(t *testing.T) {
	cfg := weekdayConfig()
	cfg.BlockedSlots = []models.BlockedSlot{
		{Date: "2026-09-02", Start: "12:00", End: "13:00"},
	}

	statuses := SlotsWithAvailability(wednesday, cfg)

	require.Len(t, statuses, 18)
	byTime := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		byTime[s.Time] = s.Available
	}
	assert.True(t, byTime["11:30"])
	assert.False(t, byTime["12:00"])
	assert.False(t, byTime["12:30"])
	assert.True(t, byTime["13:00"])
}

func TestParseClockPermissive(t *testing.T) {
	assert.Equal(t, 9*60+30, ParseClock("09:30"))
	assert.Equal(t, 9*60, ParseClock("09"))
	assert.Equal(t, 0, ParseClock(""))
	assert.Equal(t, 30, ParseClock("xx:30"))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(9*60+5))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "23:30", FormatClock(23*60+30))
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2026-09-02", DateKey(wednesday))
	assert.Equal(t, "2026-09-02", DateKey(wednesday.Add(15*time.Hour+42*time.Minute)))
}
