package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vitrine-sites/booking-api/internal/availability"
	"github.com/vitrine-sites/booking-api/internal/calendar"
	"github.com/vitrine-sites/booking-api/internal/dto"
	"github.com/vitrine-sites/booking-api/internal/models"
)

// siteConfigProvider serves read-only site configurations. Revision changes
// whenever configurations are reloaded, which retires every cache entry keyed
// under the old revision.
type siteConfigProvider interface {
	Get(site string) (*models.SiteConfig, error)
	Revision() int64
}

// AvailabilityService answers slot and calendar queries for a site. The
// computation itself is pure; this layer adds configuration lookup and an
// optional cache in front of it.
type AvailabilityService struct {
	sites    siteConfigProvider
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
	slotsTTL time.Duration
	gridTTL  time.Duration
}

// NewAvailabilityService constructs the service.
func NewAvailabilityService(sites siteConfigProvider, cache *CacheService, metrics *MetricsService, logger *zap.Logger, now func() time.Time, slotsTTL, gridTTL time.Duration) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &AvailabilityService{
		sites:    sites,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		now:      now,
		slotsTTL: slotsTTL,
		gridTTL:  gridTTL,
	}
}

// DaySlots returns the availability for one date: the bookable slots and the
// full slot list with availability flags.
func (s *AvailabilityService) DaySlots(ctx context.Context, site string, date time.Time) (dto.DaySlotsResponse, error) {
	cfg, err := s.sites.Get(site)
	if err != nil {
		return dto.DaySlotsResponse{}, err
	}

	key := fmt.Sprintf("availability:%s:rev%d:day:%s", site, s.sites.Revision(), availability.DateKey(date))
	var cached dto.DaySlotsResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	start := time.Now()
	slots := availability.Slots(date, cfg.Booking)
	statuses := availability.SlotsWithAvailability(date, cfg.Booking)
	s.metrics.ObserveComputation("slots", time.Since(start))

	resp := dto.DaySlotsResponse{
		Site:  site,
		Date:  availability.DateKey(date),
		Slots: slots,
		All:   make([]dto.SlotStatusItem, 0, len(statuses)),
	}
	for _, status := range statuses {
		resp.All = append(resp.All, dto.SlotStatusItem{Time: status.Time, Available: status.Available})
	}

	_ = s.cache.Set(ctx, key, resp, s.slotsTTL)
	return resp, nil
}

// MonthGrid returns the classified 42-cell grid for the month containing
// view.
func (s *AvailabilityService) MonthGrid(ctx context.Context, site string, view time.Time) (dto.CalendarResponse, error) {
	cfg, err := s.sites.Get(site)
	if err != nil {
		return dto.CalendarResponse{}, err
	}

	month := view.Format("2006-01")
	key := fmt.Sprintf("availability:%s:rev%d:grid:%s:%s", site, s.sites.Revision(), month, availability.DateKey(s.now()))
	var cached dto.CalendarResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	start := time.Now()
	days := calendar.BuildGrid(view, s.now(), cfg.Booking)
	s.metrics.ObserveComputation("grid", time.Since(start))

	resp := dto.CalendarResponse{
		Site:  site,
		Month: month,
		Label: fmt.Sprintf("%s %d", calendar.MonthLabels[int(view.Month())-1], view.Year()),
		Days:  make([]dto.CalendarDayItem, 0, len(days)),
	}
	for _, day := range days {
		resp.Days = append(resp.Days, dto.CalendarDayItem{
			DateKey:         day.DateKey,
			IsCurrentMonth:  day.IsCurrentMonth,
			IsToday:         day.IsToday,
			IsPast:          day.IsPast,
			IsClosed:        day.IsClosed,
			IsFullDay:       day.IsFullDay,
			HasAvailability: day.HasAvailability,
			Disabled:        calendar.IsDayDisabled(day),
			Selectable:      calendar.IsDaySelectable(day),
		})
	}

	_ = s.cache.Set(ctx, key, resp, s.gridTTL)
	return resp, nil
}

// Invalidate drops every cached availability entry for the site.
func (s *AvailabilityService) Invalidate(ctx context.Context, site string) error {
	return s.cache.Invalidate(ctx, fmt.Sprintf("availability:%s:*", site))
}
