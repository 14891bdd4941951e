package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vitrine-sites/booking-api/internal/availability"
	"github.com/vitrine-sites/booking-api/internal/models"
	appErrors "github.com/vitrine-sites/booking-api/pkg/errors"
)

// SiteConfigRepository loads and serves the per-site configuration documents
// (<dir>/<site>.json). Consumers treat configurations as read-only; a reload
// swaps the whole map and bumps the revision, which feeds cache keys so stale
// cached availability expires naturally.
type SiteConfigRepository struct {
	dir    string
	logger *zap.Logger

	mu       sync.RWMutex
	sites    map[string]*models.SiteConfig
	revision int64
}

// NewSiteConfigRepository reads every site document under dir. A directory
// with no loadable site is an error; individually broken files are skipped
// with a warning.
func NewSiteConfigRepository(dir string, logger *zap.Logger) (*SiteConfigRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	repo := &SiteConfigRepository{dir: dir, logger: logger, sites: map[string]*models.SiteConfig{}}
	if err := repo.Reload(); err != nil {
		return nil, err
	}
	return repo, nil
}

// Get returns the configuration for the site key.
func (r *SiteConfigRepository) Get(site string) (*models.SiteConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.sites[site]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrSiteNotConfigured, fmt.Sprintf("unknown site %q", site))
	}
	return cfg, nil
}

// Sites lists the loaded site keys.
func (r *SiteConfigRepository) Sites() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.sites))
	for k := range r.sites {
		keys = append(keys, k)
	}
	return keys
}

// Revision identifies the currently loaded configuration generation.
func (r *SiteConfigRepository) Revision() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision
}

// Reload re-reads the configuration directory and swaps the loaded set.
func (r *SiteConfigRepository) Reload() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("read site config dir %s: %w", r.dir, err)
	}

	loaded := make(map[string]*models.SiteConfig)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		site := strings.TrimSuffix(entry.Name(), ".json")
		path := filepath.Join(r.dir, entry.Name())

		raw, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("skipping unreadable site config", zap.String("path", path), zap.Error(err))
			continue
		}
		cfg := &models.SiteConfig{}
		if err := json.Unmarshal(raw, cfg); err != nil {
			r.logger.Warn("skipping malformed site config", zap.String("path", path), zap.Error(err))
			continue
		}
		r.lintBookingConfig(site, cfg.Booking)
		loaded[site] = cfg
	}

	if len(loaded) == 0 {
		return fmt.Errorf("no site configurations found in %s", r.dir)
	}

	r.mu.Lock()
	r.sites = loaded
	r.revision++
	revision := r.revision
	r.mu.Unlock()

	r.logger.Info("site configurations loaded",
		zap.Int("sites", len(loaded)),
		zap.Int64("revision", revision),
	)
	return nil
}

// lintBookingConfig warns about configuration mistakes at load time. Warnings
// never reject a site: at runtime malformed entries degrade silently to empty
// slot lists, and that behavior is kept; the lint exists so the mistake is
// visible in the logs instead of only as a day with no slots.
func (r *SiteConfigRepository) lintBookingConfig(site string, cfg models.BookingConfig) {
	seen := map[int]bool{}
	for _, entry := range cfg.OpeningHours {
		if entry.DayOfWeek < 0 || entry.DayOfWeek > 6 {
			r.warn(site, "opening-hours entry has weekday outside 0..6", zap.Int("day_of_week", entry.DayOfWeek))
		}
		if seen[entry.DayOfWeek] {
			r.warn(site, "duplicate opening-hours entry; first match wins", zap.Int("day_of_week", entry.DayOfWeek))
		}
		seen[entry.DayOfWeek] = true

		if !validClock(entry.Open) || !validClock(entry.Close) {
			r.warn(site, "opening-hours entry has malformed HH:mm time",
				zap.String("open", entry.Open), zap.String("close", entry.Close))
		}
		if availability.ParseClock(entry.Open) >= availability.ParseClock(entry.Close) {
			r.warn(site, "opening-hours entry opens at or after it closes",
				zap.String("open", entry.Open), zap.String("close", entry.Close))
		}
	}

	for _, day := range cfg.ClosedDays {
		if day < 0 || day > 6 {
			r.warn(site, "closed day outside 0..6", zap.Int("day", day))
		}
	}
	for _, day := range cfg.FullDays {
		if !validDate(day) {
			r.warn(site, "full day is not a YYYY-MM-DD date", zap.String("date", day))
		}
	}
	for _, block := range cfg.BlockedSlots {
		if !validDate(block.Date) {
			r.warn(site, "blocked slot date is not a YYYY-MM-DD date", zap.String("date", block.Date))
		}
		if !validClock(block.Start) || (block.End != "" && !validClock(block.End)) {
			r.warn(site, "blocked slot has malformed HH:mm time",
				zap.String("start", block.Start), zap.String("end", block.End))
		}
	}
}

func (r *SiteConfigRepository) warn(site, msg string, fields ...zap.Field) {
	r.logger.Warn("booking config: "+msg, append([]zap.Field{zap.String("site", site)}, fields...)...)
}

func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
