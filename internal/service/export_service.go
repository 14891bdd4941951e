package service

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/vitrine-sites/booking-api/internal/availability"
	appErrors "github.com/vitrine-sites/booking-api/pkg/errors"
	"github.com/vitrine-sites/booking-api/pkg/export"
)

// weekday labels indexed 0 = Sunday, matching the configuration numbering.
var weekdayLabels = [7]string{
	"Dimanche", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi",
}

// mondayFirstOrder lists weekday indices in display order.
var mondayFirstOrder = [7]int{1, 2, 3, 4, 5, 6, 0}

// ExportService renders a printable opening-hours sheet for a site.
type ExportService struct {
	sites  siteConfigProvider
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(sites siteConfigProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		sites:  sites,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// ExportResult carries the rendered document.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// WeeklySchedule renders the site's weekly opening hours, Monday first, with
// the number of bookable slots per open day. Supported formats: "csv", "pdf".
func (s *ExportService) WeeklySchedule(site, format string) (ExportResult, error) {
	cfg, err := s.sites.Get(site)
	if err != nil {
		return ExportResult{}, err
	}

	duration := cfg.Booking.SlotDurationMinutes
	if duration <= 0 {
		duration = availability.DefaultSlotDurationMinutes
	}

	closed := map[int]bool{}
	for _, d := range cfg.Booking.ClosedDays {
		closed[d] = true
	}

	dataset := export.Dataset{
		Headers: []string{"Jour", "Ouverture", "Fermeture", "Creneaux"},
	}
	for _, day := range mondayFirstOrder {
		row := map[string]string{
			"Jour":      weekdayLabels[day],
			"Ouverture": "-",
			"Fermeture": "-",
			"Creneaux":  "0",
		}
		if !closed[day] {
			for _, entry := range cfg.Booking.OpeningHours {
				if entry.DayOfWeek != day {
					continue
				}
				open := availability.ParseClock(entry.Open)
				close := availability.ParseClock(entry.Close)
				count := 0
				if close > open {
					count = (close - open) / duration
				}
				row["Ouverture"] = entry.Open
				row["Fermeture"] = entry.Close
				row["Creneaux"] = strconv.Itoa(count)
				break
			}
		}
		dataset.Rows = append(dataset.Rows, row)
	}

	title := cfg.Name
	if title == "" {
		title = site
	}

	switch format {
	case "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return ExportResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv schedule")
		}
		return ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("horaires-%s.csv", site),
		}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, fmt.Sprintf("Horaires - %s", title))
		if err != nil {
			return ExportResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf schedule")
		}
		return ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("horaires-%s.pdf", site),
		}, nil
	default:
		return ExportResult{}, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
