package models

// Sector identifies the kind of business a site is rendered for.
type Sector string

const (
	SectorRestaurant  Sector = "restaurant"
	SectorPizzeria    Sector = "pizzeria"
	SectorHairdresser Sector = "hairdresser"
)

// Variant selects the visual treatment of a site.
type Variant string

const (
	VariantLuxe    Variant = "luxe"
	VariantClassic Variant = "classic"
)

// SiteConfig is the per-site configuration document loaded from JSON. Only the
// booking section is interpreted by this service; the rest of the document
// (sections, theming) belongs to the front end and passes through untouched.
type SiteConfig struct {
	Name    string        `json:"name"`
	Sector  Sector        `json:"sector"`
	Variant Variant       `json:"variant,omitempty"`
	Booking BookingConfig `json:"booking"`
}
