package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Category represents the kind of point of interest an attraction is.
type Category string

const (
	CategoryRestaurant     Category = "restaurant"
	CategoryMuseum         Category = "museum"
	CategoryPark           Category = "park"
	CategoryLandmark       Category = "landmark"
	CategoryShopping       Category = "shopping"
	CategoryEntertainment  Category = "entertainment"
	CategoryTransportation Category = "transportation"
	CategoryHotel          Category = "hotel"
)

// DefaultDurationMinutes is used when an attraction is created without a visit duration.
const DefaultDurationMinutes = 60

var (
	// ErrUnknownCategory is returned when a category name is not recognised.
	ErrUnknownCategory = errors.New("unknown attraction category")

	// ErrInvalidAttraction is returned when an attraction record fails validation.
	ErrInvalidAttraction = errors.New("invalid attraction")
)

var categories = []Category{
	CategoryRestaurant,
	CategoryMuseum,
	CategoryPark,
	CategoryLandmark,
	CategoryShopping,
	CategoryEntertainment,
	CategoryTransportation,
	CategoryHotel,
}

// Categories returns every known category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory converts a case-insensitive name into a Category.
func ParseCategory(s string) (Category, error) {
	name := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, c := range categories {
		if c == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

// Location is a geographic position with an optional street address.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Attraction is an immutable point of interest supplied by the catalog.
// Slices and maps inside an Attraction are shared between copies and must
// be treated as read-only.
type Attraction struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Category        Category          `json:"type"`
	Location        Location          `json:"location"`
	Description     string            `json:"description,omitempty"`
	DurationMinutes int               `json:"duration_minutes"`
	CostUSD         float64           `json:"cost_usd"`
	Rating          *float64          `json:"rating,omitempty"`
	Images          []string          `json:"images"`
	Tags            []string          `json:"tags"`
	OpeningHours    map[string]string `json:"opening_hours"`
	Phone           string            `json:"phone,omitempty"`
	Website         string            `json:"website,omitempty"`
	GoogleMapsURL   string            `json:"google_maps_url,omitempty"`
}

// NewAttraction builds an attraction with default duration and empty
// image/tag lists, then validates it.
func NewAttraction(a Attraction) (Attraction, error) {
	if a.DurationMinutes == 0 {
		a.DurationMinutes = DefaultDurationMinutes
	}
	if a.Images == nil {
		a.Images = []string{}
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	if err := a.Validate(); err != nil {
		return Attraction{}, err
	}
	return a, nil
}

// Validate checks the attraction's required fields and non-negative amounts.
func (a Attraction) Validate() error {
	switch {
	case strings.TrimSpace(a.ID) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidAttraction)
	case strings.TrimSpace(a.Name) == "":
		return fmt.Errorf("%w: empty name for %s", ErrInvalidAttraction, a.ID)
	case !a.Category.Valid():
		return fmt.Errorf("%w: %s has category %q", ErrInvalidAttraction, a.ID, a.Category)
	case a.DurationMinutes < 0:
		return fmt.Errorf("%w: %s has negative duration", ErrInvalidAttraction, a.ID)
	case a.CostUSD < 0:
		return fmt.Errorf("%w: %s has negative cost", ErrInvalidAttraction, a.ID)
	}
	return nil
}

// HasTag reports whether the attraction carries the given tag.
func (a Attraction) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
