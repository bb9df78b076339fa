package catalog

import (
	"context"
	"errors"

	"tripplanner/internal/domain"
)

// ErrNotFound is returned when an attraction id is not in the catalog.
var ErrNotFound = errors.New("attraction not found in catalog")

// Query filters a catalog search. Zero values mean "no filter".
type Query struct {
	Category domain.Category
	Location string   // destination name or address fragment
	Lat      *float64 // optional search centre
	Lng      *float64
	RadiusKm float64 // 0 uses the catalog default
	Limit    int
}

// HasCoordinates reports whether the query carries a search centre.
func (q Query) HasCoordinates() bool {
	return q.Lat != nil && q.Lng != nil
}

// Catalog is the source of attraction records. Results are ordered; the
// catalog makes no promise about freshness.
type Catalog interface {
	Search(ctx context.Context, q Query) ([]domain.Attraction, error)
	Get(ctx context.Context, id string) (domain.Attraction, error)
}

// GeoIndex answers radius queries over attraction coordinates.
type GeoIndex interface {
	Index(ctx context.Context, attractions []domain.Attraction) error
	Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]string, error)
}
