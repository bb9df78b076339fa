package catalog

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"tripplanner/internal/domain"
)

const (
	defaultRadiusKm  = 5.0
	earthRadiusKm    = 6371.0
	degreesToRadians = math.Pi / 180
)

// Destination groups the attractions of one city.
type Destination struct {
	Name        string
	Aliases     []string
	Attractions []domain.Attraction
}

func (d Destination) matches(location string) bool {
	if strings.EqualFold(d.Name, location) {
		return true
	}
	for _, alias := range d.Aliases {
		if strings.EqualFold(alias, location) {
			return true
		}
	}
	return false
}

// MemoryCatalog is an in-process catalog over a fixed set of destinations.
// When a GeoIndex is set, coordinate queries are answered by the index.
type MemoryCatalog struct {
	mu           sync.RWMutex
	destinations []Destination
	byID         map[string]domain.Attraction
	geo          GeoIndex
	logger       *zap.Logger
}

// NewMemoryCatalog validates and indexes the given destinations.
func NewMemoryCatalog(logger *zap.Logger, destinations ...Destination) (*MemoryCatalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &MemoryCatalog{
		byID:   make(map[string]domain.Attraction),
		logger: logger,
	}
	for _, d := range destinations {
		attractions := make([]domain.Attraction, 0, len(d.Attractions))
		for _, a := range d.Attractions {
			valid, err := domain.NewAttraction(a)
			if err != nil {
				return nil, fmt.Errorf("destination %s: %w", d.Name, err)
			}
			if _, dup := c.byID[valid.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate id %s", domain.ErrInvalidAttraction, valid.ID)
			}
			attractions = append(attractions, valid)
			c.byID[valid.ID] = valid
		}
		d.Attractions = attractions
		c.destinations = append(c.destinations, d)
	}
	return c, nil
}

// WithGeoIndex indexes every attraction in geo and uses it for coordinate queries.
func (c *MemoryCatalog) WithGeoIndex(ctx context.Context, geo GeoIndex) error {
	if err := geo.Index(ctx, c.all()); err != nil {
		return fmt.Errorf("index attractions: %w", err)
	}
	c.mu.Lock()
	c.geo = geo
	c.mu.Unlock()
	return nil
}

// Destinations returns the names and aliases the catalog can plan for.
func (c *MemoryCatalog) Destinations() []Destination {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Destination, len(c.destinations))
	copy(out, c.destinations)
	return out
}

// Get returns the attraction with the given id.
func (c *MemoryCatalog) Get(ctx context.Context, id string) (domain.Attraction, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.byID[id]
	if !ok {
		return domain.Attraction{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return a, nil
}

// Search returns attractions matching the query, in catalog order unless a
// search centre is given, in which case they are ordered by distance.
func (c *MemoryCatalog) Search(ctx context.Context, q Query) ([]domain.Attraction, error) {
	if q.Category != "" && !q.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, q.Category)
	}

	c.mu.RLock()
	geo := c.geo
	var candidates []domain.Attraction
	location := strings.TrimSpace(q.Location)
	for _, d := range c.destinations {
		cityMatch := location == "" || d.matches(location)
		for _, a := range d.Attractions {
			if q.Category != "" && a.Category != q.Category {
				continue
			}
			if !cityMatch && !strings.Contains(strings.ToLower(a.Location.Address), strings.ToLower(location)) {
				continue
			}
			candidates = append(candidates, a)
		}
	}
	c.mu.RUnlock()

	if q.HasCoordinates() {
		radius := q.RadiusKm
		if radius <= 0 {
			radius = defaultRadiusKm
		}
		var err error
		if geo != nil {
			candidates, err = c.orderByIndex(ctx, geo, candidates, *q.Lat, *q.Lng, radius)
			if err != nil {
				return nil, err
			}
		} else {
			candidates = orderByDistance(candidates, *q.Lat, *q.Lng, radius)
		}
	}

	if q.Limit > 0 && len(candidates) > q.Limit {
		candidates = candidates[:q.Limit]
	}

	c.logger.Debug("Catalog search",
		zap.String("category", string(q.Category)),
		zap.String("location", q.Location),
		zap.Int("results", len(candidates)),
	)

	return candidates, nil
}

func (c *MemoryCatalog) orderByIndex(ctx context.Context, geo GeoIndex, candidates []domain.Attraction, lat, lng, radius float64) ([]domain.Attraction, error) {
	ids, err := geo.Nearby(ctx, lat, lng, radius)
	if err != nil {
		return nil, fmt.Errorf("geo search: %w", err)
	}
	allowed := make(map[string]domain.Attraction, len(candidates))
	for _, a := range candidates {
		allowed[a.ID] = a
	}
	out := make([]domain.Attraction, 0, len(ids))
	for _, id := range ids {
		if a, ok := allowed[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (c *MemoryCatalog) all() []domain.Attraction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []domain.Attraction
	for _, d := range c.destinations {
		out = append(out, d.Attractions...)
	}
	return out
}

// orderByDistance keeps attractions within radius of the centre, nearest first.
func orderByDistance(attractions []domain.Attraction, lat, lng, radiusKm float64) []domain.Attraction {
	type ranked struct {
		a    domain.Attraction
		dist float64
	}
	var in []ranked
	for _, a := range attractions {
		d := haversineKm(lat, lng, a.Location.Lat, a.Location.Lng)
		if d <= radiusKm {
			in = append(in, ranked{a: a, dist: d})
		}
	}
	sort.SliceStable(in, func(i, j int) bool { return in[i].dist < in[j].dist })

	out := make([]domain.Attraction, len(in))
	for i, r := range in {
		out[i] = r.a
	}
	return out
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * degreesToRadians
	dLng := (lng2 - lng1) * degreesToRadians
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degreesToRadians)*math.Cos(lat2*degreesToRadians)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
