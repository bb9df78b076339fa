package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"tripplanner/internal/domain"
)

const attractionLocationKey = "attractions:locations"

// GeoIndex keeps attraction coordinates in a Redis geo set.
type GeoIndex struct {
	client *redis.Client
}

// NewGeoIndex creates a new GeoIndex.
func NewGeoIndex(client *redis.Client) *GeoIndex {
	return &GeoIndex{client: client}
}

// Index stores every attraction's position using GEOADD.
func (s *GeoIndex) Index(ctx context.Context, attractions []domain.Attraction) error {
	if len(attractions) == 0 {
		return nil
	}

	locations := make([]*redis.GeoLocation, 0, len(attractions))
	for _, a := range attractions {
		locations = append(locations, &redis.GeoLocation{
			Name:      a.ID,
			Longitude: a.Location.Lng,
			Latitude:  a.Location.Lat,
		})
	}

	return s.client.GeoAdd(ctx, attractionLocationKey, locations...).Err()
}

// Nearby returns attraction IDs within the given radius (in kilometers),
// nearest first.
func (s *GeoIndex) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]string, error) {
	results, err := s.client.GeoRadius(ctx, attractionLocationKey, lng, lat, &redis.GeoRadiusQuery{
		Radius: radiusKm,
		Unit:   "km",
		Sort:   "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.Name)
	}

	return ids, nil
}

// Remove drops an attraction from the geo index.
func (s *GeoIndex) Remove(ctx context.Context, attractionID string) error {
	return s.client.ZRem(ctx, attractionLocationKey, attractionID).Err()
}
