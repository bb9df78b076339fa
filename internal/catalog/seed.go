package catalog

import "tripplanner/internal/domain"

func rating(r float64) *float64 { return &r }

// SanFrancisco is the demo destination used when no external catalog is configured.
// The order groups the classic sights, then culture and parks, then downtown.
func SanFrancisco() Destination {
	return Destination{
		Name:    "San Francisco",
		Aliases: []string{"SF", "San Fran", "Frisco"},
		Attractions: []domain.Attraction{
			{
				ID:              "1",
				Name:            "Golden Gate Bridge",
				Category:        domain.CategoryLandmark,
				Location:        domain.Location{Lat: 37.8199, Lng: -122.4783, Address: "Golden Gate Bridge, San Francisco, CA"},
				Description:     "Iconic suspension bridge with stunning views",
				DurationMinutes: 90,
				CostUSD:         0,
				Rating:          rating(4.8),
				Tags:            []string{"iconic", "photo-spot", "free"},
				GoogleMapsURL:   "https://maps.google.com/?q=Golden+Gate+Bridge",
			},
			{
				ID:              "2",
				Name:            "Fisherman's Wharf",
				Category:        domain.CategoryEntertainment,
				Location:        domain.Location{Lat: 37.808, Lng: -122.4177, Address: "Fisherman's Wharf, San Francisco, CA"},
				Description:     "Bustling waterfront with sea lions, shops, and restaurants",
				DurationMinutes: 120,
				CostUSD:         0,
				Rating:          rating(4.2),
				Tags:            []string{"waterfront", "sea-lions", "shopping"},
				GoogleMapsURL:   "https://maps.google.com/?q=Fishermans+Wharf+SF",
			},
			{
				ID:              "3",
				Name:            "Alcatraz Island",
				Category:        domain.CategoryLandmark,
				Location:        domain.Location{Lat: 37.8267, Lng: -122.423, Address: "Alcatraz Island, San Francisco, CA"},
				Description:     "Former federal prison on an island",
				DurationMinutes: 180,
				CostUSD:         41.00,
				Rating:          rating(4.7),
				Tags:            []string{"history", "island", "tour"},
				GoogleMapsURL:   "https://maps.google.com/?q=Alcatraz+Island",
			},
			{
				ID:              "4",
				Name:            "Ghirardelli Square",
				Category:        domain.CategoryShopping,
				Location:        domain.Location{Lat: 37.8059, Lng: -122.423, Address: "900 North Point St, San Francisco, CA"},
				Description:     "Historic chocolate factory turned shopping center",
				DurationMinutes: 60,
				CostUSD:         20,
				Rating:          rating(4.5),
				Tags:            []string{"chocolate", "shopping", "historic"},
				GoogleMapsURL:   "https://maps.google.com/?q=Ghirardelli+Square",
			},
			{
				ID:              "5",
				Name:            "Golden Gate Park",
				Category:        domain.CategoryPark,
				Location:        domain.Location{Lat: 37.7694, Lng: -122.4862, Address: "Golden Gate Park, San Francisco, CA"},
				Description:     "Large urban park with gardens, museums, and trails",
				DurationMinutes: 180,
				CostUSD:         0,
				Rating:          rating(4.7),
				Tags:            []string{"nature", "park", "free"},
				GoogleMapsURL:   "https://maps.google.com/?q=Golden+Gate+Park",
			},
			{
				ID:              "6",
				Name:            "California Academy of Sciences",
				Category:        domain.CategoryMuseum,
				Location:        domain.Location{Lat: 37.7699, Lng: -122.4661, Address: "55 Music Concourse Dr, San Francisco, CA"},
				Description:     "Natural history museum with aquarium and planetarium",
				DurationMinutes: 180,
				CostUSD:         39.95,
				Rating:          rating(4.6),
				Tags:            []string{"museum", "science", "family-friendly"},
				GoogleMapsURL:   "https://maps.google.com/?q=California+Academy+of+Sciences",
			},
			{
				ID:              "7",
				Name:            "Haight-Ashbury",
				Category:        domain.CategoryLandmark,
				Location:        domain.Location{Lat: 37.7692, Lng: -122.4481, Address: "Haight-Ashbury, San Francisco, CA"},
				Description:     "Historic neighborhood, birthplace of 1960s counterculture",
				DurationMinutes: 90,
				CostUSD:         0,
				Rating:          rating(4.3),
				Tags:            []string{"history", "shopping", "culture"},
				GoogleMapsURL:   "https://maps.google.com/?q=Haight+Ashbury",
			},
			{
				ID:              "8",
				Name:            "Painted Ladies",
				Category:        domain.CategoryLandmark,
				Location:        domain.Location{Lat: 37.7763, Lng: -122.4327, Address: "Steiner St & Hayes St, San Francisco, CA"},
				Description:     "Famous Victorian houses from Full House",
				DurationMinutes: 30,
				CostUSD:         0,
				Rating:          rating(4.4),
				Tags:            []string{"architecture", "photo-spot", "free"},
				GoogleMapsURL:   "https://maps.google.com/?q=Painted+Ladies+SF",
			},
			{
				ID:              "9",
				Name:            "Chinatown",
				Category:        domain.CategoryLandmark,
				Location:        domain.Location{Lat: 37.7941, Lng: -122.4078, Address: "Chinatown, San Francisco, CA"},
				Description:     "Largest Chinatown outside Asia",
				DurationMinutes: 120,
				CostUSD:         30,
				Rating:          rating(4.4),
				Tags:            []string{"culture", "food", "shopping"},
				GoogleMapsURL:   "https://maps.google.com/?q=Chinatown+SF",
			},
			{
				ID:              "10",
				Name:            "Union Square",
				Category:        domain.CategoryShopping,
				Location:        domain.Location{Lat: 37.788, Lng: -122.4074, Address: "Union Square, San Francisco, CA"},
				Description:     "Premier shopping district",
				DurationMinutes: 120,
				CostUSD:         0,
				Rating:          rating(4.3),
				Tags:            []string{"shopping", "dining", "downtown"},
				GoogleMapsURL:   "https://maps.google.com/?q=Union+Square+SF",
			},
			{
				ID:              "11",
				Name:            "Ferry Building Marketplace",
				Category:        domain.CategoryShopping,
				Location:        domain.Location{Lat: 37.7955, Lng: -122.3937, Address: "1 Ferry Building, San Francisco, CA"},
				Description:     "Gourmet food market with bay views",
				DurationMinutes: 90,
				CostUSD:         40,
				Rating:          rating(4.6),
				Tags:            []string{"food", "market", "waterfront"},
				GoogleMapsURL:   "https://maps.google.com/?q=Ferry+Building+SF",
			},
			{
				ID:              "12",
				Name:            "Coit Tower",
				Category:        domain.CategoryLandmark,
				Location:        domain.Location{Lat: 37.8024, Lng: -122.4058, Address: "1 Telegraph Hill Blvd, San Francisco, CA"},
				Description:     "Art deco tower with panoramic city views",
				DurationMinutes: 60,
				CostUSD:         10,
				Rating:          rating(4.5),
				Tags:            []string{"views", "art-deco", "historic"},
				GoogleMapsURL:   "https://maps.google.com/?q=Coit+Tower",
			},
		},
	}
}
