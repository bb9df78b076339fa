package domain

import "time"

// TimeSlot is one scheduled visit within a day.
// EndTime is always StartTime plus the attraction's duration; both carry a full
// date so a visit that runs past midnight keeps a correct end time.
type TimeSlot struct {
	StartTime         time.Time  `json:"start_time"`
	EndTime           time.Time  `json:"end_time"`
	Attraction        Attraction `json:"attraction"`
	TravelTimeMinutes int        `json:"travel_time_minutes"` // Time to get to this attraction
	Notes             string     `json:"notes,omitempty"`
}

// DayItinerary is one day's ordered sequence of visits.
type DayItinerary struct {
	DayNumber            int        `json:"day_number"`
	Date                 time.Time  `json:"date"`
	TimeSlots            []TimeSlot `json:"time_slots"`
	TotalCost            float64    `json:"total_cost"`
	TotalDurationMinutes int        `json:"total_duration_minutes"`
	ColorCode            string     `json:"color_code"`
}

// AttractionIDs returns the attraction identifiers in visiting order.
func (d DayItinerary) AttractionIDs() []string {
	ids := make([]string, 0, len(d.TimeSlots))
	for _, slot := range d.TimeSlots {
		ids = append(ids, slot.Attraction.ID)
	}
	return ids
}

// TripPlan is a complete multi-day itinerary for one destination.
type TripPlan struct {
	ID          string         `json:"id"`
	Destination string         `json:"destination"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	Days        []DayItinerary `json:"days"`
	TotalCost   float64        `json:"total_cost"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DayCount returns the number of days in the plan.
func (t *TripPlan) DayCount() int {
	return len(t.Days)
}

// Clone returns a copy of the plan that shares no day or slot storage with t.
// Attractions are immutable and are copied by value.
func (t *TripPlan) Clone() *TripPlan {
	if t == nil {
		return nil
	}
	out := *t
	out.Days = make([]DayItinerary, len(t.Days))
	for i, day := range t.Days {
		day.TimeSlots = append(make([]TimeSlot, 0, len(day.TimeSlots)), day.TimeSlots...)
		out.Days[i] = day
	}
	return &out
}

// ContainsAttraction reports whether any day of the plan visits the attraction.
func (t *TripPlan) ContainsAttraction(id string) bool {
	for _, day := range t.Days {
		for _, slot := range day.TimeSlots {
			if slot.Attraction.ID == id {
				return true
			}
		}
	}
	return false
}
