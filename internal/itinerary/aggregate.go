package itinerary

import "tripplanner/internal/domain"

// AggregateDay recomputes the day's cost and duration totals from its slots.
// Duration counts each visit plus the travel time leading into it.
func AggregateDay(day *domain.DayItinerary) {
	var cost float64
	var minutes int
	for _, slot := range day.TimeSlots {
		cost += slot.Attraction.CostUSD
		minutes += slot.Attraction.DurationMinutes + slot.TravelTimeMinutes
	}
	day.TotalCost = cost
	day.TotalDurationMinutes = minutes
}

// AggregateTrip refreshes every day's totals and then the trip's total cost.
func AggregateTrip(trip *domain.TripPlan) {
	var cost float64
	for i := range trip.Days {
		AggregateDay(&trip.Days[i])
		cost += trip.Days[i].TotalCost
	}
	trip.TotalCost = cost
}
