package model

// Match is a scored pairing between an item and a recipient.
type Match struct {
	RecipientID        string  `json:"ngo_id"`
	RecipientName      string  `json:"ngo_name"`
	Location           string  `json:"location"`
	CapacityKg         float64 `json:"capacity_kg"`
	DistanceKm         float64 `json:"distance_km"`
	CO2SavingsKg       float64 `json:"co2_savings_kg"`
	MatchScore         float64 `json:"match_score"`
	DistanceScore      float64 `json:"distance_score"`
	CapacityScore      float64 `json:"capacity_score"`
	CategoryFocusScore float64 `json:"category_focus_score"`
}
