package dto

type DistanceResponse struct {
	Platform      string  `json:"platform"`
	NauticalMiles float64 `json:"nautical_miles"`
}

type ListDistancesResponse struct {
	Target    string             `json:"target"`
	Distances []DistanceResponse `json:"distances"`
}
