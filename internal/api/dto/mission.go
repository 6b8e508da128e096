package dto

type MissionResponse struct {
	TargetName             string  `json:"target_name"`
	Category               string  `json:"category"`
	TargetType             string  `json:"target_type"`
	TargetLatitude         string  `json:"target_latitude"`
	TargetLongitude        string  `json:"target_longitude"`
	TargetSpeed            float64 `json:"target_speed"`
	TargetAltitude         float64 `json:"target_altitude"`
	TargetDestructionValue float64 `json:"target_destruction_value"`
}

type ListMissionsResponse struct {
	Missions []MissionResponse `json:"missions"`
}
