package dto

// AssignRequest carries records to evaluate, keyed by record field name.
// An empty request evaluates the stored records.
type AssignRequest struct {
	Missions       []map[string]any `json:"missions"`
	Reconnaissance []map[string]any `json:"reconnaissance"`
	Strike         []map[string]any `json:"strike"`
}

func (r AssignRequest) Empty() bool {
	return len(r.Missions) == 0 && len(r.Reconnaissance) == 0 && len(r.Strike) == 0
}

type AssignmentResponse struct {
	Mission        string  `json:"mission"`
	Reconnaissance string  `json:"reconnaissance"`
	Controller     string  `json:"controller"`
	Strike         string  `json:"strike"`
	Score          float64 `json:"score"`
	Status         string  `json:"status"`
	Reason         string  `json:"reason,omitempty"`
}

type RunStats struct {
	Missions          int `json:"missions"`
	Resolved          int `json:"resolved"`
	Unresolved        int `json:"unresolved"`
	Failed            int `json:"failed"`
	DistancesComputed int `json:"distances_computed"`
	DistancesReused   int `json:"distances_reused"`
}

type AssignResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	Warnings    []string             `json:"warnings"`
	Stats       RunStats             `json:"stats"`
}

type ListAssignmentsResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
}
