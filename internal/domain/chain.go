package domain

// Marker written in place of equipment labels for a mission with no chain.
const UnresolvedMarker = "unresolved"

type Status string

const (
	StatusResolved   Status = "resolved"
	StatusUnresolved Status = "unresolved"
	StatusFailed     Status = "failed"
)

// Chain is the sensor -> controller -> weapon selection for one mission.
// Recon and Strike are both nil when no feasible pair exists. Err is set when
// evaluating the mission failed; the rest of the batch is unaffected.
type Chain struct {
	Mission    Mission
	Recon      *ReconAsset
	Controller string
	Strike     *StrikeAsset
	Score      float64
	Err        error
}

// Unresolved returns the sentinel chain for a mission without a feasible pair.
func Unresolved(m Mission, controller string) Chain {
	return Chain{Mission: m, Controller: controller}
}

func (c Chain) Resolved() bool {
	return c.Err == nil && c.Recon != nil && c.Strike != nil
}

func (c Chain) Status() Status {
	switch {
	case c.Err != nil:
		return StatusFailed
	case c.Recon == nil || c.Strike == nil:
		return StatusUnresolved
	default:
		return StatusResolved
	}
}

// Assignment is the output row handed to writers.
type Assignment struct {
	MissionName     string
	ReconLabel      string
	ControllerLabel string
	StrikeLabel     string
	Score           float64
	Status          Status
	Reason          string
}

func (c Chain) Assignment() Assignment {
	a := Assignment{
		MissionName: c.Mission.TargetName,
		Status:      c.Status(),
	}
	if a.Status != StatusResolved {
		a.ReconLabel = UnresolvedMarker
		a.ControllerLabel = UnresolvedMarker
		a.StrikeLabel = UnresolvedMarker
		if c.Err != nil {
			a.Reason = c.Err.Error()
		} else {
			a.Reason = "no feasible sensor/weapon pair"
		}
		return a
	}

	a.ReconLabel = c.Recon.Label()
	a.ControllerLabel = c.Controller
	a.StrikeLabel = c.Strike.Label()
	a.Score = c.Score
	return a
}
