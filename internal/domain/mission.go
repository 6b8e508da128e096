package domain

import "fmt"

// Field names of a mission record.
const (
	FieldTargetName             = "targetName"
	FieldTargetType             = "targetType"
	FieldTargetLatitude         = "targetLatitude"
	FieldTargetLongitude        = "targetLongitude"
	FieldTargetSpeed            = "targetSpeed"
	FieldTargetAltitude         = "targetAltitude"
	FieldTargetDestructionValue = "targetDestructionValue"
)

// MissionFields lists mission record fields in column order.
var MissionFields = []string{
	FieldTargetName,
	FieldTargetType,
	FieldTargetLatitude,
	FieldTargetLongitude,
	FieldTargetSpeed,
	FieldTargetAltitude,
	FieldTargetDestructionValue,
}

// A Mission is one target to be engaged. TargetName is unique within a batch.
type Mission struct {
	Category               Category
	TargetName             string
	TargetType             string
	TargetLatitudeDMS      string
	TargetLongitudeDMS     string
	TargetSpeed            float64
	TargetAltitude         float64
	TargetDestructionValue float64
}

// NewMission builds a Mission of the given category from a raw record.
func NewMission(c Category, rec RawRecord) (Mission, error) {
	r := &fieldReader{rec: rec, name: fmt.Sprintf("%s mission %q", c, rec[FieldTargetName])}

	m := Mission{
		Category:               c,
		TargetName:             r.str(FieldTargetName),
		TargetType:             r.str(FieldTargetType),
		TargetLatitudeDMS:      r.str(FieldTargetLatitude),
		TargetLongitudeDMS:     r.str(FieldTargetLongitude),
		TargetSpeed:            r.float(FieldTargetSpeed),
		TargetAltitude:         r.float(FieldTargetAltitude),
		TargetDestructionValue: r.unit(FieldTargetDestructionValue),
	}
	if r.err != nil {
		return Mission{}, r.err
	}
	return m, nil
}

// Record renders the mission back into a raw record.
func (m Mission) Record() RawRecord {
	return RawRecord{
		FieldTargetName:             m.TargetName,
		FieldTargetType:             m.TargetType,
		FieldTargetLatitude:         m.TargetLatitudeDMS,
		FieldTargetLongitude:        m.TargetLongitudeDMS,
		FieldTargetSpeed:            formatFloat(m.TargetSpeed),
		FieldTargetAltitude:         formatFloat(m.TargetAltitude),
		FieldTargetDestructionValue: formatFloat(m.TargetDestructionValue),
	}
}
