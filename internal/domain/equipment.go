package domain

import (
	"fmt"
	"strconv"
)

// Field names shared by equipment records.
const (
	FieldPlatform  = "platform"
	FieldLatitude  = "latitude"
	FieldLongitude = "longitude"
	FieldAltitude  = "altitude"

	FieldSensorName           = "sensorName"
	FieldDetectionRange       = "detectionRange"
	FieldAccuracy             = "accuracy"
	FieldSupportedTargetTypes = "supportedTargetTypes"

	FieldWeaponName      = "weaponName"
	FieldTargetTypes     = "targetTypes"
	FieldMinRange        = "minRange"
	FieldMaxRange        = "maxRange"
	FieldHitRate         = "hitRate"
	FieldMaxTargetSpeed  = "maxTargetSpeed"
	FieldMinTargetHeight = "minTargetHeight"
	FieldMaxTargetHeight = "maxTargetHeight"
	FieldMinLaunchHeight = "minLaunchHeight"
	FieldMaxLaunchHeight = "maxLaunchHeight"
	FieldDamageValue     = "damageValue"
)

var ReconFields = []string{
	FieldPlatform,
	FieldSensorName,
	FieldLatitude,
	FieldLongitude,
	FieldAltitude,
	FieldDetectionRange,
	FieldAccuracy,
	FieldSupportedTargetTypes,
}

var StrikeFields = []string{
	FieldPlatform,
	FieldWeaponName,
	FieldTargetTypes,
	FieldMinRange,
	FieldMaxRange,
	FieldHitRate,
	FieldMaxTargetSpeed,
	FieldMinTargetHeight,
	FieldMaxTargetHeight,
	FieldMinLaunchHeight,
	FieldMaxLaunchHeight,
	FieldDamageValue,
	FieldLatitude,
	FieldLongitude,
	FieldAltitude,
}

// ReconAsset is a sensor mounted on a platform. DetectionRange is in nautical
// miles; SupportedTargetTypes holds target domains.
type ReconAsset struct {
	Platform             string
	SensorName           string
	LatitudeDMS          string
	LongitudeDMS         string
	Altitude             float64
	DetectionRange       float64
	Accuracy             float64
	SupportedTargetTypes []string
}

func NewReconAsset(rec RawRecord) (ReconAsset, error) {
	r := &fieldReader{rec: rec, name: fmt.Sprintf("reconnaissance %q", rec[FieldSensorName])}

	a := ReconAsset{
		Platform:             r.str(FieldPlatform),
		SensorName:           r.str(FieldSensorName),
		LatitudeDMS:          r.str(FieldLatitude),
		LongitudeDMS:         r.str(FieldLongitude),
		Altitude:             r.float(FieldAltitude),
		DetectionRange:       r.float(FieldDetectionRange),
		Accuracy:             r.unit(FieldAccuracy),
		SupportedTargetTypes: r.list(FieldSupportedTargetTypes),
	}
	if r.err != nil {
		return ReconAsset{}, r.err
	}
	return a, nil
}

func (a ReconAsset) Label() string { return Label(a.SensorName, a.Platform) }

func (a ReconAsset) Record() RawRecord {
	return RawRecord{
		FieldPlatform:             a.Platform,
		FieldSensorName:           a.SensorName,
		FieldLatitude:             a.LatitudeDMS,
		FieldLongitude:            a.LongitudeDMS,
		FieldAltitude:             formatFloat(a.Altitude),
		FieldDetectionRange:       formatFloat(a.DetectionRange),
		FieldAccuracy:             formatFloat(a.Accuracy),
		FieldSupportedTargetTypes: JoinMulti(a.SupportedTargetTypes),
	}
}

// StrikeAsset is a weapon mounted on a platform. Position and altitude are
// optional: a platform that also carries a sensor is positioned from the
// reconnaissance pool.
type StrikeAsset struct {
	Platform        string
	WeaponName      string
	TargetTypes     []string
	MinRange        float64
	MaxRange        float64
	HitRate         float64
	MaxTargetSpeed  float64
	MinTargetHeight float64
	MaxTargetHeight float64
	MinLaunchHeight float64
	MaxLaunchHeight float64
	DamageValue     float64

	LatitudeDMS  string
	LongitudeDMS string
	Altitude     float64
	HasAltitude  bool
}

func NewStrikeAsset(rec RawRecord) (StrikeAsset, error) {
	r := &fieldReader{rec: rec, name: fmt.Sprintf("strike %q", rec[FieldWeaponName])}

	a := StrikeAsset{
		Platform:        r.str(FieldPlatform),
		WeaponName:      r.str(FieldWeaponName),
		TargetTypes:     r.list(FieldTargetTypes),
		MinRange:        r.float(FieldMinRange),
		MaxRange:        r.float(FieldMaxRange),
		HitRate:         r.unit(FieldHitRate),
		MaxTargetSpeed:  r.float(FieldMaxTargetSpeed),
		MinTargetHeight: r.float(FieldMinTargetHeight),
		MaxTargetHeight: r.float(FieldMaxTargetHeight),
		MinLaunchHeight: r.float(FieldMinLaunchHeight),
		MaxLaunchHeight: r.float(FieldMaxLaunchHeight),
		DamageValue:     r.float(FieldDamageValue),
		LatitudeDMS:     r.optStr(FieldLatitude),
		LongitudeDMS:    r.optStr(FieldLongitude),
	}
	a.Altitude, a.HasAltitude = r.optFloat(FieldAltitude)
	if (a.LatitudeDMS == "") != (a.LongitudeDMS == "") {
		if a.LatitudeDMS == "" {
			r.fail(FieldLatitude, "longitude given without latitude")
		} else {
			r.fail(FieldLongitude, "latitude given without longitude")
		}
	}
	if r.err != nil {
		return StrikeAsset{}, r.err
	}
	return a, nil
}

// HasPosition reports whether the record carries its own platform position.
func (a StrikeAsset) HasPosition() bool {
	return a.LatitudeDMS != "" && a.LongitudeDMS != ""
}

func (a StrikeAsset) Label() string { return Label(a.WeaponName, a.Platform) }

func (a StrikeAsset) Record() RawRecord {
	rec := RawRecord{
		FieldPlatform:        a.Platform,
		FieldWeaponName:      a.WeaponName,
		FieldTargetTypes:     JoinMulti(a.TargetTypes),
		FieldMinRange:        formatFloat(a.MinRange),
		FieldMaxRange:        formatFloat(a.MaxRange),
		FieldHitRate:         formatFloat(a.HitRate),
		FieldMaxTargetSpeed:  formatFloat(a.MaxTargetSpeed),
		FieldMinTargetHeight: formatFloat(a.MinTargetHeight),
		FieldMaxTargetHeight: formatFloat(a.MaxTargetHeight),
		FieldMinLaunchHeight: formatFloat(a.MinLaunchHeight),
		FieldMaxLaunchHeight: formatFloat(a.MaxLaunchHeight),
		FieldDamageValue:     formatFloat(a.DamageValue),
		FieldLatitude:        a.LatitudeDMS,
		FieldLongitude:       a.LongitudeDMS,
	}
	if a.HasAltitude {
		rec[FieldAltitude] = formatFloat(a.Altitude)
	}
	return rec
}

// Label formats an equipment display name with its platform, e.g.
// "SPY-1(Destroyer 51)".
func Label(name, platform string) string {
	return name + "(" + platform + ")"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
