package services

import "kill-chain-service/internal/domain"

const (
	platformLat = "N68°47′48″"
	platformLon = "E36°07′42″"
	targetLat   = "N73°29′30″"
	targetLon   = "E37°28′17″"

	// Rounded great-circle distance between the two fixtures above.
	fixtureDistance = 283.07
)

func testMission() domain.Mission {
	return domain.Mission{
		Category:               domain.CategoryStrike,
		TargetName:             "T-1",
		TargetType:             "ship",
		TargetLatitudeDMS:      targetLat,
		TargetLongitudeDMS:     targetLon,
		TargetSpeed:            30,
		TargetAltitude:         0,
		TargetDestructionValue: 0.6,
	}
}

func testRecon(platform, sensor string) domain.ReconAsset {
	return domain.ReconAsset{
		Platform:             platform,
		SensorName:           sensor,
		LatitudeDMS:          platformLat,
		LongitudeDMS:         platformLon,
		Altitude:             20,
		DetectionRange:       300,
		Accuracy:             0.9,
		SupportedTargetTypes: []string{"sea"},
	}
}

func testStrike(platform, weapon string) domain.StrikeAsset {
	return domain.StrikeAsset{
		Platform:        platform,
		WeaponName:      weapon,
		TargetTypes:     []string{"ship"},
		MinRange:        10,
		MaxRange:        350,
		HitRate:         0.8,
		MaxTargetSpeed:  600,
		MinTargetHeight: -10,
		MaxTargetHeight: 100,
		MinLaunchHeight: 0,
		MaxLaunchHeight: 50,
		DamageValue:     0.5,
	}
}

func testDomains() domain.TargetDomains {
	return domain.TargetDomains{"ship": {"sea", "surface"}}
}

// set plants a distance without computing it.
func (t *DistanceTable) set(platform, target string, nm float64) {
	t.entries[pairKey{platform: platform, target: target}] = nm
}

// fixtureTables returns tables with every platform at fixtureDistance from
// T-1 and at 20 altitude.
func fixtureTables(platforms ...string) (*DistanceTable, HeightTable) {
	d := NewDistanceTable(0)
	h := make(HeightTable)
	for _, p := range platforms {
		d.set(p, "T-1", fixtureDistance)
		h[p] = 20
	}
	return d, h
}
