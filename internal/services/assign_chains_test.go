package services

import (
	"context"
	"errors"
	"fmt"
	"kill-chain-service/internal/domain"
	"kill-chain-service/internal/geo"
	"testing"
	"time"
)

func testOptions() AssignOptions {
	opts := DefaultAssignOptions()
	opts.Controller = "C2"
	opts.Domains = testDomains()
	opts.Workers = 4
	return opts
}

func TestAssignChainsSingleResolvedChain(t *testing.T) {
	in := AssignInput{
		Missions: []domain.Mission{testMission()},
		Recon:    []domain.ReconAsset{testRecon("DDG-51", "SPY-1")},
		Strike:   []domain.StrikeAsset{testStrike("DDG-51", "Harpoon")},
	}

	res, err := AssignChains(context.Background(), in, testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Chains) != 1 {
		t.Fatalf("chains = %d, want 1", len(res.Chains))
	}

	a := res.Assignments()[0]
	if a.Status != domain.StatusResolved {
		t.Fatalf("status = %q (%s), want resolved", a.Status, a.Reason)
	}
	if a.MissionName != "T-1" || a.ReconLabel != "SPY-1(DDG-51)" || a.StrikeLabel != "Harpoon(DDG-51)" || a.ControllerLabel != "C2" {
		t.Fatalf("unexpected assignment %+v", a)
	}

	d, err := res.Distances.Lookup("DDG-51", "T-1")
	if err != nil || d != fixtureDistance {
		t.Fatalf("distance = %v, %v, want %v", d, err, fixtureDistance)
	}
}

func TestAssignChainsUnresolvedWhenConstraintBreaks(t *testing.T) {
	strike := testStrike("DDG-51", "Harpoon")
	strike.HitRate = 0.5 // below targetDestructionValue 0.6

	in := AssignInput{
		Missions: []domain.Mission{testMission()},
		Recon:    []domain.ReconAsset{testRecon("DDG-51", "SPY-1")},
		Strike:   []domain.StrikeAsset{strike},
	}

	res, err := AssignChains(context.Background(), in, testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := res.Chains[0]
	if c.Status() != domain.StatusUnresolved || c.Err != nil {
		t.Fatalf("chain = %+v, want unresolved without error", c)
	}
	if a := c.Assignment(); a.StrikeLabel != domain.UnresolvedMarker {
		t.Fatalf("strike label = %q, want %q", a.StrikeLabel, domain.UnresolvedMarker)
	}
}

func TestAssignChainsBadMissionDoesNotStopBatch(t *testing.T) {
	bad := testMission()
	bad.TargetName = "T-bad"
	bad.TargetLatitudeDMS = "N73 29 30"

	good := testMission()

	dup := testMission()

	in := AssignInput{
		Missions: []domain.Mission{bad, good, dup},
		Recon:    []domain.ReconAsset{testRecon("DDG-51", "SPY-1")},
		Strike:   []domain.StrikeAsset{testStrike("DDG-51", "Harpoon")},
	}

	res, err := AssignChains(context.Background(), in, testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var mc *domain.MalformedCoordinateError
	if !errors.As(res.Chains[0].Err, &mc) {
		t.Fatalf("chain 0 err = %v, want MalformedCoordinateError", res.Chains[0].Err)
	}
	if !res.Chains[1].Resolved() {
		t.Fatalf("chain 1 = %+v, want resolved", res.Chains[1])
	}
	if !errors.Is(res.Chains[2].Err, errDuplicateMission) {
		t.Fatalf("chain 2 err = %v, want duplicate", res.Chains[2].Err)
	}
}

func TestAssignChainsDropsUnpositionedEquipment(t *testing.T) {
	badRecon := testRecon("P-bad", "broken")
	badRecon.LongitudeDMS = "E36°07′"

	orphan := testStrike("P-none", "orphan")

	in := AssignInput{
		Missions: []domain.Mission{testMission()},
		Recon:    []domain.ReconAsset{badRecon, testRecon("DDG-51", "SPY-1")},
		Strike:   []domain.StrikeAsset{orphan, testStrike("DDG-51", "Harpoon")},
	}

	res, err := AssignChains(context.Background(), in, testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", res.Warnings)
	}

	var ml *domain.MissingLookupError
	if !errors.As(res.Warnings[1], &ml) || ml.Key != "P-none" {
		t.Fatalf("warning = %v, want missing position for P-none", res.Warnings[1])
	}
	if !res.Chains[0].Resolved() {
		t.Fatalf("chain = %+v, want resolved", res.Chains[0])
	}
}

func TestAssignChainsPositionedStrikePlatform(t *testing.T) {
	strike := testStrike("Battery-7", "HQ-9")
	strike.LatitudeDMS = platformLat
	strike.LongitudeDMS = platformLon
	strike.Altitude = 5
	strike.HasAltitude = true

	in := AssignInput{
		Missions: []domain.Mission{testMission()},
		Recon:    []domain.ReconAsset{testRecon("DDG-51", "SPY-1")},
		Strike:   []domain.StrikeAsset{strike},
	}

	res, err := AssignChains(context.Background(), in, testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Chains[0].Resolved() {
		t.Fatalf("chain = %+v, want resolved", res.Chains[0])
	}
	if h := res.Heights["Battery-7"]; h != 5 {
		t.Fatalf("height = %v, want 5", h)
	}
}

func TestAssignChainsConflictingPlatformPosition(t *testing.T) {
	moved := testStrike("DDG-51", "Harpoon")
	moved.LatitudeDMS = "N69°00′00″"
	moved.LongitudeDMS = platformLon

	in := AssignInput{
		Missions: []domain.Mission{testMission()},
		Recon:    []domain.ReconAsset{testRecon("DDG-51", "SPY-1")},
		Strike:   []domain.StrikeAsset{moved},
	}

	res, err := AssignChains(context.Background(), in, testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", res.Warnings)
	}
	want := `platform "DDG-51": conflicting positions, keeping N68°47′48″ E36°07′42″`
	if got := res.Warnings[0].Error(); got != want {
		t.Fatalf("warning = %q, want %q", got, want)
	}
	if d, _ := res.Distances.Lookup("DDG-51", "T-1"); d != fixtureDistance {
		t.Fatalf("distance = %v, want %v from the first position", d, fixtureDistance)
	}
}

func TestAssignChainsPreservesMissionOrder(t *testing.T) {
	var missions []domain.Mission
	for i := range 50 {
		m := testMission()
		m.TargetName = fmt.Sprintf("T-%02d", i)
		if i%3 == 0 {
			m.TargetSpeed = 10_000 // outruns every weapon
		}
		missions = append(missions, m)
	}

	in := AssignInput{
		Missions: missions,
		Recon:    []domain.ReconAsset{testRecon("DDG-51", "SPY-1")},
		Strike:   []domain.StrikeAsset{testStrike("DDG-51", "Harpoon")},
	}

	res, err := AssignChains(context.Background(), in, testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, c := range res.Chains {
		if want := fmt.Sprintf("T-%02d", i); c.Mission.TargetName != want {
			t.Fatalf("chain %d mission = %q, want %q", i, c.Mission.TargetName, want)
		}
		if wantResolved := i%3 != 0; c.Resolved() != wantResolved {
			t.Fatalf("chain %d resolved = %v, want %v", i, c.Resolved(), wantResolved)
		}
	}

	computed, _ := res.Distances.Stats()
	if computed != len(missions) {
		t.Fatalf("computed distances = %d, want %d", computed, len(missions))
	}
}

func TestAssignChainsRejectsBadWeights(t *testing.T) {
	opts := testOptions()
	opts.Weights = domain.ScoringWeights{Time: 0.5, Precision: 0.5, Damage: 0.5}

	if _, err := AssignChains(context.Background(), AssignInput{}, opts); err == nil {
		t.Fatal("expected error for weights not summing to 1")
	}
}

func TestAssignChainsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := AssignInput{Missions: []domain.Mission{testMission()}}
	if _, err := AssignChains(ctx, in, testOptions()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestEvaluateMissionDeadlineFailsOnlyThatMission(t *testing.T) {
	late := testMission()
	onTime := testMission()
	onTime.TargetName = "T-2"

	pools, warnings := resolvePlatforms(
		[]domain.ReconAsset{testRecon("DDG-51", "SPY-1")},
		[]domain.StrikeAsset{testStrike("DDG-51", "Harpoon")},
	)
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
	target, err := geo.ParsePoint(targetLat, targetLon)
	if err != nil {
		t.Fatalf("parse target: %v", err)
	}
	distances := NewDistanceTable(0)
	for _, m := range []domain.Mission{late, onTime} {
		distances.Compute("DDG-51", pools.positions["DDG-51"], m.TargetName, target)
	}

	opts := testOptions()
	opts.MissionTimeout = 5 * time.Second
	opts.Metrics = nopMetrics{}

	expired, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	failed := evaluateMission(expired, late, pools, distances, opts)
	resolved := evaluateMission(context.Background(), onTime, pools, distances, opts)

	if !errors.Is(failed.Err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", failed.Err)
	}
	if failed.Status() != domain.StatusFailed || failed.Mission.TargetName != "T-1" {
		t.Fatalf("chain = %s %s, want failed T-1", failed.Mission.TargetName, failed.Status())
	}
	if a := failed.Assignment(); a.Reason == "" || a.ControllerLabel != "C2" {
		t.Fatalf("assignment = %+v, want reason and controller", a)
	}

	if !resolved.Resolved() || resolved.Err != nil {
		t.Fatalf("sibling = %s (%v), want resolved", resolved.Status(), resolved.Err)
	}
	if resolved.Strike.WeaponName != "Harpoon" || resolved.Recon.SensorName != "SPY-1" {
		t.Fatalf("sibling chain = %s/%s", resolved.Strike.WeaponName, resolved.Recon.SensorName)
	}
}
