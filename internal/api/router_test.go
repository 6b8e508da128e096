package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"kill-chain-service/internal/adapters/memory"
	"kill-chain-service/internal/api/dto"
	"kill-chain-service/internal/domain"
	"kill-chain-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testStore() *memory.Store {
	return memory.NewStore(
		[]domain.Mission{{
			Category:               domain.CategoryStrike,
			TargetName:             "T-1",
			TargetType:             "ship",
			TargetLatitudeDMS:      "N73°29′30″",
			TargetLongitudeDMS:     "E37°28′17″",
			TargetSpeed:            30,
			TargetDestructionValue: 0.6,
		}},
		[]domain.ReconAsset{{
			Platform:             "DDG-51",
			SensorName:           "SPY-1",
			LatitudeDMS:          "N68°47′48″",
			LongitudeDMS:         "E36°07′42″",
			Altitude:             20,
			DetectionRange:       300,
			Accuracy:             0.9,
			SupportedTargetTypes: []string{"ship"},
		}},
		[]domain.StrikeAsset{{
			Platform:        "DDG-51",
			WeaponName:      "Harpoon",
			TargetTypes:     []string{"ship"},
			MinRange:        10,
			MaxRange:        350,
			HitRate:         0.8,
			MaxTargetSpeed:  600,
			MaxTargetHeight: 100,
			MaxLaunchHeight: 50,
			DamageValue:     0.5,
		}},
	)
}

func newTestRouter(store *memory.Store, ping func(context.Context) error) http.Handler {
	opts := services.DefaultAssignOptions()
	opts.Workers = 2
	return NewRouter(store, store, opts, nil, ping)
}

func TestHealth(t *testing.T) {
	h := newTestRouter(testStore(), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}

func TestHealthReportsStoreFailure(t *testing.T) {
	h := newTestRouter(testStore(), func(context.Context) error { return errors.New("down") })

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestListMissions(t *testing.T) {
	h := newTestRouter(testStore(), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missions", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.ListMissionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Missions) != 1 || res.Missions[0].TargetName != "T-1" || res.Missions[0].Category != "strike" {
		t.Fatalf("missions = %+v", res.Missions)
	}
}

func TestListMissionsRejectsPost(t *testing.T) {
	h := newTestRouter(testStore(), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/missions", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestAssignStoredRecords(t *testing.T) {
	store := testStore()
	h := newTestRouter(store, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/assignments", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}

	var res dto.AssignResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Assignments) != 1 || res.Assignments[0].Status != "resolved" {
		t.Fatalf("assignments = %+v", res.Assignments)
	}
	if res.Assignments[0].Strike != "Harpoon(DDG-51)" || res.Assignments[0].Controller != services.DefaultController {
		t.Fatalf("assignment = %+v", res.Assignments[0])
	}
	if res.Stats.Resolved != 1 || res.Stats.DistancesComputed != 1 {
		t.Fatalf("stats = %+v", res.Stats)
	}

	// The run is persisted and served back on GET.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assignments", nil))

	var list dto.ListAssignmentsResponse
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Assignments) != 1 || list.Assignments[0].Mission != "T-1" {
		t.Fatalf("stored assignments = %+v", list.Assignments)
	}
}

func TestListDistancesAfterRun(t *testing.T) {
	h := newTestRouter(testStore(), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/assignments", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/distances?target=T-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}

	var res dto.ListDistancesResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Target != "T-1" || len(res.Distances) != 1 {
		t.Fatalf("distances = %+v", res)
	}
	if got := res.Distances[0]; got.Platform != "DDG-51" || got.NauticalMiles != 283.07 {
		t.Fatalf("distance = %+v, want DDG-51 at 283.07", got)
	}
}

func TestListDistancesRequiresTarget(t *testing.T) {
	h := newTestRouter(testStore(), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/distances", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/distances?target=T-9", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res dto.ListDistancesResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Distances) != 0 {
		t.Fatalf("distances = %+v, want none", res.Distances)
	}
}

func TestAssignPostedRecords(t *testing.T) {
	h := newTestRouter(testStore(), nil)

	body := `{
		"missions": [
			{"targetName": "M-1", "targetType": "ship", "targetLatitude": "N73°29′30″", "targetLongitude": "E37°28′17″",
			 "targetSpeed": 30, "targetAltitude": 0, "targetDestructionValue": 0.6},
			{"targetName": "M-2"}
		],
		"reconnaissance": [
			{"platform": "DDG-51", "sensorName": "SPY-1", "latitude": "N68°47′48″", "longitude": "E36°07′42″",
			 "altitude": 20, "detectionRange": 300, "accuracy": 0.9, "supportedTargetTypes": ["ship"]}
		],
		"strike": []
	}`

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/assignments", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}

	var res dto.AssignResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Assignments) != 1 || res.Assignments[0].Mission != "M-1" || res.Assignments[0].Status != "unresolved" {
		t.Fatalf("assignments = %+v", res.Assignments)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", res.Warnings)
	}
}

func TestAssignRejectsBadJSON(t *testing.T) {
	h := newTestRouter(testStore(), nil)

	for _, body := range []string{`{"missions": 3}`, `{"unknown": []}`, `{} {}`} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/assignments", bytes.NewBufferString(body)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}
