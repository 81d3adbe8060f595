package forensics

import (
	"reflect"
	"testing"
)

func TestDetectIssuesOrderStable(t *testing.T) {
	rec := baseRecord()
	rec.PressurePSI = 110
	rec.ClosedLoop = true
	rec.HardnessGPG = 18
	rec.ThermostatTier = ThermostatHot
	m := ComputeMetrics(rec, testNow)

	first := DetectIssues(rec, m)
	second := DetectIssues(rec, m)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("issue detection not deterministic")
	}

	wantOrder := []string{"excess_pressure", "missing_expansion_protection", "scald_risk", "hard_water_untreated"}
	if len(first) != len(wantOrder) {
		t.Fatalf("got %d issues, want %d: %+v", len(first), len(wantOrder), first)
	}
	for i, id := range wantOrder {
		if first[i].ID != id {
			t.Fatalf("issue[%d] = %s, want %s", i, first[i].ID, id)
		}
	}
}

func TestDetectIssuesExcessPressure(t *testing.T) {
	rec := baseRecord()
	rec.PressurePSI = 95

	issues := DetectIssues(rec, ComputeMetrics(rec, testNow))
	if len(issues) != 1 || issues[0].ID != "excess_pressure" {
		t.Fatalf("expected single excess_pressure issue, got %+v", issues)
	}
	if issues[0].Category != CategoryViolation {
		t.Fatalf("excess pressure should be a VIOLATION, got %s", issues[0].Category)
	}

	rec.PRVPresent = true
	rec.ExpansionTank = true
	issues = DetectIssues(rec, ComputeMetrics(rec, testNow))
	if len(issues) != 0 {
		t.Fatalf("regulated and protected system should have no issues, got %+v", issues)
	}
}

func TestDetectIssuesPRVClosesSystem(t *testing.T) {
	rec := baseRecord()
	rec.PRVPresent = true // closes the system without expansion protection

	issues := DetectIssues(rec, ComputeMetrics(rec, testNow))
	if len(issues) != 1 || issues[0].ID != "missing_expansion_protection" {
		t.Fatalf("PRV without expansion tank should flag missing expansion protection, got %+v", issues)
	}
}

func TestDetectIssuesTanklessIsolationValves(t *testing.T) {
	rec := baseRecord()
	rec.Fuel = FuelTanklessElectric
	rec.IsolationValves = false

	issues := DetectIssues(rec, ComputeMetrics(rec, testNow))
	if len(issues) != 1 || issues[0].ID != "missing_isolation_valves" {
		t.Fatalf("tankless without isolation valves should be flagged, got %+v", issues)
	}
	if issues[0].Category != CategoryInfrastructure {
		t.Fatalf("missing valves should be INFRASTRUCTURE, got %s", issues[0].Category)
	}
}

func TestDetectIssuesVentObstruction(t *testing.T) {
	rec := baseRecord()
	rec.Telemetry.Vent = VentBlocked

	issues := DetectIssues(rec, ComputeMetrics(rec, testNow))
	if len(issues) != 1 || issues[0].ID != "vent_obstruction" {
		t.Fatalf("blocked vent on a gas unit should be flagged, got %+v", issues)
	}

	rec.Fuel = FuelTankElectric
	issues = DetectIssues(rec, ComputeMetrics(rec, testNow))
	if len(issues) != 0 {
		t.Fatalf("electric unit has no vent to obstruct, got %+v", issues)
	}
}

func TestDetectIssuesLeakProtectionOverFinishedSpace(t *testing.T) {
	rec := baseRecord()
	rec.Location = LocationAttic
	rec.FinishedArea = true

	issues := DetectIssues(rec, ComputeMetrics(rec, testNow))
	found := false
	for _, issue := range issues {
		if issue.ID == "missing_leak_protection" {
			found = true
		}
	}
	if !found {
		t.Fatalf("attic over finished space should need leak protection, got %+v", issues)
	}
}

func TestBundledIssueCostRespectsMinTier(t *testing.T) {
	issues := []InfrastructureIssue{
		{ID: "a", Cost: CostRange{Low: 100, High: 200}, MinTier: TierGood},
		{ID: "b", Cost: CostRange{Low: 300, High: 400}, MinTier: TierBest},
	}

	good := BundledIssueCost(issues, TierGood)
	if good.Low != 100 || good.High != 200 {
		t.Fatalf("good tier should bundle only the always-on issue, got %+v", good)
	}
	best := BundledIssueCost(issues, TierBest)
	if best.Low != 400 || best.High != 600 {
		t.Fatalf("best tier should bundle both issues, got %+v", best)
	}
	premium := BundledIssueCost(issues, TierPremium)
	if premium != best {
		t.Fatalf("premium should include everything best does, got %+v", premium)
	}
}
