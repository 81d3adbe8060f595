package forensics

import "testing"

func TestSimulateEmptySelectionIsIdentity(t *testing.T) {
	state := RepairState{HealthScore: 62.4, AgingFactor: 1.8, FailureProbability: 37.6}
	result := Simulate(state, nil)

	if result.HealthScore != state.HealthScore ||
		result.AgingFactor != state.AgingFactor ||
		result.FailureProbability != state.FailureProbability {
		t.Fatalf("empty selection must be the identity: %+v", result)
	}
	if result.Cost.Low != 0 || result.Cost.High != 0 {
		t.Fatalf("empty selection must cost nothing: %+v", result.Cost)
	}
}

func TestSimulateReplacementShortCircuits(t *testing.T) {
	state := RepairState{HealthScore: 30, AgingFactor: 2.5, FailureProbability: 80}
	replacement := repairCatalog[RepairReplaceTankGas]
	extras := []RepairOption{
		repairCatalog[RepairFlush],
		replacement,
		repairCatalog[RepairAnode],
		repairCatalog[RepairPRVExpansionBundle],
	}

	result := Simulate(state, extras)
	if result.HealthScore != 100 {
		t.Fatalf("replacement should restore score to 100, got %v", result.HealthScore)
	}
	if result.FailureProbability > simFailureFloor {
		t.Fatalf("replacement should minimize failure probability, got %v", result.FailureProbability)
	}
	if result.Cost != replacement.Cost {
		t.Fatalf("only the replacement's cost may be charged: got %+v, want %+v", result.Cost, replacement.Cost)
	}
	if result.Badge != BadgeOptimal {
		t.Fatalf("as-new unit should badge OPTIMAL, got %s", result.Badge)
	}
}

func TestSimulateDiminishingReturnsByPosition(t *testing.T) {
	state := RepairState{HealthScore: 40, AgingFactor: 2.0, FailureProbability: 60}
	opt := RepairOption{
		ID:     "equal_impact",
		Cost:   CostRange{Low: 100, High: 200},
		Impact: RepairImpact{ScoreDelta: 10, AgingReductionPct: 10, FailureReductionPct: 10},
	}
	selection := []RepairOption{opt, opt, opt}

	one := Simulate(state, selection[:1]).HealthScore
	two := Simulate(state, selection[:2]).HealthScore
	three := Simulate(state, selection).HealthScore

	first := one - state.HealthScore
	second := two - one
	third := three - two
	if !(first > second && second > third) {
		t.Fatalf("score deltas must strictly decrease by position: %v, %v, %v", first, second, third)
	}
	if third <= 0 {
		t.Fatalf("later positions still contribute, got %v", third)
	}
}

func TestSimulateCostsAccumulateInFull(t *testing.T) {
	state := RepairState{HealthScore: 50, AgingFactor: 1.5, FailureProbability: 40}
	a := RepairOption{ID: "a", Cost: CostRange{Low: 100, High: 200}}
	b := RepairOption{ID: "b", Cost: CostRange{Low: 300, High: 500}}

	result := Simulate(state, []RepairOption{a, b})
	if result.Cost.Low != 400 || result.Cost.High != 700 {
		t.Fatalf("costs must add at full value: %+v", result.Cost)
	}
}

func TestSimulateScoreCeilingWithoutReplacement(t *testing.T) {
	state := RepairState{HealthScore: 90, AgingFactor: 1.2, FailureProbability: 15}
	big := RepairOption{ID: "big", Impact: RepairImpact{ScoreDelta: 50}}

	result := Simulate(state, []RepairOption{big, big})
	if result.HealthScore > simScoreCeiling {
		t.Fatalf("partial repairs must never reach as-new: %v", result.HealthScore)
	}
}

func TestSimulateFloorsRiskAndAging(t *testing.T) {
	state := RepairState{HealthScore: 70, AgingFactor: 1.05, FailureProbability: 3}
	deep := RepairOption{ID: "deep", Impact: RepairImpact{AgingReductionPct: 90, FailureReductionPct: 90}}

	result := Simulate(state, []RepairOption{deep})
	if result.FailureProbability < simFailureFloor {
		t.Fatalf("failure probability floored above zero, got %v", result.FailureProbability)
	}
	if result.AgingFactor < simAgingFloor {
		t.Fatalf("aging factor floored at %v, got %v", simAgingFloor, result.AgingFactor)
	}
}

func TestSimulateBadgeBreakpoints(t *testing.T) {
	cases := []struct {
		score float64
		want  Badge
	}{
		{95, BadgeOptimal},
		{85, BadgeOptimal},
		{70, BadgeWatch},
		{50, BadgeService},
		{20, BadgeCritical},
	}
	for _, tc := range cases {
		if got := badgeForScore(tc.score); got != tc.want {
			t.Fatalf("badgeForScore(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
