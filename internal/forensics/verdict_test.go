package forensics

import (
	"strings"
	"testing"
)

func TestVerdictActiveLeakOverridesEverything(t *testing.T) {
	rec := baseRecord()
	rec.AgeYears = 1
	rec.ActiveLeak = true

	m := ComputeMetrics(rec, testNow)
	v := ComputeVerdict(rec, m)
	if v.Action != ActionUrgent {
		t.Fatalf("action = %s, want URGENT", v.Action)
	}
	if v.Badge != BadgeCritical || !v.Urgent {
		t.Fatalf("active leak should be critical and urgent: %+v", v)
	}
	if !strings.Contains(strings.ToLower(v.Reason), "leak") {
		t.Fatalf("reason should reference the observed breach: %q", v.Reason)
	}
}

func TestVerdictVisibleRustReplaces(t *testing.T) {
	rec := baseRecord()
	rec.AgeYears = 2
	rec.VisibleRust = true

	v := ComputeVerdict(rec, ComputeMetrics(rec, testNow))
	if v.Action != ActionReplace || v.Badge != BadgeCritical || !v.Urgent {
		t.Fatalf("visible rust should force urgent replacement: %+v", v)
	}
	if !strings.Contains(strings.ToLower(v.Reason), "rust") {
		t.Fatalf("reason should reference the observed breach: %q", v.Reason)
	}
}

func TestVerdictReplaceOnHighFailureProbability(t *testing.T) {
	rec := baseRecord()
	rec.AgeYears = 14
	rec.PressurePSI = 110
	rec.ThermostatTier = ThermostatHot

	m := ComputeMetrics(rec, testNow)
	if m.FailureProbability < urgentProbability {
		t.Fatalf("test setup: failure probability %v should exceed urgent threshold", m.FailureProbability)
	}
	v := ComputeVerdict(rec, m)
	if v.Action != ActionReplace || !v.Urgent {
		t.Fatalf("deep margin past threshold should be urgent replace: %+v", v)
	}
}

func TestVerdictReplaceAtLifespanCeiling(t *testing.T) {
	rec := baseRecord()
	rec.AgeYears = 13

	m := ComputeMetrics(rec, testNow)
	v := ComputeVerdict(rec, m)
	if v.Action != ActionReplace {
		t.Fatalf("unit past design lifespan should be replaced: %+v (metrics %+v)", v, m)
	}
}

func TestVerdictRepairOnViolation(t *testing.T) {
	rec := baseRecord()
	rec.AgeYears = 3
	rec.PressurePSI = 95 // violation, but stress still moderate

	m := ComputeMetrics(rec, testNow)
	v := ComputeVerdict(rec, m)
	if v.Action != ActionRepair || v.Badge != BadgeService {
		t.Fatalf("open violation without replacement trigger should REPAIR/SERVICE: %+v", v)
	}
}

func TestVerdictUpgradeOnInfrastructureOnly(t *testing.T) {
	rec := baseRecord()
	rec.AgeYears = 2
	rec.Fuel = FuelTanklessGas
	rec.IsolationValves = false

	m := ComputeMetrics(rec, testNow)
	v := ComputeVerdict(rec, m)
	if v.Action != ActionUpgrade || v.Badge != BadgeService {
		t.Fatalf("infrastructure-only findings should UPGRADE/SERVICE: %+v", v)
	}
}

func TestVerdictMaintainWhenServiceDue(t *testing.T) {
	rec := baseRecord()
	rec.AgeYears = 5
	rec.HardnessGPG = 20 // sediment in the serviceable band

	m := ComputeMetrics(rec, testNow)
	if !(m.SedimentLbs > flushMinSedimentLbs && m.SedimentLbs <= flushMaxSedimentLbs) {
		t.Fatalf("test setup: sediment %v not in serviceable band", m.SedimentLbs)
	}
	v := ComputeVerdict(rec, m)
	if v.Action != ActionMaintain {
		t.Fatalf("serviceable sediment should MAINTAIN: %+v", v)
	}
}

func TestVerdictPassOnHealthyUnit(t *testing.T) {
	rec := baseRecord()
	rec.AgeYears = 1
	rec.HardnessGPG = 2

	v := ComputeVerdict(rec, ComputeMetrics(rec, testNow))
	if v.Action != ActionPass || v.Badge != BadgeOptimal {
		t.Fatalf("healthy young unit should PASS/OPTIMAL: %+v", v)
	}
}

func TestVerdictIdempotent(t *testing.T) {
	rec := baseRecord()
	rec.AgeYears = 8
	rec.PressurePSI = 92
	m := ComputeMetrics(rec, testNow)

	first := ComputeVerdict(rec, m)
	second := ComputeVerdict(rec, m)
	if first != second {
		t.Fatalf("verdict not idempotent: %+v vs %+v", first, second)
	}
}
