package forensics

import "fmt"

// Verdict thresholds. A unit past replaceProbability is quoted for
// replacement; past urgentProbability the margin makes it urgent.
const (
	replaceProbability = 70.0
	urgentProbability  = 85.0
	watchProbability   = 50.0
)

// ComputeVerdict reduces a record and its metrics to a single recommendation.
// Rules apply in priority order, first match wins. Pure and idempotent: the
// same inputs always produce the same verdict.
func ComputeVerdict(rec InspectionRecord, m DegradationMetrics) Verdict {
	rec = rec.Normalized()

	// 1. Observed breach overrides every model output.
	if rec.ActiveLeak {
		return Verdict{
			Action: ActionUrgent,
			Badge:  BadgeCritical,
			Urgent: true,
			Reason: "Active leak observed; the vessel has already failed and must be replaced immediately.",
		}
	}
	if rec.VisibleRust {
		return Verdict{
			Action: ActionReplace,
			Badge:  BadgeCritical,
			Urgent: true,
			Reason: "Visible rust on the tank or fittings indicates the corrosion barrier is breached.",
		}
	}

	// 2. Model-driven replacement.
	lifespan := ExpectedLifespanYears(rec.Fuel)
	if m.FailureProbability >= replaceProbability || m.BiologicalAge >= lifespan {
		urgent := m.FailureProbability >= urgentProbability
		return Verdict{
			Action: ActionReplace,
			Badge:  BadgeCritical,
			Urgent: urgent,
			Reason: fmt.Sprintf("Failure probability %.0f%% at biological age %.1f years exceeds the %.0f-year design lifespan window.",
				m.FailureProbability, m.BiologicalAge, lifespan),
		}
	}

	// 3. Open infrastructure findings without a replacement trigger.
	issues := DetectIssues(rec, m)
	if hasViolation(issues) {
		return Verdict{
			Action: ActionRepair,
			Badge:  BadgeService,
			Reason: "Code-compliance violations detected; corrective work is required before the unit can pass.",
		}
	}
	if hasInfrastructure(issues) {
		return Verdict{
			Action: ActionUpgrade,
			Badge:  BadgeService,
			Reason: "Supporting infrastructure is incomplete; upgrades are recommended to protect the unit.",
		}
	}

	// 4. Routine wear.
	if maintenanceDue(rec, m) {
		badge := BadgeService
		if m.FailureProbability >= watchProbability {
			badge = BadgeWatch
		}
		return Verdict{
			Action: ActionMaintain,
			Badge:  badge,
			Reason: "Routine maintenance is due based on sediment load, shield life, or telemetry readings.",
		}
	}

	return Verdict{
		Action: ActionPass,
		Badge:  BadgeOptimal,
		Reason: "Unit is within design parameters; no action required.",
	}
}

// maintenanceDue reports whether any routine service item is outstanding.
// Mirrors the eligibility gates so MAINTAIN verdicts always come with at
// least one offered repair.
func maintenanceDue(rec InspectionRecord, m DegradationMetrics) bool {
	if rec.Fuel.IsTank() && m.SedimentLbs > flushMinSedimentLbs && m.SedimentLbs <= flushMaxSedimentLbs {
		return true
	}
	if rec.Fuel.IsTank() && m.ShieldLifeYears < anodeDepletedYears && rec.AgeYears < anodeFragilityAgeYears {
		return true
	}
	t := rec.Telemetry
	if rec.Fuel.IsTankless() {
		if !rec.IsolationValves {
			return true
		}
		if t.ScaleScore >= descaleScaleThreshold || t.FlowDegradationPct >= descaleFlowThresholdPct {
			return true
		}
		if t.InletFilter != FilterClean {
			return true
		}
	}
	if rec.Fuel.IsGas() && (t.FlameSensor != SensorGood || *t.IgniterHealthPct < burnerIgniterThresholdPct) {
		return true
	}
	if rec.Fuel == FuelHybridHeatPump && (t.AirFilter != FilterClean || !*t.CondensateClear) {
		return true
	}
	return false
}
