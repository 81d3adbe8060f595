package forensics

// Safety gate bounds for the eligibility engine. These are policy, not
// tuning: relaxing any of them offers work that can damage the unit.
const (
	// Flush band: below the lower bound there is nothing to flush
	// ("ghost flush"); above the upper bound disturbing the pile risks
	// puncturing a corroded tank bottom ("killer flush").
	flushMinSedimentLbs = 2.0
	flushMaxSedimentLbs = 15.0
	// Fragility bounds for the killer-flush gate.
	flushFragilityProbability = 60.0
	flushFragilityBioAge      = 15.0

	// Anode swaps only pay off on young tanks; wrenching on corroded
	// fittings past the fragility age creates new leaks.
	anodeDepletedYears     = 1.0
	anodeFragilityAgeYears = 8.0

	// Tankless descale triggers.
	descaleScaleThreshold   = 4.0
	descaleFlowThresholdPct = 15.0

	// Gas burner service trigger.
	burnerIgniterThresholdPct = 70.0
)

var tankCategories = []FuelCategory{FuelTankGas, FuelTankElectric, FuelHybridHeatPump}
var allCategories = []FuelCategory{FuelTankGas, FuelTankElectric, FuelTanklessGas, FuelTanklessElectric, FuelHybridHeatPump}
var gasCategories = []FuelCategory{FuelTankGas, FuelTanklessGas}
var tanklessCategories = []FuelCategory{FuelTanklessGas, FuelTanklessElectric}
var hybridCategories = []FuelCategory{FuelHybridHeatPump}

// repairCatalog is the static option table. Eligibility never invents an
// option; it only selects and orders entries from here.
var repairCatalog = map[RepairID]RepairOption{
	RepairReplaceTankGas: {
		ID: RepairReplaceTankGas, Name: "Replace gas tank water heater",
		AppliesTo: []FuelCategory{FuelTankGas},
		Cost:      CostRange{Low: 1400, High: 2400}, FullReplacement: true,
	},
	RepairReplaceTankElectric: {
		ID: RepairReplaceTankElectric, Name: "Replace electric tank water heater",
		AppliesTo: []FuelCategory{FuelTankElectric},
		Cost:      CostRange{Low: 1200, High: 2000}, FullReplacement: true,
	},
	RepairReplaceTankless: {
		ID: RepairReplaceTankless, Name: "Replace tankless water heater",
		AppliesTo: tanklessCategories,
		Cost:      CostRange{Low: 2800, High: 4500}, FullReplacement: true,
	},
	RepairReplaceHybrid: {
		ID: RepairReplaceHybrid, Name: "Replace hybrid heat-pump water heater",
		AppliesTo: hybridCategories,
		Cost:      CostRange{Low: 3200, High: 5200}, FullReplacement: true,
	},
	RepairIsolationValves: {
		ID: RepairIsolationValves, Name: "Install isolation valve kit",
		AppliesTo: tanklessCategories,
		Cost:      CostRange{Low: 300, High: 450},
		Impact:    RepairImpact{ScoreDelta: 3, FailureReductionPct: 2},
	},
	RepairDescale: {
		ID: RepairDescale, Name: "Descale heat exchanger",
		AppliesTo: tanklessCategories,
		Cost:      CostRange{Low: 200, High: 350},
		Impact:    RepairImpact{ScoreDelta: 10, AgingReductionPct: 12, FailureReductionPct: 15},
	},
	RepairInletFilter: {
		ID: RepairInletFilter, Name: "Service inlet filter",
		AppliesTo: tanklessCategories,
		Cost:      CostRange{Low: 90, High: 150},
		Impact:    RepairImpact{ScoreDelta: 4, FailureReductionPct: 3},
	},
	RepairFlush: {
		ID: RepairFlush, Name: "Flush and drain tank",
		AppliesTo: tankCategories,
		Cost:      CostRange{Low: 150, High: 250},
		Impact:    RepairImpact{ScoreDelta: 8, AgingReductionPct: 10, FailureReductionPct: 12},
	},
	RepairAnode: {
		ID: RepairAnode, Name: "Replace sacrificial anode rod",
		AppliesTo: tankCategories,
		Cost:      CostRange{Low: 200, High: 350},
		Impact:    RepairImpact{ScoreDelta: 12, AgingReductionPct: 15, FailureReductionPct: 20},
	},
	RepairPRV: {
		ID: RepairPRV, Name: "Install pressure reducing valve",
		AppliesTo: allCategories,
		Cost:      CostRange{Low: 350, High: 550},
		Impact:    RepairImpact{ScoreDelta: 6, AgingReductionPct: 20, FailureReductionPct: 8},
	},
	RepairExpansionTank: {
		ID: RepairExpansionTank, Name: "Install thermal expansion tank",
		AppliesTo: allCategories,
		Cost:      CostRange{Low: 250, High: 400},
		Impact:    RepairImpact{ScoreDelta: 5, AgingReductionPct: 15, FailureReductionPct: 6},
	},
	RepairPRVExpansionBundle: {
		ID: RepairPRVExpansionBundle, Name: "Install pressure reducing valve with expansion tank",
		AppliesTo: allCategories,
		Cost:      CostRange{Low: 550, High: 900},
		Impact:    RepairImpact{ScoreDelta: 10, AgingReductionPct: 30, FailureReductionPct: 12},
	},
	RepairBurnerService: {
		ID: RepairBurnerService, Name: "Service burner assembly",
		AppliesTo: gasCategories,
		Cost:      CostRange{Low: 150, High: 300},
		Impact:    RepairImpact{ScoreDelta: 6, AgingReductionPct: 5, FailureReductionPct: 8},
	},
	RepairAirFilter: {
		ID: RepairAirFilter, Name: "Service heat-pump air filter",
		AppliesTo: hybridCategories,
		Cost:      CostRange{Low: 80, High: 140},
		Impact:    RepairImpact{ScoreDelta: 4, FailureReductionPct: 3},
	},
	RepairCondensate: {
		ID: RepairCondensate, Name: "Clear condensate drain",
		AppliesTo: hybridCategories,
		Cost:      CostRange{Low: 100, High: 180},
		Impact:    RepairImpact{ScoreDelta: 4, FailureReductionPct: 4},
	},
}

// CatalogOption looks up a catalog entry by id.
func CatalogOption(id RepairID) (RepairOption, bool) {
	opt, ok := repairCatalog[id]
	return opt, ok
}

// replacementFor returns the full-replacement option for a category.
func replacementFor(f FuelCategory) RepairOption {
	switch f {
	case FuelTankGas:
		return repairCatalog[RepairReplaceTankGas]
	case FuelTankElectric:
		return repairCatalog[RepairReplaceTankElectric]
	case FuelTanklessGas, FuelTanklessElectric:
		return repairCatalog[RepairReplaceTankless]
	default:
		return repairCatalog[RepairReplaceHybrid]
	}
}

// EligibleRepairs returns the safe, ordered subset of remediation options for
// the unit. Every gate here is safety policy:
//
//   - REPLACE verdicts return only the full replacement; partial work is
//     never offered alongside a required replacement.
//   - A pressure regulator is offered alone only when expansion protection is
//     already present; otherwise the regulator and expansion tank are one
//     bundled option, so the unsafe combination cannot be selected.
//   - Flush is gated to the serviceable sediment band and to non-fragile
//     tanks.
//   - Anode swaps stop at the fragility age regardless of shield state.
//   - On tankless units missing isolation valves, the valve kit is the first
//     item offered and descaling is withheld until valves exist.
func EligibleRepairs(rec InspectionRecord, m DegradationMetrics, v Verdict) []RepairOption {
	rec = rec.Normalized()

	if v.Action == ActionReplace || v.Action == ActionUrgent {
		return []RepairOption{replacementFor(rec.Fuel)}
	}

	var out []RepairOption
	add := func(id RepairID) {
		out = append(out, repairCatalog[id])
	}

	if rec.Fuel.IsTankless() {
		if !rec.IsolationValves {
			add(RepairIsolationValves)
		} else if rec.Telemetry.ScaleScore >= descaleScaleThreshold ||
			rec.Telemetry.FlowDegradationPct >= descaleFlowThresholdPct {
			add(RepairDescale)
		}
		if rec.Telemetry.InletFilter != FilterClean {
			add(RepairInletFilter)
		}
	}

	if rec.Fuel.IsTank() {
		if flushEligible(m) {
			add(RepairFlush)
		}
		if m.ShieldLifeYears < anodeDepletedYears && rec.AgeYears < anodeFragilityAgeYears {
			add(RepairAnode)
		}
	}

	if rec.PressurePSI > safePressurePSI && !rec.PRVPresent {
		// Installing a regulator closes the system, so expansion
		// protection must exist or ride along in the same line item.
		if rec.ExpansionTank {
			add(RepairPRV)
		} else {
			add(RepairPRVExpansionBundle)
		}
	} else if rec.ClosedLoop && !rec.ExpansionTank {
		add(RepairExpansionTank)
	}

	if rec.Fuel.IsGas() &&
		(rec.Telemetry.FlameSensor != SensorGood || *rec.Telemetry.IgniterHealthPct < burnerIgniterThresholdPct) {
		add(RepairBurnerService)
	}

	if rec.Fuel == FuelHybridHeatPump {
		if rec.Telemetry.AirFilter != FilterClean {
			add(RepairAirFilter)
		}
		if !*rec.Telemetry.CondensateClear {
			add(RepairCondensate)
		}
	}

	return out
}

func flushEligible(m DegradationMetrics) bool {
	if m.SedimentLbs <= flushMinSedimentLbs || m.SedimentLbs > flushMaxSedimentLbs {
		return false
	}
	if m.FailureProbability >= flushFragilityProbability {
		return false
	}
	return m.BiologicalAge < flushFragilityBioAge
}
