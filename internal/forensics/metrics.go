package forensics

import (
	"math"
	"time"
)

// Pressure stress ("Buffer Zone Model"): below safePressurePSI the vessel's
// compressive pre-stress absorbs line pressure entirely. Above it the penalty
// grows quadratically: 100 PSI doubles aging, 120 PSI quintuples it.
const (
	safePressurePSI  = 80.0
	pressureDivisor  = 20.0
	bioAgeCeiling    = 20.0
	failureCurveRate = 0.45
)

// Thermal multipliers per thermostat tier. Monotonic, never below 1.0.
const (
	thermalLow    = 1.0
	thermalNormal = 1.15
	thermalHot    = 1.4
)

const (
	circulationStress = 1.25
	loopHammerStress  = 1.3
)

// Sediment accumulation coefficients (lbs per year per grain of hardness).
// Electric elements run hotter at the tank bottom and precipitate minerals
// faster than gas burners; tankless units scale rather than silt.
const (
	sedimentCoeffElectric = 0.08
	sedimentCoeffGas      = 0.044
	sedimentCoeffTankless = 0.01
)

// Anode consumption model.
const (
	anodeBaseLifeYears   = 6.0
	anodeSoftenerPenalty = 0.5
	anodeRecircPenalty   = 0.25
)

// Flush credit time-decay: full credit inside a year, linear decay out to
// flushDecayYears, floor weight beyond that.
const (
	flushFullCreditYears = 1.0
	flushDecayYears      = 4.0
	flushFloorWeight     = 0.2
)

// ExpectedLifespanYears is the design lifespan ceiling per fuel category.
func ExpectedLifespanYears(f FuelCategory) float64 {
	switch f {
	case FuelTanklessGas, FuelTanklessElectric:
		return 20
	case FuelHybridHeatPump:
		return 13
	default:
		return 12
	}
}

// ComputeMetrics derives degradation metrics from an inspection record.
// It is a total function: every well-typed record yields a value. The
// reference time is explicit so history weighting stays deterministic.
func ComputeMetrics(rec InspectionRecord, now time.Time) DegradationMetrics {
	rec = rec.Normalized()

	stress := computeStress(rec)
	bioAge := math.Min(rec.AgeYears*stress.Total, bioAgeCeiling)
	if bioAge < 0 {
		bioAge = 0
	}

	failure := failureProbability(bioAge, rec.Fuel)
	sediment := sedimentLoad(rec, now)
	shield := shieldLifeYears(rec, now)
	locRisk := locationRiskLevel(rec.Location, rec.FinishedArea)

	return DegradationMetrics{
		BiologicalAge:      round1(bioAge),
		FailureProbability: round1(failure),
		SedimentLbs:        round1(sediment),
		ShieldLifeYears:    round1(shield),
		Stress:             stress,
		LocationRisk:       locRisk,
		HealthScore:        healthScore(rec, failure, sediment, shield, locRisk),
	}
}

func computeStress(rec InspectionRecord) StressFactors {
	f := StressFactors{
		Pressure:    pressureStress(rec.PressurePSI),
		Thermal:     thermalStress(rec.ThermostatTier),
		Circulation: 1.0,
		Loop:        1.0,
	}
	if rec.RecircPump && !rec.RecircDemandControl {
		f.Circulation = circulationStress
	}
	if rec.ClosedLoop && !rec.ExpansionTank {
		f.Loop = loopHammerStress
	}
	f.Total = f.Pressure * f.Thermal * f.Circulation * f.Loop
	return f
}

func pressureStress(psi float64) float64 {
	if psi <= safePressurePSI {
		return 1.0
	}
	over := (psi - safePressurePSI) / pressureDivisor
	return 1.0 + over*over
}

func thermalStress(tier ThermostatTier) float64 {
	switch tier {
	case ThermostatHot:
		return thermalHot
	case ThermostatLow:
		return thermalLow
	default:
		return thermalNormal
	}
}

// failureProbability maps biological age onto a 0-100 logistic curve centered
// at the category's expected lifespan: ~1% near install, 50% at lifespan,
// saturating toward 100% for very old or stressed units.
func failureProbability(bioAge float64, fuel FuelCategory) float64 {
	midpoint := ExpectedLifespanYears(fuel)
	p := 100.0 / (1.0 + math.Exp(-failureCurveRate*(bioAge-midpoint)))
	return clamp(p, 0, 100)
}

func sedimentCoeff(f FuelCategory) float64 {
	switch {
	case f.IsTankless():
		return sedimentCoeffTankless
	case f == FuelTankGas:
		return sedimentCoeffGas
	default:
		return sedimentCoeffElectric
	}
}

// sedimentLoad accumulates mineral deposit over the unit's life, then credits
// the most recent flush. Credit is time-weighted: a flush within the last
// year removes what had accumulated up to it in full; trust in older flushes
// decays out to four years and bottoms out at a floor weight.
func sedimentLoad(rec InspectionRecord, now time.Time) float64 {
	rate := rec.HardnessGPG * sedimentCoeff(rec.Fuel)
	raw := rec.AgeYears * rate
	if raw <= 0 {
		return 0
	}

	flushedAt, ok := latestEvent(rec.History, EventFlush, now)
	if !ok {
		return raw
	}
	yearsSince := yearsBetween(flushedAt, now)
	yearsBefore := rec.AgeYears - yearsSince
	if yearsBefore <= 0 {
		return raw
	}
	credit := flushCreditWeight(yearsSince) * yearsBefore * rate
	return math.Max(raw-credit, 0)
}

func flushCreditWeight(yearsSince float64) float64 {
	switch {
	case yearsSince < flushFullCreditYears:
		return 1.0
	case yearsSince >= flushDecayYears:
		return flushFloorWeight
	default:
		span := flushDecayYears - flushFullCreditYears
		progress := (yearsSince - flushFullCreditYears) / span
		return 1.0 - progress*(1.0-flushFloorWeight)
	}
}

// shieldLifeYears is the remaining life of the sacrificial anode. Softened
// water and continuous recirculation both consume the rod faster. A
// replacement event restarts the clock; the result may be negative.
func shieldLifeYears(rec InspectionRecord, now time.Time) float64 {
	yearsOnRod := rec.AgeYears
	if replacedAt, ok := latestEvent(rec.History, EventAnodeReplacement, now); ok {
		since := yearsBetween(replacedAt, now)
		if since < yearsOnRod {
			yearsOnRod = since
		}
	}
	if yearsOnRod < 0 {
		yearsOnRod = 0
	}

	rate := 1.0
	if rec.SoftenerPresent {
		rate += anodeSoftenerPenalty
	}
	if rec.RecircPump && !rec.RecircDemandControl {
		rate += anodeRecircPenalty
	}
	return anodeBaseLifeYears - yearsOnRod*rate
}

func locationRiskLevel(loc Location, finished bool) int {
	level := 0
	switch loc {
	case LocationAttic:
		level = 4
	case LocationUpperFloor:
		level = 3
	case LocationMainLiving:
		level = 2
	case LocationBasement, LocationCrawlspace:
		level = 1
	case LocationGarage, LocationExterior:
		level = 0
	}
	if finished && level < 4 {
		level++
	}
	return level
}

// healthScore is the composite inverse of failure risk plus penalty terms,
// bounded to [0,100].
func healthScore(rec InspectionRecord, failure, sediment, shield float64, locRisk int) float64 {
	score := 100.0 - failure
	score -= math.Min(sediment, 20) * 0.75
	score -= float64(locRisk) * 1.5
	if shield < 0 {
		score -= 5
	}
	if rec.VisibleRust {
		score -= 20
	}
	if rec.ActiveLeak {
		score -= 40
	}
	return round1(clamp(score, 0, 100))
}

func latestEvent(history []ServiceEvent, kind ServiceEventType, now time.Time) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, ev := range history {
		if ev.Type != kind || ev.Date.After(now) {
			continue
		}
		if !found || ev.Date.After(latest) {
			latest = ev.Date
			found = true
		}
	}
	return latest, found
}

func yearsBetween(from, to time.Time) float64 {
	const hoursPerYear = 24 * 365.25
	return to.Sub(from).Hours() / hoursPerYear
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
