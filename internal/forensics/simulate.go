package forensics

import "math"

// Simulator bounds. A repaired unit never reads as new: the score ceiling
// stays below 100 and risk floors stay above zero unless the whole unit is
// replaced.
const (
	simScoreCeiling        = 95.0
	simFailureFloor        = 2.0
	simAgingFloor          = 1.0
	simDiminishingStep     = 0.2
	replacementScore       = 100.0
	replacementFailurePct  = simFailureFloor
	replacementAgingFactor = 1.0
)

// Simulate projects the post-repair state for an ordered selection of
// options. The empty selection is the identity. A full replacement
// short-circuits: the result is the as-new state and only the replacement's
// cost is charged, whatever else was selected. Otherwise each option's effect
// is scaled by 1/(1+0.2i) for its position i, modeling diminishing returns
// from stacking partial repairs, while costs accumulate at full value.
func Simulate(state RepairState, selected []RepairOption) SimulatedResult {
	if len(selected) == 0 {
		return SimulatedResult{
			HealthScore:        state.HealthScore,
			AgingFactor:        state.AgingFactor,
			FailureProbability: state.FailureProbability,
			Badge:              badgeForScore(state.HealthScore),
		}
	}

	for _, opt := range selected {
		if opt.FullReplacement {
			return SimulatedResult{
				HealthScore:        replacementScore,
				AgingFactor:        replacementAgingFactor,
				FailureProbability: replacementFailurePct,
				Badge:              badgeForScore(replacementScore),
				Cost:               opt.Cost,
			}
		}
	}

	var scoreDelta, agingReduction, failureReduction float64
	var cost CostRange
	for i, opt := range selected {
		scale := 1.0 / (1.0 + simDiminishingStep*float64(i))
		scoreDelta += opt.Impact.ScoreDelta * scale
		agingReduction += opt.Impact.AgingReductionPct * scale
		failureReduction += opt.Impact.FailureReductionPct * scale
		cost = cost.Add(opt.Cost)
	}

	score := math.Min(state.HealthScore+scoreDelta, simScoreCeiling)
	aging := math.Max(state.AgingFactor*(1.0-agingReduction/100.0), simAgingFloor)
	failure := math.Max(state.FailureProbability*(1.0-failureReduction/100.0), simFailureFloor)

	return SimulatedResult{
		HealthScore:        round1(score),
		AgingFactor:        round1(aging),
		FailureProbability: round1(failure),
		Badge:              badgeForScore(score),
		Cost:               cost,
	}
}

// badgeForScore re-derives the status tier from fixed score breakpoints.
func badgeForScore(score float64) Badge {
	switch {
	case score >= 85:
		return BadgeOptimal
	case score >= 65:
		return BadgeWatch
	case score >= 40:
		return BadgeService
	default:
		return BadgeCritical
	}
}
