package forensics

// issueRule is one independent predicate over the record and metrics. Rules
// are additive and evaluated in a fixed order so the detected list is stable
// for downstream rendering and pricing.
type issueRule struct {
	issue InfrastructureIssue
	match func(rec InspectionRecord, m DegradationMetrics) bool
}

var issueRules = []issueRule{
	{
		issue: InfrastructureIssue{
			ID:          "excess_pressure",
			Category:    CategoryViolation,
			Name:        "Excess static pressure",
			Remediation: "Install pressure reducing valve",
			Cost:        CostRange{Low: 350, High: 550},
			MinTier:     TierGood,
		},
		match: func(rec InspectionRecord, _ DegradationMetrics) bool {
			return rec.PressurePSI > safePressurePSI && !rec.PRVPresent
		},
	},
	{
		issue: InfrastructureIssue{
			ID:          "missing_expansion_protection",
			Category:    CategoryViolation,
			Name:        "Missing thermal expansion protection",
			Remediation: "Install thermal expansion tank",
			Cost:        CostRange{Low: 250, High: 400},
			MinTier:     TierGood,
		},
		// A PRV closes the system just like check-valved plumbing does,
		// so either condition demands expansion protection.
		match: func(rec InspectionRecord, _ DegradationMetrics) bool {
			return (rec.ClosedLoop || rec.PRVPresent) && !rec.ExpansionTank
		},
	},
	{
		issue: InfrastructureIssue{
			ID:          "vent_obstruction",
			Category:    CategoryViolation,
			Name:        "Obstructed exhaust venting",
			Remediation: "Clear and re-pitch vent run",
			Cost:        CostRange{Low: 200, High: 400},
			MinTier:     TierGood,
		},
		match: func(rec InspectionRecord, _ DegradationMetrics) bool {
			return rec.Fuel.IsGas() && rec.Telemetry.Vent != VentClear
		},
	},
	{
		issue: InfrastructureIssue{
			ID:          "missing_isolation_valves",
			Category:    CategoryInfrastructure,
			Name:        "Missing isolation valves",
			Remediation: "Install isolation valve kit",
			Cost:        CostRange{Low: 300, High: 450},
			MinTier:     TierBetter,
		},
		match: func(rec InspectionRecord, _ DegradationMetrics) bool {
			return rec.Fuel.IsTankless() && !rec.IsolationValves
		},
	},
	{
		issue: InfrastructureIssue{
			ID:          "missing_leak_protection",
			Category:    CategoryInfrastructure,
			Name:        "No leak protection over finished space",
			Remediation: "Install drain pan and leak shutoff",
			Cost:        CostRange{Low: 250, High: 450},
			MinTier:     TierBetter,
		},
		match: func(rec InspectionRecord, m DegradationMetrics) bool {
			return rec.FinishedArea && m.LocationRisk >= 3
		},
	},
	{
		issue: InfrastructureIssue{
			ID:          "scald_risk",
			Category:    CategoryRecommendation,
			Name:        "Scald-risk thermostat setting",
			Remediation: "Install thermostatic mixing valve",
			Cost:        CostRange{Low: 150, High: 300},
			MinTier:     TierBest,
		},
		match: func(rec InspectionRecord, _ DegradationMetrics) bool {
			return rec.ThermostatTier == ThermostatHot
		},
	},
	{
		issue: InfrastructureIssue{
			ID:          "hard_water_untreated",
			Category:    CategoryRecommendation,
			Name:        "Untreated hard water",
			Remediation: "Install water softener",
			Cost:        CostRange{Low: 1200, High: 2500},
			MinTier:     TierPremium,
		},
		match: func(rec InspectionRecord, _ DegradationMetrics) bool {
			return rec.HardnessGPG >= 10 && !rec.SoftenerPresent
		},
	},
}

// DetectIssues evaluates every issue rule against the record and metrics and
// returns matches in rule order. Pure and deterministic.
func DetectIssues(rec InspectionRecord, m DegradationMetrics) []InfrastructureIssue {
	rec = rec.Normalized()
	out := make([]InfrastructureIssue, 0, len(issueRules))
	for _, rule := range issueRules {
		if rule.match(rec, m) {
			out = append(out, rule.issue)
		}
	}
	return out
}

// BundledIssueCost sums the remediation cost of issues that must be folded
// into a quote at the given tier.
func BundledIssueCost(issues []InfrastructureIssue, tier Tier) CostRange {
	var total CostRange
	for _, issue := range issues {
		if TierAtLeast(tier, issue.MinTier) {
			total = total.Add(issue.Cost)
		}
	}
	return total
}

func hasViolation(issues []InfrastructureIssue) bool {
	for _, issue := range issues {
		if issue.Category == CategoryViolation {
			return true
		}
	}
	return false
}

func hasInfrastructure(issues []InfrastructureIssue) bool {
	for _, issue := range issues {
		if issue.Category == CategoryInfrastructure {
			return true
		}
	}
	return false
}
