package forensics

import "time"

// FuelCategory identifies the unit class under inspection.
type FuelCategory string

const (
	FuelTankGas          FuelCategory = "tank_gas"
	FuelTankElectric     FuelCategory = "tank_electric"
	FuelTanklessGas      FuelCategory = "tankless_gas"
	FuelTanklessElectric FuelCategory = "tankless_electric"
	FuelHybridHeatPump   FuelCategory = "hybrid_heat_pump"
)

// IsTank reports whether the category has a storage tank and an anode rod.
func (f FuelCategory) IsTank() bool {
	switch f {
	case FuelTankGas, FuelTankElectric, FuelHybridHeatPump:
		return true
	default:
		return false
	}
}

// IsTankless reports whether the category is an on-demand unit.
func (f FuelCategory) IsTankless() bool {
	return f == FuelTanklessGas || f == FuelTanklessElectric
}

// IsGas reports whether the category burns fuel.
func (f FuelCategory) IsGas() bool {
	return f == FuelTankGas || f == FuelTanklessGas
}

// Location is where the unit is installed.
type Location string

const (
	LocationAttic      Location = "attic"
	LocationUpperFloor Location = "upper_floor"
	LocationMainLiving Location = "main_living"
	LocationBasement   Location = "basement"
	LocationGarage     Location = "garage"
	LocationExterior   Location = "exterior"
	LocationCrawlspace Location = "crawlspace"
)

// ThermostatTier is the observed thermostat setting band.
type ThermostatTier string

const (
	ThermostatLow    ThermostatTier = "low"
	ThermostatNormal ThermostatTier = "normal"
	ThermostatHot    ThermostatTier = "hot"
)

// VentingCategory classifies the exhaust arrangement of gas units.
type VentingCategory string

const (
	VentingNone        VentingCategory = "none"
	VentingAtmospheric VentingCategory = "atmospheric"
	VentingPower       VentingCategory = "power"
	VentingDirect      VentingCategory = "direct"
)

// FilterCondition describes an inlet or air filter.
type FilterCondition string

const (
	FilterClean   FilterCondition = "clean"
	FilterDirty   FilterCondition = "dirty"
	FilterClogged FilterCondition = "clogged"
)

// SensorCondition describes a flame sensor.
type SensorCondition string

const (
	SensorGood    SensorCondition = "good"
	SensorSooted  SensorCondition = "sooted"
	SensorFailing SensorCondition = "failing"
)

// VentCondition describes the observed state of the vent run.
type VentCondition string

const (
	VentClear      VentCondition = "clear"
	VentRestricted VentCondition = "restricted"
	VentBlocked    VentCondition = "blocked"
)

// ServiceEventType tags a dated maintenance event.
type ServiceEventType string

const (
	EventFlush            ServiceEventType = "flush"
	EventAnodeReplacement ServiceEventType = "anode_replacement"
)

// ServiceEvent is a dated maintenance record supplied by the service-history
// collaborator. Dates in the future of the reference time are ignored.
type ServiceEvent struct {
	Type ServiceEventType `json:"type"`
	Date time.Time        `json:"date"`
}

// Telemetry carries unit-specific readings from the inspection. Fields left
// at their zero value are treated as unreported and normalized to optimistic
// defaults (clean/clear/good, 100% health) by Normalized.
type Telemetry struct {
	InletFilter         FilterCondition `json:"inletFilter,omitempty"`
	FlameSensor         SensorCondition `json:"flameSensor,omitempty"`
	Vent                VentCondition   `json:"vent,omitempty"`
	IgniterHealthPct    *float64        `json:"igniterHealthPct,omitempty"`
	ScaleScore          float64         `json:"scaleScore,omitempty"`
	FlowDegradationPct  float64         `json:"flowDegradationPct,omitempty"`
	AirFilter           FilterCondition `json:"airFilter,omitempty"`
	CondensateClear     *bool           `json:"condensateClear,omitempty"`
	CompressorHealthPct *float64        `json:"compressorHealthPct,omitempty"`
}

// InspectionRecord is the immutable, validated input to the engine.
type InspectionRecord struct {
	AgeYears      float64      `json:"ageYears"`
	PressurePSI   float64      `json:"pressurePsi"`
	WarrantyYears int          `json:"warrantyYears"`
	Fuel          FuelCategory `json:"fuel"`
	HardnessGPG   float64      `json:"hardnessGpg"`
	CapacityGal   int          `json:"capacityGal"`

	Venting        VentingCategory `json:"venting,omitempty"`
	Location       Location        `json:"location"`
	FinishedArea   bool            `json:"finishedArea"`
	ThermostatTier ThermostatTier  `json:"thermostatTier,omitempty"`

	SoftenerPresent     bool `json:"softenerPresent"`
	RecircPump          bool `json:"recircPump"`
	RecircDemandControl bool `json:"recircDemandControl"`
	ClosedLoop          bool `json:"closedLoop"`
	ExpansionTank       bool `json:"expansionTank"`
	PRVPresent          bool `json:"prvPresent"`
	IsolationValves     bool `json:"isolationValves"`

	VisibleRust bool `json:"visibleRust"`
	ActiveLeak  bool `json:"activeLeak"`

	Telemetry Telemetry      `json:"telemetry"`
	History   []ServiceEvent `json:"history,omitempty"`
}

// Normalized returns a copy with unreported optional fields replaced by
// optimistic defaults. The engine never rejects a record for missing
// telemetry; it assumes the best, which can understate risk for sparsely
// reported units.
func (r InspectionRecord) Normalized() InspectionRecord {
	out := r
	if out.ThermostatTier == "" {
		out.ThermostatTier = ThermostatNormal
	}
	if out.Venting == "" {
		if out.Fuel.IsGas() {
			out.Venting = VentingAtmospheric
		} else {
			out.Venting = VentingNone
		}
	}
	t := &out.Telemetry
	if t.InletFilter == "" {
		t.InletFilter = FilterClean
	}
	if t.FlameSensor == "" {
		t.FlameSensor = SensorGood
	}
	if t.Vent == "" {
		t.Vent = VentClear
	}
	if t.AirFilter == "" {
		t.AirFilter = FilterClean
	}
	if t.IgniterHealthPct == nil {
		t.IgniterHealthPct = floatPtr(100)
	}
	if t.CompressorHealthPct == nil {
		t.CompressorHealthPct = floatPtr(100)
	}
	if t.CondensateClear == nil {
		t.CondensateClear = boolPtr(true)
	}
	return out
}

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

// StressFactors are the per-dimension aging multipliers and their product.
type StressFactors struct {
	Pressure    float64 `json:"pressure"`
	Thermal     float64 `json:"thermal"`
	Circulation float64 `json:"circulation"`
	Loop        float64 `json:"loop"`
	Total       float64 `json:"total"`
}

// DegradationMetrics are the derived wear measurements. Recomputed on every
// call; never mutated or persisted by the engine.
type DegradationMetrics struct {
	BiologicalAge      float64       `json:"biologicalAge"`
	FailureProbability float64       `json:"failureProbability"`
	SedimentLbs        float64       `json:"sedimentLbs"`
	ShieldLifeYears    float64       `json:"shieldLifeYears"`
	Stress             StressFactors `json:"stress"`
	LocationRisk       int           `json:"locationRisk"`
	HealthScore        float64       `json:"healthScore"`
}

// Action is the recommended course of action.
type Action string

const (
	ActionReplace  Action = "REPLACE"
	ActionRepair   Action = "REPAIR"
	ActionUpgrade  Action = "UPGRADE"
	ActionMaintain Action = "MAINTAIN"
	ActionPass     Action = "PASS"
	ActionUrgent   Action = "URGENT"
)

// Badge is the display tier attached to a verdict or simulated state.
type Badge string

const (
	BadgeCritical Badge = "CRITICAL"
	BadgeService  Badge = "SERVICE"
	BadgeWatch    Badge = "WATCH"
	BadgeOptimal  Badge = "OPTIMAL"
)

// Verdict is the single recommendation for an inspected unit.
type Verdict struct {
	Action Action `json:"action"`
	Badge  Badge  `json:"badge"`
	Urgent bool   `json:"urgent"`
	Reason string `json:"reason"`
}

// IssueCategory classifies an infrastructure finding.
type IssueCategory string

const (
	CategoryViolation      IssueCategory = "VIOLATION"
	CategoryInfrastructure IssueCategory = "INFRASTRUCTURE"
	CategoryRecommendation IssueCategory = "RECOMMENDATION"
)

// Tier is one of the four ordered installation quality tiers.
type Tier string

const (
	TierGood    Tier = "good"
	TierBetter  Tier = "better"
	TierBest    Tier = "best"
	TierPremium Tier = "premium"
)

// Tiers returns the quality tiers in ascending order.
func Tiers() []Tier {
	return []Tier{TierGood, TierBetter, TierBest, TierPremium}
}

// TierWarrantyYears is the nameplate warranty each tier quotes against.
func TierWarrantyYears(t Tier) int {
	switch t {
	case TierPremium:
		return 12
	case TierBest:
		return 10
	case TierBetter:
		return 8
	default:
		return 6
	}
}

func tierRank(t Tier) int {
	switch t {
	case TierPremium:
		return 3
	case TierBest:
		return 2
	case TierBetter:
		return 1
	default:
		return 0
	}
}

// TierAtLeast reports whether t is at or above min in the tier ordering.
func TierAtLeast(t, min Tier) bool {
	return tierRank(t) >= tierRank(min)
}

// CostRange is a low/high price band in whole dollars.
type CostRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Add returns the sum of two ranges.
func (c CostRange) Add(other CostRange) CostRange {
	return CostRange{Low: c.Low + other.Low, High: c.High + other.High}
}

// Median is the midpoint of the range.
func (c CostRange) Median() float64 {
	return (c.Low + c.High) / 2
}

// InfrastructureIssue is a detected code-compliance or supporting-equipment
// deficiency, distinct from the appliance's own wear state.
type InfrastructureIssue struct {
	ID          string        `json:"id"`
	Category    IssueCategory `json:"category"`
	Name        string        `json:"name"`
	Remediation string        `json:"remediation"`
	Cost        CostRange     `json:"cost"`
	// MinTier is the lowest quality tier at which this issue must be
	// bundled into the installation quote.
	MinTier Tier `json:"minTier"`
}

// RepairImpact quantifies what a repair does to the unit's state.
type RepairImpact struct {
	ScoreDelta          float64 `json:"scoreDelta"`
	AgingReductionPct   float64 `json:"agingReductionPct"`
	FailureReductionPct float64 `json:"failureReductionPct"`
}

// RepairID identifies a catalog repair option.
type RepairID string

const (
	RepairReplaceTankGas      RepairID = "replace_tank_gas"
	RepairReplaceTankElectric RepairID = "replace_tank_electric"
	RepairReplaceTankless     RepairID = "replace_tankless"
	RepairReplaceHybrid       RepairID = "replace_hybrid"
	RepairFlush               RepairID = "tank_flush"
	RepairAnode               RepairID = "anode_replacement"
	RepairPRV                 RepairID = "prv_install"
	RepairExpansionTank       RepairID = "expansion_tank_install"
	RepairPRVExpansionBundle  RepairID = "prv_expansion_bundle"
	RepairIsolationValves     RepairID = "isolation_valve_install"
	RepairDescale             RepairID = "descale"
	RepairInletFilter         RepairID = "inlet_filter_service"
	RepairBurnerService       RepairID = "burner_service"
	RepairAirFilter           RepairID = "air_filter_service"
	RepairCondensate          RepairID = "condensate_service"
)

// RepairOption is a remediation the eligibility engine may offer. A full
// replacement is mutually exclusive with every other option.
type RepairOption struct {
	ID              RepairID       `json:"id"`
	Name            string         `json:"name"`
	AppliesTo       []FuelCategory `json:"appliesTo"`
	Cost            CostRange      `json:"cost"`
	Impact          RepairImpact   `json:"impact"`
	FullReplacement bool           `json:"fullReplacement"`
}

// RepairState is the current-unit view the simulator transforms.
type RepairState struct {
	HealthScore        float64 `json:"healthScore"`
	AgingFactor        float64 `json:"agingFactor"`
	FailureProbability float64 `json:"failureProbability"`
}

// SimulatedResult is the projected post-repair state.
type SimulatedResult struct {
	HealthScore        float64   `json:"healthScore"`
	AgingFactor        float64   `json:"agingFactor"`
	FailureProbability float64   `json:"failureProbability"`
	Badge              Badge     `json:"badge"`
	Cost               CostRange `json:"cost"`
}
