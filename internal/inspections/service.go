package inspections

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inspection-backend/internal/forensics"
	"inspection-backend/internal/quotes"
	"inspection-backend/internal/shared/metrics"
	"inspection-backend/internal/shared/telemetry"
)

// Service contains business logic for inspections. The forensic engine it
// drives is pure; the service owns identity, storage, clocks, and the quote
// provider collaborator.
type Service struct {
	Repo         Repo
	Provider     quotes.Provider
	ContractorID string
	// Now overrides the clock in tests. The engine itself never reads
	// wall time; the service decides what "now" is.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create validates and stores a new inspection record.
func (s *Service) Create(ctx context.Context, userID, label string, rec forensics.InspectionRecord) (Inspection, error) {
	if userID == "" {
		return Inspection{}, errors.New("userID is required")
	}
	if err := validateRecord(rec); err != nil {
		return Inspection{}, err
	}

	insp := Inspection{
		ID:        uuid.NewString(),
		UserID:    userID,
		Label:     label,
		Record:    rec,
		CreatedAt: s.now(),
	}
	if err := s.Repo.Create(ctx, insp); err != nil {
		return Inspection{}, err
	}
	return insp, nil
}

// Get returns an inspection by ID.
func (s *Service) Get(ctx context.Context, userID, inspectionID string) (Inspection, error) {
	if inspectionID == "" {
		return Inspection{}, errors.New("inspectionID is required")
	}
	return s.Repo.GetByID(ctx, userID, inspectionID)
}

// List returns inspections for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Inspection, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes an inspection.
func (s *Service) Delete(ctx context.Context, userID, inspectionID string) error {
	if inspectionID == "" {
		return errors.New("inspectionID is required")
	}
	return s.Repo.Delete(ctx, userID, inspectionID)
}

// Report runs the full forensic pipeline for a stored inspection.
func (s *Service) Report(ctx context.Context, userID, inspectionID string) (Report, error) {
	insp, err := s.Repo.GetByID(ctx, userID, inspectionID)
	if err != nil {
		return Report{}, err
	}

	now := s.now()
	m := forensics.ComputeMetrics(insp.Record, now)
	verdict := forensics.ComputeVerdict(insp.Record, m)
	issues := forensics.DetectIssues(insp.Record, m)
	repairs := forensics.EligibleRepairs(insp.Record, m, verdict)

	metrics.IncReportComputed()
	telemetry.Info("inspection.report", map[string]any{
		"user_id":             userID,
		"inspection_id":       insp.ID,
		"action":              verdict.Action,
		"badge":               verdict.Badge,
		"urgent":              verdict.Urgent,
		"health_score":        m.HealthScore,
		"failure_probability": m.FailureProbability,
		"issue_count":         len(issues),
		"repair_count":        len(repairs),
	})

	return Report{
		InspectionID: insp.ID,
		Metrics:      m,
		Verdict:      verdict,
		Issues:       issues,
		Repairs:      repairs,
		GeneratedAt:  now,
	}, nil
}

// Simulate projects the post-repair state for a selection of repair IDs.
// Selections resolve against the currently eligible options, so a caller can
// never simulate work the safety gates withhold.
func (s *Service) Simulate(ctx context.Context, userID, inspectionID string, selected []forensics.RepairID) (forensics.SimulatedResult, error) {
	insp, err := s.Repo.GetByID(ctx, userID, inspectionID)
	if err != nil {
		return forensics.SimulatedResult{}, err
	}

	now := s.now()
	m := forensics.ComputeMetrics(insp.Record, now)
	verdict := forensics.ComputeVerdict(insp.Record, m)
	eligible := forensics.EligibleRepairs(insp.Record, m, verdict)

	byID := make(map[forensics.RepairID]forensics.RepairOption, len(eligible))
	for _, opt := range eligible {
		byID[opt.ID] = opt
	}

	selection := make([]forensics.RepairOption, 0, len(selected))
	for _, id := range selected {
		opt, ok := byID[id]
		if !ok {
			return forensics.SimulatedResult{}, fmt.Errorf("%w: %s", ErrRepairNotEligible, id)
		}
		selection = append(selection, opt)
	}

	state := forensics.RepairState{
		HealthScore:        m.HealthScore,
		AgingFactor:        m.Stress.Total,
		FailureProbability: m.FailureProbability,
	}
	return forensics.Simulate(state, selection), nil
}

// Quotes bundles tier quotes for a stored inspection. Tiers are fetched
// concurrently; a failed tier surfaces in its view and never blocks the rest.
func (s *Service) Quotes(ctx context.Context, userID, inspectionID string) (QuoteSheet, error) {
	if s.Provider == nil {
		return QuoteSheet{}, ErrNoQuoteProvider
	}
	insp, err := s.Repo.GetByID(ctx, userID, inspectionID)
	if err != nil {
		return QuoteSheet{}, err
	}

	now := s.now()
	m := forensics.ComputeMetrics(insp.Record, now)
	issues := forensics.DetectIssues(insp.Record, m)

	startedAt := time.Now()
	results := quotes.Bundle(ctx, insp.Record, issues, s.Provider, s.ContractorID)
	metrics.IncQuoteBundle()
	metrics.ObserveQuoteBundleDurationMs(float64(time.Since(startedAt).Microseconds()) / 1000.0)

	views := make(map[forensics.Tier]TierQuoteView, len(results))
	failed := 0
	for tier, res := range results {
		view := TierQuoteView{Tier: tier}
		if res.Err != nil {
			failed++
			view.Error = res.Err.Error()
		} else {
			quote := res.Quote
			view.Quote = &quote
		}
		views[tier] = view
	}
	if failed > 0 {
		metrics.AddQuoteTierFailed(failed)
	}

	telemetry.Info("inspection.quotes", map[string]any{
		"user_id":       userID,
		"inspection_id": insp.ID,
		"issue_count":   len(issues),
		"tiers":         len(views),
		"tiers_failed":  failed,
	})

	return QuoteSheet{
		InspectionID: insp.ID,
		Issues:       issues,
		Tiers:        views,
		GeneratedAt:  now,
	}, nil
}

func validateRecord(rec forensics.InspectionRecord) error {
	switch rec.Fuel {
	case forensics.FuelTankGas, forensics.FuelTankElectric,
		forensics.FuelTanklessGas, forensics.FuelTanklessElectric,
		forensics.FuelHybridHeatPump:
	default:
		return fmt.Errorf("unknown fuel category %q", rec.Fuel)
	}
	switch rec.Location {
	case forensics.LocationAttic, forensics.LocationUpperFloor, forensics.LocationMainLiving,
		forensics.LocationBasement, forensics.LocationGarage, forensics.LocationExterior,
		forensics.LocationCrawlspace:
	default:
		return fmt.Errorf("unknown location %q", rec.Location)
	}
	if rec.AgeYears < 0 {
		return errors.New("ageYears must be non-negative")
	}
	if rec.PressurePSI < 0 || rec.PressurePSI > 300 {
		return errors.New("pressurePsi out of range")
	}
	if rec.HardnessGPG < 0 {
		return errors.New("hardnessGpg must be non-negative")
	}
	return nil
}
