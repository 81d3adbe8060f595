package quotes

import (
	"context"
	"errors"

	"inspection-backend/internal/forensics"
)

// InstallComplexity grades how involved the installation is.
type InstallComplexity string

const (
	ComplexityStandard  InstallComplexity = "standard"
	ComplexityElevated  InstallComplexity = "elevated"
	ComplexityDifficult InstallComplexity = "difficult"
)

// Request is one base-quote call to the external pricing collaborator. The
// bundler overrides WarrantyYears per tier on the same physical job.
type Request struct {
	Record            forensics.InspectionRecord
	ContractorID      string
	WarrantyYears     int
	InstallComplexity InstallComplexity
}

// Base is the provider's installation quote before issue bundling.
type Base struct {
	Range forensics.CostRange
}

// Provider abstracts the external quote-generation collaborator.
type Provider interface {
	GenerateQuote(ctx context.Context, req Request) (Base, error)
}

// ErrNotConfigured is returned by the placeholder provider.
var ErrNotConfigured = errors.New("quote provider not configured")

// PlaceholderProvider is a stub implementation until provider wiring is added.
type PlaceholderProvider struct{}

// GenerateQuote returns ErrNotConfigured.
func (PlaceholderProvider) GenerateQuote(ctx context.Context, req Request) (Base, error) {
	_ = ctx
	_ = req
	return Base{}, ErrNotConfigured
}

// ComplexityFor grades installation difficulty from the record. Tight or
// elevated locations cost more to work in; tankless swaps carry venting and
// gas-line work.
func ComplexityFor(rec forensics.InspectionRecord) InstallComplexity {
	switch rec.Location {
	case forensics.LocationAttic, forensics.LocationCrawlspace:
		return ComplexityDifficult
	case forensics.LocationUpperFloor:
		return ComplexityElevated
	}
	if rec.Fuel.IsTankless() {
		return ComplexityElevated
	}
	return ComplexityStandard
}
