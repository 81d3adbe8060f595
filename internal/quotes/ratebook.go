package quotes

import (
	"context"

	"inspection-backend/internal/forensics"
)

// RateBookProvider prices installations from a static local rate book. It is
// the dev/test default when no remote pricing API is configured.
type RateBookProvider struct{}

// Base equipment-plus-labor bands per category at the 6-year warranty line.
var rateBook = map[forensics.FuelCategory]forensics.CostRange{
	forensics.FuelTankGas:          {Low: 1400, High: 2200},
	forensics.FuelTankElectric:     {Low: 1200, High: 1900},
	forensics.FuelTanklessGas:      {Low: 2800, High: 4200},
	forensics.FuelTanklessElectric: {Low: 2400, High: 3600},
	forensics.FuelHybridHeatPump:   {Low: 3200, High: 4800},
}

var complexityMultiplier = map[InstallComplexity]float64{
	ComplexityStandard:  1.0,
	ComplexityElevated:  1.15,
	ComplexityDifficult: 1.35,
}

// Each warranty year past the 6-year baseline adds a build-quality premium.
const warrantyYearPremiumPct = 0.05

// GenerateQuote prices the job deterministically from the rate book.
func (RateBookProvider) GenerateQuote(ctx context.Context, req Request) (Base, error) {
	if err := ctx.Err(); err != nil {
		return Base{}, err
	}

	band, ok := rateBook[req.Record.Fuel]
	if !ok {
		band = rateBook[forensics.FuelTankGas]
	}

	mult := complexityMultiplier[req.InstallComplexity]
	if mult == 0 {
		mult = 1.0
	}
	if extra := req.WarrantyYears - 6; extra > 0 {
		mult *= 1.0 + warrantyYearPremiumPct*float64(extra)
	}

	// Oversized tanks carry a modest equipment premium.
	if req.Record.CapacityGal > 50 {
		mult *= 1.1
	}

	return Base{Range: forensics.CostRange{
		Low:  band.Low * mult,
		High: band.High * mult,
	}}, nil
}

var _ Provider = RateBookProvider{}
