package quotes

import (
	"context"
	"sync"

	"inspection-backend/internal/forensics"
)

// TierQuote is the bundled price for one quality tier: the provider's base
// installation range plus the remediation cost of every issue that must be
// folded in at that tier.
type TierQuote struct {
	Tier          forensics.Tier      `json:"tier"`
	WarrantyYears int                 `json:"warrantyYears"`
	Base          forensics.CostRange `json:"base"`
	IssueCost     forensics.CostRange `json:"issueCost"`
	Total         forensics.CostRange `json:"total"`
	Median        float64             `json:"median"`
}

// Result is one tier's success-or-error outcome. A tier that failed carries
// its error here; it never poisons the other tiers.
type Result struct {
	Quote TierQuote
	Err   error
}

// Bundle fetches one base quote per quality tier, concurrently and
// independently, and folds in required infrastructure-fix costs. Each tier's
// provider call overrides the warranty-years parameter to the tier's
// nameplate warranty. The caller's context cancels in-flight fetches when the
// underlying record changes, so results never apply to a stale input.
func Bundle(ctx context.Context, rec forensics.InspectionRecord, issues []forensics.InfrastructureIssue, provider Provider, contractorID string) map[forensics.Tier]Result {
	tiers := forensics.Tiers()
	results := make([]Result, len(tiers))
	complexity := ComplexityFor(rec)

	var wg sync.WaitGroup
	for i, tier := range tiers {
		wg.Add(1)
		go func(i int, tier forensics.Tier) {
			defer wg.Done()
			results[i] = fetchTier(ctx, rec, issues, provider, contractorID, tier, complexity)
		}(i, tier)
	}
	wg.Wait()

	out := make(map[forensics.Tier]Result, len(tiers))
	for i, tier := range tiers {
		out[tier] = results[i]
	}
	return out
}

func fetchTier(ctx context.Context, rec forensics.InspectionRecord, issues []forensics.InfrastructureIssue, provider Provider, contractorID string, tier forensics.Tier, complexity InstallComplexity) Result {
	warranty := forensics.TierWarrantyYears(tier)
	base, err := provider.GenerateQuote(ctx, Request{
		Record:            rec,
		ContractorID:      contractorID,
		WarrantyYears:     warranty,
		InstallComplexity: complexity,
	})
	if err != nil {
		return Result{Err: err}
	}

	issueCost := forensics.BundledIssueCost(issues, tier)
	total := base.Range.Add(issueCost)
	return Result{Quote: TierQuote{
		Tier:          tier,
		WarrantyYears: warranty,
		Base:          base.Range,
		IssueCost:     issueCost,
		Total:         total,
		Median:        total.Median(),
	}}
}
