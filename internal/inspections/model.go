package inspections

import (
	"time"

	"inspection-backend/internal/forensics"
	"inspection-backend/internal/quotes"
)

// Inspection is a stored inspection record for one unit at one address.
type Inspection struct {
	ID        string                     `json:"id"`
	UserID    string                     `json:"userId"`
	Label     string                     `json:"label,omitempty"`
	Record    forensics.InspectionRecord `json:"record"`
	CreatedAt time.Time                  `json:"createdAt"`
}

// Report is the full forensic read-out for an inspection: derived metrics,
// the verdict, detected infrastructure issues, and the safe repair menu.
type Report struct {
	InspectionID string                          `json:"inspectionId"`
	Metrics      forensics.DegradationMetrics    `json:"metrics"`
	Verdict      forensics.Verdict               `json:"verdict"`
	Issues       []forensics.InfrastructureIssue `json:"issues"`
	Repairs      []forensics.RepairOption        `json:"repairs"`
	GeneratedAt  time.Time                       `json:"generatedAt"`
}

// TierQuoteView is one tier's quote outcome for API consumers. Failed tiers
// carry an error string and may be retried individually by the caller.
type TierQuoteView struct {
	Tier  forensics.Tier    `json:"tier"`
	Quote *quotes.TierQuote `json:"quote,omitempty"`
	Error string            `json:"error,omitempty"`
}

// QuoteSheet is the tier-keyed bundle result for an inspection.
type QuoteSheet struct {
	InspectionID string                           `json:"inspectionId"`
	Issues       []forensics.InfrastructureIssue  `json:"issues"`
	Tiers        map[forensics.Tier]TierQuoteView `json:"tiers"`
	GeneratedAt  time.Time                        `json:"generatedAt"`
}
