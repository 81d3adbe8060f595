package inspections

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrRepairNotEligible = errors.New("repair not eligible for this unit")
	ErrNoQuoteProvider   = errors.New("quote provider not configured")
)
